package events

import "time"

const (
	EmployeeStatusTopic            = "hr.employee.status.v1"
	EmployeeStatusChangedEventType = "employee_status_changed"
)

type EmployeeStatusChangedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Status         string    `json:"status"`
	WorkMode       string    `json:"work_mode"`
	Reason         string    `json:"reason,omitempty"`
	ChangedBy      string    `json:"changed_by,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
