package events

import "time"

const (
	TaskAssignedTopic     = "hr.task.assigned.v1"
	TaskAssignedEventType = "task_assigned"
)

type TaskAssignedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	TaskID      string    `json:"task_id"`
	ProjectID   string    `json:"project_id"`
	ModuleID    string    `json:"module_id"`
	Title       string    `json:"title"`
	AssigneeIDs []string  `json:"assignee_ids"`
	AssignedBy  string    `json:"assigned_by,omitempty"`
	DueDate     time.Time `json:"due_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}
