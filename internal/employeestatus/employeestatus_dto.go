package employeestatus

import (
	"time"

	"go-hrm/internal/employee"
)

// UpsertStatusRequest accepts workLocation as an alias of workMode.
type UpsertStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	WorkMode     string `json:"workMode"`
	WorkLocation string `json:"workLocation"`
	Reason       string `json:"reason"`
	Email        string `json:"email" binding:"omitempty,email"`
}

func (r UpsertStatusRequest) workMode() string {
	if r.WorkMode != "" {
		return r.WorkMode
	}
	return r.WorkLocation
}

type StatusResponse struct {
	ID          string            `json:"id"`
	Employee    *employee.Summary `json:"employee"`
	EmployeeID  string            `json:"employeeId"`
	Status      string            `json:"status"`
	Email       string            `json:"email,omitempty"`
	Reason      string            `json:"reason,omitempty"`
	WorkMode    string            `json:"workMode"`
	ChangedAt   time.Time         `json:"changedAt"`
	LastUpdated time.Time         `json:"lastUpdated"`
}

type CountResponse struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type OverviewResponse struct {
	Total      int64           `json:"total"`
	ByStatus   []CountResponse `json:"byStatus"`
	ByWorkMode []CountResponse `json:"byWorkMode"`
}

type HistoryResponse struct {
	PreviousStatus string    `json:"previousStatus,omitempty"`
	Status         string    `json:"status"`
	WorkMode       string    `json:"workMode,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	ChangedBy      string    `json:"changedBy,omitempty"`
	ChangedAt      time.Time `json:"changedAt"`
}
