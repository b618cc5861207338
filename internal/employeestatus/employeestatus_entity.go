package employeestatus

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusIntern               Status = "Intern"
	StatusProbation            Status = "Probation"
	StatusConfirmed            Status = "Confirmed"
	StatusResignationSubmitted Status = "Resignation Submitted"
	StatusNoticePeriod         Status = "Notice Period"
	StatusRelieved             Status = "Relieved"
	StatusTerminated           Status = "Terminated"
)

// Statuses lists the known statuses in display order.
var Statuses = []Status{
	StatusIntern,
	StatusProbation,
	StatusConfirmed,
	StatusResignationSubmitted,
	StatusNoticePeriod,
	StatusRelieved,
	StatusTerminated,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

type WorkMode string

const (
	WorkModeOffice     WorkMode = "Office"
	WorkModeRemote     WorkMode = "Remote"
	WorkModeField      WorkMode = "Field"
	WorkModeClientSite WorkMode = "Client Site"
)

var WorkModes = []WorkMode{WorkModeOffice, WorkModeRemote, WorkModeField, WorkModeClientSite}

func (w WorkMode) Valid() bool {
	for _, v := range WorkModes {
		if v == w {
			return true
		}
	}
	return false
}

// EmployeeStatus is the single current-status record of one employee.
type EmployeeStatus struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_status_employee"`
	Status      Status    `gorm:"size:32;not null;index"`
	Email       string    `gorm:"size:255"`
	Reason      string    `gorm:"type:text"`
	WorkMode    WorkMode  `gorm:"size:32;not null;default:Office;index"`
	ChangedAt   time.Time `gorm:"not null"`
	LastUpdated time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

func (EmployeeStatus) TableName() string { return "employee_statuses" }

// StatusHistory is an append-only log row written from the status change
// event stream.
type StatusHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID        string    `gorm:"size:128;uniqueIndex:uq_status_history_event"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index"`
	PreviousStatus string    `gorm:"size:32"`
	Status         string    `gorm:"size:32;not null"`
	WorkMode       string    `gorm:"size:32"`
	Reason         string    `gorm:"type:text"`
	ChangedBy      string    `gorm:"size:64"`
	ChangedAt      time.Time `gorm:"not null"`
}

func (StatusHistory) TableName() string { return "employee_status_history" }

type GroupCount struct {
	Value string
	Count int64
}
