package task

import (
	"time"

	"go-hrm/internal/project"
	"go-hrm/internal/shared/attachment"
	"go-hrm/internal/shared/idlist"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusOnHold     Status = "On Hold"
)

// Valid reports whether s is a known status. Any status may follow any other.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Task references its project and module by id. Attachments hold a copy of
// the forwarded files taken when the task was created.
type Task struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Title         string           `gorm:"type:varchar(200);not null"`
	Description   string           `gorm:"type:text"`
	RequirementID *string          `gorm:"type:varchar(64)"`
	Priority      project.Priority `gorm:"type:varchar(20);not null"`
	DueDate       time.Time        `gorm:"type:date;not null"`
	Status        Status           `gorm:"type:varchar(20);not null"`
	ProjectID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	ModuleID      string           `gorm:"type:varchar(64);not null;index"`
	AssigneeIDs   idlist.IDs       `gorm:"type:jsonb;not null;default:'[]'"`
	Attachments   attachment.Files `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedBy     string           `gorm:"type:varchar(64)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
