package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"size:32;uniqueIndex:uq_employee_number"`
	FullName       string    `gorm:"size:255;not null"`
	Email          string    `gorm:"size:255;uniqueIndex:uq_employee_email"`
	Department     string    `gorm:"size:128;index"`
	Position       string    `gorm:"size:128"`
	ImageURL       string    `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// Summary is the identity other features embed when they resolve an
// employee reference.
type Summary struct {
	ID         string `json:"id"`
	FullName   string `json:"name"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
	ImageURL   string `json:"image,omitempty"`
}

func (e Employee) Summary() Summary {
	return Summary{
		ID:         e.ID.String(),
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		ImageURL:   e.ImageURL,
	}
}
