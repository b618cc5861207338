package task

import (
	"encoding/json"
	"strings"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/shared/attachment"
)

// CreateTaskRequest carries existingAttachments either as a JSON array or as
// a string holding one, which is how multipart clients send it.
type CreateTaskRequest struct {
	Title               string          `json:"title" binding:"required,max=200"`
	Description         string          `json:"description"`
	RequirementID       string          `json:"requirement"`
	Priority            string          `json:"priority"`
	DueDate             string          `json:"dueDate" binding:"required"`
	Status              string          `json:"status"`
	ProjectID           string          `json:"project" binding:"required,uuid"`
	ModuleID            string          `json:"module" binding:"required"`
	AssigneeIDs         []string        `json:"assignedTo" binding:"required,min=1,dive,uuid"`
	ExistingAttachments json.RawMessage `json:"existingAttachments"`
}

// existingAttachments returns the raw JSON list, unwrapping a string form.
func (r CreateTaskRequest) existingAttachments() string {
	raw := strings.TrimSpace(string(r.ExistingAttachments))
	if raw == "" || raw == "null" {
		return ""
	}
	if strings.HasPrefix(raw, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(raw), &inner); err == nil {
			return inner
		}
	}
	return raw
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TaskResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	RequirementID *string            `json:"requirement"`
	Priority      string             `json:"priority"`
	DueDate       string             `json:"dueDate"`
	Status        string             `json:"status"`
	ProjectID     string             `json:"project"`
	ModuleID      string             `json:"module"`
	AssignedTo    []employee.Summary `json:"assignedTo"`
	Attachments   attachment.Files   `json:"attachments"`
	CreatedBy     string             `json:"createdBy,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
