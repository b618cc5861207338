package project

import (
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/shared/attachment"
)

type ListFilter struct {
	Status     string
	Department string
	Query      string
}

type CreateProjectRequest struct {
	ProjectName string            `json:"projectName" binding:"required,max=200"`
	Department  string            `json:"department" binding:"required,max=100"`
	ManagerID   string            `json:"manager" binding:"required,uuid"`
	TeamLeadID  string            `json:"teamLead" binding:"omitempty,uuid"`
	TeamMembers []string          `json:"teamMembers" binding:"omitempty,dive,uuid"`
	StartDate   string            `json:"startDate" binding:"required"`
	Deadline    string            `json:"deadline" binding:"required"`
	Status      string            `json:"status"`
	Progress    int               `json:"progress"`
	Description string            `json:"description"`
	Files       []attachment.File `json:"files"`
}

// UpdateProjectRequest is a partial update. Nil fields are left untouched;
// an empty teamLead clears it.
type UpdateProjectRequest struct {
	ProjectName *string   `json:"projectName" binding:"omitempty,min=1,max=200"`
	Department  *string   `json:"department" binding:"omitempty,min=1,max=100"`
	ManagerID   *string   `json:"manager" binding:"omitempty,uuid"`
	TeamLeadID  *string   `json:"teamLead"`
	TeamMembers *[]string `json:"teamMembers" binding:"omitempty,dive,uuid"`
	StartDate   *string   `json:"startDate"`
	Deadline    *string   `json:"deadline"`
	Status      *string   `json:"status"`
	Progress    *int      `json:"progress"`
	Description *string   `json:"description"`
	Version     *int64    `json:"version"`
}

type ModuleRequest struct {
	ModuleName  string            `json:"moduleName" binding:"required,max=200"`
	Description string            `json:"description"`
	TeamLeadID  string            `json:"teamLead" binding:"omitempty,uuid"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	StartDate   string            `json:"startDate"`
	DueDate     string            `json:"dueDate" binding:"required"`
	ModuleURL   string            `json:"moduleUrl" binding:"omitempty,url"`
	Files       []attachment.File `json:"files"`
	Version     *int64            `json:"version"`
}

type UpdateModuleRequest struct {
	ModuleName  *string `json:"moduleName" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	StartDate   *string `json:"startDate"`
	DueDate     *string `json:"dueDate"`
	ModuleURL   *string `json:"moduleUrl" binding:"omitempty,url"`
	Version     *int64  `json:"version"`
}

type AssignTeamLeadRequest struct {
	TeamLeadID string `json:"teamLeadId" binding:"required,uuid"`
	Version    *int64 `json:"version"`
}

type AttachFilesRequest struct {
	Files   []attachment.File `json:"files"`
	Version *int64            `json:"version"`
}

// RequirementRequest combines fresh uploads (multipart files or attachment
// metadata) with picks of files already on the project, by URL.
type RequirementRequest struct {
	Title            string            `json:"title" binding:"required,max=200"`
	Description      string            `json:"description"`
	RequirementType  string            `json:"requirementType"`
	Priority         string            `json:"priority"`
	Attachments      []attachment.File `json:"attachments"`
	ExistingFileURLs []string          `json:"existingFileUrls"`
	Version          *int64            `json:"version"`
}

type ModuleResponse struct {
	ID          string            `json:"id"`
	ModuleName  string            `json:"moduleName"`
	Description string            `json:"description"`
	TeamLead    *employee.Summary `json:"teamLead"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	StartDate   *string           `json:"startDate"`
	DueDate     string            `json:"dueDate"`
	ModuleURL   string            `json:"moduleUrl"`
	Files       attachment.Files  `json:"files"`
}

type RequirementResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	RequirementType string           `json:"requirementType"`
	Priority        string           `json:"priority"`
	Attachments     attachment.Files `json:"attachments"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type ProjectResponse struct {
	ID           string                `json:"id"`
	Code         string                `json:"code"`
	ProjectName  string                `json:"projectName"`
	Department   string                `json:"department"`
	Manager      *employee.Summary     `json:"manager"`
	TeamLead     *employee.Summary     `json:"teamLead"`
	TeamMembers  []employee.Summary    `json:"teamMembers"`
	StartDate    string                `json:"startDate"`
	Deadline     string                `json:"deadline"`
	Status       string                `json:"status"`
	Progress     int                   `json:"progress"`
	Description  string                `json:"description"`
	Files        attachment.Files      `json:"files"`
	Modules      []ModuleResponse      `json:"modules"`
	Requirements []RequirementResponse `json:"requirements"`
	Version      int64                 `json:"version"`
	UserRole     string                `json:"userRole,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}
