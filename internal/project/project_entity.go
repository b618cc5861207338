package project

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	projecterrors "go-hrm/internal/project/errors"
	"go-hrm/internal/shared/attachment"
	"go-hrm/internal/shared/idlist"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPlanning  Status = "Planning"
	StatusActive    Status = "Active"
	StatusOnHold    Status = "On Hold"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type ModuleStatus string

const (
	ModuleStatusPending    ModuleStatus = "Pending"
	ModuleStatusInProgress ModuleStatus = "In Progress"
	ModuleStatusCompleted  ModuleStatus = "Completed"
	ModuleStatusOnHold     ModuleStatus = "On Hold"
)

func (s ModuleStatus) Valid() bool {
	switch s {
	case ModuleStatusPending, ModuleStatusInProgress, ModuleStatusCompleted, ModuleStatusOnHold:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type RequirementType string

const (
	RequirementFunctional    RequirementType = "Functional"
	RequirementNonFunctional RequirementType = "Non-Functional"
	RequirementTechnical     RequirementType = "Technical"
)

func (t RequirementType) Valid() bool {
	switch t {
	case RequirementFunctional, RequirementNonFunctional, RequirementTechnical:
		return true
	}
	return false
}

// Role is the caller's relation to a project.
type Role string

const (
	RoleManager    Role = "manager"
	RoleTeamLead   Role = "teamLead"
	RoleTeamMember Role = "teamMember"
)

// Module is embedded in the project row.
type Module struct {
	ID          string           `json:"id"`
	Name        string           `json:"moduleName"`
	Description string           `json:"description,omitempty"`
	TeamLeadID  string           `json:"teamLead,omitempty"`
	Status      ModuleStatus     `json:"status"`
	Priority    Priority         `json:"priority"`
	StartDate   *time.Time       `json:"startDate,omitempty"`
	DueDate     time.Time        `json:"dueDate"`
	ModuleURL   string           `json:"moduleUrl,omitempty"`
	Files       attachment.Files `json:"files"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type Modules []Module

func (m Modules) Value() (driver.Value, error) { return jsonValue(m) }
func (m *Modules) Scan(value interface{}) error {
	return jsonScan(value, m, "Modules")
}

// Requirement is embedded in the project row.
type Requirement struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Type        RequirementType  `json:"requirementType"`
	Priority    Priority         `json:"priority"`
	Attachments attachment.Files `json:"attachments"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type Requirements []Requirement

func (r Requirements) Value() (driver.Value, error) { return jsonValue(r) }
func (r *Requirements) Scan(value interface{}) error {
	return jsonScan(value, r, "Requirements")
}

type Project struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Code         string           `gorm:"type:varchar(20);not null;uniqueIndex:uq_project_code"`
	Name         string           `gorm:"type:varchar(200);not null"`
	Department   string           `gorm:"type:varchar(100);not null;index"`
	ManagerID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	TeamLeadID   *uuid.UUID       `gorm:"type:uuid;index"`
	TeamMembers  idlist.IDs       `gorm:"type:jsonb;not null;default:'[]'"`
	StartDate    time.Time        `gorm:"type:date;not null"`
	Deadline     time.Time        `gorm:"type:date;not null"`
	Status       Status           `gorm:"type:varchar(20);not null"`
	Progress     int              `gorm:"not null;default:0"`
	Description  string           `gorm:"type:text"`
	Files        attachment.Files `gorm:"type:jsonb;not null;default:'[]'"`
	Modules      Modules          `gorm:"type:jsonb;not null;default:'[]'"`
	Requirements Requirements     `gorm:"type:jsonb;not null;default:'[]'"`
	Version      int64            `gorm:"not null;default:1"`
	CreatedBy    string           `gorm:"type:varchar(64)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p *Project) ModuleIndex(moduleID string) int {
	for i := range p.Modules {
		if p.Modules[i].ID == moduleID {
			return i
		}
	}
	return -1
}

func (p *Project) RequirementIndex(requirementID string) int {
	for i := range p.Requirements {
		if p.Requirements[i].ID == requirementID {
			return i
		}
	}
	return -1
}

func (p *Project) teamLead() string {
	if p.TeamLeadID == nil {
		return ""
	}
	return p.TeamLeadID.String()
}

func (p *Project) leadsModule(employeeID string) bool {
	for _, m := range p.Modules {
		if m.TeamLeadID == employeeID {
			return true
		}
	}
	return false
}

// RoleOf returns the strongest relation employeeID has to the project, or
// an empty role when there is none. Module leads count as team leads.
func (p *Project) RoleOf(employeeID string) Role {
	switch {
	case employeeID == "":
		return ""
	case p.ManagerID.String() == employeeID:
		return RoleManager
	case p.teamLead() == employeeID, p.leadsModule(employeeID):
		return RoleTeamLead
	case p.TeamMembers.Contains(employeeID):
		return RoleTeamMember
	}
	return ""
}

// EmployeeIDs lists every employee referenced by the project, modules included.
func (p *Project) EmployeeIDs() []string {
	ids := []string{p.ManagerID.String()}
	if lead := p.teamLead(); lead != "" {
		ids = append(ids, lead)
	}
	ids = append(ids, p.TeamMembers...)
	for _, m := range p.Modules {
		if m.TeamLeadID != "" {
			ids = append(ids, m.TeamLeadID)
		}
	}
	return ids
}

// PickableFiles are the files a requirement may reference: the project's own
// files followed by every module's files.
func (p *Project) PickableFiles() attachment.Files {
	out := p.Files.Clone()
	for _, m := range p.Modules {
		out = out.Merge(m.Files...)
	}
	return out
}

// AttachmentSnapshot copies, by value, the files a new task under moduleID
// carries: the requirement's attachments (when requirementID is set), then the
// module's files, then the project's files, each tagged with its origin.
func (p *Project) AttachmentSnapshot(moduleID, requirementID string) (attachment.Files, error) {
	mi := p.ModuleIndex(moduleID)
	if mi < 0 {
		return nil, projecterrors.ErrModuleNotFound
	}

	out := attachment.Files{}
	if requirementID != "" {
		ri := p.RequirementIndex(requirementID)
		if ri < 0 {
			return nil, projecterrors.ErrRequirementNotFound
		}
		out = out.Merge(tagAll(p.Requirements[ri].Attachments, attachment.OriginRequirement)...)
	}
	out = out.Merge(tagAll(p.Modules[mi].Files, attachment.OriginModule)...)
	out = out.Merge(tagAll(p.Files, attachment.OriginProject)...)
	return out, nil
}

func tagAll(files attachment.Files, origin attachment.Origin) attachment.Files {
	out := make(attachment.Files, len(files))
	for i, f := range files {
		out[i] = f.Tagged(origin)
	}
	return out
}

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

func jsonScan(value interface{}, dst any, name string) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		data = []byte("[]")
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("project: cannot scan %T into %s", value, name)
	}
	if len(data) == 0 {
		data = []byte("[]")
	}
	return json.Unmarshal(data, dst)
}
