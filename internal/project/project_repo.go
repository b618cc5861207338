package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"go-hrm/internal/shared/dbtx"
	"go-hrm/internal/shared/idlist"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStaleVersion is returned by Save when the row's version moved on.
var ErrStaleVersion = errors.New("project version is stale")

//go:generate mockgen -source=project_repo.go -destination=mock/project_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Project) error
	FindAll(ctx context.Context, filter ListFilter) ([]Project, error)
	FindByID(ctx context.Context, id string) (*Project, error)
	FindByIDForUpdate(ctx context.Context, id string) (*Project, error)
	FindByIDForShare(ctx context.Context, id string) (*Project, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]Project, error)
	FindManagedBy(ctx context.Context, employeeID string) ([]Project, error)
	Save(ctx context.Context, p *Project, expectedVersion int64) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbtx.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, p *Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Project, error) {
	var projects []Project
	q := r.db.WithContext(ctx)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		q = q.Where("LOWER(department) = ?", strings.ToLower(filter.Department))
	}
	if s := strings.TrimSpace(filter.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}
	err := q.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Project, error) {
	var p Project
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDForShare holds the row against concurrent writers (module and
// project deletes take FOR UPDATE) while other readers proceed.
func (r *repository) FindByIDForShare(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "SHARE"}).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByEmployee returns projects where the employee is manager, team lead,
// team member or lead of one of the modules.
func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]Project, error) {
	var projects []Project
	err := r.db.WithContext(ctx).
		Where("manager_id = ? OR team_lead_id = ? OR team_members @> ?::jsonb OR modules @> ?::jsonb",
			employeeID, employeeID, idlist.Containment(employeeID), moduleLeadContainment(employeeID)).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *repository) FindManagedBy(ctx context.Context, employeeID string) ([]Project, error) {
	var projects []Project
	err := r.db.WithContext(ctx).
		Where("manager_id = ? OR team_lead_id = ? OR modules @> ?::jsonb",
			employeeID, employeeID, moduleLeadContainment(employeeID)).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// Save writes every mutable column guarded by expectedVersion. The caller
// bumps p.Version before calling.
func (r *repository) Save(ctx context.Context, p *Project, expectedVersion int64) error {
	res := r.db.WithContext(ctx).
		Model(&Project{}).
		Where("id = ? AND version = ?", p.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":         p.Name,
			"department":   p.Department,
			"manager_id":   p.ManagerID,
			"team_lead_id": p.TeamLeadID,
			"team_members": p.TeamMembers,
			"start_date":   p.StartDate,
			"deadline":     p.Deadline,
			"status":       p.Status,
			"progress":     p.Progress,
			"description":  p.Description,
			"files":        p.Files,
			"modules":      p.Modules,
			"requirements": p.Requirements,
			"version":      p.Version,
			"updated_at":   p.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func moduleLeadContainment(employeeID string) string {
	b, _ := json.Marshal([]map[string]string{{"teamLead": employeeID}})
	return string(b)
}
