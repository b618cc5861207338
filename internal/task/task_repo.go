package task

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/shared/dbtx"
	"go-hrm/internal/shared/idlist"

	"gorm.io/gorm"
)

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	FindByModule(ctx context.Context, moduleID string) ([]Task, error)
	FindByAssignee(ctx context.Context, employeeID string) ([]Task, error)
	FindAll(ctx context.Context) ([]Task, error)
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
	DeleteByModule(ctx context.Context, projectID, moduleID string) (int64, error)
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

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Task, error) {
	var t Task
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindByModule(ctx context.Context, moduleID string) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("due_date ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) FindByAssignee(ctx context.Context, employeeID string) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).
		Where("assignee_ids @> ?::jsonb", idlist.Containment(employeeID)).
		Order("due_date ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) FindAll(ctx context.Context) ([]Task, error) {
	var tasks []Task
	err := r.db.WithContext(ctx).Order("project_id, due_date ASC").Find(&tasks).Error
	return tasks, err
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": updatedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Task{}, "project_id = ?", projectID)
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteByModule(ctx context.Context, projectID, moduleID string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Task{}, "project_id = ? AND module_id = ?", projectID, moduleID)
	return res.RowsAffected, res.Error
}

// Cascader lets the project service delete tasks inside its own transaction.
type Cascader struct {
	repo Repository
}

func NewCascader(repo Repository) *Cascader {
	return &Cascader{repo: repo}
}

func (c *Cascader) DeleteByProject(ctx context.Context, tx *sql.Tx, projectID string) (int64, error) {
	return c.repo.WithTx(tx).DeleteByProject(ctx, projectID)
}

func (c *Cascader) DeleteByModule(ctx context.Context, tx *sql.Tx, projectID, moduleID string) (int64, error) {
	return c.repo.WithTx(tx).DeleteByModule(ctx, projectID, moduleID)
}
