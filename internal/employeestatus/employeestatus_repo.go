package employeestatus

import (
	"context"
	"database/sql"

	"go-hrm/internal/shared/dbtx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employeestatus_repo.go -destination=mock/employeestatus_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByEmployeeID(ctx context.Context, employeeID string) (*EmployeeStatus, error)
	FindByEmployeeIDForUpdate(ctx context.Context, employeeID string) (*EmployeeStatus, error)
	Upsert(ctx context.Context, status *EmployeeStatus) error
	CountByStatus(ctx context.Context) ([]GroupCount, error)
	CountByWorkMode(ctx context.Context) ([]GroupCount, error)
	CreateHistory(ctx context.Context, h *StatusHistory) error
	ListHistory(ctx context.Context, employeeID string) ([]StatusHistory, error)
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

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID string) (*EmployeeStatus, error) {
	var st EmployeeStatus
	err := r.db.WithContext(ctx).First(&st, "employee_id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// FindByEmployeeIDForUpdate locks the employee row before reading the
// status row. The first write for an employee has no status row to lock, so
// the employee lock is what serializes concurrent first writes.
func (r *repository) FindByEmployeeIDForUpdate(ctx context.Context, employeeID string) (*EmployeeStatus, error) {
	if err := r.db.WithContext(ctx).Exec("SELECT 1 FROM employees WHERE id = ? FOR UPDATE", employeeID).Error; err != nil {
		return nil, err
	}

	var st EmployeeStatus
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&st, "employee_id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Upsert writes the record keyed by employee_id in a single statement. The
// stored id and created_at are read back into st, so st matches the row even
// when the insert turned into an update.
func (r *repository) Upsert(ctx context.Context, st *EmployeeStatus) error {
	return r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "employee_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"status", "email", "reason", "work_mode", "changed_at", "last_updated",
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "created_at"}}},
		).
		Create(st).Error
}

func (r *repository) CountByStatus(ctx context.Context) ([]GroupCount, error) {
	return r.countBy(ctx, "status")
}

func (r *repository) CountByWorkMode(ctx context.Context) ([]GroupCount, error) {
	return r.countBy(ctx, "work_mode")
}

func (r *repository) countBy(ctx context.Context, column string) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.db.WithContext(ctx).
		Model(&EmployeeStatus{}).
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CreateHistory(ctx context.Context, h *StatusHistory) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(h).Error
}

func (r *repository) ListHistory(ctx context.Context, employeeID string) ([]StatusHistory, error) {
	var rows []StatusHistory
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("changed_at DESC").
		Find(&rows).Error
	return rows, err
}
