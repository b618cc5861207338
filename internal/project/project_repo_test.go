package project_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"go-hrm/internal/project"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, sqlDB, mock
}

func savedProject() *project.Project {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &project.Project{
		ID:        uuid.New(),
		Code:      "PRJ-001",
		Name:      "Payroll",
		ManagerID: uuid.New(),
		StartDate: now,
		Deadline:  now.AddDate(0, 3, 0),
		Status:    project.StatusActive,
		Version:   3,
		UpdatedAt: now,
	}
}

func TestRepository_Save(t *testing.T) {
	t.Run("stale version inside tx", func(t *testing.T) {
		db, sqlDB, mock := newGormMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "projects" SET .* WHERE \(?id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		tx, err := sqlDB.Begin()
		require.NoError(t, err)

		err = project.NewRepository(db).WithTx(tx).Save(context.Background(), savedProject(), 2)
		assert.ErrorIs(t, err, project.ErrStaleVersion)

		require.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("matching version commits", func(t *testing.T) {
		db, sqlDB, mock := newGormMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "projects" SET .* WHERE \(?id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := sqlDB.Begin()
		require.NoError(t, err)

		require.NoError(t, project.NewRepository(db).WithTx(tx).Save(context.Background(), savedProject(), 2))
		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindByIDForShare(t *testing.T) {
	db, sqlDB, mock := newGormMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "projects" WHERE id = \$1 .*FOR SHARE`).
		WithArgs(id.String(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "version"}).AddRow(id.String(), "Payroll", 4))
	mock.ExpectCommit()

	tx, err := sqlDB.Begin()
	require.NoError(t, err)

	p, err := project.NewRepository(db).WithTx(tx).FindByIDForShare(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, int64(4), p.Version)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByEmployeeAfterCommittedTx(t *testing.T) {
	db, sqlDB, mock := newGormMock(t)
	ctx := context.Background()
	repo := project.NewRepository(db)
	employeeID := uuid.NewString()
	projectID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "projects" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(
		`manager_id = $1 OR team_lead_id = $2 OR team_members @> $3::jsonb OR modules @> $4::jsonb`)).
		WithArgs(employeeID, employeeID, `["`+employeeID+`"]`, `[{"teamLead":"`+employeeID+`"}]`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(projectID.String(), "Payroll"))

	tx, err := sqlDB.Begin()
	require.NoError(t, err)
	require.NoError(t, repo.WithTx(tx).Save(ctx, savedProject(), 2))
	require.NoError(t, tx.Commit())

	projects, err := repo.FindByEmployee(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, projectID, projects[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindManagedByMatchesModuleLead(t *testing.T) {
	db, _, mock := newGormMock(t)
	employeeID := uuid.NewString()

	mock.ExpectQuery(regexp.QuoteMeta(`manager_id = $1 OR team_lead_id = $2 OR modules @> $3::jsonb`)).
		WithArgs(employeeID, employeeID, `[{"teamLead":"`+employeeID+`"}]`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	projects, err := project.NewRepository(db).FindManagedBy(context.Background(), employeeID)
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteMissingRow(t *testing.T) {
	db, _, mock := newGormMock(t)
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "projects" WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := project.NewRepository(db).Delete(context.Background(), id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
