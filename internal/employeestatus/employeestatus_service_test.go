package employeestatus_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/employeestatus"
	employeestatuserrors "go-hrm/internal/employeestatus/errors"
	statusMock "go-hrm/internal/employeestatus/mock"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	kafkaMock "go-hrm/internal/messaging/kafka/mock"
	"go-hrm/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employeestatus.Service
	repo      *statusMock.MockRepository
	directory *statusMock.MockEmployeeDirectory
	outbox    *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	repo := statusMock.NewMockRepository(ctrl)
	directory := statusMock.NewMockEmployeeDirectory(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   employeestatus.NewService(db, repo, directory, outbox),
		repo:      repo,
		directory: directory,
		outbox:    outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeStatusService_UpsertStatus(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()
	person := employee.Summary{ID: employeeID, FullName: "Maya", Email: "maya@example.com"}

	t.Run("first write creates record with defaults and emits event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.directory.EXPECT().Summaries(ctx, []string{employeeID}).
			Return(map[string]employee.Summary{employeeID: person}, nil)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeIDForUpdate(ctx, employeeID).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, st *employeestatus.EmployeeStatus) error {
				assert.Equal(t, employeestatus.StatusProbation, st.Status)
				assert.Equal(t, employeestatus.WorkModeOffice, st.WorkMode)
				assert.Equal(t, "maya@example.com", st.Email)
				assert.Equal(t, st.ChangedAt, st.LastUpdated)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.EmployeeStatusTopic, e.Topic)
				assert.Equal(t, employeeID, e.AggregateID)
				var payload events.EmployeeStatusChangedEvent
				assert.NoError(t, json.Unmarshal(e.Payload, &payload))
				assert.Equal(t, "", payload.PreviousStatus)
				assert.Equal(t, "Probation", payload.Status)
				return nil
			})

		resp, err := deps.service.UpsertStatus(ctx, employeeID, employeestatus.UpsertStatusRequest{Status: "Probation"})

		assert.NoError(t, err)
		assert.Equal(t, "Probation", resp.Status)
		assert.Equal(t, "Office", resp.WorkMode)
		require.NotNil(t, resp.Employee)
		assert.Equal(t, "Maya", resp.Employee.FullName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("response carries the id stored by the upsert", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		persisted := uuid.New()
		deps.directory.EXPECT().Summaries(ctx, []string{employeeID}).
			Return(map[string]employee.Summary{employeeID: person}, nil)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeIDForUpdate(ctx, employeeID).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, st *employeestatus.EmployeeStatus) error {
				st.ID = persisted
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.UpsertStatus(ctx, employeeID, employeestatus.UpsertStatusRequest{Status: "Intern"})

		require.NoError(t, err)
		assert.Equal(t, persisted.String(), resp.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("identical write mutates in place without new event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		recordID := uuid.New()
		changedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		existing := &employeestatus.EmployeeStatus{
			ID:          recordID,
			EmployeeID:  uuid.MustParse(employeeID),
			Status:      employeestatus.StatusConfirmed,
			WorkMode:    employeestatus.WorkModeRemote,
			Email:       "maya@example.com",
			ChangedAt:   changedAt,
			LastUpdated: changedAt,
		}

		deps.directory.EXPECT().Summaries(ctx, []string{employeeID}).
			Return(map[string]employee.Summary{employeeID: person}, nil)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeIDForUpdate(ctx, employeeID).Return(existing, nil)
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, st *employeestatus.EmployeeStatus) error {
				assert.Equal(t, recordID, st.ID)
				assert.Equal(t, changedAt, st.ChangedAt)
				assert.True(t, st.LastUpdated.After(changedAt))
				assert.Equal(t, employeestatus.WorkModeRemote, st.WorkMode)
				return nil
			})

		resp, err := deps.service.UpsertStatus(ctx, employeeID, employeestatus.UpsertStatusRequest{Status: "Confirmed"})

		assert.NoError(t, err)
		assert.Equal(t, recordID.String(), resp.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("workLocation alias is accepted", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.directory.EXPECT().Summaries(ctx, []string{employeeID}).
			Return(map[string]employee.Summary{employeeID: person}, nil)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeIDForUpdate(ctx, employeeID).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, st *employeestatus.EmployeeStatus) error {
				assert.Equal(t, employeestatus.WorkModeClientSite, st.WorkMode)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)

		_, err := deps.service.UpsertStatus(ctx, employeeID, employeestatus.UpsertStatusRequest{
			Status:       "Intern",
			WorkLocation: "Client Site",
		})
		assert.NoError(t, err)
	})

	t.Run("invalid status", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpsertStatus(ctx, employeeID, employeestatus.UpsertStatusRequest{Status: "Retired"})
		assert.ErrorIs(t, err, employeestatuserrors.ErrInvalidStatus)
	})

	t.Run("invalid work mode", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.UpsertStatus(ctx, employeeID, employeestatus.UpsertStatusRequest{Status: "Intern", WorkMode: "Moon"})
		assert.ErrorIs(t, err, employeestatuserrors.ErrInvalidWorkMode)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.directory.EXPECT().Summaries(ctx, []string{employeeID}).Return(map[string]employee.Summary{}, nil)

		_, err := deps.service.UpsertStatus(ctx, employeeID, employeestatus.UpsertStatusRequest{Status: "Intern"})
		assert.ErrorIs(t, err, employeestatuserrors.ErrEmployeeNotFound)
	})

	t.Run("persistence failure surfaces as 500 with message", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.directory.EXPECT().Summaries(ctx, []string{employeeID}).
			Return(map[string]employee.Summary{employeeID: person}, nil)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEmployeeIDForUpdate(ctx, employeeID).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Upsert(ctx, gomock.Any()).Return(errors.New("connection reset"))

		_, err := deps.service.UpsertStatus(ctx, employeeID, employeestatus.UpsertStatusRequest{Status: "Intern"})

		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, 500, httpErr.Status)
		assert.Equal(t, "connection reset", httpErr.Message)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeStatusService_GetStatus(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByEmployeeID(ctx, employeeID).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetStatus(ctx, employeeID)
		assert.ErrorIs(t, err, employeestatuserrors.ErrStatusNotFound)
	})

	t.Run("populates employee identity", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByEmployeeID(ctx, employeeID).Return(&employeestatus.EmployeeStatus{
			ID:         uuid.New(),
			EmployeeID: uuid.MustParse(employeeID),
			Status:     employeestatus.StatusNoticePeriod,
			WorkMode:   employeestatus.WorkModeField,
		}, nil)
		deps.directory.EXPECT().Summaries(ctx, []string{employeeID}).Return(map[string]employee.Summary{
			employeeID: {ID: employeeID, FullName: "Rio", Position: "QA", ImageURL: "https://cdn/rio.png"},
		}, nil)

		resp, err := deps.service.GetStatus(ctx, employeeID)

		assert.NoError(t, err)
		require.NotNil(t, resp.Employee)
		assert.Equal(t, "QA", resp.Employee.Position)
		assert.Equal(t, "Notice Period", resp.Status)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetStatus(ctx, "nope")
		assert.ErrorIs(t, err, employeestatuserrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeStatusService_GetOverview(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()
	ctx := context.Background()

	deps.repo.EXPECT().CountByStatus(ctx).Return([]employeestatus.GroupCount{
		{Value: "Confirmed", Count: 3},
		{Value: "Intern", Count: 1},
		{Value: "Legacy", Count: 1},
	}, nil)
	deps.repo.EXPECT().CountByWorkMode(ctx).Return([]employeestatus.GroupCount{
		{Value: "Office", Count: 4},
		{Value: "Remote", Count: 1},
	}, nil)

	resp, err := deps.service.GetOverview(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), resp.Total)
	assert.Len(t, resp.ByStatus, len(employeestatus.Statuses)+1)
	assert.Equal(t, "Intern", resp.ByStatus[0].Value)
	assert.Equal(t, int64(1), resp.ByStatus[0].Count)
	assert.Equal(t, int64(0), resp.ByStatus[1].Count)
	assert.Equal(t, "Legacy", resp.ByStatus[len(resp.ByStatus)-1].Value)
	assert.Len(t, resp.ByWorkMode, len(employeestatus.WorkModes))

	var statusSum, modeSum int64
	for _, c := range resp.ByStatus {
		statusSum += c.Count
	}
	for _, c := range resp.ByWorkMode {
		modeSum += c.Count
	}
	assert.Equal(t, resp.Total, statusSum)
	assert.Equal(t, resp.Total, modeSum)
}

func TestEmployeeStatusService_RecordHistory(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()
	ctx := context.Background()
	employeeID := uuid.NewString()
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	deps.repo.EXPECT().CreateHistory(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, h *employeestatus.StatusHistory) error {
			assert.Equal(t, "o-1", h.EventID)
			assert.Equal(t, "Probation", h.PreviousStatus)
			assert.Equal(t, "Confirmed", h.Status)
			assert.Equal(t, at, h.ChangedAt)
			return nil
		})

	err := deps.service.RecordHistory(ctx, "o-1", events.EmployeeStatusChangedEvent{
		EmployeeID:     employeeID,
		PreviousStatus: "Probation",
		Status:         "Confirmed",
		OccurredAt:     at,
	})
	assert.NoError(t, err)
}

func TestEmployeeStatusService_GetHistory(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()

	t.Run("rows are mapped in repository order", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		later := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		deps.repo.EXPECT().ListHistory(ctx, employeeID).Return([]employeestatus.StatusHistory{
			{EmployeeID: uuid.MustParse(employeeID), PreviousStatus: "Probation", Status: "Confirmed", WorkMode: "Remote", ChangedBy: "hr-1", ChangedAt: later},
			{EmployeeID: uuid.MustParse(employeeID), Status: "Probation", WorkMode: "Office", ChangedAt: earlier},
		}, nil)

		resp, err := deps.service.GetHistory(ctx, employeeID)

		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, "Confirmed", resp[0].Status)
		assert.Equal(t, "Probation", resp[0].PreviousStatus)
		assert.Equal(t, "hr-1", resp[0].ChangedBy)
		assert.Equal(t, earlier, resp[1].ChangedAt)
	})

	t.Run("no history is an empty list", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().ListHistory(ctx, employeeID).Return(nil, nil)

		resp, err := deps.service.GetHistory(ctx, employeeID)

		require.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Empty(t, resp)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetHistory(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, employeestatuserrors.ErrInvalidEmployeeID)
	})

	t.Run("repository failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().ListHistory(ctx, employeeID).Return(nil, errors.New("db down"))

		_, err := deps.service.GetHistory(ctx, employeeID)

		assert.EqualError(t, err, "db down")
	})
}
