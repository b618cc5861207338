package task_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	kafkaMock "go-hrm/internal/messaging/kafka/mock"
	"go-hrm/internal/project"
	projecterrors "go-hrm/internal/project/errors"
	projectMock "go-hrm/internal/project/mock"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/attachment"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/idlist"
	storageMock "go-hrm/internal/storage/mock"
	"go-hrm/internal/task"
	taskerrors "go-hrm/internal/task/errors"
	taskMock "go-hrm/internal/task/mock"

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
	service   task.Service
	repo      *taskMock.MockRepository
	projects  *taskMock.MockProjectReader
	locked    *projectMock.MockRepository
	directory *taskMock.MockEmployeeDirectory
	uploader  *storageMock.MockUploader
	outbox    *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      taskMock.NewMockRepository(ctrl),
		projects:  taskMock.NewMockProjectReader(ctrl),
		locked:    projectMock.NewMockRepository(ctrl),
		directory: taskMock.NewMockEmployeeDirectory(ctrl),
		uploader:  storageMock.NewMockUploader(ctrl),
		outbox:    kafkaMock.NewMockOutboxRepository(ctrl),
	}
	deps.service = task.NewService(db, deps.repo, deps.projects, deps.directory, deps.uploader, deps.outbox)
	return deps
}

func sampleProject() *project.Project {
	return &project.Project{
		ID:         uuid.New(),
		Department: "IT",
		ManagerID:  uuid.New(),
		Files:      attachment.Files{{FileName: "brief.pdf", FileURL: "https://cdn/brief.pdf"}},
		Modules: project.Modules{{
			ID:    "m1",
			Name:  "Backend",
			Files: attachment.Files{{FileName: "erd.png", FileURL: "https://cdn/erd.png"}},
		}},
		Requirements: project.Requirements{{
			ID:          "r1",
			Title:       "Login",
			Attachments: attachment.Files{{FileName: "flow.pdf", FileURL: "https://cdn/flow.pdf"}},
		}},
	}
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	e1 := uuid.NewString()

	t.Run("snapshots requirement module and project files", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := sampleProject()

		deps.projects.EXPECT().FindByID(ctx, p.ID.String()).Return(p, nil)
		deps.directory.EXPECT().Summaries(ctx, []string{e1}).
			Return(map[string]employee.Summary{e1: {ID: e1, FullName: "Eka"}}, nil)
		deps.uploader.EXPECT().UploadAll(ctx, "tasks", gomock.Nil()).
			Return(attachment.Files{{FileName: "notes.txt", FileURL: "https://cdn/notes.txt"}}, nil)
		deps.sqlMock.ExpectBegin()
		deps.projects.EXPECT().WithTx(gomock.Any()).Return(deps.locked)
		deps.locked.EXPECT().FindByIDForShare(ctx, p.ID.String()).Return(p, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
			assert.Equal(t, events.TaskAssignedTopic, e.Topic)
			var payload events.TaskAssignedEvent
			require.NoError(t, json.Unmarshal(e.Payload, &payload))
			assert.Equal(t, []string{e1}, payload.AssigneeIDs)
			assert.Equal(t, "m1", payload.ModuleID)
			return nil
		})
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(ctx, task.CreateTaskRequest{
			Title:         "Build auth API",
			DueDate:       "2024-01-20",
			ProjectID:     p.ID.String(),
			ModuleID:      "m1",
			RequirementID: "r1",
			AssigneeIDs:   []string{e1, e1},
			ExistingAttachments: json.RawMessage(`"[{\"fileName\":\"brief.pdf\",\"fileUrl\":\"https://cdn/brief.pdf\",\"isProjectLevel\":true}]"`),
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Pending", resp.Status)
		assert.Equal(t, "2024-01-20", resp.DueDate)
		require.Len(t, resp.AssignedTo, 1)
		assert.Equal(t, "Eka", resp.AssignedTo[0].FullName)

		origins := map[string]attachment.Origin{}
		for _, a := range resp.Attachments {
			origins[a.FileURL] = a.Origin
		}
		assert.Equal(t, map[string]attachment.Origin{
			"https://cdn/notes.txt": attachment.OriginTask,
			"https://cdn/brief.pdf": attachment.OriginProject,
			"https://cdn/flow.pdf":  attachment.OriginRequirement,
			"https://cdn/erd.png":   attachment.OriginModule,
		}, origins)
		assert.Len(t, resp.Attachments, 4)

		p.Requirements[0].Attachments = append(p.Requirements[0].Attachments, attachment.File{FileName: "late", FileURL: "u-late"})
		assert.Len(t, resp.Attachments, 4)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("module removed before the project lock", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := sampleProject()
		current := sampleProject()
		current.ID = p.ID
		current.Modules = project.Modules{}

		deps.projects.EXPECT().FindByID(ctx, p.ID.String()).Return(p, nil)
		deps.directory.EXPECT().Summaries(ctx, []string{e1}).
			Return(map[string]employee.Summary{e1: {ID: e1, FullName: "Eka"}}, nil)
		deps.uploader.EXPECT().UploadAll(ctx, "tasks", gomock.Nil()).Return(attachment.Files{}, nil)
		deps.sqlMock.ExpectBegin()
		deps.projects.EXPECT().WithTx(gomock.Any()).Return(deps.locked)
		deps.locked.EXPECT().FindByIDForShare(ctx, p.ID.String()).Return(current, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, task.CreateTaskRequest{
			Title: "x", DueDate: "2024-01-20", ProjectID: p.ID.String(), ModuleID: "m1", AssigneeIDs: []string{e1},
		}, nil)
		assert.ErrorIs(t, err, projecterrors.ErrModuleNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("project deleted before the lock", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := sampleProject()

		deps.projects.EXPECT().FindByID(ctx, p.ID.String()).Return(p, nil)
		deps.directory.EXPECT().Summaries(ctx, []string{e1}).
			Return(map[string]employee.Summary{e1: {ID: e1, FullName: "Eka"}}, nil)
		deps.uploader.EXPECT().UploadAll(ctx, "tasks", gomock.Nil()).Return(attachment.Files{}, nil)
		deps.sqlMock.ExpectBegin()
		deps.projects.EXPECT().WithTx(gomock.Any()).Return(deps.locked)
		deps.locked.EXPECT().FindByIDForShare(ctx, p.ID.String()).Return(nil, gorm.ErrRecordNotFound)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, task.CreateTaskRequest{
			Title: "x", DueDate: "2024-01-20", ProjectID: p.ID.String(), ModuleID: "m1", AssigneeIDs: []string{e1},
		}, nil)
		assert.ErrorIs(t, err, projecterrors.ErrProjectNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("blank title", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, task.CreateTaskRequest{
			Title: "   ", DueDate: "2024-01-20", ProjectID: uuid.NewString(), ModuleID: "m1", AssigneeIDs: []string{e1},
		}, nil)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
		assert.Equal(t, "title is required", appErr.Message)
	})

	t.Run("empty assignees", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, task.CreateTaskRequest{
			Title: "x", DueDate: "2024-01-20", ProjectID: uuid.NewString(), ModuleID: "m1", AssigneeIDs: []string{" "},
		}, nil)
		assert.ErrorIs(t, err, taskerrors.ErrAssigneesRequired)
	})

	t.Run("unknown assignee", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := sampleProject()

		deps.projects.EXPECT().FindByID(ctx, p.ID.String()).Return(p, nil)
		deps.directory.EXPECT().Summaries(ctx, []string{e1}).Return(map[string]employee.Summary{}, nil)

		_, err := deps.service.Create(ctx, task.CreateTaskRequest{
			Title: "x", DueDate: "2024-01-20", ProjectID: p.ID.String(), ModuleID: "m1", AssigneeIDs: []string{e1},
		}, nil)
		assert.ErrorIs(t, err, taskerrors.ErrAssigneeNotFound)
	})

	t.Run("unknown module", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := sampleProject()

		deps.projects.EXPECT().FindByID(ctx, p.ID.String()).Return(p, nil)

		_, err := deps.service.Create(ctx, task.CreateTaskRequest{
			Title: "x", DueDate: "2024-01-20", ProjectID: p.ID.String(), ModuleID: "m9", AssigneeIDs: []string{e1},
		}, nil)
		assert.ErrorIs(t, err, projecterrors.ErrModuleNotFound)
	})

	t.Run("unknown project", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()

		deps.projects.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, task.CreateTaskRequest{
			Title: "x", DueDate: "2024-01-20", ProjectID: id, ModuleID: "m1", AssigneeIDs: []string{e1},
		}, nil)
		assert.ErrorIs(t, err, projecterrors.ErrProjectNotFound)
	})

	t.Run("malformed existing attachments", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, task.CreateTaskRequest{
			Title: "x", DueDate: "2024-01-20", ProjectID: uuid.NewString(), ModuleID: "m1", AssigneeIDs: []string{e1},
			ExistingAttachments: json.RawMessage(`[{"fileName":"no-url"}]`),
		}, nil)
		assert.ErrorIs(t, err, taskerrors.ErrInvalidAttachments)
	})

	t.Run("bad due date", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, task.CreateTaskRequest{
			Title: "x", DueDate: "tomorrow", ProjectID: uuid.NewString(), ModuleID: "m1", AssigneeIDs: []string{e1},
		}, nil)
		assert.ErrorIs(t, err, taskerrors.ErrInvalidDueDate)
	})
}

func TestTaskService_UpdateStatus(t *testing.T) {
	assignee := uuid.NewString()
	outsider := uuid.NewString()
	p := sampleProject()
	stored := func() *task.Task {
		return &task.Task{
			ID:          uuid.New(),
			Title:       "Build auth API",
			Status:      task.StatusPending,
			ProjectID:   p.ID,
			ModuleID:    "m1",
			AssigneeIDs: idlist.IDs{assignee},
			DueDate:     time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("assignee may jump to any status", func(t *testing.T) {
		deps := setupServiceTest(t)
		tk := stored()
		ctx := contextutil.WithEmployeeID(context.Background(), assignee)

		deps.repo.EXPECT().FindByID(ctx, tk.ID.String()).Return(tk, nil)
		deps.repo.EXPECT().UpdateStatus(ctx, tk.ID.String(), task.StatusCompleted, gomock.Any()).Return(nil)
		deps.directory.EXPECT().Summaries(ctx, gomock.Any()).Return(map[string]employee.Summary{}, nil)

		resp, err := deps.service.UpdateStatus(ctx, tk.ID.String(), task.UpdateStatusRequest{Status: "Completed"})

		require.NoError(t, err)
		assert.Equal(t, "Completed", resp.Status)
	})

	t.Run("project manager may update", func(t *testing.T) {
		deps := setupServiceTest(t)
		tk := stored()
		ctx := contextutil.WithEmployeeID(context.Background(), p.ManagerID.String())

		deps.repo.EXPECT().FindByID(ctx, tk.ID.String()).Return(tk, nil)
		deps.projects.EXPECT().FindByID(ctx, p.ID.String()).Return(p, nil)
		deps.repo.EXPECT().UpdateStatus(ctx, tk.ID.String(), task.StatusOnHold, gomock.Any()).Return(nil)
		deps.directory.EXPECT().Summaries(ctx, gomock.Any()).Return(map[string]employee.Summary{}, nil)

		_, err := deps.service.UpdateStatus(ctx, tk.ID.String(), task.UpdateStatusRequest{Status: "On Hold"})
		assert.NoError(t, err)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		deps := setupServiceTest(t)
		tk := stored()
		ctx := contextutil.WithEmployeeID(context.Background(), outsider)

		deps.repo.EXPECT().FindByID(ctx, tk.ID.String()).Return(tk, nil)
		deps.projects.EXPECT().FindByID(ctx, p.ID.String()).Return(p, nil)

		_, err := deps.service.UpdateStatus(ctx, tk.ID.String(), task.UpdateStatusRequest{Status: "Completed"})
		assert.ErrorIs(t, err, taskerrors.ErrNotAssignee)
	})

	t.Run("invalid status", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.UpdateStatus(context.Background(), uuid.NewString(), task.UpdateStatusRequest{Status: "Done"})
		assert.ErrorIs(t, err, taskerrors.ErrInvalidStatus)
	})
}

func TestTaskService_GetByModule(t *testing.T) {
	ctx := context.Background()
	e1, e2 := uuid.NewString(), uuid.NewString()
	deps := setupServiceTest(t)

	deps.repo.EXPECT().FindByModule(ctx, "m1").Return([]task.Task{
		{ID: uuid.New(), ModuleID: "m1", AssigneeIDs: idlist.IDs{e1}},
		{ID: uuid.New(), ModuleID: "m1", AssigneeIDs: idlist.IDs{e1, e2}},
	}, nil)
	deps.directory.EXPECT().Summaries(ctx, []string{e1, e1, e2}).
		Return(map[string]employee.Summary{e1: {ID: e1, FullName: "Eka"}}, nil)

	resp, err := deps.service.GetByModule(ctx, "m1")

	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "Eka", resp[0].AssignedTo[0].FullName)
	assert.Equal(t, e2, resp[1].AssignedTo[1].ID)
	assert.NotNil(t, resp[0].Attachments)
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	deps := setupServiceTest(t)
	deps.repo.EXPECT().Delete(ctx, id).Return(gorm.ErrRecordNotFound)

	err := deps.service.Delete(ctx, id)
	assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
}

func TestCascader(t *testing.T) {
	ctx := context.Background()
	repo := taskMock.NewMockRepository(gomock.NewController(t))
	cascader := task.NewCascader(repo)

	repo.EXPECT().WithTx(gomock.Nil()).Return(repo).Times(2)
	repo.EXPECT().DeleteByModule(ctx, "p1", "m1").Return(int64(2), nil)
	repo.EXPECT().DeleteByProject(ctx, "p1").Return(int64(5), nil)

	n, err := cascader.DeleteByModule(ctx, nil, "p1", "m1")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = cascader.DeleteByProject(ctx, nil, "p1")
	assert.NoError(t, err)
	assert.Equal(t, int64(5), n)
}
