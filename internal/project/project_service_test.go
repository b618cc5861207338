package project_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/project"
	projecterrors "go-hrm/internal/project/errors"
	projectMock "go-hrm/internal/project/mock"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/attachment"
	counterMock "go-hrm/internal/shared/counter/mock"
	"go-hrm/internal/shared/idlist"
	storageMock "go-hrm/internal/storage/mock"

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
	service   project.Service
	repo      *projectMock.MockRepository
	counter   *counterMock.MockRepository
	directory *projectMock.MockEmployeeDirectory
	uploader  *storageMock.MockUploader
	tasks     *projectMock.MockTaskCleaner
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	deps := &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		repo:      projectMock.NewMockRepository(ctrl),
		counter:   counterMock.NewMockRepository(ctrl),
		directory: projectMock.NewMockEmployeeDirectory(ctrl),
		uploader:  storageMock.NewMockUploader(ctrl),
		tasks:     projectMock.NewMockTaskCleaner(ctrl),
	}
	deps.service = project.NewService(db, deps.repo, deps.counter, deps.directory, deps.uploader, deps.tasks)
	return deps
}

// people answers Summaries with every requested id in the given department.
func people(department string) func(context.Context, []string) (map[string]employee.Summary, error) {
	return func(_ context.Context, ids []string) (map[string]employee.Summary, error) {
		out := make(map[string]employee.Summary, len(ids))
		for _, id := range ids {
			out[id] = employee.Summary{ID: id, FullName: "Employee " + id[:4], Department: department}
		}
		return out, nil
	}
}

func existingProject(managerID string) *project.Project {
	return &project.Project{
		ID:          uuid.New(),
		Code:        "PRJ-000001",
		Name:        "Portal Revamp",
		Department:  "IT",
		ManagerID:   uuid.MustParse(managerID),
		TeamMembers: idlist.IDs{},
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Deadline:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:      project.StatusPlanning,
		Files:       attachment.Files{{FileName: "brief.pdf", FileURL: "https://cdn/brief.pdf"}},
		Modules:     project.Modules{},
		Version:     3,
	}
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()
	manager := uuid.NewString()
	lead := uuid.NewString()
	member := uuid.NewString()

	t.Run("success collapses duplicate members and clamps progress", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.directory.EXPECT().Summaries(gomock.Any(), gomock.Any()).DoAndReturn(people("IT")).Times(2)
		deps.uploader.EXPECT().UploadAll(ctx, "projects", gomock.Nil()).Return(attachment.Files{}, nil)
		deps.sqlMock.ExpectBegin()
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(ctx, "project_code").Return(int64(7), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *project.Project) error {
			assert.Equal(t, "PRJ-000007", p.Code)
			assert.Equal(t, idlist.IDs{member}, p.TeamMembers)
			assert.Equal(t, 100, p.Progress)
			assert.Equal(t, int64(1), p.Version)
			return nil
		})
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(ctx, project.CreateProjectRequest{
			ProjectName: "Portal Revamp",
			Department:  "IT",
			ManagerID:   manager,
			TeamLeadID:  lead,
			TeamMembers: []string{member, member},
			StartDate:   "2024-01-01",
			Deadline:    "2024-06-01",
			Progress:    140,
			Files:       []attachment.File{{FileName: "brief.pdf", FileURL: "https://cdn/brief.pdf"}},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Planning", resp.Status)
		assert.Equal(t, "2024-06-01", resp.Deadline)
		assert.Empty(t, resp.Modules)
		require.NotNil(t, resp.Manager)
		assert.Equal(t, manager, resp.Manager.ID)
		require.Len(t, resp.TeamMembers, 1)
		require.Len(t, resp.Files, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("manager listed as team member is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, project.CreateProjectRequest{
			ProjectName: "Portal",
			Department:  "IT",
			ManagerID:   manager,
			TeamMembers: []string{member, manager},
			StartDate:   "2024-01-01",
			Deadline:    "2024-06-01",
		}, nil)

		assert.ErrorIs(t, err, projecterrors.ErrOverlappingRoles)
	})

	t.Run("team lead equal to manager is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, project.CreateProjectRequest{
			ProjectName: "Portal",
			Department:  "IT",
			ManagerID:   manager,
			TeamLeadID:  manager,
			StartDate:   "2024-01-01",
			Deadline:    "2024-06-01",
		}, nil)

		assert.ErrorIs(t, err, projecterrors.ErrOverlappingRoles)
	})

	t.Run("deadline before start", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, project.CreateProjectRequest{
			ProjectName: "Portal",
			Department:  "IT",
			ManagerID:   manager,
			StartDate:   "2024-06-01",
			Deadline:    "2024-01-01",
		}, nil)

		assert.ErrorIs(t, err, projecterrors.ErrInvalidDateRange)
	})

	t.Run("unknown manager", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.directory.EXPECT().Summaries(ctx, gomock.Any()).Return(map[string]employee.Summary{}, nil)

		_, err := deps.service.Create(ctx, project.CreateProjectRequest{
			ProjectName: "Portal",
			Department:  "IT",
			ManagerID:   manager,
			StartDate:   "2024-01-01",
			Deadline:    "2024-06-01",
		}, nil)

		assert.ErrorIs(t, err, projecterrors.ErrEmployeeNotFound)
	})

	t.Run("invalid status", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, project.CreateProjectRequest{
			ProjectName: "Portal",
			Department:  "IT",
			ManagerID:   manager,
			StartDate:   "2024-01-01",
			Deadline:    "2024-06-01",
			Status:      "Archived",
		}, nil)

		assert.ErrorIs(t, err, projecterrors.ErrInvalidStatus)
	})
}

func TestProjectService_Update(t *testing.T) {
	ctx := context.Background()
	manager := uuid.NewString()

	t.Run("stale client version returns conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := existingProject(manager)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, p.ID.String()).Return(p, nil)
		deps.sqlMock.ExpectRollback()

		stale := int64(2)
		name := "Renamed"
		_, err := deps.service.Update(ctx, p.ID.String(), project.UpdateProjectRequest{ProjectName: &name, Version: &stale})

		assert.ErrorIs(t, err, projecterrors.ErrVersionConflict)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("concurrent writer detected by guarded save", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := existingProject(manager)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, p.ID.String()).Return(p, nil)
		deps.repo.EXPECT().Save(ctx, gomock.Any(), int64(3)).Return(project.ErrStaleVersion)
		deps.sqlMock.ExpectRollback()

		progress := 40
		_, err := deps.service.Update(ctx, p.ID.String(), project.UpdateProjectRequest{Progress: &progress})

		assert.ErrorIs(t, err, projecterrors.ErrVersionConflict)
	})

	t.Run("partial update clamps progress and bumps version", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := existingProject(manager)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, p.ID.String()).Return(p, nil)
		deps.repo.EXPECT().Save(ctx, gomock.Any(), int64(3)).DoAndReturn(func(_ context.Context, saved *project.Project, _ int64) error {
			assert.Equal(t, 0, saved.Progress)
			assert.Equal(t, project.StatusActive, saved.Status)
			assert.Equal(t, "Portal Revamp", saved.Name)
			assert.Equal(t, int64(4), saved.Version)
			return nil
		})
		deps.sqlMock.ExpectCommit()
		deps.directory.EXPECT().Summaries(ctx, gomock.Any()).DoAndReturn(people("IT"))

		progress := -5
		status := "Active"
		version := int64(3)
		resp, err := deps.service.Update(ctx, p.ID.String(), project.UpdateProjectRequest{
			Progress: &progress,
			Status:   &status,
			Version:  &version,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.Version)
		assert.Equal(t, 0, resp.Progress)
	})

	t.Run("adding the manager as member is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := existingProject(manager)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, p.ID.String()).Return(p, nil)
		deps.sqlMock.ExpectRollback()

		members := []string{manager}
		_, err := deps.service.Update(ctx, p.ID.String(), project.UpdateProjectRequest{TeamMembers: &members})

		assert.ErrorIs(t, err, projecterrors.ErrOverlappingRoles)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, id).Return(nil, gorm.ErrRecordNotFound)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Update(ctx, id, project.UpdateProjectRequest{})

		assert.ErrorIs(t, err, projecterrors.ErrProjectNotFound)
	})
}

func TestProjectService_Delete(t *testing.T) {
	ctx := context.Background()
	p := existingProject(uuid.NewString())

	t.Run("cascades tasks in the same transaction", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, p.ID.String()).Return(p, nil)
		deps.tasks.EXPECT().DeleteByProject(ctx, gomock.Any(), p.ID.String()).Return(int64(4), nil)
		deps.repo.EXPECT().Delete(ctx, p.ID.String()).Return(nil)
		deps.sqlMock.ExpectCommit()

		err := deps.service.Delete(ctx, p.ID.String(), nil)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		err := deps.service.Delete(ctx, "nope", nil)
		assert.ErrorIs(t, err, projecterrors.ErrInvalidProjectID)
	})
}

func TestProjectService_AssignModuleTeamLead(t *testing.T) {
	ctx := context.Background()
	manager := uuid.NewString()
	lead := uuid.NewString()

	newProject := func() *project.Project {
		p := existingProject(manager)
		p.Modules = project.Modules{{ID: "m1", Name: "Backend", Status: project.ModuleStatusPending, Priority: project.PriorityHigh}}
		return p
	}

	t.Run("lead from another department is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := newProject()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, p.ID.String()).Return(p, nil)
		deps.directory.EXPECT().Summaries(ctx, []string{lead}).DoAndReturn(people("Finance"))
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.AssignModuleTeamLead(ctx, p.ID.String(), "m1", project.AssignTeamLeadRequest{TeamLeadID: lead})

		assert.ErrorIs(t, err, projecterrors.ErrTeamLeadDepartment)
	})

	t.Run("department match is case insensitive", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := newProject()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, p.ID.String()).Return(p, nil)
		deps.directory.EXPECT().Summaries(ctx, []string{lead}).DoAndReturn(people("it"))
		deps.repo.EXPECT().Save(ctx, gomock.Any(), int64(3)).Return(nil)
		deps.sqlMock.ExpectCommit()
		deps.directory.EXPECT().Summaries(ctx, gomock.Any()).DoAndReturn(people("IT"))

		resp, err := deps.service.AssignModuleTeamLead(ctx, p.ID.String(), "m1", project.AssignTeamLeadRequest{TeamLeadID: lead})

		require.NoError(t, err)
		require.NotNil(t, resp.Modules[0].TeamLead)
		assert.Equal(t, lead, resp.Modules[0].TeamLead.ID)
	})

	t.Run("unknown module", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := newProject()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, p.ID.String()).Return(p, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.AssignModuleTeamLead(ctx, p.ID.String(), "m9", project.AssignTeamLeadRequest{TeamLeadID: lead})

		assert.ErrorIs(t, err, projecterrors.ErrModuleNotFound)
	})
}

func TestProjectService_AddRequirement(t *testing.T) {
	ctx := context.Background()
	manager := uuid.NewString()

	t.Run("combines uploads with picked project and module files", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := existingProject(manager)
		p.Modules = project.Modules{{
			ID:    "m1",
			Name:  "Backend",
			Files: attachment.Files{{FileName: "erd.png", FileURL: "https://cdn/erd.png"}},
		}}

		deps.uploader.EXPECT().UploadAll(ctx, "requirements", gomock.Nil()).
			Return(attachment.Files{{FileName: "flow.pdf", FileURL: "https://cdn/flow.pdf"}}, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, p.ID.String()).Return(p, nil)
		deps.repo.EXPECT().Save(ctx, gomock.Any(), int64(3)).Return(nil)
		deps.sqlMock.ExpectCommit()
		deps.directory.EXPECT().Summaries(ctx, gomock.Any()).DoAndReturn(people("IT"))

		resp, err := deps.service.AddRequirement(ctx, p.ID.String(), project.RequirementRequest{
			Title:            "Login",
			RequirementType:  "Technical",
			ExistingFileURLs: []string{"https://cdn/brief.pdf", "https://cdn/erd.png"},
		}, nil)

		require.NoError(t, err)
		require.Len(t, resp.Requirements, 1)
		req := resp.Requirements[0]
		assert.Equal(t, "Technical", req.RequirementType)
		assert.Equal(t, "Medium", req.Priority)
		urls := make([]string, len(req.Attachments))
		for i, a := range req.Attachments {
			urls[i] = a.FileURL
		}
		assert.Equal(t, []string{"https://cdn/flow.pdf", "https://cdn/brief.pdf", "https://cdn/erd.png"}, urls)
	})

	t.Run("unknown pick is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		p := existingProject(manager)

		deps.uploader.EXPECT().UploadAll(ctx, "requirements", gomock.Nil()).Return(attachment.Files{}, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDForUpdate(ctx, p.ID.String()).Return(p, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.AddRequirement(ctx, p.ID.String(), project.RequirementRequest{
			Title:            "Login",
			ExistingFileURLs: []string{"https://elsewhere/x.pdf"},
		}, nil)

		assert.ErrorIs(t, err, projecterrors.ErrUnknownProjectFile)
	})

	t.Run("invalid requirement type", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.AddRequirement(ctx, uuid.NewString(), project.RequirementRequest{
			Title:           "Login",
			RequirementType: "Legal",
		}, nil)

		assert.ErrorIs(t, err, projecterrors.ErrInvalidRequirementType)
	})
}

func TestProjectService_BlankNamesAreRequired(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.NewString()

	tests := []struct {
		name  string
		field string
		call  func(project.Service) error
	}{
		{"project name", "projectName", func(svc project.Service) error {
			_, err := svc.Create(ctx, project.CreateProjectRequest{
				ProjectName: " \t ", Department: "IT", StartDate: "2024-01-01", Deadline: "2024-02-01", ManagerID: uuid.NewString(),
			}, nil)
			return err
		}},
		{"department", "department", func(svc project.Service) error {
			_, err := svc.Create(ctx, project.CreateProjectRequest{
				ProjectName: "Portal", Department: "  ", StartDate: "2024-01-01", Deadline: "2024-02-01", ManagerID: uuid.NewString(),
			}, nil)
			return err
		}},
		{"module name", "moduleName", func(svc project.Service) error {
			_, err := svc.AddModule(ctx, projectID, project.ModuleRequest{ModuleName: "   "}, nil)
			return err
		}},
		{"requirement title", "title", func(svc project.Service) error {
			_, err := svc.AddRequirement(ctx, projectID, project.RequirementRequest{Title: "\n"}, nil)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupServiceTest(t)
			err := tt.call(deps.service)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
			assert.Equal(t, tt.field+" is required", appErr.Message)
		})
	}
}

func TestProjectService_GetMyProjects(t *testing.T) {
	ctx := context.Background()
	me := uuid.NewString()

	managed := existingProject(me)
	member := existingProject(uuid.NewString())
	member.TeamMembers = idlist.IDs{me}
	moduleLead := existingProject(uuid.NewString())
	moduleLead.Modules = project.Modules{{ID: "m1", TeamLeadID: me}}

	deps := setupServiceTest(t)
	deps.repo.EXPECT().FindByEmployee(ctx, me).Return([]project.Project{*managed, *member, *moduleLead}, nil)
	deps.directory.EXPECT().Summaries(ctx, gomock.Any()).DoAndReturn(people("IT"))

	resp, err := deps.service.GetMyProjects(ctx, me)

	require.NoError(t, err)
	require.Len(t, resp, 3)
	assert.Equal(t, "manager", resp[0].UserRole)
	assert.Equal(t, "teamMember", resp[1].UserRole)
	assert.Equal(t, "teamLead", resp[2].UserRole)
}

func TestProjectService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	deps := setupServiceTest(t)
	deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

	_, err := deps.service.GetByID(ctx, id)

	assert.ErrorIs(t, err, projecterrors.ErrProjectNotFound)
}
