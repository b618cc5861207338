package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"go-hrm/internal/employee"
	projecterrors "go-hrm/internal/project/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/attachment"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/shared/dateutil"
	"go-hrm/internal/shared/idlist"
	"go-hrm/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const codeCounter = "project_code"

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type EmployeeDirectory interface {
	Summaries(ctx context.Context, ids []string) (map[string]employee.Summary, error)
}

// TaskCleaner removes tasks that belong to a deleted project or module inside
// the caller's transaction.
type TaskCleaner interface {
	DeleteByProject(ctx context.Context, tx *sql.Tx, projectID string) (int64, error)
	DeleteByModule(ctx context.Context, tx *sql.Tx, projectID, moduleID string) (int64, error)
}

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]ProjectResponse, error)
	GetByID(ctx context.Context, id string) (ProjectResponse, error)
	Create(ctx context.Context, req CreateProjectRequest, files []*multipart.FileHeader) (ProjectResponse, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error)
	Delete(ctx context.Context, id string, version *int64) error
	GetMyProjects(ctx context.Context, employeeID string) ([]ProjectResponse, error)
	GetMyManagedProjects(ctx context.Context, employeeID string) ([]ProjectResponse, error)

	AddModule(ctx context.Context, projectID string, req ModuleRequest, files []*multipart.FileHeader) (ProjectResponse, error)
	UpdateModule(ctx context.Context, projectID, moduleID string, req UpdateModuleRequest) (ProjectResponse, error)
	DeleteModule(ctx context.Context, projectID, moduleID string, version *int64) (ProjectResponse, error)
	AssignModuleTeamLead(ctx context.Context, projectID, moduleID string, req AssignTeamLeadRequest) (ProjectResponse, error)
	AttachModuleFiles(ctx context.Context, projectID, moduleID string, req AttachFilesRequest, files []*multipart.FileHeader) (ProjectResponse, error)

	AddRequirement(ctx context.Context, projectID string, req RequirementRequest, files []*multipart.FileHeader) (ProjectResponse, error)
	DeleteRequirement(ctx context.Context, projectID, requirementID string, version *int64) (ProjectResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	counter   counter.Repository
	directory EmployeeDirectory
	uploader  storage.Uploader
	tasks     TaskCleaner
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	directory EmployeeDirectory,
	uploader storage.Uploader,
	tasks TaskCleaner,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		counter:   counterRepo,
		directory: directory,
		uploader:  uploader,
		tasks:     tasks,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ProjectResponse, error) {
	projects, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list projects failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return s.toResponses(ctx, projects, "")
}

func (s *service) GetByID(ctx context.Context, id string) (ProjectResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get project failed", zap.String("project_id", id), zap.Error(err))
		}
		return ProjectResponse{}, mapRepositoryError(err)
	}
	return s.toResponse(ctx, *p)
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest, files []*multipart.FileHeader) (ProjectResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if strings.TrimSpace(req.ProjectName) == "" {
		return ProjectResponse{}, apperror.RequiredField("projectName")
	}
	if strings.TrimSpace(req.Department) == "" {
		return ProjectResponse{}, apperror.RequiredField("department")
	}
	startDate, deadline, err := parseRange(req.StartDate, req.Deadline)
	if err != nil {
		return ProjectResponse{}, err
	}
	status := StatusPlanning
	if v := strings.TrimSpace(req.Status); v != "" {
		status = Status(v)
	}
	if !status.Valid() {
		return ProjectResponse{}, projecterrors.ErrInvalidStatus
	}
	metadata, err := validFiles(req.Files)
	if err != nil {
		return ProjectResponse{}, err
	}
	managerID, err := uuid.Parse(strings.TrimSpace(req.ManagerID))
	if err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidEmployeeID
	}

	p := Project{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.ProjectName),
		Department:   strings.TrimSpace(req.Department),
		ManagerID:    managerID,
		TeamMembers:  idlist.Normalize(req.TeamMembers),
		StartDate:    startDate,
		Deadline:     deadline,
		Status:       status,
		Progress:     clampProgress(req.Progress),
		Description:  strings.TrimSpace(req.Description),
		Modules:      Modules{},
		Requirements: Requirements{},
		Version:      1,
		CreatedBy:    contextutil.GetEmployeeID(ctx),
	}
	if lead := strings.TrimSpace(req.TeamLeadID); lead != "" {
		id, err := uuid.Parse(lead)
		if err != nil {
			return ProjectResponse{}, projecterrors.ErrInvalidEmployeeID
		}
		p.TeamLeadID = &id
	}
	if err := s.validateMembership(ctx, &p); err != nil {
		return ProjectResponse{}, err
	}

	uploaded, err := s.uploader.UploadAll(ctx, "projects", files)
	if err != nil {
		log.Error("create project upload failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	p.Files = attachment.Files{}.Merge(metadata...).Merge(uploaded...)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create project begin tx failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	next, err := s.counter.WithTx(tx).GetNextValue(ctx, codeCounter)
	if err != nil {
		log.Error("create project next code failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	p.Code = fmt.Sprintf("PRJ-%06d", next)
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now

	if err := s.repo.WithTx(tx).Create(ctx, &p); err != nil {
		log.Error("create project persist failed", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		log.Error("create project commit failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	log.Info("project created", zap.String("project_id", p.ID.String()), zap.String("code", p.Code))
	return s.toResponse(ctx, p)
}

func (s *service) Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	return s.mutate(ctx, id, req.Version, "update project", func(_ *sql.Tx, p *Project) error {
		if req.ProjectName != nil {
			if strings.TrimSpace(*req.ProjectName) == "" {
				return apperror.RequiredField("projectName")
			}
			p.Name = strings.TrimSpace(*req.ProjectName)
		}
		if req.Department != nil {
			if strings.TrimSpace(*req.Department) == "" {
				return apperror.RequiredField("department")
			}
			p.Department = strings.TrimSpace(*req.Department)
		}
		if req.Description != nil {
			p.Description = strings.TrimSpace(*req.Description)
		}
		if req.Status != nil {
			status := Status(strings.TrimSpace(*req.Status))
			if !status.Valid() {
				return projecterrors.ErrInvalidStatus
			}
			p.Status = status
		}
		if req.Progress != nil {
			p.Progress = clampProgress(*req.Progress)
		}

		start, deadline := p.StartDate, p.Deadline
		var err error
		if req.StartDate != nil {
			if start, err = parseDate(*req.StartDate); err != nil {
				return err
			}
		}
		if req.Deadline != nil {
			if deadline, err = parseDate(*req.Deadline); err != nil {
				return err
			}
		}
		if deadline.Before(start) {
			return projecterrors.ErrInvalidDateRange
		}
		p.StartDate, p.Deadline = start, deadline

		membershipChanged := false
		if req.ManagerID != nil {
			id, err := uuid.Parse(strings.TrimSpace(*req.ManagerID))
			if err != nil {
				return projecterrors.ErrInvalidEmployeeID
			}
			p.ManagerID = id
			membershipChanged = true
		}
		if req.TeamLeadID != nil {
			lead := strings.TrimSpace(*req.TeamLeadID)
			if lead == "" {
				p.TeamLeadID = nil
			} else {
				id, err := uuid.Parse(lead)
				if err != nil {
					return projecterrors.ErrInvalidEmployeeID
				}
				p.TeamLeadID = &id
			}
			membershipChanged = true
		}
		if req.TeamMembers != nil {
			p.TeamMembers = idlist.Normalize(*req.TeamMembers)
			membershipChanged = true
		}
		if membershipChanged {
			return s.validateMembership(ctx, p)
		}
		return nil
	})
}

// Delete removes the project and, in the same transaction, every task that
// belongs to it.
func (s *service) Delete(ctx context.Context, id string, version *int64) error {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, err := uuid.Parse(id); err != nil {
		return projecterrors.ErrInvalidProjectID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete project begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if version != nil && *version != p.Version {
		return projecterrors.ErrVersionConflict
	}

	removed, err := s.tasks.DeleteByProject(ctx, tx, id)
	if err != nil {
		log.Error("delete project tasks failed", zap.String("project_id", id), zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		log.Error("delete project failed", zap.String("project_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		log.Error("delete project commit failed", zap.Error(err))
		return err
	}

	log.Info("project deleted", zap.String("project_id", id), zap.Int64("tasks_removed", removed))
	return nil
}

func (s *service) GetMyProjects(ctx context.Context, employeeID string) ([]ProjectResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, projecterrors.ErrInvalidEmployeeID
	}
	projects, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list my projects failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return s.toResponses(ctx, projects, employeeID)
}

func (s *service) GetMyManagedProjects(ctx context.Context, employeeID string) ([]ProjectResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, projecterrors.ErrInvalidEmployeeID
	}
	projects, err := s.repo.FindManagedBy(ctx, employeeID)
	if err != nil {
		s.logger.Error("list managed projects failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return s.toResponses(ctx, projects, employeeID)
}

func (s *service) AddModule(ctx context.Context, projectID string, req ModuleRequest, files []*multipart.FileHeader) (ProjectResponse, error) {
	if strings.TrimSpace(req.ModuleName) == "" {
		return ProjectResponse{}, apperror.RequiredField("moduleName")
	}
	module := Module{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.ModuleName),
		Description: strings.TrimSpace(req.Description),
		Status:      ModuleStatusPending,
		Priority:    PriorityMedium,
		ModuleURL:   strings.TrimSpace(req.ModuleURL),
	}
	if v := strings.TrimSpace(req.Status); v != "" {
		module.Status = ModuleStatus(v)
	}
	if !module.Status.Valid() {
		return ProjectResponse{}, projecterrors.ErrInvalidModuleStatus
	}
	if v := strings.TrimSpace(req.Priority); v != "" {
		module.Priority = Priority(v)
	}
	if !module.Priority.Valid() {
		return ProjectResponse{}, projecterrors.ErrInvalidPriority
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		return ProjectResponse{}, err
	}
	module.DueDate = due
	if module.StartDate, err = parseOptionalDate(req.StartDate); err != nil {
		return ProjectResponse{}, err
	}
	metadata, err := validFiles(req.Files)
	if err != nil {
		return ProjectResponse{}, err
	}

	uploaded, err := s.uploader.UploadAll(ctx, "modules", files)
	if err != nil {
		return ProjectResponse{}, err
	}
	module.Files = attachment.Files{}.Merge(metadata...).Merge(uploaded...)

	return s.mutate(ctx, projectID, req.Version, "add module", func(_ *sql.Tx, p *Project) error {
		if lead := strings.TrimSpace(req.TeamLeadID); lead != "" {
			if err := s.checkModuleLead(ctx, p, lead); err != nil {
				return err
			}
			module.TeamLeadID = lead
		}
		now := s.now()
		module.CreatedAt, module.UpdatedAt = now, now
		p.Modules = append(p.Modules, module)
		return nil
	})
}

// UpdateModule edits one module in place. Files are changed through
// AttachModuleFiles only.
func (s *service) UpdateModule(ctx context.Context, projectID, moduleID string, req UpdateModuleRequest) (ProjectResponse, error) {
	return s.mutate(ctx, projectID, req.Version, "update module", func(_ *sql.Tx, p *Project) error {
		i := p.ModuleIndex(moduleID)
		if i < 0 {
			return projecterrors.ErrModuleNotFound
		}
		m := p.Modules[i]

		if req.ModuleName != nil {
			if strings.TrimSpace(*req.ModuleName) == "" {
				return apperror.RequiredField("moduleName")
			}
			m.Name = strings.TrimSpace(*req.ModuleName)
		}
		if req.Description != nil {
			m.Description = strings.TrimSpace(*req.Description)
		}
		if req.Status != nil {
			m.Status = ModuleStatus(strings.TrimSpace(*req.Status))
			if !m.Status.Valid() {
				return projecterrors.ErrInvalidModuleStatus
			}
		}
		if req.Priority != nil {
			m.Priority = Priority(strings.TrimSpace(*req.Priority))
			if !m.Priority.Valid() {
				return projecterrors.ErrInvalidPriority
			}
		}
		if req.StartDate != nil {
			start, err := parseOptionalDate(*req.StartDate)
			if err != nil {
				return err
			}
			m.StartDate = start
		}
		if req.DueDate != nil {
			due, err := parseDate(*req.DueDate)
			if err != nil {
				return err
			}
			m.DueDate = due
		}
		if req.ModuleURL != nil {
			m.ModuleURL = strings.TrimSpace(*req.ModuleURL)
		}
		m.UpdatedAt = s.now()
		p.Modules[i] = m
		return nil
	})
}

// DeleteModule removes the module keeping the order of the others, and
// deletes the module's tasks in the same transaction.
func (s *service) DeleteModule(ctx context.Context, projectID, moduleID string, version *int64) (ProjectResponse, error) {
	var removed int64
	resp, err := s.mutate(ctx, projectID, version, "delete module", func(tx *sql.Tx, p *Project) error {
		i := p.ModuleIndex(moduleID)
		if i < 0 {
			return projecterrors.ErrModuleNotFound
		}
		modules := make(Modules, 0, len(p.Modules)-1)
		modules = append(modules, p.Modules[:i]...)
		modules = append(modules, p.Modules[i+1:]...)
		p.Modules = modules

		n, err := s.tasks.DeleteByModule(ctx, tx, projectID, moduleID)
		if err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return ProjectResponse{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("module deleted",
		zap.String("project_id", projectID),
		zap.String("module_id", moduleID),
		zap.Int64("tasks_removed", removed),
	)
	return resp, nil
}

// AssignModuleTeamLead only accepts an existing employee from the project's
// department.
func (s *service) AssignModuleTeamLead(ctx context.Context, projectID, moduleID string, req AssignTeamLeadRequest) (ProjectResponse, error) {
	lead := strings.TrimSpace(req.TeamLeadID)
	if _, err := uuid.Parse(lead); err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidEmployeeID
	}
	return s.mutate(ctx, projectID, req.Version, "assign module team lead", func(_ *sql.Tx, p *Project) error {
		i := p.ModuleIndex(moduleID)
		if i < 0 {
			return projecterrors.ErrModuleNotFound
		}
		if err := s.checkModuleLead(ctx, p, lead); err != nil {
			return err
		}
		p.Modules[i].TeamLeadID = lead
		p.Modules[i].UpdatedAt = s.now()
		return nil
	})
}

func (s *service) AttachModuleFiles(ctx context.Context, projectID, moduleID string, req AttachFilesRequest, files []*multipart.FileHeader) (ProjectResponse, error) {
	metadata, err := validFiles(req.Files)
	if err != nil {
		return ProjectResponse{}, err
	}
	if len(metadata) == 0 && len(files) == 0 {
		return ProjectResponse{}, apperror.RequiredField("files")
	}
	uploaded, err := s.uploader.UploadAll(ctx, "modules", files)
	if err != nil {
		return ProjectResponse{}, err
	}

	return s.mutate(ctx, projectID, req.Version, "attach module files", func(_ *sql.Tx, p *Project) error {
		i := p.ModuleIndex(moduleID)
		if i < 0 {
			return projecterrors.ErrModuleNotFound
		}
		p.Modules[i].Files = p.Modules[i].Files.Merge(metadata...).Merge(uploaded...)
		p.Modules[i].UpdatedAt = s.now()
		return nil
	})
}

// AddRequirement merges fresh uploads, attachment metadata and picks of
// files already on the project or its modules. Unknown picks are rejected.
func (s *service) AddRequirement(ctx context.Context, projectID string, req RequirementRequest, files []*multipart.FileHeader) (ProjectResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return ProjectResponse{}, apperror.RequiredField("title")
	}
	reqType := RequirementFunctional
	if v := strings.TrimSpace(req.RequirementType); v != "" {
		reqType = RequirementType(v)
	}
	if !reqType.Valid() {
		return ProjectResponse{}, projecterrors.ErrInvalidRequirementType
	}
	priority := PriorityMedium
	if v := strings.TrimSpace(req.Priority); v != "" {
		priority = Priority(v)
	}
	if !priority.Valid() {
		return ProjectResponse{}, projecterrors.ErrInvalidPriority
	}
	metadata, err := validFiles(req.Attachments)
	if err != nil {
		return ProjectResponse{}, err
	}
	uploaded, err := s.uploader.UploadAll(ctx, "requirements", files)
	if err != nil {
		return ProjectResponse{}, err
	}

	return s.mutate(ctx, projectID, req.Version, "add requirement", func(_ *sql.Tx, p *Project) error {
		picked, missing := p.PickableFiles().FindByURL(idlist.Normalize(req.ExistingFileURLs))
		if len(missing) > 0 {
			return projecterrors.ErrUnknownProjectFile
		}
		p.Requirements = append(p.Requirements, Requirement{
			ID:          uuid.NewString(),
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			Type:        reqType,
			Priority:    priority,
			Attachments: attachment.Files{}.Merge(uploaded...).Merge(metadata...).Merge(picked...),
			CreatedAt:   s.now(),
		})
		return nil
	})
}

// DeleteRequirement leaves tasks alone; they keep their attachment snapshot
// and a dangling requirement id.
func (s *service) DeleteRequirement(ctx context.Context, projectID, requirementID string, version *int64) (ProjectResponse, error) {
	return s.mutate(ctx, projectID, version, "delete requirement", func(_ *sql.Tx, p *Project) error {
		i := p.RequirementIndex(requirementID)
		if i < 0 {
			return projecterrors.ErrRequirementNotFound
		}
		reqs := make(Requirements, 0, len(p.Requirements)-1)
		reqs = append(reqs, p.Requirements[:i]...)
		reqs = append(reqs, p.Requirements[i+1:]...)
		p.Requirements = reqs
		return nil
	})
}

// mutate runs fn against the row-locked project and saves it guarded by the
// version read under the lock. A client-supplied version that does not match
// fails before fn runs.
func (s *service) mutate(
	ctx context.Context,
	projectID string,
	version *int64,
	op string,
	fn func(tx *sql.Tx, p *Project) error,
) (ProjectResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, err := uuid.Parse(projectID); err != nil {
		return ProjectResponse{}, projecterrors.ErrInvalidProjectID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error(op+" begin tx failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByIDForUpdate(ctx, projectID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error(op+" load failed", zap.String("project_id", projectID), zap.Error(err))
		}
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if version != nil && *version != p.Version {
		return ProjectResponse{}, projecterrors.ErrVersionConflict
	}

	if err := fn(tx, p); err != nil {
		return ProjectResponse{}, err
	}

	expected := p.Version
	p.Version++
	p.UpdatedAt = s.now()
	if err := qtx.Save(ctx, p, expected); err != nil {
		log.Error(op+" persist failed", zap.String("project_id", projectID), zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		log.Error(op+" commit failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	log.Debug(op, zap.String("project_id", projectID), zap.Int64("version", p.Version))
	return s.toResponse(ctx, *p)
}

// validateMembership enforces that manager, team lead and team members are
// disjoint and all resolve to employees.
func (s *service) validateMembership(ctx context.Context, p *Project) error {
	manager := p.ManagerID.String()
	lead := p.teamLead()
	if lead != "" && lead == manager {
		return projecterrors.ErrOverlappingRoles
	}
	p.TeamMembers = idlist.Normalize(p.TeamMembers)
	if p.TeamMembers.Contains(manager) || (lead != "" && p.TeamMembers.Contains(lead)) {
		return projecterrors.ErrOverlappingRoles
	}
	for _, id := range p.TeamMembers {
		if _, err := uuid.Parse(id); err != nil {
			return projecterrors.ErrInvalidEmployeeID
		}
	}

	ids := append([]string{manager}, p.TeamMembers...)
	if lead != "" {
		ids = append(ids, lead)
	}
	people, err := s.directory.Summaries(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := people[id]; !ok {
			return projecterrors.ErrEmployeeNotFound
		}
	}
	return nil
}

func (s *service) checkModuleLead(ctx context.Context, p *Project, leadID string) error {
	if _, err := uuid.Parse(leadID); err != nil {
		return projecterrors.ErrInvalidEmployeeID
	}
	people, err := s.directory.Summaries(ctx, []string{leadID})
	if err != nil {
		return err
	}
	person, ok := people[leadID]
	if !ok {
		return projecterrors.ErrEmployeeNotFound
	}
	if !strings.EqualFold(strings.TrimSpace(person.Department), p.Department) {
		return projecterrors.ErrTeamLeadDepartment
	}
	return nil
}

func (s *service) toResponse(ctx context.Context, p Project) (ProjectResponse, error) {
	out, err := s.toResponses(ctx, []Project{p}, "")
	if err != nil {
		return ProjectResponse{}, err
	}
	return out[0], nil
}

// toResponses resolves every employee reference in one directory call.
// When viewer is set each project is tagged with the viewer's role.
func (s *service) toResponses(ctx context.Context, projects []Project, viewer string) ([]ProjectResponse, error) {
	out := make([]ProjectResponse, len(projects))
	if len(projects) == 0 {
		return out, nil
	}

	var ids []string
	for i := range projects {
		ids = append(ids, projects[i].EmployeeIDs()...)
	}
	people, err := s.directory.Summaries(ctx, ids)
	if err != nil {
		s.logger.Error("resolve project employees failed", zap.Error(err))
		return nil, err
	}

	for i := range projects {
		out[i] = mapToResponse(&projects[i], people)
		if viewer != "" {
			out[i].UserRole = string(projects[i].RoleOf(viewer))
		}
	}
	return out, nil
}

func mapToResponse(p *Project, people map[string]employee.Summary) ProjectResponse {
	resp := ProjectResponse{
		ID:           p.ID.String(),
		Code:         p.Code,
		ProjectName:  p.Name,
		Department:   p.Department,
		Manager:      summaryOf(people, p.ManagerID.String()),
		TeamLead:     summaryOf(people, p.teamLead()),
		TeamMembers:  make([]employee.Summary, 0, len(p.TeamMembers)),
		StartDate:    p.StartDate.Format(dateutil.DateLayout),
		Deadline:     p.Deadline.Format(dateutil.DateLayout),
		Status:       string(p.Status),
		Progress:     p.Progress,
		Description:  p.Description,
		Files:        nonNil(p.Files),
		Modules:      make([]ModuleResponse, len(p.Modules)),
		Requirements: make([]RequirementResponse, len(p.Requirements)),
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	for _, id := range p.TeamMembers {
		resp.TeamMembers = append(resp.TeamMembers, *summaryOf(people, id))
	}
	for i, m := range p.Modules {
		mr := ModuleResponse{
			ID:          m.ID,
			ModuleName:  m.Name,
			Description: m.Description,
			TeamLead:    summaryOf(people, m.TeamLeadID),
			Status:      string(m.Status),
			Priority:    string(m.Priority),
			DueDate:     m.DueDate.Format(dateutil.DateLayout),
			ModuleURL:   m.ModuleURL,
			Files:       nonNil(m.Files),
		}
		if m.StartDate != nil {
			start := m.StartDate.Format(dateutil.DateLayout)
			mr.StartDate = &start
		}
		resp.Modules[i] = mr
	}
	for i, r := range p.Requirements {
		resp.Requirements[i] = RequirementResponse{
			ID:              r.ID,
			Title:           r.Title,
			Description:     r.Description,
			RequirementType: string(r.Type),
			Priority:        string(r.Priority),
			Attachments:     nonNil(r.Attachments),
			CreatedAt:       r.CreatedAt,
		}
	}
	return resp
}

// summaryOf falls back to a bare id when the employee no longer resolves.
func summaryOf(people map[string]employee.Summary, id string) *employee.Summary {
	if id == "" {
		return nil
	}
	if p, ok := people[id]; ok {
		return &p
	}
	return &employee.Summary{ID: id}
}

func nonNil(f attachment.Files) attachment.Files {
	if f == nil {
		return attachment.Files{}
	}
	return f
}

func validFiles(files []attachment.File) (attachment.Files, error) {
	out := make(attachment.Files, 0, len(files))
	for _, f := range files {
		f.FileName = strings.TrimSpace(f.FileName)
		f.FileURL = strings.TrimSpace(f.FileURL)
		if f.FileName == "" || f.FileURL == "" {
			return nil, projecterrors.ErrInvalidAttachment
		}
		out = append(out, attachment.File{
			FileName: f.FileName,
			FileURL:  f.FileURL,
			FileType: f.FileType,
			FileSize: f.FileSize,
		})
	}
	return out, nil
}

func clampProgress(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func parseDate(s string) (time.Time, error) {
	t, err := dateutil.Parse(s)
	if err != nil {
		return time.Time{}, projecterrors.ErrInvalidDate
	}
	return t, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	t, err := dateutil.ParseOptional(s)
	if err != nil {
		return nil, projecterrors.ErrInvalidDate
	}
	return t, nil
}

func parseRange(start, deadline string) (time.Time, time.Time, error) {
	s, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	d, err := parseDate(deadline)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if d.Before(s) {
		return time.Time{}, time.Time{}, projecterrors.ErrInvalidDateRange
	}
	return s, d, nil
}
