package task

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/project"
	projecterrors "go-hrm/internal/project/errors"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/attachment"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/dateutil"
	"go-hrm/internal/shared/idlist"
	"go-hrm/internal/storage"
	taskerrors "go-hrm/internal/task/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type ProjectReader interface {
	FindByID(ctx context.Context, id string) (*project.Project, error)
	WithTx(tx *sql.Tx) project.Repository
}

type EmployeeDirectory interface {
	Summaries(ctx context.Context, ids []string) (map[string]employee.Summary, error)
}

type Service interface {
	Create(ctx context.Context, req CreateTaskRequest, files []*multipart.FileHeader) (TaskResponse, error)
	GetByModule(ctx context.Context, moduleID string) ([]TaskResponse, error)
	GetMyTasks(ctx context.Context, employeeID string) ([]TaskResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (TaskResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	projects  ProjectReader
	directory EmployeeDirectory
	uploader  storage.Uploader
	outbox    kafka.OutboxRepository
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	projects ProjectReader,
	directory EmployeeDirectory,
	uploader storage.Uploader,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		projects:  projects,
		directory: directory,
		uploader:  uploader,
		outbox:    outboxRepo,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

// Create stores the task with its own uploads, the client's existing
// references and a by-value snapshot of the requirement, module and project
// files, de-duplicated by URL in that order.
func (s *service) Create(ctx context.Context, req CreateTaskRequest, files []*multipart.FileHeader) (TaskResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	if strings.TrimSpace(req.Title) == "" {
		return TaskResponse{}, apperror.RequiredField("title")
	}
	assignees := idlist.Normalize(req.AssigneeIDs)
	if len(assignees) == 0 {
		return TaskResponse{}, taskerrors.ErrAssigneesRequired
	}
	for _, id := range assignees {
		if _, err := uuid.Parse(id); err != nil {
			return TaskResponse{}, taskerrors.ErrAssigneeNotFound
		}
	}
	projectID, err := uuid.Parse(strings.TrimSpace(req.ProjectID))
	if err != nil {
		return TaskResponse{}, projecterrors.ErrInvalidProjectID
	}
	due, err := dateutil.Parse(req.DueDate)
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidDueDate
	}
	status := StatusPending
	if v := strings.TrimSpace(req.Status); v != "" {
		status = Status(v)
	}
	if !status.Valid() {
		return TaskResponse{}, taskerrors.ErrInvalidStatus
	}
	priority := project.PriorityMedium
	if v := strings.TrimSpace(req.Priority); v != "" {
		priority = project.Priority(v)
	}
	if !priority.Valid() {
		return TaskResponse{}, taskerrors.ErrInvalidPriority
	}
	existing, err := attachment.DecodeReferences(req.existingAttachments())
	if err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidAttachments
	}

	p, err := s.projects.FindByID(ctx, projectID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, projecterrors.ErrProjectNotFound
		}
		log.Error("create task load project failed", zap.Error(err))
		return TaskResponse{}, err
	}
	moduleID := strings.TrimSpace(req.ModuleID)
	requirementID := strings.TrimSpace(req.RequirementID)
	snapshot, err := p.AttachmentSnapshot(moduleID, requirementID)
	if err != nil {
		return TaskResponse{}, err
	}

	people, err := s.directory.Summaries(ctx, assignees)
	if err != nil {
		return TaskResponse{}, err
	}
	for _, id := range assignees {
		if _, ok := people[id]; !ok {
			return TaskResponse{}, taskerrors.ErrAssigneeNotFound
		}
	}

	uploaded, err := s.uploader.UploadAll(ctx, "tasks", files)
	if err != nil {
		log.Error("create task upload failed", zap.Error(err))
		return TaskResponse{}, err
	}
	for i := range uploaded {
		uploaded[i] = uploaded[i].Tagged(attachment.OriginTask)
	}

	now := s.now()
	t := Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Priority:    priority,
		DueDate:     due,
		Status:      status,
		ProjectID:   projectID,
		ModuleID:    moduleID,
		AssigneeIDs: assignees,
		Attachments: attachment.Files{}.Merge(uploaded...).Merge(existing...).Merge(snapshot...),
		CreatedBy:   contextutil.GetEmployeeID(ctx),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if requirementID != "" {
		t.RequirementID = &requirementID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	// Module and project deletes lock the row FOR UPDATE, so the module
	// cannot vanish between this check and the insert.
	locked, err := s.projects.WithTx(tx).FindByIDForShare(ctx, projectID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, projecterrors.ErrProjectNotFound
		}
		log.Error("create task lock project failed", zap.Error(err))
		return TaskResponse{}, err
	}
	snapshot, err = locked.AttachmentSnapshot(moduleID, requirementID)
	if err != nil {
		return TaskResponse{}, err
	}
	t.Attachments = attachment.Files{}.Merge(uploaded...).Merge(existing...).Merge(snapshot...)

	if err := s.repo.WithTx(tx).Create(ctx, &t); err != nil {
		log.Error("create task persist failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.TaskAssignedEvent{
			EventType:   events.TaskAssignedEventType,
			RequestID:   rid,
			TaskID:      t.ID.String(),
			ProjectID:   projectID.String(),
			ModuleID:    moduleID,
			Title:       t.Title,
			AssigneeIDs: assignees,
			AssignedBy:  t.CreatedBy,
			DueDate:     due,
			OccurredAt:  now,
		}
		row, err := kafka.NewPendingEvent(rid, "task", t.ID.String(), event.EventType, events.TaskAssignedTopic, event)
		if err != nil {
			return TaskResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, row); err != nil {
			log.Error("create task outbox persist failed", zap.Error(err))
			return TaskResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("create task commit failed", zap.Error(err))
		return TaskResponse{}, err
	}

	log.Info("task created",
		zap.String("task_id", t.ID.String()),
		zap.String("project_id", projectID.String()),
		zap.String("module_id", moduleID),
		zap.Int("assignees", len(assignees)),
		zap.Int("attachments", len(t.Attachments)),
	)
	return mapToResponse(t, people), nil
}

func (s *service) GetByModule(ctx context.Context, moduleID string) ([]TaskResponse, error) {
	tasks, err := s.repo.FindByModule(ctx, strings.TrimSpace(moduleID))
	if err != nil {
		s.logger.Error("list module tasks failed", zap.String("module_id", moduleID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return s.toResponses(ctx, tasks)
}

func (s *service) GetMyTasks(ctx context.Context, employeeID string) ([]TaskResponse, error) {
	tasks, err := s.repo.FindByAssignee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list my tasks failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return s.toResponses(ctx, tasks)
}

// UpdateStatus accepts any status from any status. The caller must be an
// assignee or the manager or a lead of the task's project.
func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (TaskResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, err := uuid.Parse(id); err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidTaskID
	}
	status := Status(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return TaskResponse{}, taskerrors.ErrInvalidStatus
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	if err := s.authorizeStatusChange(ctx, t); err != nil {
		return TaskResponse{}, err
	}

	previous := t.Status
	t.Status = status
	t.UpdatedAt = s.now()
	if err := s.repo.UpdateStatus(ctx, id, status, t.UpdatedAt); err != nil {
		log.Error("update task status failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	log.Info("task status updated",
		zap.String("task_id", id),
		zap.String("previous_status", string(previous)),
		zap.String("status", string(status)),
	)
	people, err := s.directory.Summaries(ctx, t.AssigneeIDs)
	if err != nil {
		return TaskResponse{}, err
	}
	return mapToResponse(*t, people), nil
}

func (s *service) authorizeStatusChange(ctx context.Context, t *Task) error {
	caller := contextutil.GetEmployeeID(ctx)
	if caller == "" {
		return taskerrors.ErrNotAssignee
	}
	if t.AssigneeIDs.Contains(caller) {
		return nil
	}
	p, err := s.projects.FindByID(ctx, t.ProjectID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return taskerrors.ErrNotAssignee
		}
		return err
	}
	switch p.RoleOf(caller) {
	case project.RoleManager, project.RoleTeamLead:
		return nil
	}
	return taskerrors.ErrNotAssignee
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return taskerrors.ErrInvalidTaskID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("delete task failed", zap.String("task_id", id), zap.Error(err))
		}
		return mapRepositoryError(err)
	}
	contextutil.GetLogger(ctx, s.logger).Info("task deleted", zap.String("task_id", id))
	return nil
}

func (s *service) toResponses(ctx context.Context, tasks []Task) ([]TaskResponse, error) {
	out := make([]TaskResponse, len(tasks))
	if len(tasks) == 0 {
		return out, nil
	}
	var ids []string
	for _, t := range tasks {
		ids = append(ids, t.AssigneeIDs...)
	}
	people, err := s.directory.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i, t := range tasks {
		out[i] = mapToResponse(t, people)
	}
	return out, nil
}

func mapToResponse(t Task, people map[string]employee.Summary) TaskResponse {
	resp := TaskResponse{
		ID:            t.ID.String(),
		Title:         t.Title,
		Description:   t.Description,
		RequirementID: t.RequirementID,
		Priority:      string(t.Priority),
		DueDate:       t.DueDate.Format(dateutil.DateLayout),
		Status:        string(t.Status),
		ProjectID:     t.ProjectID.String(),
		ModuleID:      t.ModuleID,
		AssignedTo:    make([]employee.Summary, 0, len(t.AssigneeIDs)),
		Attachments:   t.Attachments,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	if resp.Attachments == nil {
		resp.Attachments = attachment.Files{}
	}
	for _, id := range t.AssigneeIDs {
		if p, ok := people[id]; ok {
			resp.AssignedTo = append(resp.AssignedTo, p)
			continue
		}
		resp.AssignedTo = append(resp.AssignedTo, employee.Summary{ID: id})
	}
	return resp
}
