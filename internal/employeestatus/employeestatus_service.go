package employeestatus

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"go-hrm/internal/employee"
	employeestatuserrors "go-hrm/internal/employeestatus/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employeestatus_service.go -destination=mock/employeestatus_service_mock.go -package=mock
type EmployeeDirectory interface {
	Summaries(ctx context.Context, ids []string) (map[string]employee.Summary, error)
}

type Service interface {
	GetStatus(ctx context.Context, employeeID string) (StatusResponse, error)
	UpsertStatus(ctx context.Context, employeeID string, req UpsertStatusRequest) (StatusResponse, error)
	GetOverview(ctx context.Context) (OverviewResponse, error)
	GetHistory(ctx context.Context, employeeID string) ([]HistoryResponse, error)
	RecordHistory(ctx context.Context, eventID string, event events.EmployeeStatusChangedEvent) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	outbox    kafka.OutboxRepository
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employeestatus.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeestatus.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		outbox:    outboxRepo,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

func (s *service) GetStatus(ctx context.Context, employeeID string) (StatusResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return StatusResponse{}, employeestatuserrors.ErrInvalidEmployeeID
	}

	st, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get employee status failed", zap.String("employee_id", employeeID), zap.Error(err))
		}
		return StatusResponse{}, mapRepositoryError(err)
	}

	people, err := s.directory.Summaries(ctx, []string{employeeID})
	if err != nil {
		return StatusResponse{}, err
	}
	return mapToResponse(*st, people), nil
}

// UpsertStatus creates the employee's status record or mutates it in place.
// lastUpdated is stamped on every call; changedAt only moves when the
// status value itself changes.
func (s *service) UpsertStatus(ctx context.Context, employeeID string, req UpsertStatusRequest) (StatusResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(employeeID); err != nil {
		return StatusResponse{}, employeestatuserrors.ErrInvalidEmployeeID
	}
	status := Status(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return StatusResponse{}, employeestatuserrors.ErrInvalidStatus
	}
	mode := WorkMode(strings.TrimSpace(req.workMode()))
	if mode != "" && !mode.Valid() {
		return StatusResponse{}, employeestatuserrors.ErrInvalidWorkMode
	}

	people, err := s.directory.Summaries(ctx, []string{employeeID})
	if err != nil {
		return StatusResponse{}, err
	}
	person, ok := people[employeeID]
	if !ok {
		return StatusResponse{}, employeestatuserrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("upsert status begin tx failed", zap.Error(err))
		return StatusResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindByEmployeeIDForUpdate(ctx, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("upsert status load existing failed", zap.Error(err))
		return StatusResponse{}, mapRepositoryError(err)
	}

	now := s.now()
	next := EmployeeStatus{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(employeeID),
		Status:      status,
		Email:       strings.TrimSpace(req.Email),
		Reason:      strings.TrimSpace(req.Reason),
		WorkMode:    mode,
		ChangedAt:   now,
		LastUpdated: now,
		CreatedAt:   now,
	}
	previousStatus := ""
	if existing != nil {
		previousStatus = string(existing.Status)
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
		if existing.Status == status {
			next.ChangedAt = existing.ChangedAt
		}
		if next.WorkMode == "" {
			next.WorkMode = existing.WorkMode
		}
		if next.Email == "" {
			next.Email = existing.Email
		}
	}
	if next.WorkMode == "" {
		next.WorkMode = WorkModeOffice
	}
	if next.Email == "" {
		next.Email = person.Email
	}

	if err := qtx.Upsert(ctx, &next); err != nil {
		log.Error("upsert status persist failed", zap.Error(err))
		return StatusResponse{}, mapRepositoryError(err)
	}

	statusChanged := previousStatus != string(status)
	if statusChanged && s.outbox != nil {
		event := events.EmployeeStatusChangedEvent{
			EventType:      events.EmployeeStatusChangedEventType,
			RequestID:      rid,
			EmployeeID:     employeeID,
			PreviousStatus: previousStatus,
			Status:         string(next.Status),
			WorkMode:       string(next.WorkMode),
			Reason:         next.Reason,
			ChangedBy:      contextutil.GetEmployeeID(ctx),
			OccurredAt:     now,
		}
		row, err := kafka.NewPendingEvent(rid, "employee_status", employeeID, event.EventType, events.EmployeeStatusTopic, event)
		if err != nil {
			return StatusResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, row); err != nil {
			log.Error("upsert status outbox persist failed", zap.Error(err))
			return StatusResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("upsert status commit failed", zap.Error(err))
		return StatusResponse{}, err
	}

	log.Info("employee status updated",
		zap.String("employee_id", employeeID),
		zap.String("previous_status", previousStatus),
		zap.String("status", string(next.Status)),
		zap.String("work_mode", string(next.WorkMode)),
		zap.Bool("status_changed", statusChanged),
	)
	return mapToResponse(next, people), nil
}

// GetOverview aggregates fresh on every call. Known enum values are always
// present with zero counts; unexpected stored values are appended.
func (s *service) GetOverview(ctx context.Context) (OverviewResponse, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("count by status failed", zap.Error(err))
		return OverviewResponse{}, mapRepositoryError(err)
	}
	byMode, err := s.repo.CountByWorkMode(ctx)
	if err != nil {
		s.logger.Error("count by work mode failed", zap.Error(err))
		return OverviewResponse{}, mapRepositoryError(err)
	}

	statusKeys := make([]string, len(Statuses))
	for i, v := range Statuses {
		statusKeys[i] = string(v)
	}
	modeKeys := make([]string, len(WorkModes))
	for i, v := range WorkModes {
		modeKeys[i] = string(v)
	}

	resp := OverviewResponse{
		ByStatus:   zeroFill(statusKeys, byStatus),
		ByWorkMode: zeroFill(modeKeys, byMode),
	}
	for _, c := range resp.ByStatus {
		resp.Total += c.Count
	}
	return resp, nil
}

func (s *service) GetHistory(ctx context.Context, employeeID string) ([]HistoryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, employeestatuserrors.ErrInvalidEmployeeID
	}
	rows, err := s.repo.ListHistory(ctx, employeeID)
	if err != nil {
		s.logger.Error("list status history failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	out := make([]HistoryResponse, len(rows))
	for i, h := range rows {
		out[i] = HistoryResponse{
			PreviousStatus: h.PreviousStatus,
			Status:         h.Status,
			WorkMode:       h.WorkMode,
			Reason:         h.Reason,
			ChangedBy:      h.ChangedBy,
			ChangedAt:      h.ChangedAt,
		}
	}
	return out, nil
}

// RecordHistory is called by the status consumer. Replays of the same event
// id are ignored.
func (s *service) RecordHistory(ctx context.Context, eventID string, event events.EmployeeStatusChangedEvent) error {
	employeeUUID, err := uuid.Parse(event.EmployeeID)
	if err != nil {
		return employeestatuserrors.ErrInvalidEmployeeID
	}
	changedAt := event.OccurredAt
	if changedAt.IsZero() {
		changedAt = s.now()
	}

	return s.repo.CreateHistory(ctx, &StatusHistory{
		ID:             uuid.New(),
		EventID:        eventID,
		EmployeeID:     employeeUUID,
		PreviousStatus: event.PreviousStatus,
		Status:         event.Status,
		WorkMode:       event.WorkMode,
		Reason:         event.Reason,
		ChangedBy:      event.ChangedBy,
		ChangedAt:      changedAt,
	})
}

func zeroFill(known []string, counts []GroupCount) []CountResponse {
	byValue := make(map[string]int64, len(counts))
	for _, c := range counts {
		byValue[c.Value] += c.Count
	}

	out := make([]CountResponse, 0, len(known)+len(byValue))
	for _, k := range known {
		out = append(out, CountResponse{Value: k, Count: byValue[k]})
		delete(byValue, k)
	}

	extra := make([]string, 0, len(byValue))
	for k := range byValue {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	for _, k := range extra {
		out = append(out, CountResponse{Value: k, Count: byValue[k]})
	}
	return out
}

func mapToResponse(st EmployeeStatus, people map[string]employee.Summary) StatusResponse {
	resp := StatusResponse{
		ID:          st.ID.String(),
		EmployeeID:  st.EmployeeID.String(),
		Status:      string(st.Status),
		Email:       st.Email,
		Reason:      st.Reason,
		WorkMode:    string(st.WorkMode),
		ChangedAt:   st.ChangedAt,
		LastUpdated: st.LastUpdated,
	}
	if p, ok := people[resp.EmployeeID]; ok {
		resp.Employee = &p
	}
	return resp
}
