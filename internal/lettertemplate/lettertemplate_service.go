package lettertemplate

import (
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	lettertemplateerrors "go-hrm/internal/lettertemplate/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

//go:generate mockgen -source=lettertemplate_service.go -destination=mock/lettertemplate_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]TemplateResponse, error)
	GetByName(ctx context.Context, name string) (TemplateResponse, error)
	GetByType(ctx context.Context, templateType string) (TemplateResponse, error)
	Upsert(ctx context.Context, name string, req UpsertTemplateRequest) (TemplateResponse, error)
	SetActive(ctx context.Context, name string, active bool) (TemplateResponse, error)
	Render(ctx context.Context, name string, req RenderRequest) (RenderResponse, error)
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.\-]{0,99}$`)

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

// NewService accepts a nil repository when no document store is configured;
// every call then fails with ErrStoreUnavailable.
func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("lettertemplate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("lettertemplate.service")
	}
	return &service{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (s *service) ready() error {
	if s.repo == nil {
		return lettertemplateerrors.ErrStoreUnavailable
	}
	return nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]TemplateResponse, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, lettertemplateerrors.ErrInvalidType
	}

	templates, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list letter templates failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	out := make([]TemplateResponse, 0, len(templates))
	for i := range templates {
		out = append(out, toResponse(&templates[i]))
	}
	return out, nil
}

func (s *service) GetByName(ctx context.Context, name string) (TemplateResponse, error) {
	tpl, err := s.find(ctx, name)
	if err != nil {
		return TemplateResponse{}, err
	}
	return toResponse(tpl), nil
}

func (s *service) GetByType(ctx context.Context, templateType string) (TemplateResponse, error) {
	if err := s.ready(); err != nil {
		return TemplateResponse{}, err
	}
	t := Type(templateType)
	if !t.Valid() {
		return TemplateResponse{}, lettertemplateerrors.ErrInvalidType
	}

	tpl, err := s.repo.FindActiveByType(ctx, t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return TemplateResponse{}, lettertemplateerrors.ErrNoActiveTemplate
		}
		s.logger.Error("get letter template by type failed", zap.String("type", templateType), zap.Error(err))
		return TemplateResponse{}, mapRepositoryError(err)
	}
	return toResponse(tpl), nil
}

func (s *service) Upsert(ctx context.Context, name string, req UpsertTemplateRequest) (TemplateResponse, error) {
	if err := s.ready(); err != nil {
		return TemplateResponse{}, err
	}
	if !namePattern.MatchString(name) {
		return TemplateResponse{}, lettertemplateerrors.ErrInvalidName
	}
	t := Type(strings.TrimSpace(req.Type))
	if !t.Valid() {
		return TemplateResponse{}, lettertemplateerrors.ErrInvalidType
	}

	existing, err := s.repo.FindByName(ctx, name)
	switch {
	case err == nil && existing.IsLocked:
		return TemplateResponse{}, lettertemplateerrors.ErrTemplateLocked
	case err != nil && !errors.Is(err, mongo.ErrNoDocuments):
		s.logger.Error("load letter template failed", zap.String("name", name), zap.Error(err))
		return TemplateResponse{}, mapRepositoryError(err)
	}

	variables := normalizeVariables(req.Variables)
	if len(variables) == 0 {
		variables = Placeholders(req.Subject, req.BodyContent)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := s.now()
	saved, err := s.repo.Upsert(ctx, &LetterTemplate{
		Name:         name,
		Type:         t,
		Subject:      req.Subject,
		BodyContent:  req.BodyContent,
		Variables:    variables,
		IsActive:     active,
		IsLocked:     req.IsLocked,
		PDFURL:       req.PDFURL,
		LocalPath:    req.LocalPath,
		PublicID:     req.PublicID,
		ResourceType: req.ResourceType,
		IsFixedPDF:   req.IsFixedPDF,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			s.logger.Error("upsert letter template failed", zap.String("name", name), zap.Error(err))
		}
		return TemplateResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("letter template saved",
		zap.String("name", name),
		zap.String("type", string(t)),
		zap.Bool("created", existing == nil),
	)
	return toResponse(saved), nil
}

func (s *service) SetActive(ctx context.Context, name string, active bool) (TemplateResponse, error) {
	if err := s.ready(); err != nil {
		return TemplateResponse{}, err
	}

	saved, err := s.repo.SetActive(ctx, name, active, s.now())
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Error("set letter template active failed", zap.String("name", name), zap.Error(err))
		}
		return TemplateResponse{}, mapRepositoryError(err)
	}
	return toResponse(saved), nil
}

// Render fills placeholders in subject and body. Body values are HTML
// escaped. Unknown placeholders stay in place and are listed; in strict mode
// they fail the call with ErrMissingVariables and the partial result.
func (s *service) Render(ctx context.Context, name string, req RenderRequest) (RenderResponse, error) {
	tpl, err := s.find(ctx, name)
	if err != nil {
		return RenderResponse{}, err
	}

	subject, missingSubject := substitute(tpl.Subject, req.Values, func(v string) string { return v })
	body, missingBody := substitute(tpl.BodyContent, req.Values, html.EscapeString)

	resp := RenderResponse{
		Name:             tpl.Name,
		Subject:          subject,
		Body:             body,
		MissingVariables: mergeNames(missingSubject, missingBody),
	}

	if req.Strict && len(resp.MissingVariables) > 0 {
		return resp, fmt.Errorf("%w: %s", lettertemplateerrors.ErrMissingVariables, strings.Join(resp.MissingVariables, ", "))
	}
	return resp, nil
}

func (s *service) find(ctx context.Context, name string) (*LetterTemplate, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	tpl, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			s.logger.Error("get letter template failed", zap.String("name", name), zap.Error(err))
		}
		return nil, mapRepositoryError(err)
	}
	return tpl, nil
}

func normalizeVariables(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func mergeNames(a, b []string) []string {
	return normalizeVariables(append(append([]string{}, a...), b...))
}

func toResponse(t *LetterTemplate) TemplateResponse {
	variables := t.Variables
	if variables == nil {
		variables = []string{}
	}
	return TemplateResponse{
		ID:           t.ID.Hex(),
		Name:         t.Name,
		Type:         string(t.Type),
		Subject:      t.Subject,
		BodyContent:  t.BodyContent,
		Variables:    variables,
		IsActive:     t.IsActive,
		IsLocked:     t.IsLocked,
		PDFURL:       t.PDFURL,
		LocalPath:    t.LocalPath,
		PublicID:     t.PublicID,
		ResourceType: t.ResourceType,
		IsFixedPDF:   t.IsFixedPDF,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}
