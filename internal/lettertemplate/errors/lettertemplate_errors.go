package lettertemplateerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrTemplateNotFound = apperror.New(
		apperror.CodeNotFound,
		"Letter template not found",
		http.StatusNotFound,
	)
	ErrNoActiveTemplate = apperror.New(
		apperror.CodeNotFound,
		"No active letter template for this type",
		http.StatusNotFound,
	)
	ErrTemplateLocked = apperror.New(
		apperror.CodeInvalidState,
		"Letter template is locked and cannot be modified",
		http.StatusConflict,
	)
	ErrInvalidType = apperror.New(
		apperror.CodeInvalidInput,
		"Template type is invalid",
		http.StatusBadRequest,
	)
	ErrInvalidName = apperror.New(
		apperror.CodeInvalidInput,
		"Template name is invalid",
		http.StatusBadRequest,
	)
	ErrMissingVariables = apperror.New(
		apperror.CodeMissingVariables,
		"Values are missing for one or more template variables",
		http.StatusUnprocessableEntity,
	)
	ErrStoreUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Letter template store is unavailable",
		http.StatusServiceUnavailable,
	)
)
