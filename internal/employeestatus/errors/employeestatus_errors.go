package employeestatuserrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrStatusNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee status not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of Intern, Probation, Confirmed, Resignation Submitted, Notice Period, Relieved, Terminated",
		http.StatusBadRequest,
	)
	ErrInvalidWorkMode = apperror.New(
		apperror.CodeInvalidInput,
		"Work mode must be one of Office, Remote, Field, Client Site",
		http.StatusBadRequest,
	)
)
