package projecterrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrProjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"Project not found",
		http.StatusNotFound,
	)
	ErrModuleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Module not found",
		http.StatusNotFound,
	)
	ErrRequirementNotFound = apperror.New(
		apperror.CodeNotFound,
		"Requirement not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Referenced employee not found",
		http.StatusNotFound,
	)
	ErrInvalidProjectID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid project ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrOverlappingRoles = apperror.New(
		apperror.CodeInvalidInput,
		"Manager, team lead and team members must be different employees",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of Planning, Active, On Hold, Completed, Cancelled",
		http.StatusBadRequest,
	)
	ErrInvalidModuleStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Module status must be one of Pending, In Progress, Completed, On Hold",
		http.StatusBadRequest,
	)
	ErrInvalidPriority = apperror.New(
		apperror.CodeInvalidInput,
		"Priority must be one of Low, Medium, High, Critical",
		http.StatusBadRequest,
	)
	ErrInvalidRequirementType = apperror.New(
		apperror.CodeInvalidInput,
		"Requirement type must be one of Functional, Non-Functional, Technical",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Dates must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Deadline must not be before the start date",
		http.StatusBadRequest,
	)
	ErrTeamLeadDepartment = apperror.New(
		apperror.CodeInvalidInput,
		"Team lead must belong to the project's department",
		http.StatusBadRequest,
	)
	ErrUnknownProjectFile = apperror.New(
		apperror.CodeInvalidInput,
		"Selected file does not belong to this project",
		http.StatusBadRequest,
	)
	ErrInvalidAttachment = apperror.New(
		apperror.CodeInvalidInput,
		"Attachments require fileName and fileUrl",
		http.StatusBadRequest,
	)
	ErrProjectCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Project code already exists",
		http.StatusConflict,
	)
	ErrVersionConflict = apperror.ErrVersionConflict
)
