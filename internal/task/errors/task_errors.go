package taskerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)
	ErrInvalidTaskID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid task ID",
		http.StatusBadRequest,
	)
	ErrAssigneesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"At least one assignee is required",
		http.StatusBadRequest,
	)
	ErrAssigneeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Assigned employee not found",
		http.StatusNotFound,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status must be one of Pending, In Progress, Completed, On Hold",
		http.StatusBadRequest,
	)
	ErrInvalidPriority = apperror.New(
		apperror.CodeInvalidInput,
		"Priority must be one of Low, Medium, High, Critical",
		http.StatusBadRequest,
	)
	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"Due date must use the YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidAttachments = apperror.New(
		apperror.CodeInvalidInput,
		"Existing attachments must be a JSON list of {fileName, fileUrl, origin}",
		http.StatusBadRequest,
	)
	ErrNotAssignee = apperror.New(
		apperror.CodeForbidden,
		"Only assignees or project leads can change this task",
		http.StatusForbidden,
	)
)
