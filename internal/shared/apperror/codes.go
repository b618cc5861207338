package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput     = "INVALID_INPUT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeVersionConflict  = "VERSION_CONFLICT"
	CodeInvalidState     = "INVALID_STATE"
	CodeMissingVariables = "MISSING_VARIABLES"
	CodeProcessing       = "PROCESSING"
	CodeRateLimited      = "RATE_LIMITED"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
