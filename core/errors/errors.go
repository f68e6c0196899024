package errors

import "fmt"

// ErrorCode identifies an application-level error category
type ErrorCode string

const (
	// Generic
	ErrInternalServer     ErrorCode = "ERR_INTERNAL_SERVER"
	ErrInvalidInput       ErrorCode = "ERR_INVALID_INPUT"
	ErrInvalidRequestData ErrorCode = "ERR_INVALID_REQUEST_DATA"
	ErrNotFound           ErrorCode = "ERR_NOT_FOUND"
	ErrAlreadyExists      ErrorCode = "ERR_ALREADY_EXISTS"

	// Auth
	ErrUnauthorized               ErrorCode = "ERR_UNAUTHORIZED"
	ErrForbidden                  ErrorCode = "ERR_FORBIDDEN"
	ErrTokenExpired               ErrorCode = "ERR_TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "ERR_INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "ERR_MISSING_AUTHORIZATION_HEADER"

	// Booking
	ErrSlotConflict        ErrorCode = "ERR_SLOT_CONFLICT"
	ErrStatusConflict      ErrorCode = "ERR_STATUS_CONFLICT"
	ErrPreconditionFailed  ErrorCode = "ERR_PRECONDITION_FAILED"
	ErrCancelWindowClosed  ErrorCode = "ERR_CANCEL_WINDOW_CLOSED"
	ErrSessionNotOver      ErrorCode = "ERR_SESSION_NOT_OVER"
	ErrProviderDeactivated ErrorCode = "ERR_PROVIDER_DEACTIVATED"
)

// AppError carries an error code, a user-facing message and the underlying cause
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
