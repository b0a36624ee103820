package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidScheduleInput = errors.New("invalid schedule input")
	ErrXeroNotConnected     = errors.New("xero is not connected")
	ErrXeroAPIError         = errors.New("xero api request failed")
	ErrScheduleNotFound     = errors.New("recurring schedule not found")
	ErrScheduleCancelled    = errors.New("recurring schedule is cancelled")
	ErrMissingCredentials   = errors.New("missing xero credentials")
	ErrInvalidOAuthState    = errors.New("invalid oauth state")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidScheduleInput = "INVALID_SCHEDULE_INPUT"
	ErrCodeXeroNotConnected     = "XERO_NOT_CONNECTED"
	ErrCodeXeroAPIError         = "XERO_API_ERROR"
	ErrCodeScheduleNotFound     = "SCHEDULE_NOT_FOUND"
	ErrCodeScheduleCancelled    = "SCHEDULE_CANCELLED"
	ErrCodeMissingCredentials   = "MISSING_XERO_CREDENTIALS"
	ErrCodeInvalidOAuthState    = "INVALID_OAUTH_STATE"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapInvalidScheduleInput(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidScheduleInput,
		reason,
		ErrInvalidScheduleInput,
	)
}

func WrapXeroNotConnected() *BusinessError {
	return NewBusinessError(
		ErrCodeXeroNotConnected,
		"No Xero token found. Authorize the application first",
		ErrXeroNotConnected,
	)
}

func WrapXeroAPIError(operation string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeXeroAPIError,
		fmt.Sprintf("Xero %s failed", operation),
		err,
	)
}

func WrapScheduleNotFound(scheduleID string) *BusinessError {
	return NewBusinessError(
		ErrCodeScheduleNotFound,
		fmt.Sprintf("Recurring schedule %s not found", scheduleID),
		ErrScheduleNotFound,
	)
}

func WrapScheduleCancelled(scheduleID string) *BusinessError {
	return NewBusinessError(
		ErrCodeScheduleCancelled,
		fmt.Sprintf("Recurring schedule %s is already cancelled", scheduleID),
		ErrScheduleCancelled,
	)
}

func WrapMissingCredentials(field string) *BusinessError {
	return NewBusinessError(
		ErrCodeMissingCredentials,
		fmt.Sprintf("Missing Xero environment configuration: %s", field),
		ErrMissingCredentials,
	)
}

func WrapInvalidOAuthState() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidOAuthState,
		"Unknown or expired OAuth state",
		ErrInvalidOAuthState,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
