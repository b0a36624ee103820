package handler

import (
	"errors"
	"net/http"

	"github.com/auroramotors/rental-billing/pkg/response"

	customError "github.com/auroramotors/rental-billing/pkg/errors"
)

// writeBusinessError maps a service error onto an HTTP status. Anything that
// is not a recognized business error reports as a 500.
func writeBusinessError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "Internal server error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeInvalidScheduleInput, customError.ErrCodeInvalidOAuthState:
		response.BadRequest(w, businessErr.Message, businessErr.Err)
	case customError.ErrCodeScheduleNotFound:
		response.NotFound(w, businessErr.Message)
	case customError.ErrCodeScheduleCancelled:
		response.Conflict(w, businessErr.Message, businessErr.Err)
	default:
		response.InternalServerError(w, businessErr.Message, businessErr.Err)
	}
}
