package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/users-api/internal/api/shared"
	"github.com/phrazzld/users-api/internal/domain"
	"github.com/phrazzld/users-api/internal/store"
)

// Client-facing messages. Internal failures never expose the underlying
// error; each operation has its own generic message.
const (
	msgUserNotFound  = "User not found"
	msgCreateFailed  = "Failed to create user"
	msgGetFailed     = "Failed to get users"
	msgUpdateFailed  = "Failed to update user"
	msgDeleteFailed  = "Failed to delete user"
	msgInvalidInput  = "Invalid request"
	msgDeleteSuccess = "Delete user : %d successfully"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type. A malformed path ID is indistinguishable from a missing
// user. Duplicate emails are not singled out and surface as 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidID),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client sees for err. failureMsg
// is used for internal failures.
func GetSafeErrorMessage(err error, failureMsg string) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusNotFound:
		return msgUserNotFound
	case http.StatusBadRequest:
		var ve *domain.ValidationError
		if errors.As(err, &ve) && ve.Message != "" {
			return ve.Message
		}
		return msgInvalidInput
	default:
		return failureMsg
	}
}

// HandleAPIError writes the response for err and logs the detail.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, failureMsg string) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err, failureMsg), err)
}
