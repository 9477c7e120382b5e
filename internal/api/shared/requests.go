package shared

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/phrazzld/users-api/internal/domain"
)

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes int64 = 1 << 20

// ReadBody reads the full request body, refusing anything larger than
// MaxBodyBytes. An oversized body is reported as a validation error.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, domain.NewValidationError("",
				fmt.Sprintf("request body must not exceed %d bytes", maxErr.Limit), domain.ErrValidation)
		}
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return body, nil
}
