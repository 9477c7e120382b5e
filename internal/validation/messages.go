package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/users-api/internal/domain"
)

const msgInvalidJSON = "invalid JSON payload"

// fieldError converts a validator failure into the client-facing message.
func fieldError(fe validator.FieldError) *domain.ValidationError {
	field := fieldPath(fe.Namespace())

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "email":
		msg = "must be a valid email"
	case "min":
		msg = "is not allowed to be empty"
	case "url":
		msg = "must be a valid uri"
	default:
		msg = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}

	return domain.NewValidationError(field, fmt.Sprintf("%q %s", field, msg), nil)
}

// fieldPath drops the request type name from a validator namespace,
// "updateUserRequest.social.twitter" becomes "social.twitter".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// decodeError converts a JSON decoding failure into a validation error.
func decodeError(err error) *domain.ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "value"
		}
		return domain.NewValidationError(
			field,
			fmt.Sprintf("%q must be %s", field, describeKind(typeErr.Type)),
			domain.ErrInvalidFormat,
		)
	}

	return domain.NewValidationError("", msgInvalidJSON, domain.ErrInvalidFormat)
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "of a different type"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Struct, reflect.Map:
		return "of type object"
	default:
		return fmt.Sprintf("of type %s", t.Kind())
	}
}
