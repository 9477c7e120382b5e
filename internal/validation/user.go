package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/users-api/internal/domain"
)

// Mode selects which rule set applies to a payload.
type Mode int

const (
	// ModeCreate requires email, firstName and lastName.
	ModeCreate Mode = iota
	// ModeUpdate makes every top-level field optional.
	ModeUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type socialRequest struct {
	Facebook *string `json:"facebook" validate:"omitnil,min=1,url"`
	Twitter  *string `json:"twitter"  validate:"omitnil,min=1,url"`
	GitHub   *string `json:"github"   validate:"omitnil,min=1,url"`
	Website  *string `json:"website"  validate:"omitnil,min=1,url"`
}

type createUserRequest struct {
	Email     *string        `json:"email"     validate:"required,email"`
	FirstName *string        `json:"firstName" validate:"required,min=1"`
	LastName  *string        `json:"lastName"  validate:"required,min=1"`
	Social    *socialRequest `json:"social"`
}

type updateUserRequest struct {
	Email     *string        `json:"email"     validate:"omitnil,email"`
	FirstName *string        `json:"firstName" validate:"omitnil,min=1"`
	LastName  *string        `json:"lastName"  validate:"omitnil,min=1"`
	Social    *socialRequest `json:"social"`
}

// Validate checks payload against the rules for mode. On success it returns
// a patch holding only the recognized fields the caller supplied. On failure
// the error is a *domain.ValidationError describing the first violation.
//
// An empty payload is treated as an empty object and a JSON null field is
// treated as absent.
func Validate(payload []byte, mode Mode) (domain.UserPatch, error) {
	switch mode {
	case ModeCreate:
		var req createUserRequest
		if err := decodeAndValidate(payload, &req); err != nil {
			return domain.UserPatch{}, err
		}
		return buildPatch(req.Email, req.FirstName, req.LastName, req.Social), nil
	case ModeUpdate:
		var req updateUserRequest
		if err := decodeAndValidate(payload, &req); err != nil {
			return domain.UserPatch{}, err
		}
		return buildPatch(req.Email, req.FirstName, req.LastName, req.Social), nil
	default:
		return domain.UserPatch{}, fmt.Errorf("unsupported validation mode: %s", mode)
	}
}

func decodeAndValidate(payload []byte, dst any) error {
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = []byte("{}")
	}

	if verr := checkKeys(payload); verr != nil {
		return verr
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return domain.NewValidationError("", msgInvalidJSON, domain.ErrInvalidFormat)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return fmt.Errorf("validate user payload: %w", err)
	}
	return nil
}

func buildPatch(email, firstName, lastName *string, social *socialRequest) domain.UserPatch {
	patch := domain.UserPatch{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	}
	if social != nil {
		patch.Social = &domain.Social{
			Facebook: deref(social.Facebook),
			Twitter:  deref(social.Twitter),
			GitHub:   deref(social.GitHub),
			Website:  deref(social.Website),
		}
	}
	return patch
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
