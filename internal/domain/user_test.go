package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestUserPatch_Apply(t *testing.T) {
	base := User{
		ID:        7,
		Email:     "a@b.com",
		FirstName: "A",
		LastName:  "B",
		Social:    Social{Twitter: "https://twitter.com/a", GitHub: "https://github.com/a"},
	}

	tests := []struct {
		name  string
		patch UserPatch
		want  User
	}{
		{
			name:  "empty patch leaves user untouched",
			patch: UserPatch{},
			want:  base,
		},
		{
			name:  "first name only",
			patch: UserPatch{FirstName: strPtr("C")},
			want: User{
				ID: 7, Email: "a@b.com", FirstName: "C", LastName: "B",
				Social: Social{Twitter: "https://twitter.com/a", GitHub: "https://github.com/a"},
			},
		},
		{
			name:  "social replaces the whole sub-object",
			patch: UserPatch{Social: &Social{Website: "https://a.dev"}},
			want: User{
				ID: 7, Email: "a@b.com", FirstName: "A", LastName: "B",
				Social: Social{Website: "https://a.dev"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := base
			tc.patch.Apply(&u)
			assert.Equal(t, tc.want, u)
		})
	}
}

func TestUserPatch_IsEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.IsEmpty())
	assert.False(t, UserPatch{Social: &Social{}}.IsEmpty())
	assert.False(t, UserPatch{Email: strPtr("")}.IsEmpty())
}

func TestNewUser(t *testing.T) {
	u := NewUser(UserPatch{
		Email:     strPtr("a@b.com"),
		FirstName: strPtr("A"),
		LastName:  strPtr("B"),
	})

	assert.Zero(t, u.ID, "ID is assigned by the store")
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, Social{}, u.Social)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("email", `"email" is required`, nil)

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, `validation failed on email: "email" is required`, err.Error())

	var ve *ValidationError
	assert.True(t, errors.As(error(err), &ve))
	assert.Equal(t, "email", ve.Field)

	noField := NewValidationError("", "invalid JSON payload", ErrInvalidID)
	assert.True(t, errors.Is(noField, ErrInvalidID))
	assert.Equal(t, "validation failed: invalid JSON payload", noField.Error())
}
