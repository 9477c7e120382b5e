package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/users-api/internal/store"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "users",
		ColumnName:     "email",
		ConstraintName: "users_email_key",
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantNil bool
	}{
		{name: "nil", err: nil, wantNil: true},
		{name: "sql no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "gorm record not found", err: gorm.ErrRecordNotFound, wantIs: store.ErrNotFound},
		{name: "unique violation", err: newPgError(uniqueViolationCode), wantIs: store.ErrDuplicate},
		{name: "check violation", err: newPgError(checkViolationCode), wantIs: store.ErrInvalidEntity},
		{name: "not null violation", err: newPgError(notNullViolationCode), wantIs: store.ErrInvalidEntity},
		{
			name:   "wrapped unique violation",
			err:    fmt.Errorf("insert: %w", newPgError(uniqueViolationCode)),
			wantIs: store.ErrDuplicate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.err)
			if tc.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.wantIs)
		})
	}

	t.Run("unmapped errors pass through", func(t *testing.T) {
		orig := errors.New("connection refused")
		assert.Same(t, orig, MapError(orig))

		other := newPgError("40001")
		assert.Same(t, error(other), MapError(other))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(newPgError(uniqueViolationCode)))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", newPgError(uniqueViolationCode))))
	assert.False(t, IsUniqueViolation(newPgError(checkViolationCode)))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(sql.ErrNoRows))
	assert.True(t, IsNotFoundError(gorm.ErrRecordNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("get: %w", gorm.ErrRecordNotFound)))
	assert.False(t, IsNotFoundError(errors.New("other")))
}

func TestMapUniqueViolation(t *testing.T) {
	err := MapUniqueViolation(newPgError(uniqueViolationCode), store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrDuplicate)

	err = MapUniqueViolation(sql.ErrNoRows, store.ErrEmailExists)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NotErrorIs(t, err, store.ErrEmailExists)

	err = MapUniqueViolation(newPgError(uniqueViolationCode), nil)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}
