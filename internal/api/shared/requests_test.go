package shared

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/users-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBody(t *testing.T) {
	t.Run("reads the whole body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":"a@b.com"}`))
		w := httptest.NewRecorder()

		body, err := ReadBody(w, req)

		require.NoError(t, err)
		assert.Equal(t, `{"email":"a@b.com"}`, string(body))
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/users", http.NoBody)
		w := httptest.NewRecorder()

		body, err := ReadBody(w, req)

		require.NoError(t, err)
		assert.Empty(t, body)
	})

	t.Run("oversized body is a validation error", func(t *testing.T) {
		payload := bytes.Repeat([]byte("a"), int(MaxBodyBytes)+1)
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(payload))
		w := httptest.NewRecorder()

		_, err := ReadBody(w, req)

		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
