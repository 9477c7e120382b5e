package store

import (
	"context"

	"github.com/phrazzld/users-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user built from a validated create patch and
	// returns it with its newly assigned ID.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, patch domain.UserPatch) (*domain.User, error)

	// List returns every user ordered by ID. The slice is empty, not nil,
	// when no users exist.
	List(ctx context.Context) ([]domain.User, error)

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// Update merges the fields present in patch into the stored user and
	// returns the result. A supplied Social replaces the stored one.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if the new email belongs to another user.
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)

	// Delete permanently removes a user.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error
}
