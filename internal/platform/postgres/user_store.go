package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/users-api/internal/domain"
	"github.com/phrazzld/users-api/internal/platform/logger"
	"github.com/phrazzld/users-api/internal/store"
	"gorm.io/gorm"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// The GORM handle is owned by the caller.
func NewPostgresUserStore(db *gorm.DB, logger *slog.Logger) *PostgresUserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, patch domain.UserPatch) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user := domain.NewUser(patch)
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		log.Debug("failed to insert user", slog.Bool("unique_violation", IsUniqueViolation(err)))
		return nil, fmt.Errorf("create user: %w", MapUniqueViolation(err, store.ErrEmailExists))
	}

	log.Debug("user created", slog.Int64("user_id", user.ID))
	return &user, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", MapError(err))
	}
	return users, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, mapUserError(err))
	}
	return &user, nil
}

// Update implements store.UserStore.Update. The column update and the
// read-back run in one transaction so the returned row is the one written.
func (s *PostgresUserStore) Update(
	ctx context.Context,
	id int64,
	patch domain.UserPatch,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !patch.IsEmpty() {
			res := tx.Model(&domain.User{}).Where("id = ?", id).Updates(updateColumns(patch))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return store.ErrUserNotFound
			}
		}
		return tx.First(&user, id).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, mapUserError(err))
	}

	log.Debug("user updated", slog.Int64("user_id", id), slog.Bool("social_replaced", patch.Social != nil))
	return &user, nil
}

// Delete implements store.UserStore.Delete
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, MapError(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete user %d: %w", id, store.ErrUserNotFound)
	}
	return nil
}

// updateColumns lists the columns a patch writes. A supplied Social always
// writes all four link columns so the stored sub-object is replaced.
func updateColumns(patch domain.UserPatch) map[string]interface{} {
	cols := make(map[string]interface{}, 7)
	if patch.Email != nil {
		cols["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		cols["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		cols["last_name"] = *patch.LastName
	}
	if patch.Social != nil {
		cols["social_facebook"] = patch.Social.Facebook
		cols["social_twitter"] = patch.Social.Twitter
		cols["social_github"] = patch.Social.GitHub
		cols["social_website"] = patch.Social.Website
	}
	return cols
}

// mapUserError narrows generic store errors to their user-specific forms.
func mapUserError(err error) error {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return err
	case IsNotFoundError(err):
		return fmt.Errorf("%w: %v", store.ErrUserNotFound, err)
	default:
		return MapUniqueViolation(err, store.ErrEmailExists)
	}
}
