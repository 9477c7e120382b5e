// Package memory provides an in-process store.UserStore. It backs the
// server when USERS_DATABASE_STORE=memory and the HTTP tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/users-api/internal/domain"
	"github.com/phrazzld/users-api/internal/store"
)

// UserStore is a map-backed store.UserStore. IDs start at 1 and are never
// reused, even after a delete.
type UserStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]domain.User
	now    func() time.Time
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore returns an empty in-memory store.
func NewUserStore() *UserStore {
	return &UserStore{
		nextID: 1,
		users:  make(map[int64]domain.User),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create implements store.UserStore.
func (s *UserStore) Create(ctx context.Context, patch domain.UserPatch) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := domain.NewUser(patch)
	if s.emailTaken(u.Email, 0) {
		return nil, fmt.Errorf("create user: %w", store.ErrEmailExists)
	}

	u.ID = s.nextID
	s.nextID++
	u.CreatedAt = s.now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u

	return &u, nil
}

// List implements store.UserStore.
func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// GetByID implements store.UserStore.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

// Update implements store.UserStore.
func (s *UserStore) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	if patch.Email != nil && s.emailTaken(*patch.Email, id) {
		return nil, fmt.Errorf("update user %d: %w", id, store.ErrEmailExists)
	}

	patch.Apply(&u)
	if !patch.IsEmpty() {
		u.UpdatedAt = s.now()
	}
	s.users[id] = u

	return &u, nil
}

// Delete implements store.UserStore.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// emailTaken reports whether a user other than except owns email.
// Callers must hold s.mu.
func (s *UserStore) emailTaken(email string, except int64) bool {
	for id, u := range s.users {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}
