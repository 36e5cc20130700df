package repository

import (
	"context"
	"errors"

	"github.com/taskdesk/taskdesk-go/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository handles the single stored user record.
type UserRepository struct {
	store Store
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store Store) *UserRepository {
	return &UserRepository{store: store}
}

// Get returns the stored user. A missing or corrupt record is ErrUserNotFound.
func (r *UserRepository) Get(ctx context.Context) (*model.User, error) {
	user := &model.User{}
	ok, err := loadJSON(ctx, r.store, KeyUser, user)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Save replaces the stored user record.
func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	return saveJSON(ctx, r.store, KeyUser, user)
}

// Remove deletes the stored user record.
func (r *UserRepository) Remove(ctx context.Context) error {
	return r.store.Remove(ctx, KeyUser)
}

// SessionRepository handles the session flag and last login stamp.
type SessionRepository struct {
	store Store
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(store Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// IsAuthenticated reports whether the session flag is set.
func (r *SessionRepository) IsAuthenticated(ctx context.Context) (bool, error) {
	v, ok, err := r.store.Get(ctx, KeyAuth)
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}

// LastLogin returns the stored last login stamp, or "" when absent.
func (r *SessionRepository) LastLogin(ctx context.Context) (string, error) {
	v, _, err := r.store.Get(ctx, KeyLastLogin)
	return v, err
}

// Begin sets the session flag and records the login time.
func (r *SessionRepository) Begin(ctx context.Context, lastLogin string) error {
	if err := r.store.Set(ctx, KeyAuth, "true"); err != nil {
		return err
	}
	return r.store.Set(ctx, KeyLastLogin, lastLogin)
}

// End clears the session flag and last login stamp.
func (r *SessionRepository) End(ctx context.Context) error {
	if err := r.store.Remove(ctx, KeyAuth); err != nil {
		return err
	}
	return r.store.Remove(ctx, KeyLastLogin)
}

// Clear drops the session flag only.
func (r *SessionRepository) Clear(ctx context.Context) error {
	return r.store.Remove(ctx, KeyAuth)
}
