package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/nerrad567/homegate/internal/reading"
	"github.com/nerrad567/homegate/internal/store"
)

// usersRoot is the store path holding user records.
const usersRoot = "users"

// Fields touched on login and logout.
const (
	fieldLastLogin  = "last_login"
	fieldLastLogout = "last_logout"
)

// UserRepository defines the persistence the service needs.
type UserRepository interface {
	// Get returns the user; the boolean is false when it does not exist.
	Get(ctx context.Context, username string) (User, bool, error)
	Create(ctx context.Context, username string, user User) error
	Touch(ctx context.Context, username, field string, ts reading.Timestamp) error
	Count(ctx context.Context) (int, error)
}

// StoreUserRepository keeps users in the document store.
type StoreUserRepository struct {
	store store.Store
}

// NewUserRepository creates a store-backed user repository.
func NewUserRepository(s store.Store) *StoreUserRepository {
	return &StoreUserRepository{store: s}
}

// Get implements UserRepository. Usernames that cannot name a record are
// reported as absent.
func (r *StoreUserRepository) Get(ctx context.Context, username string) (User, bool, error) {
	if !IsValidUsername(username) {
		return User{}, false, nil
	}

	raw, err := r.store.Get(ctx, store.Join(usersRoot, username))
	if errors.Is(err, store.ErrNotFound) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, fmt.Errorf("reading user %s: %w", username, err)
	}

	var u User
	if err := store.Decode(raw, &u); err != nil {
		return User{}, false, fmt.Errorf("user %s: %w", username, err)
	}
	return u, true, nil
}

// Create implements UserRepository.
func (r *StoreUserRepository) Create(ctx context.Context, username string, user User) error {
	if !IsValidUsername(username) {
		return fmt.Errorf("%w: invalid username %q", ErrMissingField, username)
	}
	if _, exists, err := r.Get(ctx, username); err != nil {
		return err
	} else if exists {
		return fmt.Errorf("%w: %s", ErrUserExists, username)
	}

	if err := r.store.Set(ctx, store.Join(usersRoot, username), user); err != nil {
		return fmt.Errorf("creating user %s: %w", username, err)
	}
	return nil
}

// Touch sets one timestamp field on the user record.
func (r *StoreUserRepository) Touch(ctx context.Context, username, field string, ts reading.Timestamp) error {
	if err := r.store.Update(ctx, store.Join(usersRoot, username), map[string]any{field: ts}); err != nil {
		return fmt.Errorf("updating %s of %s: %w", field, username, err)
	}
	return nil
}

// Count implements UserRepository.
func (r *StoreUserRepository) Count(ctx context.Context) (int, error) {
	children, err := r.store.Children(ctx, usersRoot)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return len(children), nil
}
