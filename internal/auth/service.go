package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/nerrad567/homegate/internal/reading"
)

// Service logs users in and out.
type Service struct {
	users UserRepository
	now   reading.Clock
}

// NewService creates an auth service. A nil clock uses time.Now.
func NewService(users UserRepository, clock reading.Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{users: users, now: clock}
}

// Login checks the password of username and records last_login.
// Empty strings are ordinary credentials and fail like any other mismatch;
// callers reject absent fields before calling.
//
// Returns:
//   - Profile: username, name, and role ("user" when unset)
//   - error: ErrInvalidCredentials or a store failure
func (s *Service) Login(ctx context.Context, username, password string) (Profile, error) {
	u, ok, err := s.users.Get(ctx, username)
	if err != nil {
		return Profile{}, err
	}
	if !ok || password == "" || subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
		return Profile{}, ErrInvalidCredentials
	}

	if err := s.users.Touch(ctx, username, fieldLastLogin, reading.FormatTime(s.now())); err != nil {
		return Profile{}, err
	}

	role := u.Role
	if role == "" {
		role = RoleUser
	}
	return Profile{Username: username, Name: u.Name, Role: role}, nil
}

// Logout records last_logout when the user exists. Unknown users are not
// an error.
func (s *Service) Logout(ctx context.Context, username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrMissingField)
	}

	_, ok, err := s.users.Get(ctx, username)
	if err != nil || !ok {
		return err
	}
	return s.users.Touch(ctx, username, fieldLastLogout, reading.FormatTime(s.now()))
}
