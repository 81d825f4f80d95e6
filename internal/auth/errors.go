package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("auth: invalid username or password")

	// ErrMissingField is returned when a required request field is empty.
	ErrMissingField = errors.New("auth: missing field")

	// ErrUserExists is returned when creating a user that already exists.
	ErrUserExists = errors.New("auth: user already exists")
)
