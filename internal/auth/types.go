package auth

import (
	"regexp"

	"github.com/nerrad567/homegate/internal/reading"
)

// usernamePattern allows characters that are safe as a store path segment.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// IsValidUsername reports whether username can name a user record.
func IsValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// Role is a household role. It is reported to clients and not enforced by
// the gateway.
type Role string

// Roles.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// User is the record stored at users/{username}.
type User struct {
	Password   string            `json:"password"`
	Name       string            `json:"name,omitempty"`
	Role       Role              `json:"role,omitempty"`
	LastLogin  reading.Timestamp `json:"last_login,omitempty"`
	LastLogout reading.Timestamp `json:"last_logout,omitempty"`
}

// Profile is what a successful login returns.
type Profile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}
