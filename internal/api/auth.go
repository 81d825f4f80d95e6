package api

import (
	"net/http"
)

// handleLogin checks a username and password against the stored users.
//
// Request body: {"username": "...", "password": "..."}
//
// Absent or non-string fields are 400. Empty strings are checked like any
// other credentials and fail with 401.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	if err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	username, hasUser := presentString(body, "username")
	password, hasPassword := presentString(body, "password")
	if !hasUser || !hasPassword {
		writeBadRequest(w, "username and password are required")
		return
	}

	profile, err := s.auth.Login(r.Context(), username, password)
	if err != nil {
		writeServiceError(w, err, "login failed")
		return
	}

	s.logger.Info("user logged in", "username", profile.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    profile,
	})
}

// handleLogout records a logout. Unknown users are not an error.
//
// Request body: {"username": "..."}
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	if err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	username, _ := stringField(body, "username")

	if err := s.auth.Logout(r.Context(), username); err != nil {
		writeServiceError(w, err, "logout failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Logout successful",
	})
}
