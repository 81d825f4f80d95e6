package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/homegate/internal/auth"
	"github.com/nerrad567/homegate/internal/catalog"
	"github.com/nerrad567/homegate/internal/store"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Common error codes.
const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeNotFound     = "not_found"
	ErrCodeUnauthorized = "unauthorised"
	ErrCodeInternal     = "internal_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message, details string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message, "")
}

// writeInternalError writes a 500 error response carrying err in details.
func writeInternalError(w http.ResponseWriter, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message, details)
}

// writeServiceError maps a domain error to its response.
//
//   - catalog.ErrInvalid, store.ErrInvalidPath, auth.ErrMissingField: 400
//   - auth.ErrInvalidCredentials: 401
//   - store.ErrNotFound: 404
//   - anything else: 500 with the error text in details
//
// message is used for the 500 case; the other cases report the error itself.
func writeServiceError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, catalog.ErrInvalid),
		errors.Is(err, store.ErrInvalidPath),
		errors.Is(err, auth.ErrMissingField):
		writeBadRequest(w, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid username or password", "")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, ErrCodeNotFound, err.Error(), "")
	default:
		writeInternalError(w, message, err)
	}
}
