package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Store is the document store used by the domain services.
// The SQLite implementation is the production backend; tests may substitute
// their own implementation to inject failures.
type Store interface {
	// Get returns the JSON value at path.
	// Returns ErrNotFound if nothing is stored at or below path.
	Get(ctx context.Context, path string) (json.RawMessage, error)

	// Set replaces the value at path, including anything stored below it.
	Set(ctx context.Context, path string, value any) error

	// Push stores value under a newly generated child key of path and
	// returns the key.
	Push(ctx context.Context, path string, value any) (string, error)

	// Update merges fields into the object at path, leaving other fields intact.
	Update(ctx context.Context, path string, fields map[string]any) error

	// Delete removes path and everything below it. Deleting a missing path
	// is not an error.
	Delete(ctx context.Context, path string) error

	// Children returns the direct children of path in insertion order.
	// A missing path yields an empty slice.
	Children(ctx context.Context, path string) ([]Child, error)
}

// Child is one direct child of a path.
type Child struct {
	Key   string
	Value json.RawMessage
}

// reservedChars may not appear in a path segment.
const reservedChars = ".#$[]"

// SplitPath validates path and returns its segments.
// Leading and trailing slashes are ignored.
func SplitPath(path string) ([]string, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	segments := strings.Split(trimmed, "/")
	for _, seg := range segments {
		if err := validateSegment(seg); err != nil {
			return nil, fmt.Errorf("%w: %q", err, path)
		}
	}
	return segments, nil
}

// Join builds a path from segments.
func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

func validateSegment(seg string) error {
	if seg == "" {
		return fmt.Errorf("%w: empty segment", ErrInvalidPath)
	}
	if strings.ContainsAny(seg, reservedChars) {
		return fmt.Errorf("%w: reserved character in segment", ErrInvalidPath)
	}
	return nil
}

// Decode unmarshals a stored value into v. Numbers decode as json.Number
// when v is an interface or map so integer readings keep their exact form.
func Decode(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding stored value: %w", err)
	}
	return nil
}
