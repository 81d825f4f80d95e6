package store

import "errors"

// Domain errors for the store package.
//
//	if errors.Is(err, store.ErrNotFound) {
//	    // nothing stored at the path
//	}
var (
	// ErrNotFound is returned by Get when nothing is stored at or below a path.
	ErrNotFound = errors.New("store: not found")

	// ErrInvalidPath is returned for empty paths, empty segments, or
	// segments containing reserved characters.
	ErrInvalidPath = errors.New("store: invalid path")
)
