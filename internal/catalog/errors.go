package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation rejection.
var ErrInvalid = errors.New("catalog: invalid")

// Validation rejections. Each wraps ErrInvalid.
var (
	// ErrUnknownKind is returned when the kind is not in the registry.
	ErrUnknownKind = fmt.Errorf("%w: unknown kind", ErrInvalid)

	// ErrRoomMismatch is returned when the kind is not installed in the room.
	ErrRoomMismatch = fmt.Errorf("%w: room mismatch", ErrInvalid)

	// ErrMissingField is returned when the request carries no value.
	ErrMissingField = fmt.Errorf("%w: missing value", ErrInvalid)

	// ErrInvalidValue is returned when a binary value is not an allowed literal.
	ErrInvalidValue = fmt.Errorf("%w: value not allowed", ErrInvalid)

	// ErrWrongType is returned when a numeric kind receives a non-numeric
	// or non-integral value.
	ErrWrongType = fmt.Errorf("%w: wrong value type", ErrInvalid)

	// ErrOutOfRange is returned when a number is outside the range or bands.
	ErrOutOfRange = fmt.Errorf("%w: value out of range", ErrInvalid)
)

// ErrBadDescriptor is returned by NewRegistry for malformed descriptors.
var ErrBadDescriptor = errors.New("catalog: bad descriptor")
