package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Request is a single reading or command to validate.
type Request struct {
	Room string
	Kind string

	// Value is the decoded JSON value. Numbers should arrive as json.Number
	// (decode with UseNumber) so integer literals can be told from floats.
	Value any

	// Present is false when the body had no value field at all, which is
	// distinct from an explicit null.
	Present bool
}

// Outcome is an accepted request.
type Outcome struct {
	// Value is the normalised value: string for binary kinds, float64 for
	// float kinds, int64 for integer kinds.
	Value any

	// Severity is set for kinds with severity bands.
	Severity Severity
}

// Validate checks req against the sensor table, or the command table when
// isCommand is set. Every rejection wraps ErrInvalid.
func (r *Registry) Validate(req Request, isCommand bool) (Outcome, error) {
	d, err := r.Lookup(req.Kind, req.Room, isCommand)
	if err != nil {
		return Outcome{}, err
	}
	if !req.Present {
		return Outcome{}, fmt.Errorf("%w: value field is required", ErrMissingField)
	}

	switch d.Domain {
	case DomainBinary:
		return validateBinary(d, req.Value)
	case DomainFloat:
		return validateFloat(d, req.Value)
	case DomainInteger:
		return validateInteger(d, req.Value)
	default:
		return Outcome{}, fmt.Errorf("%w: %s has unknown domain %q", ErrInvalid, req.Kind, d.Domain)
	}
}

// Lookup returns the descriptor of kind after checking it is installed in
// room. Errors wrap ErrUnknownKind or ErrRoomMismatch.
func (r *Registry) Lookup(kind, room string, isCommand bool) (Descriptor, error) {
	table, order, what := r.sensors, r.sensorOrder, "sensor"
	if isCommand {
		table, order, what = r.commands, r.commandOrder, "command"
	}

	d, ok := table[kind]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q, supported %ss: %s",
			ErrUnknownKind, kind, what, strings.Join(order, ", "))
	}
	if !d.HasRoom(room) {
		return Descriptor{}, fmt.Errorf("%w: %s %s is not installed in room %q",
			ErrRoomMismatch, kind, what, room)
	}
	return cloneDescriptor(d), nil
}

func validateBinary(d Descriptor, v any) (Outcome, error) {
	s, ok := v.(string)
	if ok {
		for _, allowed := range d.Values {
			if s == allowed {
				return Outcome{Value: s}, nil
			}
		}
	}
	return Outcome{}, fmt.Errorf("%w: value must be one of [%s]", ErrInvalidValue, strings.Join(d.Values, ", "))
}

func validateFloat(d Descriptor, v any) (Outcome, error) {
	f, ok := asFloat(v)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: a number is required", ErrWrongType)
	}
	if f < d.Min || f > d.Max {
		return Outcome{}, fmt.Errorf("%w: value must be between %v and %v", ErrOutOfRange, d.Min, d.Max)
	}
	return Outcome{Value: f}, nil
}

func validateInteger(d Descriptor, v any) (Outcome, error) {
	n, err := asInteger(v)
	if err != nil {
		return Outcome{}, err
	}
	if len(d.Bands) == 0 {
		return Outcome{Value: n}, nil
	}

	sev, ok := Classify(d.Bands, n)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s level must be %d or greater", ErrOutOfRange, d.Kind, d.Bands[0].Min)
	}
	return Outcome{Value: n, Severity: sev}, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case float64:
		return n, !math.IsInf(n, 0) && !math.IsNaN(n)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// asInteger accepts integral literals only; 5.0 and 5e2 are rejected like
// any other non-integer. Literals too large for int64 are out of range.
func asInteger(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		s := n.String()
		if strings.ContainsAny(s, ".eE") {
			return 0, fmt.Errorf("%w: an integer is required", ErrWrongType)
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s does not fit in 64 bits", ErrOutOfRange, s)
		}
		if err != nil {
			return 0, fmt.Errorf("%w: an integer is required", ErrWrongType)
		}
		return i, nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: an integer is required", ErrWrongType)
	}
}
