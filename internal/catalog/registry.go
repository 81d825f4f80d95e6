package catalog

import (
	"fmt"
	"slices"
)

// Registry is the immutable table of sensor and command kinds.
// All methods are safe for concurrent use.
type Registry struct {
	sensors      map[string]Descriptor
	commands     map[string]Descriptor
	sensorOrder  []string
	commandOrder []string
	rooms        []string
}

// NewRegistry builds a registry from sensor and command descriptors, in the
// order they should be listed.
//
// Returns ErrBadDescriptor if a kind is duplicated, has no rooms, a binary
// kind has no values, a float range is inverted, or integer bands do not
// partition [0, ∞) in ascending order.
func NewRegistry(sensors, commands []Descriptor) (*Registry, error) {
	r := &Registry{
		sensors:  make(map[string]Descriptor, len(sensors)),
		commands: make(map[string]Descriptor, len(commands)),
	}

	for _, d := range sensors {
		if err := checkDescriptor(d); err != nil {
			return nil, fmt.Errorf("sensor %q: %w", d.Kind, err)
		}
		if _, dup := r.sensors[d.Kind]; dup {
			return nil, fmt.Errorf("%w: duplicate sensor kind %q", ErrBadDescriptor, d.Kind)
		}
		r.sensors[d.Kind] = cloneDescriptor(d)
		r.sensorOrder = append(r.sensorOrder, d.Kind)

		for _, room := range d.Rooms {
			if !slices.Contains(r.rooms, room) {
				r.rooms = append(r.rooms, room)
			}
		}
	}

	for _, d := range commands {
		if err := checkDescriptor(d); err != nil {
			return nil, fmt.Errorf("command %q: %w", d.Kind, err)
		}
		if _, dup := r.commands[d.Kind]; dup {
			return nil, fmt.Errorf("%w: duplicate command kind %q", ErrBadDescriptor, d.Kind)
		}
		r.commands[d.Kind] = cloneDescriptor(d)
		r.commandOrder = append(r.commandOrder, d.Kind)
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(sensors, commands []Descriptor) *Registry {
	r, err := NewRegistry(sensors, commands)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRegistry = MustNewRegistry(DefaultSensors(), DefaultCommands())

// Default returns the built-in registry.
func Default() *Registry {
	return defaultRegistry
}

// Sensor returns the descriptor of a sensor kind.
func (r *Registry) Sensor(kind string) (Descriptor, bool) {
	d, ok := r.sensors[kind]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(d), true
}

// Command returns the descriptor of a command kind.
func (r *Registry) Command(kind string) (Descriptor, bool) {
	d, ok := r.commands[kind]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(d), true
}

// IsRoomValid reports whether kind exists and is installed in room.
func (r *Registry) IsRoomValid(kind, room string, isCommand bool) bool {
	table := r.sensors
	if isCommand {
		table = r.commands
	}
	d, ok := table[kind]
	return ok && d.HasRoom(room)
}

// SensorKinds returns the sensor kinds in registry order.
func (r *Registry) SensorKinds() []string {
	return slices.Clone(r.sensorOrder)
}

// CommandKinds returns the command kinds in registry order.
func (r *Registry) CommandKinds() []string {
	return slices.Clone(r.commandOrder)
}

// Rooms returns every room that has at least one sensor, in the order
// they first appear in the sensor table.
func (r *Registry) Rooms() []string {
	return slices.Clone(r.rooms)
}

// SensorsInRoom returns the sensor kinds installed in room, in registry order.
func (r *Registry) SensorsInRoom(room string) []string {
	var kinds []string
	for _, kind := range r.sensorOrder {
		if r.sensors[kind].HasRoom(room) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func checkDescriptor(d Descriptor) error {
	if d.Kind == "" {
		return fmt.Errorf("%w: empty kind", ErrBadDescriptor)
	}
	if len(d.Rooms) == 0 {
		return fmt.Errorf("%w: no rooms", ErrBadDescriptor)
	}

	switch d.Domain {
	case DomainBinary:
		if len(d.Values) == 0 {
			return fmt.Errorf("%w: binary kind without values", ErrBadDescriptor)
		}
	case DomainFloat:
		if d.Min > d.Max {
			return fmt.Errorf("%w: range min %v > max %v", ErrBadDescriptor, d.Min, d.Max)
		}
	case DomainInteger:
		return checkBands(d.Bands)
	default:
		return fmt.Errorf("%w: unknown domain %q", ErrBadDescriptor, d.Domain)
	}
	return nil
}

// checkBands verifies bands partition [0, ∞): ascending, starting at 0,
// contiguous, with only the last band unbounded.
func checkBands(bands []Band) error {
	if len(bands) == 0 {
		return nil
	}

	next := int64(0)
	for i, b := range bands {
		if b.Severity == "" {
			return fmt.Errorf("%w: band %d has no severity", ErrBadDescriptor, i)
		}
		if b.Min != next {
			return fmt.Errorf("%w: band %s starts at %d, want %d", ErrBadDescriptor, b.Severity, b.Min, next)
		}
		last := i == len(bands)-1
		if b.Unbounded != last {
			return fmt.Errorf("%w: only the last band may be unbounded", ErrBadDescriptor)
		}
		if !b.Unbounded {
			if b.Max < b.Min {
				return fmt.Errorf("%w: band %s max %d < min %d", ErrBadDescriptor, b.Severity, b.Max, b.Min)
			}
			next = b.Max + 1
		}
	}
	return nil
}

func cloneDescriptor(d Descriptor) Descriptor {
	d.Values = slices.Clone(d.Values)
	d.Bands = slices.Clone(d.Bands)
	d.Rooms = slices.Clone(d.Rooms)
	return d
}
