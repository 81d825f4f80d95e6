package catalog

import "encoding/json"

// Domain is the value domain of a sensor or command kind.
type Domain string

// Value domains.
const (
	DomainBinary  Domain = "binary"
	DomainFloat   Domain = "float"
	DomainInteger Domain = "integer"
)

// Severity is the label of the band a reading falls in.
type Severity string

// Severity levels, lowest first.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Escalates reports whether a reading with this severity raises an alert.
func (s Severity) Escalates() bool {
	return s == SeverityHigh
}

// Band is an inclusive integer interval labelled with a severity.
// An Unbounded band has no upper limit and ignores Max.
type Band struct {
	Severity  Severity
	Min       int64
	Max       int64
	Unbounded bool
}

// Contains reports whether v falls inside the band.
func (b Band) Contains(v int64) bool {
	return v >= b.Min && (b.Unbounded || v <= b.Max)
}

// Descriptor describes one sensor or command kind.
type Descriptor struct {
	Kind        string
	Domain      Domain
	Description string

	// Values lists the accepted literals of a binary kind.
	Values []string

	// Model names the hardware for numeric sensors, e.g. "SHT35".
	Model string

	// Min and Max bound a float kind, inclusive.
	Min float64
	Max float64

	// Bands classify an integer kind. Empty means any integer is accepted.
	Bands []Band

	// Rooms lists the rooms the kind is installed in.
	Rooms []string
}

// HasRoom reports whether the kind is installed in room.
func (d Descriptor) HasRoom(room string) bool {
	for _, r := range d.Rooms {
		if r == room {
			return true
		}
	}
	return false
}

// MarshalJSON renders the descriptor the way clients expect it in
// sensor_info and command_info fields.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	out := struct {
		Type        Domain                `json:"type"`
		Values      []string              `json:"values,omitempty"`
		Model       string                `json:"model,omitempty"`
		Range       []float64             `json:"range,omitempty"`
		Severity    map[Severity][2]*int64 `json:"severity,omitempty"`
		Description string                `json:"description"`
		Rooms       []string              `json:"rooms"`
	}{
		Type:        d.Domain,
		Values:      d.Values,
		Model:       d.Model,
		Description: d.Description,
		Rooms:       d.Rooms,
	}

	if d.Domain == DomainFloat {
		out.Range = []float64{d.Min, d.Max}
	}

	if len(d.Bands) > 0 {
		out.Severity = make(map[Severity][2]*int64, len(d.Bands))
		for _, b := range d.Bands {
			lo := b.Min
			var hi *int64
			if !b.Unbounded {
				v := b.Max
				hi = &v
			}
			out.Severity[b.Severity] = [2]*int64{&lo, hi}
		}
	}

	return json.Marshal(out)
}
