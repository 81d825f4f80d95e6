package reading

import (
	"encoding/json"
	"time"

	"github.com/nerrad567/homegate/internal/catalog"
)

// TimeLayout is the timestamp format stored with every record.
// Times are rendered in the server's local zone with second precision, so
// timestamps compare correctly as strings.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t in TimeLayout in the local zone.
func FormatTime(t time.Time) Timestamp {
	return Timestamp(t.Local().Format(TimeLayout))
}

// Timestamp is a stored timestamp. The empty Timestamp encodes as JSON null.
type Timestamp string

// MarshalJSON encodes the empty timestamp as null.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(ts))
}

// UnmarshalJSON accepts a string or null. Other JSON values are kept as
// their literal text so foreign records still load.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		*ts = Timestamp(data)
		return nil //nolint:nilerr // Non-string timestamps are kept verbatim
	}
	if s == nil {
		*ts = ""
		return nil
	}
	*ts = Timestamp(*s)
	return nil
}

// Time parses ts in the local zone. The boolean is false for empty or
// foreign timestamps.
func (ts Timestamp) Time() (time.Time, bool) {
	t, err := time.ParseInLocation(TimeLayout, string(ts), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Record is a reading or command as stored in the current slot and the
// history log.
type Record struct {
	Value     any              `json:"value"`
	Timestamp Timestamp        `json:"timestamp"`
	Severity  catalog.Severity `json:"severity,omitempty"`

	// Name is the recognised person, set by face detection.
	Name string `json:"name,omitempty"`

	// Recognized is set by face-recognition ingest.
	Recognized *bool `json:"recognized,omitempty"`
}

// Namespace is the pair of store roots a record family is written under.
type Namespace struct {
	Current string
	History string
}

// Record families.
var (
	Sensors  = Namespace{Current: "sensors", History: "sensor_history"}
	Commands = Namespace{Current: "commands", History: "command_history"}
)
