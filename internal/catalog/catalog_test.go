package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func num(s string) json.Number { return json.Number(s) }

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	wantSensors := []string{"light", "curtain", "door", "temperature", "gas", "face_id"}
	if got := reg.SensorKinds(); strings.Join(got, ",") != strings.Join(wantSensors, ",") {
		t.Errorf("SensorKinds() = %v, want %v", got, wantSensors)
	}

	wantCommands := []string{"light", "curtain", "door"}
	if got := reg.CommandKinds(); strings.Join(got, ",") != strings.Join(wantCommands, ",") {
		t.Errorf("CommandKinds() = %v, want %v", got, wantCommands)
	}

	wantRooms := []string{"yatak_odasi", "salon", "garaj", "banyo", "giris"}
	if got := reg.Rooms(); strings.Join(got, ",") != strings.Join(wantRooms, ",") {
		t.Errorf("Rooms() = %v, want %v", got, wantRooms)
	}

	if got := reg.SensorsInRoom("salon"); strings.Join(got, ",") != "light,temperature,gas" {
		t.Errorf("SensorsInRoom(salon) = %v", got)
	}
	if got := reg.SensorsInRoom("mutfak"); len(got) != 0 {
		t.Errorf("SensorsInRoom(mutfak) = %v, want none", got)
	}
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	reg := Default()

	d, _ := reg.Sensor("light")
	d.Rooms[0] = "changed"
	reg.Rooms()[0] = "changed"

	again, _ := reg.Sensor("light")
	if again.Rooms[0] != "yatak_odasi" {
		t.Error("mutating a returned descriptor changed the registry")
	}
	if reg.Rooms()[0] != "yatak_odasi" {
		t.Error("mutating Rooms() changed the registry")
	}
}

func TestRegistry_IsRoomValid(t *testing.T) {
	reg := Default()

	tests := []struct {
		kind, room string
		isCommand  bool
		want       bool
	}{
		{"light", "banyo", false, true},
		{"door", "salon", false, false},
		{"curtain", "yatak_odasi", true, true},
		{"temperature", "salon", true, false},
		{"unknown", "salon", false, false},
	}
	for _, tt := range tests {
		if got := reg.IsRoomValid(tt.kind, tt.room, tt.isCommand); got != tt.want {
			t.Errorf("IsRoomValid(%s, %s, %v) = %v, want %v", tt.kind, tt.room, tt.isCommand, got, tt.want)
		}
	}
}

func TestNewRegistry_RejectsBadDescriptors(t *testing.T) {
	rooms := []string{"salon"}
	tests := []struct {
		name string
		d    Descriptor
	}{
		{"no rooms", Descriptor{Kind: "light", Domain: DomainBinary, Values: []string{"on"}}},
		{"binary without values", Descriptor{Kind: "light", Domain: DomainBinary, Rooms: rooms}},
		{"inverted range", Descriptor{Kind: "t", Domain: DomainFloat, Min: 10, Max: 0, Rooms: rooms}},
		{"unknown domain", Descriptor{Kind: "x", Domain: "text", Rooms: rooms}},
		{"gap between bands", Descriptor{Kind: "gas", Domain: DomainInteger, Rooms: rooms, Bands: []Band{
			{Severity: SeverityLow, Min: 0, Max: 300},
			{Severity: SeverityHigh, Min: 302, Unbounded: true},
		}}},
		{"overlapping bands", Descriptor{Kind: "gas", Domain: DomainInteger, Rooms: rooms, Bands: []Band{
			{Severity: SeverityLow, Min: 0, Max: 300},
			{Severity: SeverityHigh, Min: 300, Unbounded: true},
		}}},
		{"bands not starting at zero", Descriptor{Kind: "gas", Domain: DomainInteger, Rooms: rooms, Bands: []Band{
			{Severity: SeverityHigh, Min: 1, Unbounded: true},
		}}},
		{"last band bounded", Descriptor{Kind: "gas", Domain: DomainInteger, Rooms: rooms, Bands: []Band{
			{Severity: SeverityLow, Min: 0, Max: 300},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry([]Descriptor{tt.d}, nil)
			if !errors.Is(err, ErrBadDescriptor) {
				t.Errorf("NewRegistry() error = %v, want ErrBadDescriptor", err)
			}
		})
	}

	t.Run("duplicate kind", func(t *testing.T) {
		d := Descriptor{Kind: "light", Domain: DomainBinary, Values: []string{"on"}, Rooms: rooms}
		if _, err := NewRegistry([]Descriptor{d, d}, nil); !errors.Is(err, ErrBadDescriptor) {
			t.Errorf("NewRegistry() error = %v, want ErrBadDescriptor", err)
		}
	})
}

func TestClassify(t *testing.T) {
	d, _ := Default().Sensor("gas")

	tests := []struct {
		v      int64
		want   Severity
		wantOk bool
	}{
		{0, SeverityLow, true},
		{300, SeverityLow, true},
		{301, SeverityMedium, true},
		{700, SeverityMedium, true},
		{701, SeverityHigh, true},
		{1 << 62, SeverityHigh, true},
		{-1, "", false},
	}
	for _, tt := range tests {
		got, ok := Classify(d.Bands, tt.v)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("Classify(%d) = (%q, %v), want (%q, %v)", tt.v, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestSeverity_Escalates(t *testing.T) {
	for _, s := range []Severity{SeverityLow, SeverityMedium, ""} {
		if s.Escalates() {
			t.Errorf("%q.Escalates() = true", s)
		}
	}
	if !SeverityHigh.Escalates() {
		t.Error("high.Escalates() = false")
	}
}

func TestValidate_Sensors(t *testing.T) {
	reg := Default()

	tests := []struct {
		name         string
		req          Request
		wantErr      error
		wantValue    any
		wantSeverity Severity
	}{
		{"binary exact literal", Request{"salon", "light", "on", true}, nil, "on", ""},
		{"binary case sensitive", Request{"salon", "light", "On", true}, ErrInvalidValue, nil, ""},
		{"binary rejects number", Request{"salon", "light", num("1"), true}, ErrInvalidValue, nil, ""},
		{"binary rejects bool", Request{"salon", "light", true, true}, ErrInvalidValue, nil, ""},
		{"binary rejects null", Request{"salon", "light", nil, true}, ErrInvalidValue, nil, ""},
		{"curtain literal", Request{"yatak_odasi", "curtain", "close", true}, nil, "close", ""},
		{"face literal", Request{"giris", "face_id", "not_detected", true}, nil, "not_detected", ""},
		{"unknown kind", Request{"salon", "humidity", "on", true}, ErrUnknownKind, nil, ""},
		{"room mismatch", Request{"salon", "door", "on", true}, ErrRoomMismatch, nil, ""},
		{"missing value", Request{"salon", "light", nil, false}, ErrMissingField, nil, ""},
		{"temperature lower bound", Request{"salon", "temperature", num("0"), true}, nil, 0.0, ""},
		{"temperature upper bound", Request{"salon", "temperature", num("125"), true}, nil, 125.0, ""},
		{"temperature fraction", Request{"salon", "temperature", num("21.5"), true}, nil, 21.5, ""},
		{"temperature below", Request{"salon", "temperature", num("-0.001"), true}, ErrOutOfRange, nil, ""},
		{"temperature above", Request{"salon", "temperature", num("125.001"), true}, ErrOutOfRange, nil, ""},
		{"temperature string", Request{"salon", "temperature", "21", true}, ErrWrongType, nil, ""},
		{"temperature null", Request{"salon", "temperature", nil, true}, ErrWrongType, nil, ""},
		{"gas low", Request{"salon", "gas", num("300"), true}, nil, int64(300), SeverityLow},
		{"gas medium", Request{"salon", "gas", num("301"), true}, nil, int64(301), SeverityMedium},
		{"gas high", Request{"salon", "gas", num("701"), true}, nil, int64(701), SeverityHigh},
		{"gas negative", Request{"salon", "gas", num("-1"), true}, ErrOutOfRange, nil, ""},
		{"gas fractional", Request{"salon", "gas", num("5.0"), true}, ErrWrongType, nil, ""},
		{"gas exponent", Request{"salon", "gas", num("7e2"), true}, ErrWrongType, nil, ""},
		{"gas overflow", Request{"salon", "gas", num("99999999999999999999"), true}, ErrOutOfRange, nil, ""},
		{"gas bool", Request{"salon", "gas", true, true}, ErrWrongType, nil, ""},
		{"gas native int", Request{"salon", "gas", 850, true}, nil, int64(850), SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := reg.Validate(tt.req, false)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, ErrInvalid) {
					t.Errorf("Validate() error %v does not wrap ErrInvalid", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if out.Value != tt.wantValue {
				t.Errorf("Value = %#v, want %#v", out.Value, tt.wantValue)
			}
			if out.Severity != tt.wantSeverity {
				t.Errorf("Severity = %q, want %q", out.Severity, tt.wantSeverity)
			}
		})
	}
}

func TestValidate_Commands(t *testing.T) {
	reg := Default()

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"light on", Request{"banyo", "light", "on", true}, nil},
		{"curtain uses on/off", Request{"yatak_odasi", "curtain", "off", true}, nil},
		{"curtain rejects open", Request{"yatak_odasi", "curtain", "open", true}, ErrInvalidValue},
		{"no temperature command", Request{"salon", "temperature", num("20"), true}, ErrUnknownKind},
		{"door only in garage", Request{"salon", "door", "on", true}, ErrRoomMismatch},
		{"missing command", Request{"garaj", "door", nil, false}, ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Validate(tt.req, true)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_UnknownKindListsSupported(t *testing.T) {
	_, err := Default().Validate(Request{Room: "salon", Kind: "smoke", Present: true}, true)
	if err == nil || !strings.Contains(err.Error(), "light, curtain, door") {
		t.Errorf("error = %v, want supported commands listed", err)
	}
}

func TestDescriptor_MarshalJSON(t *testing.T) {
	reg := Default()

	gas, _ := reg.Sensor("gas")
	data, err := json.Marshal(gas)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got["type"] != "integer" || got["model"] != "MQ-2" {
		t.Errorf("gas descriptor = %s", data)
	}
	high := got["severity"].(map[string]any)["high"].([]any)
	if high[0] != 701.0 || high[1] != nil {
		t.Errorf("high band = %v, want [701 null]", high)
	}

	temp, _ := reg.Sensor("temperature")
	data, _ = json.Marshal(temp)
	if !strings.Contains(string(data), `"range":[0,125]`) {
		t.Errorf("temperature descriptor = %s, want range", data)
	}

	light, _ := reg.Sensor("light")
	data, _ = json.Marshal(light)
	if strings.Contains(string(data), "range") || !strings.Contains(string(data), `"values":["on","off"]`) {
		t.Errorf("light descriptor = %s", data)
	}
}
