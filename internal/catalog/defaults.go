package catalog

// Kind names used outside the table.
const (
	KindLight       = "light"
	KindCurtain     = "curtain"
	KindDoor        = "door"
	KindTemperature = "temperature"
	KindGas         = "gas"
	KindFaceID      = "face_id"
)

// Face detection literals of the face_id sensor.
const (
	FaceDetected    = "detected"
	FaceNotDetected = "not_detected"
)

var lightRooms = []string{"yatak_odasi", "salon", "garaj", "banyo", "giris"}

// DefaultSensors returns the built-in sensor table.
func DefaultSensors() []Descriptor {
	return []Descriptor{
		{
			Kind:        KindLight,
			Domain:      DomainBinary,
			Values:      []string{"on", "off"},
			Description: "Light sensor",
			Rooms:       lightRooms,
		},
		{
			Kind:        KindCurtain,
			Domain:      DomainBinary,
			Values:      []string{"open", "close"},
			Description: "Curtain sensor",
			Rooms:       []string{"yatak_odasi"},
		},
		{
			Kind:        KindDoor,
			Domain:      DomainBinary,
			Values:      []string{"on", "off"},
			Description: "Door sensor",
			Rooms:       []string{"garaj"},
		},
		{
			Kind:        KindTemperature,
			Domain:      DomainFloat,
			Model:       "SHT35",
			Min:         0,
			Max:         125,
			Description: "Temperature sensor",
			Rooms:       []string{"salon"},
		},
		{
			Kind:   KindGas,
			Domain: DomainInteger,
			Model:  "MQ-2",
			Bands: []Band{
				{Severity: SeverityLow, Min: 0, Max: 300},
				{Severity: SeverityMedium, Min: 301, Max: 700},
				{Severity: SeverityHigh, Min: 701, Unbounded: true},
			},
			Description: "Gas sensor",
			Rooms:       []string{"salon"},
		},
		{
			Kind:        KindFaceID,
			Domain:      DomainBinary,
			Values:      []string{FaceDetected, FaceNotDetected},
			Description: "Face recognition sensor",
			Rooms:       []string{"giris"},
		},
	}
}

// DefaultCommands returns the built-in command table.
func DefaultCommands() []Descriptor {
	return []Descriptor{
		{
			Kind:        KindLight,
			Domain:      DomainBinary,
			Values:      []string{"on", "off"},
			Description: "Light control",
			Rooms:       lightRooms,
		},
		{
			Kind:        KindCurtain,
			Domain:      DomainBinary,
			Values:      []string{"on", "off"},
			Description: "Curtain control",
			Rooms:       []string{"yatak_odasi"},
		},
		{
			Kind:        KindDoor,
			Domain:      DomainBinary,
			Values:      []string{"on", "off"},
			Description: "Door control",
			Rooms:       []string{"garaj"},
		},
	}
}
