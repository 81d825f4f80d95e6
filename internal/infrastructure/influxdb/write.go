package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// MeasurementSensorReadings holds one point per accepted numeric reading.
const MeasurementSensorReadings = "sensor_readings"

// RecordReading mirrors an accepted numeric reading. The write is
// non-blocking; points are batched and failures reach the SetOnError
// callback.
//
// Example:
//
//	client.RecordReading("salon", "temperature", 21.5, "", time.Now())
//	client.RecordReading("salon", "gas", 850, "high", time.Now())
func (c *Client) RecordReading(room, kind string, value float64, severity string, at time.Time) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(readingPoint(room, kind, value, severity, at))
}

// readingPoint tags by room and kind; severity is a field so it does not
// multiply series cardinality.
func readingPoint(room, kind string, value float64, severity string, at time.Time) *write.Point {
	fields := map[string]interface{}{
		"value": value,
	}
	if severity != "" {
		fields["severity"] = severity
	}

	return write.NewPoint(
		MeasurementSensorReadings,
		map[string]string{
			"room": room,
			"kind": kind,
		},
		fields,
		at,
	)
}
