// Package influxdb mirrors accepted sensor readings into InfluxDB.
//
// It wraps the official influxdb-client-go v2 library. The document store
// stays the source of truth; the mirror exists for dashboards and long-range
// queries the store is not built for.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // run without the mirror
//	}
//	defer client.Close()
//
//	client.RecordReading("salon", "temperature", 21.5, "", time.Now())
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// Writes are batched (batch_size, flush_interval) and non-blocking.
package influxdb
