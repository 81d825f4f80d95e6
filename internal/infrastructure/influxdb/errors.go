package influxdb

import "errors"

// Sentinel errors returned by Connect and HealthCheck.
var (
	// ErrNotConnected is returned by HealthCheck after Close.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrConnectionFailed wraps ping failures during Connect.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrDisabled is returned by Connect when the mirror is turned off, so
	// startup can skip it.
	ErrDisabled = errors.New("influxdb: disabled in configuration")
)
