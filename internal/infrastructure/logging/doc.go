// Package logging provides the structured logger shared by every Homegate
// component.
//
// Logger wraps log/slog. Each entry carries service=homegate and the build
// version; components derive a child with Component so their entries can be
// filtered:
//
//	log := logging.New(cfg.Logging, version)
//	sensorLog := log.Component("sensor")
//	sensorLog.Warn("gas alert sent", "room", "salon", "gas_level", 850)
//
// Config (logging section of config.yaml):
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr, discard
//
// User passwords are never logged, with one exception: the generated owner
// password is logged once at first boot.
package logging
