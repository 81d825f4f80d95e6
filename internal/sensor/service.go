package sensor

import (
	"context"
	"time"

	"github.com/nerrad567/homegate/internal/alert"
	"github.com/nerrad567/homegate/internal/catalog"
	"github.com/nerrad567/homegate/internal/facerecog"
	"github.com/nerrad567/homegate/internal/infrastructure/metrics"
	"github.com/nerrad567/homegate/internal/notification"
	"github.com/nerrad567/homegate/internal/reading"
	"github.com/nerrad567/homegate/internal/store"
)

const (
	defaultAlertTimeout = 5 * time.Second

	// readConcurrency bounds concurrent store reads in All.
	readConcurrency = 4
)

// Logger is the logging interface used by the service.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Notifier stores notifications.
type Notifier interface {
	Push(ctx context.Context, n notification.Notification) (string, error)
}

// Recorder mirrors accepted numeric readings to a time-series backend.
type Recorder interface {
	RecordReading(room, kind string, value float64, severity string, at time.Time)
}

// Deps holds the service's collaborators. Registry, Store, Writer and
// Notifier are required; the rest are optional.
type Deps struct {
	Registry *catalog.Registry
	Store    store.Store
	Writer   *reading.Writer
	Notifier Notifier

	// Alerts defaults to alert.Nop.
	Alerts       alert.Sender
	AlertTimeout time.Duration

	Recorder Recorder
	Detector facerecog.Detector
	Metrics  *metrics.Metrics
	Logger   Logger
}

// Service reads and writes sensor records.
//
// Thread Safety: Service holds no mutable state and is safe for concurrent
// use. Concurrent writes to one sensor race under last-write-wins.
type Service struct {
	registry     *catalog.Registry
	store        store.Store
	writer       *reading.Writer
	notifier     Notifier
	alerts       alert.Sender
	alertTimeout time.Duration
	recorder     Recorder
	detector     facerecog.Detector
	metrics      *metrics.Metrics
	logger       Logger
}

// NewService creates a sensor service.
func NewService(deps Deps) *Service {
	s := &Service{
		registry:     deps.Registry,
		store:        deps.Store,
		writer:       deps.Writer,
		notifier:     deps.Notifier,
		alerts:       deps.Alerts,
		alertTimeout: deps.AlertTimeout,
		recorder:     deps.Recorder,
		detector:     deps.Detector,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
	}
	if s.alerts == nil {
		s.alerts = alert.Nop{}
	}
	if s.alertTimeout <= 0 {
		s.alertTimeout = defaultAlertTimeout
	}
	if s.logger == nil {
		s.logger = noopLogger{}
	}
	return s
}

// Registry returns the type registry the service validates against.
func (s *Service) Registry() *catalog.Registry {
	return s.registry
}

// kindLabel is the metrics label for kind.
func (s *Service) kindLabel(kind string) string {
	if _, ok := s.registry.Sensor(kind); ok {
		return kind
	}
	return metrics.UnknownKind
}
