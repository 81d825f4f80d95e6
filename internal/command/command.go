// Package command reads and sends actuator commands.
package command

import (
	"context"
	"fmt"

	"github.com/nerrad567/homegate/internal/catalog"
	"github.com/nerrad567/homegate/internal/infrastructure/metrics"
	"github.com/nerrad567/homegate/internal/reading"
	"github.com/nerrad567/homegate/internal/store"
)

// DefaultValue is reported for commands that have never been sent.
const DefaultValue = "off"

// Logger is the logging interface used by the service.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any) {}
func (noopLogger) Warn(string, ...any) {}

// Dispatcher forwards a stored command to the device.
type Dispatcher interface {
	Dispatch(ctx context.Context, room, kind string, rec reading.Record) error
}

// Service validates commands against the catalog and stores them.
type Service struct {
	registry   *catalog.Registry
	store      store.Store
	writer     *reading.Writer
	dispatcher Dispatcher
	metrics    *metrics.Metrics
	logger     Logger
}

// NewService creates a command service.
func NewService(reg *catalog.Registry, s store.Store, w *reading.Writer) *Service {
	return &Service{registry: reg, store: s, writer: w, logger: noopLogger{}}
}

// SetDispatcher sets where stored commands are forwarded. Without one,
// commands are only stored.
func (s *Service) SetDispatcher(d Dispatcher) {
	s.dispatcher = d
}

// SetLogger sets the logger for the service.
func (s *Service) SetLogger(logger Logger) {
	s.logger = logger
}

// SetMetrics sets the collectors written commands are counted in.
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Status returns the current command for (room, kind), or
// {value: "off", timestamp: null} if none has been sent.
// Returns an error wrapping catalog.ErrInvalid for unknown kinds or rooms.
func (s *Service) Status(ctx context.Context, room, kind string) (catalog.Descriptor, reading.Record, error) {
	d, err := s.registry.Lookup(kind, room, true)
	if err != nil {
		return catalog.Descriptor{}, reading.Record{}, err
	}

	rec, ok, err := reading.Current(ctx, s.store, reading.Commands, room, kind)
	if err != nil {
		return catalog.Descriptor{}, reading.Record{}, err
	}
	if !ok {
		rec = reading.Record{Value: DefaultValue}
	}
	return d, rec, nil
}

// Send validates value and writes it through the pipeline. present is
// false when the request carried no command at all. The stored command is
// then dispatched; a dispatch failure is logged and does not fail Send.
func (s *Service) Send(ctx context.Context, room, kind string, value any, present bool) (reading.Record, error) {
	out, err := s.registry.Validate(catalog.Request{
		Room:    room,
		Kind:    kind,
		Value:   value,
		Present: present,
	}, true)
	if err != nil {
		s.metrics.ReadingRejected(s.kindLabel(kind))
		return reading.Record{}, err
	}

	rec, err := s.writer.Write(ctx, reading.Commands, room, kind, reading.Record{Value: out.Value})
	if err != nil {
		return reading.Record{}, fmt.Errorf("sending %s command to %s: %w", kind, room, err)
	}
	s.metrics.ReadingWritten(reading.Commands.Current, kind)

	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, room, kind, rec); err != nil {
			s.logger.Warn("command dispatch failed", "room", room, "kind", kind, "error", err)
		}
	}
	s.logger.Info("command stored", "room", room, "kind", kind, "value", rec.Value)
	return rec, nil
}

// kindLabel is the metrics label for kind.
func (s *Service) kindLabel(kind string) string {
	if _, ok := s.registry.Command(kind); ok {
		return kind
	}
	return metrics.UnknownKind
}
