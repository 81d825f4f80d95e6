package facerecog

import (
	"context"
	"fmt"
	"strings"

	"github.com/nerrad567/homegate/internal/catalog"
	"github.com/nerrad567/homegate/internal/notification"
	"github.com/nerrad567/homegate/internal/reading"
	"github.com/nerrad567/homegate/internal/store"
)

// Event is a result pushed by the recognition service.
type Event struct {
	DeviceID   string
	Recognized bool

	// Timestamp is kept as sent; empty means now.
	Timestamp reading.Timestamp
}

// Notifier stores notifications.
type Notifier interface {
	Push(ctx context.Context, n notification.Notification) (string, error)
}

// Service stores pushed recognition results.
type Service struct {
	store    store.Store
	notifier Notifier
	writer   *reading.Writer
}

// NewService creates an ingest service. A nil clock uses the wall clock.
func NewService(s store.Store, n Notifier, clock reading.Clock) *Service {
	return &Service{store: s, notifier: n, writer: reading.NewWriter(s, clock)}
}

// Ingest overwrites sensors/{device}/face_id with the result and pushes a
// face_recognition notification. Pushed results have no history entry.
// A device id that is not a single path segment wraps store.ErrInvalidPath.
func (s *Service) Ingest(ctx context.Context, ev Event) (reading.Record, error) {
	if ev.DeviceID == "" || strings.Contains(ev.DeviceID, "/") {
		return reading.Record{}, fmt.Errorf("%w: device_id must be a single path segment", store.ErrInvalidPath)
	}
	if ev.Timestamp == "" {
		ev.Timestamp = s.writer.Now()
	}

	value := catalog.FaceNotDetected
	if ev.Recognized {
		value = catalog.FaceDetected
	}
	recognized := ev.Recognized
	rec := reading.Record{
		Value:      value,
		Timestamp:  ev.Timestamp,
		Recognized: &recognized,
	}

	path := store.Join(reading.Sensors.Current, ev.DeviceID, catalog.KindFaceID)
	if err := s.store.Set(ctx, path, rec); err != nil {
		return reading.Record{}, fmt.Errorf("storing face recognition for %s: %w", ev.DeviceID, err)
	}

	outcome := "not recognised"
	if ev.Recognized {
		outcome = "recognised"
	}
	n := notification.Notification{
		Title:    "Face recognition",
		Message:  fmt.Sprintf("Face %s on device %s", outcome, ev.DeviceID),
		Type:     notification.TypeFaceRecognition,
		Severity: "info",
		Time:     ev.Timestamp,
	}
	if _, err := s.notifier.Push(ctx, n); err != nil {
		return rec, fmt.Errorf("notifying face recognition for %s: %w", ev.DeviceID, err)
	}
	return rec, nil
}
