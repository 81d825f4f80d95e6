// Package notification stores user-facing notifications such as gas alarms
// and face-recognition events.
package notification

import (
	"context"
	"fmt"
	"sort"

	"github.com/nerrad567/homegate/internal/reading"
	"github.com/nerrad567/homegate/internal/store"
)

// root is the store path holding notifications.
const root = "notifications"

// Notification types.
const (
	TypeGasAlert        = "gas_alert"
	TypeFaceRecognition = "face_recognition"
)

// Notification is a stored notification. ID is filled in on reads only.
type Notification struct {
	ID       string            `json:"id,omitempty"`
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Type     string            `json:"type"`
	Severity string            `json:"severity"`
	GasLevel *int64            `json:"gas_level,omitempty"`
	Time     reading.Timestamp `json:"timestamp"`

	// Read is written false and never changed by the gateway.
	Read bool `json:"read"`
}

// Service reads and writes notifications in the store.
type Service struct {
	store store.Store
}

// NewService creates a notification service.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Push stores n with a generated id and returns the id.
// The id and read flag of n are ignored.
func (s *Service) Push(ctx context.Context, n Notification) (string, error) {
	n.ID = ""
	n.Read = false

	id, err := s.store.Push(ctx, root, n)
	if err != nil {
		return "", fmt.Errorf("pushing notification: %w", err)
	}
	return id, nil
}

// List returns all notifications, newest timestamp first.
// Timestamps compare as strings; equal timestamps keep store order.
func (s *Service) List(ctx context.Context) ([]Notification, error) {
	children, err := s.store.Children(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	list := make([]Notification, 0, len(children))
	for _, c := range children {
		var n Notification
		if err := store.Decode(c.Value, &n); err != nil {
			return nil, fmt.Errorf("notification %s: %w", c.Key, err)
		}
		n.ID = c.Key
		list = append(list, n)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Time > list[j].Time
	})
	return list, nil
}

// Delete removes a notification. Deleting an unknown id succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, store.Join(root, id)); err != nil {
		return fmt.Errorf("deleting notification %s: %w", id, err)
	}
	return nil
}
