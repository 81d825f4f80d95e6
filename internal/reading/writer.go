package reading

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/homegate/internal/store"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Writer runs the write pipeline against a store.
//
// Thread Safety: Writer holds no mutable state and is safe for concurrent use.
type Writer struct {
	store store.Store
	now   Clock
}

// NewWriter creates a writer. A nil clock uses time.Now.
func NewWriter(s store.Store, clock Clock) *Writer {
	if clock == nil {
		clock = time.Now
	}
	return &Writer{store: s, now: clock}
}

// Now returns the writer clock's current time formatted for storage.
func (w *Writer) Now() Timestamp {
	return FormatTime(w.now())
}

// Write stamps rec, appends it to the history log of (room, kind), and
// overwrites the current slot. A record that already carries a timestamp
// keeps it. The stored record is returned.
func (w *Writer) Write(ctx context.Context, ns Namespace, room, kind string, rec Record) (Record, error) {
	if rec.Timestamp == "" {
		rec.Timestamp = w.Now()
	}

	if _, err := w.store.Push(ctx, store.Join(ns.History, room, kind), rec); err != nil {
		return Record{}, fmt.Errorf("appending %s history for %s/%s: %w", ns.History, room, kind, err)
	}

	if err := w.store.Set(ctx, store.Join(ns.Current, room, kind), rec); err != nil {
		return Record{}, fmt.Errorf("writing %s/%s/%s: %w", ns.Current, room, kind, err)
	}

	return rec, nil
}

// Current returns the record in the current slot of (room, kind).
// The boolean is false when nothing has been written yet.
func Current(ctx context.Context, s store.Store, ns Namespace, room, kind string) (Record, bool, error) {
	raw, err := s.Get(ctx, store.Join(ns.Current, room, kind))
	if errors.Is(err, store.ErrNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("reading %s/%s/%s: %w", ns.Current, room, kind, err)
	}

	var rec Record
	if err := store.Decode(raw, &rec); err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// Entry is one record in a history log.
type Entry struct {
	ID     string `json:"id"`
	Record Record `json:"record"`
}

// History returns the history log of (room, kind) in append order.
func History(ctx context.Context, s store.Store, ns Namespace, room, kind string) ([]Entry, error) {
	children, err := s.Children(ctx, store.Join(ns.History, room, kind))
	if err != nil {
		return nil, fmt.Errorf("listing %s/%s/%s: %w", ns.History, room, kind, err)
	}

	entries := make([]Entry, 0, len(children))
	for _, c := range children {
		var rec Record
		if err := store.Decode(c.Value, &rec); err != nil {
			return nil, fmt.Errorf("history entry %s: %w", c.Key, err)
		}
		entries = append(entries, Entry{ID: c.Key, Record: rec})
	}
	return entries, nil
}
