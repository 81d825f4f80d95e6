package sensor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/homegate/internal/catalog"
	"github.com/nerrad567/homegate/internal/reading"
	"github.com/nerrad567/homegate/internal/store"
)

// Info is a sensor descriptor together with its current status.
type Info struct {
	Descriptor catalog.Descriptor
	Status     reading.Record
}

// MarshalJSON renders the descriptor fields with an added "status".
func (i Info) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(i.Descriptor)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	status, err := json.Marshal(i.Status)
	if err != nil {
		return nil, err
	}
	fields["status"] = status
	return json.Marshal(fields)
}

// RoomSensors is every sensor installed in one room, keyed by kind.
type RoomSensors struct {
	Sensors map[string]Info `json:"sensors"`
}

// Current returns the descriptor and current record of (room, kind).
// A sensor that was never written returns {value: null, timestamp: null}.
func (s *Service) Current(ctx context.Context, room, kind string) (catalog.Descriptor, reading.Record, error) {
	d, err := s.registry.Lookup(kind, room, false)
	if err != nil {
		return catalog.Descriptor{}, reading.Record{}, err
	}
	rec, _, err := reading.Current(ctx, s.store, reading.Sensors, room, kind)
	if err != nil {
		return catalog.Descriptor{}, reading.Record{}, err
	}
	return d, rec, nil
}

// Room returns every sensor installed in room with its status. Unknown
// rooms are rejected with catalog.ErrInvalid.
func (s *Service) Room(ctx context.Context, room string) (map[string]Info, error) {
	kinds := s.registry.SensorsInRoom(room)
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: unknown room %q, supported rooms: %s",
			catalog.ErrInvalid, room, strings.Join(s.registry.Rooms(), ", "))
	}

	out := make(map[string]Info, len(kinds))
	for _, kind := range kinds {
		info, err := s.info(ctx, room, kind)
		if err != nil {
			return nil, err
		}
		out[kind] = info
	}
	return out, nil
}

// All returns every room with its sensors and their status. Store reads
// fan out with bounded concurrency.
func (s *Service) All(ctx context.Context) (map[string]RoomSensors, error) {
	type slot struct {
		room, kind string
		info       Info
	}
	var slots []*slot
	for _, room := range s.registry.Rooms() {
		for _, kind := range s.registry.SensorsInRoom(room) {
			slots = append(slots, &slot{room: room, kind: kind})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for _, sl := range slots {
		sl := sl
		g.Go(func() error {
			info, err := s.info(gctx, sl.room, sl.kind)
			if err != nil {
				return err
			}
			sl.info = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]RoomSensors)
	for _, sl := range slots {
		rs, ok := out[sl.room]
		if !ok {
			rs = RoomSensors{Sensors: make(map[string]Info)}
			out[sl.room] = rs
		}
		rs.Sensors[sl.kind] = sl.info
	}
	return out, nil
}

// Temperature returns the stored temperature of room without validating
// the room. It returns store.ErrNotFound when nothing is stored.
func (s *Service) Temperature(ctx context.Context, room string) (reading.Record, error) {
	rec, ok, err := reading.Current(ctx, s.store, reading.Sensors, room, catalog.KindTemperature)
	if err != nil {
		return reading.Record{}, err
	}
	if !ok {
		return reading.Record{}, fmt.Errorf("%w: no temperature for %s", store.ErrNotFound, room)
	}
	return rec, nil
}

// History returns the history log of (room, kind) in append order.
func (s *Service) History(ctx context.Context, room, kind string) ([]reading.Entry, error) {
	if _, err := s.registry.Lookup(kind, room, false); err != nil {
		return nil, err
	}
	return reading.History(ctx, s.store, reading.Sensors, room, kind)
}

func (s *Service) info(ctx context.Context, room, kind string) (Info, error) {
	d, ok := s.registry.Sensor(kind)
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", catalog.ErrUnknownKind, kind)
	}
	rec, _, err := reading.Current(ctx, s.store, reading.Sensors, room, kind)
	if err != nil {
		return Info{}, err
	}
	return Info{Descriptor: d, Status: rec}, nil
}
