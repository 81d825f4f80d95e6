package sensor

import (
	"context"
	"fmt"
	"strings"

	"github.com/nerrad567/homegate/internal/reading"
	"github.com/nerrad567/homegate/internal/store"
)

// Bulk item error codes.
const (
	ErrCodeMissingParameter = "missing_parameter"
	ErrCodeStoreError       = "store_error"
)

// bulkOutcomeOK labels successful items in metrics.
const bulkOutcomeOK = "ok"

// BulkSuccess echoes one written item.
type BulkSuccess struct {
	Room       string            `json:"room"`
	SensorType string            `json:"sensor_type"`
	Status     string            `json:"status"`
	Value      any               `json:"value"`
	Timestamp  reading.Timestamp `json:"timestamp"`
}

// BulkError echoes one rejected item with the reason.
type BulkError struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Update  any    `json:"update"`
}

// BulkResult aggregates a bulk update. Both slices are non-nil.
type BulkResult struct {
	Message    string        `json:"message"`
	Successful []BulkSuccess `json:"successful_updates"`
	Errors     []BulkError   `json:"errors"`
}

// Partial reports whether any item failed.
func (r BulkResult) Partial() bool {
	return len(r.Errors) > 0
}

// BulkUpdate writes each item's value to the current slot of its sensor.
// Items run sequentially and independently; no validation is applied and no
// history is written. An item needs a non-empty string room and sensor_type
// and a non-null value, otherwise it is reported as missing_parameter.
// A failed write is reported as store_error and does not stop later items.
func (s *Service) BulkUpdate(ctx context.Context, items []any) BulkResult {
	res := BulkResult{
		Message:    "Bulk update completed",
		Successful: []BulkSuccess{},
		Errors:     []BulkError{},
	}

	for _, item := range items {
		room, kind, value, ok := bulkFields(item)
		if !ok {
			res.Errors = append(res.Errors, BulkError{
				Error:   ErrCodeMissingParameter,
				Details: "room, sensor_type and value are required for every update",
				Update:  item,
			})
			s.metrics.BulkItem(ErrCodeMissingParameter)
			continue
		}

		rec := reading.Record{Value: value, Timestamp: s.writer.Now()}
		if err := s.bulkWrite(ctx, room, kind, rec); err != nil {
			s.logger.Warn("bulk update item failed", "room", room, "sensor_type", kind, "error", err)
			res.Errors = append(res.Errors, BulkError{
				Error:   ErrCodeStoreError,
				Details: err.Error(),
				Update:  item,
			})
			s.metrics.BulkItem(ErrCodeStoreError)
			continue
		}

		res.Successful = append(res.Successful, BulkSuccess{
			Room:       room,
			SensorType: kind,
			Status:     "success",
			Value:      value,
			Timestamp:  rec.Timestamp,
		})
		s.metrics.BulkItem(bulkOutcomeOK)
	}

	s.logger.Info("bulk update completed",
		"successful", len(res.Successful), "errors", len(res.Errors))
	return res
}

func (s *Service) bulkWrite(ctx context.Context, room, kind string, rec reading.Record) error {
	// Path segments only; a slash would write outside the sensor's slot.
	if strings.Contains(room, "/") || strings.Contains(kind, "/") {
		return fmt.Errorf("%w: room and sensor_type must be single path segments", store.ErrInvalidPath)
	}
	if err := s.store.Set(ctx, store.Join(reading.Sensors.Current, room, kind), rec); err != nil {
		return err
	}
	s.metrics.ReadingWritten(reading.Sensors.Current, s.kindLabel(kind))
	return nil
}

func bulkFields(item any) (room, kind string, value any, ok bool) {
	m, isMap := item.(map[string]any)
	if !isMap {
		return "", "", nil, false
	}
	room, _ = m["room"].(string)
	kind, _ = m["sensor_type"].(string)
	value = m["value"]
	if room == "" || kind == "" || value == nil {
		return "", "", nil, false
	}
	return room, kind, value, true
}
