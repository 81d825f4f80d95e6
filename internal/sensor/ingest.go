package sensor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nerrad567/homegate/internal/infrastructure/mqtt"
)

// ingestTimeout bounds one MQTT-triggered write.
const ingestTimeout = 10 * time.Second

// MQTTHandler returns a handler for {prefix}/sensor/{room}/{kind} topics.
// Readings go through Update, so they are validated and escalate exactly
// like HTTP writes. The payload is either {"value": ...} or a bare JSON
// value; anything that is not JSON is taken as a string.
func (s *Service) MQTTHandler(topics mqtt.Topics) mqtt.MessageHandler {
	return func(topic string, payload []byte) error {
		room, kind, ok := topics.ParseSensor(topic)
		if !ok {
			return fmt.Errorf("sensor ingest: unexpected topic %q", topic)
		}
		value, present := decodePayload(payload)

		ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
		defer cancel()

		rec, err := s.Update(ctx, room, kind, value, present)
		if err != nil {
			return fmt.Errorf("sensor ingest %s/%s: %w", room, kind, err)
		}
		s.logger.Debug("sensor reading ingested", "room", room, "kind", kind, "value", rec.Value)
		return nil
	}
}

func decodePayload(payload []byte) (any, bool) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return string(trimmed), true
	}

	if obj, ok := v.(map[string]any); ok {
		value, present := obj["value"]
		return value, present
	}
	return v, true
}
