package command

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nerrad567/homegate/internal/infrastructure/mqtt"
	"github.com/nerrad567/homegate/internal/reading"
)

// commandQoS is at-least-once; devices treat commands as idempotent.
const commandQoS = 1

// Publisher is the subset of *mqtt.Client used to dispatch commands.
type Publisher interface {
	PublishContext(ctx context.Context, topic string, payload []byte, qos byte, retained bool) error
}

// MQTTDispatcher publishes commands retained on
// {prefix}/command/{room}/{kind} so a reconnecting device sees the latest one.
type MQTTDispatcher struct {
	pub    Publisher
	topics mqtt.Topics
}

// NewMQTTDispatcher creates a dispatcher.
func NewMQTTDispatcher(pub Publisher, topics mqtt.Topics) *MQTTDispatcher {
	return &MQTTDispatcher{pub: pub, topics: topics}
}

// Dispatch implements Dispatcher.
func (d *MQTTDispatcher) Dispatch(ctx context.Context, room, kind string, rec reading.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding command: %w", err)
	}
	return d.pub.PublishContext(ctx, d.topics.Command(room, kind), payload, commandQoS, true)
}
