package alert

import (
	"context"
	"fmt"

	"github.com/nerrad567/homegate/internal/infrastructure/mqtt"
)

// alertQoS is at-least-once; duplicate alarms beat missed ones.
const alertQoS = 1

// Publisher is the subset of *mqtt.Client used to publish alerts.
type Publisher interface {
	PublishContext(ctx context.Context, topic string, payload []byte, qos byte, retained bool) error
}

// MQTTSender publishes alerts to the broker.
type MQTTSender struct {
	pub    Publisher
	prefix string
}

// NewMQTTSender creates a sender publishing under prefix.
func NewMQTTSender(pub Publisher, prefix string) *MQTTSender {
	return &MQTTSender{pub: pub, prefix: prefix}
}

// Send implements Sender. Alerts are not retained. The broker
// acknowledgement is awaited until ctx is done.
func (s *MQTTSender) Send(ctx context.Context, msg Message) error {
	payload, err := encode(msg)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	if err := s.pub.PublishContext(ctx, mqtt.Alert(s.prefix, msg.Topic), payload, alertQoS, false); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	return nil
}
