package alert

import (
	"fmt"
	"io"

	"github.com/nerrad567/homegate/internal/infrastructure/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the sender selected by cfg.Alerts.Transport. pub is required
// for the mqtt transport and ignored otherwise. The returned Closer releases
// transport resources; it never closes pub.
func New(cfg *config.Config, pub Publisher) (Sender, io.Closer, error) {
	switch cfg.Alerts.Transport {
	case "", config.AlertTransportNone:
		return Nop{}, nopCloser{}, nil
	case config.AlertTransportMQTT:
		if pub == nil {
			return nil, nil, fmt.Errorf("%w: mqtt transport needs a connected client", ErrUnknownTransport)
		}
		return NewMQTTSender(pub, cfg.Alerts.TopicPrefix), nopCloser{}, nil
	case config.AlertTransportKafka:
		s, err := NewKafkaSender(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Alerts.Transport)
	}
}
