package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const kafkaBatchTimeout = 50 * time.Millisecond

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSender writes alerts to Kafka, one topic per alert topic.
type KafkaSender struct {
	writer messageWriter
	prefix string
}

// NewKafkaSender creates a sender for brokers. The topic of each record is
// prefix followed by the message topic.
func NewKafkaSender(brokers []string, prefix string) (*KafkaSender, error) {
	if len(brokers) == 0 {
		return nil, errors.New("alert: at least one kafka broker is required")
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           kafkaBatchTimeout,
		AllowAutoTopicCreation: true,
	}
	return &KafkaSender{writer: w, prefix: prefix}, nil
}

// Send implements Sender. The record key is the alert topic so alerts of
// one kind stay ordered within a partition.
func (s *KafkaSender) Send(ctx context.Context, msg Message) error {
	payload, err := encode(msg)
	if err != nil {
		return err
	}
	record := kafka.Message{
		Topic: s.prefix + msg.Topic,
		Key:   []byte(msg.Topic),
		Value: payload,
		Time:  time.Now(),
	}
	if err := s.writer.WriteMessages(ctx, record); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (s *KafkaSender) Close() error {
	return s.writer.Close()
}
