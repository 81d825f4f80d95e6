package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Topic names.
const (
	TopicGasAlert = "gas_alert"
)

var (
	// ErrEmptyTopic is returned when a message has no topic.
	ErrEmptyTopic = errors.New("alert: empty topic")

	// ErrSendFailed wraps transport failures.
	ErrSendFailed = errors.New("alert: send failed")

	// ErrUnknownTransport is returned by New for an unsupported transport name.
	ErrUnknownTransport = errors.New("alert: unknown transport")
)

// Message is a single alert.
type Message struct {
	Topic string            `json:"-"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Sender delivers alert messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Nop is a Sender that discards every message.
type Nop struct{}

// Send implements Sender.
func (Nop) Send(_ context.Context, msg Message) error {
	if msg.Topic == "" {
		return ErrEmptyTopic
	}
	return nil
}

// GasAlert builds the alert sent for a high gas reading.
func GasAlert(level int64, severity, timestamp string) Message {
	return Message{
		Topic: TopicGasAlert,
		Title: "Gas alarm!",
		Body:  fmt.Sprintf("Dangerous gas level detected: %d", level),
		Data: map[string]string{
			"severity":  severity,
			"gas_level": strconv.FormatInt(level, 10),
			"timestamp": timestamp,
		},
	}
}

func encode(msg Message) ([]byte, error) {
	if msg.Topic == "" {
		return nil, ErrEmptyTopic
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encoding alert: %w", err)
	}
	return payload, nil
}
