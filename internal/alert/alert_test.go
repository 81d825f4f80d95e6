package alert

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/nerrad567/homegate/internal/infrastructure/config"
)

type fakePublisher struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
	calls    int
	err      error

	// block waits for ctx instead of returning, like an unacknowledged publish.
	block bool
}

func (p *fakePublisher) PublishContext(ctx context.Context, topic string, payload []byte, qos byte, retained bool) error {
	p.calls++
	p.topic, p.payload, p.qos, p.retained = topic, payload, qos, retained
	if p.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return p.err
}

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestGasAlert(t *testing.T) {
	msg := GasAlert(850, "high", "2026-03-01 18:30:00")

	if msg.Topic != "gas_alert" || msg.Title != "Gas alarm!" {
		t.Errorf("GasAlert() topic/title = %q/%q", msg.Topic, msg.Title)
	}
	if msg.Body != "Dangerous gas level detected: 850" {
		t.Errorf("Body = %q", msg.Body)
	}
	want := map[string]string{"severity": "high", "gas_level": "850", "timestamp": "2026-03-01 18:30:00"}
	for k, v := range want {
		if msg.Data[k] != v {
			t.Errorf("Data[%q] = %q, want %q", k, msg.Data[k], v)
		}
	}
}

func TestMQTTSender_Send(t *testing.T) {
	pub := &fakePublisher{}
	s := NewMQTTSender(pub, "homegate/alerts")

	if err := s.Send(context.Background(), GasAlert(900, "high", "t")); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if pub.topic != "homegate/alerts/gas_alert" {
		t.Errorf("topic = %q", pub.topic)
	}
	if pub.qos != 1 || pub.retained {
		t.Errorf("qos=%d retained=%v, want 1/false", pub.qos, pub.retained)
	}

	var got Message
	if err := json.Unmarshal(pub.payload, &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.Title != "Gas alarm!" || got.Data["gas_level"] != "900" {
		t.Errorf("payload = %+v", got)
	}
	if got.Topic != "" {
		t.Error("topic should not be serialised in the payload")
	}
}

func TestMQTTSender_Errors(t *testing.T) {
	pub := &fakePublisher{err: errors.New("not connected")}
	s := NewMQTTSender(pub, "alerts")

	if err := s.Send(context.Background(), Message{Title: "x"}); !errors.Is(err, ErrEmptyTopic) {
		t.Errorf("empty topic error = %v", err)
	}
	if err := s.Send(context.Background(), GasAlert(1, "high", "t")); !errors.Is(err, ErrSendFailed) {
		t.Errorf("publish failure error = %v, want ErrSendFailed", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pub.err = nil
	pub.calls = 0
	if err := s.Send(ctx, GasAlert(1, "high", "t")); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled send error = %v", err)
	}
	if pub.calls != 0 {
		t.Errorf("published %d times after cancellation", pub.calls)
	}
}

func TestMQTTSender_HonoursDeadline(t *testing.T) {
	pub := &fakePublisher{block: true}
	s := NewMQTTSender(pub, "alerts")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.Send(ctx, GasAlert(900, "high", "t"))
	if !errors.Is(err, ErrSendFailed) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Send() error = %v, want ErrSendFailed wrapping DeadlineExceeded", err)
	}
	if pub.calls != 1 {
		t.Errorf("publish calls = %d, want 1", pub.calls)
	}
}

func TestKafkaSender_Send(t *testing.T) {
	w := &fakeWriter{}
	s := &KafkaSender{writer: w, prefix: "homegate."}

	if err := s.Send(context.Background(), GasAlert(750, "high", "t")); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("wrote %d messages, want 1", len(w.msgs))
	}
	m := w.msgs[0]
	if m.Topic != "homegate.gas_alert" || string(m.Key) != "gas_alert" {
		t.Errorf("topic/key = %q/%q", m.Topic, m.Key)
	}

	w.err = errors.New("leader not available")
	if err := s.Send(context.Background(), GasAlert(750, "high", "t")); !errors.Is(err, ErrSendFailed) {
		t.Errorf("error = %v, want ErrSendFailed", err)
	}

	if err := s.Close(); err != nil || !w.closed {
		t.Errorf("Close() = %v, closed = %v", err, w.closed)
	}
}

func TestNew(t *testing.T) {
	pub := &fakePublisher{}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		pub     Publisher
		wantErr bool
		check   func(t *testing.T, s Sender)
	}{
		{
			name:   "none",
			mutate: func(c *config.Config) { c.Alerts.Transport = config.AlertTransportNone },
			check: func(t *testing.T, s Sender) {
				if _, ok := s.(Nop); !ok {
					t.Errorf("sender = %T, want Nop", s)
				}
			},
		},
		{
			name:   "mqtt",
			mutate: func(c *config.Config) { c.Alerts.Transport = config.AlertTransportMQTT },
			pub:    pub,
			check: func(t *testing.T, s Sender) {
				if _, ok := s.(*MQTTSender); !ok {
					t.Errorf("sender = %T, want *MQTTSender", s)
				}
			},
		},
		{
			name:    "mqtt without client",
			mutate:  func(c *config.Config) { c.Alerts.Transport = config.AlertTransportMQTT },
			wantErr: true,
		},
		{
			name: "kafka",
			mutate: func(c *config.Config) {
				c.Alerts.Transport = config.AlertTransportKafka
				c.Kafka.Brokers = []string{"localhost:9092"}
			},
			check: func(t *testing.T, s Sender) {
				if _, ok := s.(*KafkaSender); !ok {
					t.Errorf("sender = %T, want *KafkaSender", s)
				}
			},
		},
		{
			name: "kafka without brokers",
			mutate: func(c *config.Config) {
				c.Alerts.Transport = config.AlertTransportKafka
				c.Kafka.Brokers = nil
			},
			wantErr: true,
		},
		{
			name:    "unknown",
			mutate:  func(c *config.Config) { c.Alerts.Transport = "smoke-signal" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			tt.mutate(cfg)

			s, closer, err := New(cfg, tt.pub)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer closer.Close() //nolint:errcheck // Test cleanup
			tt.check(t, s)
		})
	}
}

func TestNop(t *testing.T) {
	if err := (Nop{}).Send(context.Background(), GasAlert(1, "high", "t")); err != nil {
		t.Errorf("Nop.Send() error = %v", err)
	}
}
