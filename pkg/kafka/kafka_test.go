package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

type flakyHandler struct {
	failures int
	calls    int
	err      error
}

func (h *flakyHandler) Topic() string { return "watch" }

func (h *flakyHandler) Handle(_ context.Context, _ []byte) error {
	h.calls++
	if h.calls <= h.failures {
		return h.err
	}
	return nil
}

func newTestConsumer(t *testing.T) *Consumer {
	t.Helper()
	c, err := NewConsumer(WithConsumerBrokers([]string{"localhost:9092"}), WithConsumerRetry(2, time.Millisecond, 2*time.Millisecond))
	if err != nil {
		t.Fatalf("new consumer: %v", err)
	}
	return c
}

func TestHandleRetriesTransientErrors(t *testing.T) {
	c := newTestConsumer(t)
	h := &flakyHandler{failures: 2, err: errors.New("busy")}
	if err := c.handle(h, kafkaMessage("x")); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if h.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", h.calls)
	}
}

func TestHandleStopsOnPermanentError(t *testing.T) {
	c := newTestConsumer(t)
	h := &flakyHandler{failures: 10, err: ErrPermanent}
	if err := c.handle(h, kafkaMessage("x")); !errors.Is(err, ErrPermanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if h.calls != 1 {
		t.Fatalf("permanent errors must not be retried, got %d calls", h.calls)
	}
}

func TestHandleRecoversPanic(t *testing.T) {
	c := newTestConsumer(t)
	err := c.safeHandle(panicHandler{}, nil)
	if err == nil {
		t.Fatalf("expected panic to surface as error")
	}
}

func TestBackoffBounds(t *testing.T) {
	for attempt := 1; attempt < 40; attempt++ {
		d := backoffWithJitter(10*time.Millisecond, 80*time.Millisecond, attempt)
		if d <= 0 || d > 80*time.Millisecond {
			t.Fatalf("attempt %d: backoff %s out of range", attempt, d)
		}
	}
}

func TestNewProducerRequiresBrokers(t *testing.T) {
	if _, err := NewProducer(); err == nil {
		t.Fatalf("expected error without brokers")
	}
	if _, err := NewConsumer(); err == nil {
		t.Fatalf("expected error without brokers")
	}
}

func TestEncode(t *testing.T) {
	b, err := encode(map[string]string{"action": "activate"})
	if err != nil || string(b) != `{"action":"activate"}` {
		t.Fatalf("unexpected encoding %s err=%v", b, err)
	}
	if b, _ := encode("raw"); string(b) != "raw" {
		t.Fatalf("strings must pass through")
	}
}

type panicHandler struct{}

func (panicHandler) Topic() string                        { return "watch" }
func (panicHandler) Handle(context.Context, []byte) error { panic("boom") }

func kafkaMessage(v string) kafkago.Message {
	return kafkago.Message{Topic: "watch", Value: []byte(v)}
}
