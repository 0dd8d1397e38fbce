package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"DexPulse/internal/domain/models"
)

type capturePublisher struct {
	topic string
	key   []byte
	value interface{}
	err   error
}

func (c *capturePublisher) Publish(_ context.Context, topic string, key []byte, value interface{}) error {
	c.topic, c.key, c.value = topic, key, value
	return c.err
}

func (c *capturePublisher) Close() error { return nil }

func TestKafkaSignalPublisher(t *testing.T) {
	cp := &capturePublisher{}
	p := NewKafkaSignalPublisher(cp, "dexpulse.signals")

	rec := models.SignalRecord{ChainID: "base", TokenAddress: "0xABC", Signal: models.SignalBuy, CreatedAt: time.Now()}
	if err := p.PublishSignal(context.Background(), rec); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if cp.topic != "dexpulse.signals" || string(cp.key) != "0xABC" {
		t.Fatalf("unexpected topic/key %q %q", cp.topic, cp.key)
	}
	if got, ok := cp.value.(models.SignalRecord); !ok || got.Signal != models.SignalBuy {
		t.Fatalf("unexpected value %#v", cp.value)
	}

	cp.err = errors.New("broker down")
	if err := p.PublishSignal(context.Background(), rec); !errors.Is(err, cp.err) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}

func TestSignalSchema(t *testing.T) {
	stmts := signalSchema("dexpulse", "signal_history")
	if len(stmts) != 2 || !strings.Contains(stmts[0], "CREATE DATABASE IF NOT EXISTS dexpulse") {
		t.Fatalf("unexpected schema %v", stmts)
	}
	if !strings.Contains(stmts[1], "dexpulse.signal_history") ||
		!strings.Contains(stmts[1], "ORDER BY (chain_id, token_address, created_at)") {
		t.Fatalf("unexpected table ddl %s", stmts[1])
	}
}
