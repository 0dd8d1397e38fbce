package repository

import (
	"context"
	"fmt"

	"DexPulse/internal/domain/models"
	domrepo "DexPulse/internal/domain/repository"
)

// keyedPublisher is the part of pkg/kafka.Producer the publisher needs.
type keyedPublisher interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaSignalPublisher emits committed signals as JSON events keyed by
// token address, so all events of one token land on one partition.
type KafkaSignalPublisher struct {
	producer keyedPublisher
	topic    string
}

// NewKafkaSignalPublisher publishes signal records to topic.
func NewKafkaSignalPublisher(p keyedPublisher, topic string) domrepo.SignalPublisher {
	return &KafkaSignalPublisher{producer: p, topic: topic}
}

// PublishSignal writes rec keyed by its token address.
func (p *KafkaSignalPublisher) PublishSignal(ctx context.Context, rec models.SignalRecord) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(rec.TokenAddress), rec); err != nil {
		return fmt.Errorf("publish signal %s/%s: %w", rec.ChainID, rec.TokenAddress, err)
	}
	return nil
}

func (p *KafkaSignalPublisher) Close() error {
	return p.producer.Close()
}
