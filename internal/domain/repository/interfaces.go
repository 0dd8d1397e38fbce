package repository

import (
	"context"

	"DexPulse/internal/domain/models"
)

// PairSource returns every pair listed for a token on its chain.
type PairSource interface {
	TokenPairs(ctx context.Context, token models.TokenRef) ([]models.RawPair, error)
}

type SignalPublisher interface {
	PublishSignal(ctx context.Context, rec models.SignalRecord) error
	Close() error
}

type SignalHistory interface {
	Init(ctx context.Context) error // ensure tables
	Append(ctx context.Context, rec models.SignalRecord) error
	Recent(ctx context.Context, token models.TokenRef, limit int) ([]models.SignalRecord, error)
}

type Metrics interface {
	RecordCycle(result string)
	RecordError(kind string)
	RecordConfidence(token string, confidence int)
	RecordLatency(op string, seconds float64)
}
