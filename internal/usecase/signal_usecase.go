package usecase

import (
	"context"
	"fmt"
	"time"

	"DexPulse/internal/domain/models"
	domrepo "DexPulse/internal/domain/repository"
	"DexPulse/internal/services/market"
	"DexPulse/internal/services/signals"
)

// SignalUsecase computes a signal from the deepest pair of a token on its
// own chain.
type SignalUsecase struct {
	source  domrepo.PairSource
	engine  *signals.Engine
	metrics domrepo.Metrics
}

// NewSignalUsecase wires a pair source to the signal engine.
func NewSignalUsecase(source domrepo.PairSource, engine *signals.Engine, metrics domrepo.Metrics) *SignalUsecase {
	if engine == nil {
		engine = signals.NewEngine(nil)
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &SignalUsecase{source: source, engine: engine, metrics: metrics}
}

// Analyze fetches the pairs of token and scores them.
func (u *SignalUsecase) Analyze(ctx context.Context, token models.TokenRef) (*models.SignalResult, error) {
	start := time.Now()
	defer func() { u.metrics.RecordLatency("analyze", time.Since(start).Seconds()) }()

	pairs, err := loadBasePairs(ctx, u.source, token)
	if err != nil {
		return nil, err
	}
	primary, ok := market.Primary(market.FilterChain(pairs, token.ChainID))
	if !ok {
		return nil, fmt.Errorf("token %s has no pairs on %s: %w", token, token.ChainID, models.ErrNoPairs)
	}
	return u.engine.Evaluate(primary), nil
}
