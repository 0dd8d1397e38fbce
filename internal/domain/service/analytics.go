package service

import (
	"context"

	"DexPulse/internal/domain/models"
)

// SignalAnalyzer computes a signal for a token from fresh market data.
type SignalAnalyzer interface {
	Analyze(ctx context.Context, token models.TokenRef) (*models.SignalResult, error)
}

// ArbitrageAnalyzer scans a token's pairs for spreads and missing listings.
type ArbitrageAnalyzer interface {
	Scan(ctx context.Context, token models.TokenRef) (*models.ArbitrageReport, error)
}

// Watcher keeps one active token refreshed in the background.
type Watcher interface {
	Activate(token models.TokenRef) uint64
	Deactivate()
	Latest() models.WatchSnapshot
	// Subscribe delivers the latest snapshot, dropping intermediate ones for
	// slow readers. The returned func unsubscribes.
	Subscribe() (<-chan models.WatchSnapshot, func())
}
