package usecase

import (
	"context"
	"fmt"

	"DexPulse/internal/domain/models"
	domrepo "DexPulse/internal/domain/repository"
	"DexPulse/internal/services/market"
)

// loadBasePairs fetches and normalizes every pair that has the token on the
// base side, across all chains.
func loadBasePairs(ctx context.Context, source domrepo.PairSource, token models.TokenRef) ([]models.PairSnapshot, error) {
	if token.IsZero() {
		return nil, models.ErrInvalidToken
	}
	raws, err := source.TokenPairs(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch pairs: %w", err)
	}
	pairs := market.FilterBase(market.NormalizeAll(raws), token.Address)
	if len(pairs) == 0 {
		return nil, fmt.Errorf("token %s is never the base asset: %w", token, models.ErrNoPairs)
	}
	return pairs, nil
}
