// Package market turns raw upstream pair records into PairSnapshots.
package market

import (
	"math"
	"strings"

	"DexPulse/internal/domain/models"

	"github.com/shopspring/decimal"
)

// Normalize converts one raw record. Missing or malformed numbers become 0;
// volumes, liquidity, counts and price are never negative.
func Normalize(raw models.RawPair) models.PairSnapshot {
	var liq float64
	if raw.Liquidity != nil {
		liq = nonNegative(float64(raw.Liquidity.USD))
	}

	return models.PairSnapshot{
		ChainID:     strings.ToLower(strings.TrimSpace(raw.ChainID)),
		VenueID:     strings.ToLower(strings.TrimSpace(raw.DexID)),
		PairAddress: strings.TrimSpace(raw.PairAddress),
		BaseToken:   raw.BaseToken,
		QuoteToken:  raw.QuoteToken,
		Price:       price(raw.PriceUsd),
		PriceChange: models.PriceChange{
			M5:  finite(float64(raw.PriceChange.M5)),
			H1:  finite(float64(raw.PriceChange.H1)),
			H6:  finite(float64(raw.PriceChange.H6)),
			H24: finite(float64(raw.PriceChange.H24)),
		},
		Volume: models.Volume{
			M5:  nonNegative(float64(raw.Volume.M5)),
			H1:  nonNegative(float64(raw.Volume.H1)),
			H24: nonNegative(float64(raw.Volume.H24)),
		},
		Txns1h: models.TxnCounts{
			Buys:  count(raw.Txns.H1.Buys),
			Sells: count(raw.Txns.H1.Sells),
		},
		LiquidityUSD: liq,
	}
}

// NormalizeAll converts raw records in order.
func NormalizeAll(raws []models.RawPair) []models.PairSnapshot {
	out := make([]models.PairSnapshot, 0, len(raws))
	for _, r := range raws {
		out = append(out, Normalize(r))
	}
	return out
}

// FilterChain keeps pairs on the given chain. An empty chain keeps all.
func FilterChain(pairs []models.PairSnapshot, chainID string) []models.PairSnapshot {
	chainID = strings.ToLower(strings.TrimSpace(chainID))
	if chainID == "" {
		return pairs
	}
	out := make([]models.PairSnapshot, 0, len(pairs))
	for _, p := range pairs {
		if p.ChainID == chainID {
			out = append(out, p)
		}
	}
	return out
}

// FilterBase keeps pairs whose base token is the given address. The
// upstream token search also returns pairs where the token is the quote.
func FilterBase(pairs []models.PairSnapshot, address string) []models.PairSnapshot {
	address = strings.TrimSpace(address)
	out := make([]models.PairSnapshot, 0, len(pairs))
	for _, p := range pairs {
		if strings.EqualFold(p.BaseToken.Address, address) {
			out = append(out, p)
		}
	}
	return out
}

// Primary returns the most liquid pair; the first one wins ties.
func Primary(pairs []models.PairSnapshot) (models.PairSnapshot, bool) {
	if len(pairs) == 0 {
		return models.PairSnapshot{}, false
	}
	best := 0
	for i := 1; i < len(pairs); i++ {
		if pairs[i].LiquidityUSD > pairs[best].LiquidityUSD {
			best = i
		}
	}
	return pairs[best], true
}

func price(d models.FlexDecimal) decimal.Decimal {
	if !d.Valid || d.IsNegative() {
		return decimal.Zero
	}
	return d.Decimal
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func nonNegative(v float64) float64 {
	v = finite(v)
	if v < 0 {
		return 0
	}
	return v
}

func count(v models.FlexInt) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
