// Package arbitrage finds cross-venue spreads for one base token and
// proposes pairs that are not listed yet.
package arbitrage

import (
	"sort"
	"strings"

	"DexPulse/internal/domain/models"
	"DexPulse/internal/services/market"

	"github.com/shopspring/decimal"
)

const (
	// DefaultFeePercent is the two-sided swap fee assumption.
	DefaultFeePercent = 0.6
	// MinSpreadPercent: groups at or below this gross spread are dropped.
	MinSpreadPercent = 0.05
	// LowSpreadPercent: unprofitable spreads above this are tier "low".
	LowSpreadPercent = 0.1
)

// Liquidity floors in USD for profitable tiers.
const (
	HotLiquidity   = 50_000.0
	GemLiquidity   = 10_000.0
	DegenLiquidity = 1_000.0
	MicroLiquidity = 100.0
)

// Scanner is stateless after construction and safe for concurrent use.
type Scanner struct {
	ref        Reference
	feePercent decimal.Decimal
}

// Option configures Scanner.
type Option func(*Scanner)

// WithReference replaces the default reference tables.
func WithReference(ref Reference) Option {
	return func(s *Scanner) {
		if len(ref) > 0 {
			s.ref = ref.Normalize()
		}
	}
}

// WithFeePercent overrides the fee assumption.
func WithFeePercent(pct float64) Option {
	return func(s *Scanner) {
		if pct >= 0 {
			s.feePercent = decimal.NewFromFloat(pct)
		}
	}
}

// NewScanner returns a scanner using the default reference assets and fee.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		ref:        DefaultReference().Normalize(),
		feePercent: decimal.NewFromFloat(DefaultFeePercent),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan builds the full report for a token from all of its pairs.
func (s *Scanner) Scan(token models.TokenRef, pairs []models.PairSnapshot) models.ArbitrageReport {
	report := models.ArbitrageReport{
		Token:         token,
		PairCount:     len(pairs),
		Opportunities: s.Opportunities(pairs),
		Suggestions:   []models.PairSuggestion{},
	}
	if primary, ok := market.Primary(pairs); ok {
		report.PrimaryChain = primary.ChainID
		report.Suggestions = s.Suggestions(primary, pairs)
	}
	return report
}

// Opportunities evaluates every quote group with at least two priced pairs.
func (s *Scanner) Opportunities(pairs []models.PairSnapshot) []models.ArbitrageOpportunity {
	groups := groupByQuote(pairs)
	out := make([]models.ArbitrageOpportunity, 0, len(groups))
	for _, key := range sortedKeys(groups) {
		if opp, ok := s.evaluate(key, groups[key]); ok {
			out = append(out, opp)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsProfitable != b.IsProfitable {
			return a.IsProfitable
		}
		if a.NetSpreadPercent != b.NetSpreadPercent {
			return a.NetSpreadPercent > b.NetSpreadPercent
		}
		return a.QuoteSymbol < b.QuoteSymbol
	})
	return out
}

func (s *Scanner) evaluate(quote string, group []models.PairSnapshot) (models.ArbitrageOpportunity, bool) {
	priced := make([]models.PairSnapshot, 0, len(group))
	for _, p := range group {
		if p.Price.IsPositive() {
			priced = append(priced, p)
		}
	}
	if len(priced) < 2 {
		return models.ArbitrageOpportunity{}, false
	}

	lo, hi := priced[0], priced[0]
	for _, p := range priced[1:] {
		if p.Price.LessThan(lo.Price) {
			lo = p
		}
		if p.Price.GreaterThan(hi.Price) {
			hi = p
		}
	}

	gross := hi.Price.Sub(lo.Price).Div(lo.Price).Mul(decimal.NewFromInt(100))
	grossPct := gross.InexactFloat64()
	if grossPct <= MinSpreadPercent {
		return models.ArbitrageOpportunity{}, false
	}
	netPct := gross.Sub(s.feePercent).InexactFloat64()
	effLiq := min(lo.LiquidityUSD, hi.LiquidityUSD)
	tier, profitable := ClassifyRisk(netPct, grossPct, effLiq)

	return models.ArbitrageOpportunity{
		QuoteSymbol:        quote,
		Buy:                leg(lo),
		Sell:               leg(hi),
		GrossSpreadPercent: grossPct,
		NetSpreadPercent:   netPct,
		EffectiveLiquidity: effLiq,
		IsCrossChain:       lo.ChainID != hi.ChainID,
		RiskTier:           tier,
		IsProfitable:       profitable,
	}, true
}

// ClassifyRisk maps spread and depth to a tier.
func ClassifyRisk(netPct, grossPct, effectiveLiquidity float64) (models.RiskTier, bool) {
	if netPct > 0 {
		switch {
		case effectiveLiquidity >= HotLiquidity:
			return models.TierHot, true
		case effectiveLiquidity >= GemLiquidity:
			return models.TierGem, true
		case effectiveLiquidity >= DegenLiquidity:
			return models.TierDegen, true
		case effectiveLiquidity >= MicroLiquidity:
			return models.TierMicro, true
		default:
			return models.TierDust, true
		}
	}
	if grossPct > LowSpreadPercent {
		return models.TierLow, false
	}
	return models.TierNoArb, false
}

func leg(p models.PairSnapshot) models.ArbLeg {
	return models.ArbLeg{
		VenueID:     p.VenueID,
		ChainID:     p.ChainID,
		PairAddress: p.PairAddress,
		Price:       p.Price,
		Liquidity:   p.LiquidityUSD,
	}
}

func quoteKey(p models.PairSnapshot) string {
	return strings.ToUpper(strings.TrimSpace(p.QuoteToken.Symbol))
}

func groupByQuote(pairs []models.PairSnapshot) map[string][]models.PairSnapshot {
	groups := make(map[string][]models.PairSnapshot)
	for _, p := range pairs {
		key := quoteKey(p)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], p)
	}
	return groups
}

func sortedKeys(groups map[string][]models.PairSnapshot) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
