// Package signals turns indicator scores into a directional signal with
// confidence and trade levels.
package signals

import (
	"math"

	"DexPulse/internal/domain/models"
)

// IndicatorCount is the number of factors summed into the total score.
const IndicatorCount = 5

// Normalized score cut-offs, evaluated strongest first.
const (
	StrongBuyCutoff  = 0.6
	BuyCutoff        = 0.3
	StrongSellCutoff = -0.6
	SellCutoff       = -0.3
)

// Confidence curve parameters: base + |normalized| * slope.
const (
	strongBase  = 60.0
	strongSlope = 40.0
	leanBase    = 50.0
	leanSlope   = 30.0
	holdBase    = 50.0
	holdSlope   = 20.0
)

// Aggregate is the outcome of combining the five scores.
type Aggregate struct {
	Signal          models.SignalType
	Confidence      int
	TotalScore      float64
	NormalizedScore float64
}

// AggregateScores sums the indicators and maps the normalized total to a
// signal. The first matching cut-off wins.
func AggregateScores(set models.IndicatorSet) Aggregate {
	total := set.Total()
	norm := total / IndicatorCount
	abs := math.Abs(norm)

	var (
		sig  models.SignalType
		conf float64
	)
	switch {
	case norm >= StrongBuyCutoff:
		sig, conf = models.SignalStrongBuy, math.Min(100, strongBase+norm*strongSlope)
	case norm >= BuyCutoff:
		sig, conf = models.SignalBuy, leanBase+norm*leanSlope
	case norm <= StrongSellCutoff:
		sig, conf = models.SignalStrongSell, math.Min(100, strongBase+abs*strongSlope)
	case norm <= SellCutoff:
		sig, conf = models.SignalSell, leanBase+abs*leanSlope
	default:
		sig, conf = models.SignalHold, holdBase-abs*holdSlope
	}

	return Aggregate{
		Signal:          sig,
		Confidence:      clampConfidence(conf),
		TotalScore:      total,
		NormalizedScore: norm,
	}
}

func clampConfidence(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v)
	}
}
