package signals

import (
	"DexPulse/internal/domain/models"
	"DexPulse/internal/services/indicators"
)

// Engine runs calculator, aggregator and level estimator on one pair.
type Engine struct {
	calc *indicators.Calculator
}

// NewEngine returns an engine that scores indicators from calc.
func NewEngine(calc *indicators.Calculator) *Engine {
	if calc == nil {
		calc = indicators.NewDefault()
	}
	return &Engine{calc: calc}
}

// Evaluate is pure: the same snapshot always yields the same result.
func (e *Engine) Evaluate(p models.PairSnapshot) *models.SignalResult {
	set := e.calc.Calculate(p)
	agg := AggregateScores(set)
	return &models.SignalResult{
		Pair:            p.Ref(),
		Signal:          agg.Signal,
		Confidence:      agg.Confidence,
		TotalScore:      agg.TotalScore,
		NormalizedScore: agg.NormalizedScore,
		Indicators:      set,
		TradeLevels:     EstimateLevels(p.Price, agg.Signal),
	}
}
