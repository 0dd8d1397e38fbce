package signals

import (
	"math"
	"testing"

	"DexPulse/internal/domain/models"
	"DexPulse/internal/services/indicators"

	"github.com/shopspring/decimal"
)

func setWithTotal(scores ...float64) models.IndicatorSet {
	var s [5]float64
	copy(s[:], scores)
	return models.IndicatorSet{
		Momentum:  models.IndicatorScore{Score: s[0]},
		Volume:    models.IndicatorScore{Score: s[1]},
		Buyers:    models.IndicatorScore{Score: s[2]},
		Liquidity: models.IndicatorScore{Score: s[3]},
		Trend:     models.IndicatorScore{Score: s[4]},
	}
}

func TestAggregateTotalThreeIsStrongBuy84(t *testing.T) {
	agg := AggregateScores(setWithTotal(1, 1, 1))
	if agg.Signal != models.SignalStrongBuy {
		t.Fatalf("expected STRONG_BUY at the 0.6 boundary, got %s", agg.Signal)
	}
	if agg.Confidence != 84 {
		t.Fatalf("expected confidence 84, got %d", agg.Confidence)
	}
	if agg.TotalScore != 3 || agg.NormalizedScore != 0.6 {
		t.Fatalf("unexpected scores %v/%v", agg.TotalScore, agg.NormalizedScore)
	}
}

func TestAggregateBands(t *testing.T) {
	cases := []struct {
		scores []float64
		signal models.SignalType
		conf   int
	}{
		{[]float64{1, 1, 1, 1, 1}, models.SignalStrongBuy, 100},
		{[]float64{1, 0.5}, models.SignalBuy, 59},            // 0.3 -> 50 + 9
		{[]float64{1, 1}, models.SignalBuy, 62},              // 0.4 -> 50 + 12
		{[]float64{1}, models.SignalHold, 46},                // 0.2 -> 50 - 4
		{[]float64{}, models.SignalHold, 50},                 // 0
		{[]float64{-1, -0.5}, models.SignalSell, 59},         // -0.3
		{[]float64{-1, -1, -1}, models.SignalStrongSell, 84}, // -0.6
		{[]float64{-1, -1, -1, -1, -1}, models.SignalStrongSell, 100},
	}
	for _, tc := range cases {
		agg := AggregateScores(setWithTotal(tc.scores...))
		if agg.Signal != tc.signal || agg.Confidence != tc.conf {
			t.Fatalf("scores %v: got %s/%d, want %s/%d", tc.scores, agg.Signal, agg.Confidence, tc.signal, tc.conf)
		}
	}
}

func TestAggregateMonotonicAndBounded(t *testing.T) {
	rank := map[models.SignalType]int{
		models.SignalStrongSell: 0,
		models.SignalSell:       1,
		models.SignalHold:       2,
		models.SignalBuy:        3,
		models.SignalStrongBuy:  4,
	}
	prev := -1
	prevNorm := math.Inf(-1)
	for total := -5.0; total <= 5.0; total += 0.5 {
		agg := AggregateScores(setWithTotal(total))
		if agg.Confidence < 0 || agg.Confidence > 100 {
			t.Fatalf("confidence %d out of range at total %v", agg.Confidence, total)
		}
		if agg.NormalizedScore < prevNorm {
			t.Fatalf("normalized score decreased at total %v", total)
		}
		if rank[agg.Signal] < prev {
			t.Fatalf("signal rank decreased at total %v", total)
		}
		prev, prevNorm = rank[agg.Signal], agg.NormalizedScore
	}
}

func TestAggregateNaNClampsConfidence(t *testing.T) {
	agg := AggregateScores(setWithTotal(math.NaN()))
	if agg.Signal != models.SignalHold || agg.Confidence != 0 {
		t.Fatalf("expected HOLD/0 for NaN input, got %s/%d", agg.Signal, agg.Confidence)
	}
}

func TestEstimateLevels(t *testing.T) {
	price := decimal.RequireFromString("2.5")
	lv := EstimateLevels(price, models.SignalStrongBuy)
	if !lv.EntryZoneLow.Equal(decimal.RequireFromString("2.45")) {
		t.Fatalf("entry low %s", lv.EntryZoneLow)
	}
	if !lv.EntryZoneHigh.Equal(decimal.RequireFromString("2.55")) {
		t.Fatalf("entry high %s", lv.EntryZoneHigh)
	}
	if lv.TargetPercent != 25 || lv.StopLossPercent != -8 {
		t.Fatalf("unexpected percents %v/%v", lv.TargetPercent, lv.StopLossPercent)
	}
	if !lv.TargetPrice.Equal(decimal.RequireFromString("3.125")) {
		t.Fatalf("target price %s", lv.TargetPrice)
	}
	if !lv.StopLossPrice.Equal(decimal.RequireFromString("2.3")) {
		t.Fatalf("stop price %s", lv.StopLossPrice)
	}
}

func TestLevelPercentsPerSignal(t *testing.T) {
	cases := map[models.SignalType][2]float64{
		models.SignalStrongBuy:  {25, -8},
		models.SignalBuy:        {15, -8},
		models.SignalHold:       {0, 5},
		models.SignalSell:       {-10, 8},
		models.SignalStrongSell: {-15, 8},
	}
	for sig, want := range cases {
		if got := TargetPercent(sig); got != want[0] {
			t.Fatalf("%s target: got %v want %v", sig, got, want[0])
		}
		if got := StopLossPercent(sig); got != want[1] {
			t.Fatalf("%s stop: got %v want %v", sig, got, want[1])
		}
	}
}

func TestEngineEvaluateIsIdempotent(t *testing.T) {
	e := NewEngine(indicators.NewDefault())
	p := models.PairSnapshot{
		ChainID:      "base",
		VenueID:      "uniswap",
		PairAddress:  "0xpair",
		BaseToken:    models.TokenInfo{Address: "0xabc", Symbol: "PULSE"},
		QuoteToken:   models.TokenInfo{Symbol: "WETH"},
		Price:        decimal.RequireFromString("0.0125"),
		PriceChange:  models.PriceChange{M5: 1, H1: 2, H6: 3, H24: 20},
		Volume:       models.Volume{H1: 5000, H24: 24000},
		Txns1h:       models.TxnCounts{Buys: 70, Sells: 30},
		LiquidityUSD: 150_000,
	}
	a, b := e.Evaluate(p), e.Evaluate(p)
	if a.Signal != models.SignalStrongBuy || a.Confidence != 100 {
		t.Fatalf("expected STRONG_BUY/100, got %s/%d", a.Signal, a.Confidence)
	}
	if a.Indicators != b.Indicators || a.Confidence != b.Confidence || !a.EntryZoneLow.Equal(b.EntryZoneLow) {
		t.Fatalf("expected identical results")
	}
	if a.Pair.PairAddress != "0xpair" || a.Pair.QuoteSymbol != "WETH" {
		t.Fatalf("unexpected pair ref %+v", a.Pair)
	}
}
