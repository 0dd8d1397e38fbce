package indicators

import (
	"testing"

	"DexPulse/internal/domain/models"
)

func TestMomentumTally(t *testing.T) {
	c := NewDefault()
	cases := []struct {
		name   string
		pc     models.PriceChange
		score  float64
		status models.IndicatorStatus
	}{
		{"two up one mild down", models.PriceChange{M5: 1, H1: 2, H6: -1}, 1, models.StatusBullish},
		{"all up", models.PriceChange{M5: 0.1, H1: 0.1, H6: 0.1}, 1, models.StatusBullish},
		{"all deep down", models.PriceChange{M5: -3, H1: -4, H6: -6}, -1, models.StatusBearish},
		{"mild drops do not count", models.PriceChange{M5: -1, H1: -2, H6: -4}, 0, models.StatusNeutral},
		{"one up two deep down", models.PriceChange{M5: 1, H1: -4, H6: -6}, 0, models.StatusNeutral},
		{"floors are exclusive", models.PriceChange{M5: -2, H1: -3, H6: -5}, 0, models.StatusNeutral},
	}
	for _, tc := range cases {
		got := c.Momentum(tc.pc)
		if got.Score != tc.score || got.Status != tc.status {
			t.Fatalf("%s: got %v/%s, want %v/%s", tc.name, got.Score, got.Status, tc.score, tc.status)
		}
	}
}

func TestVolumeRatioBands(t *testing.T) {
	c := NewDefault()
	cases := []struct {
		v     models.Volume
		score float64
	}{
		{models.Volume{H1: 200, H24: 2400}, 1},   // ratio 2
		{models.Volume{H1: 130, H24: 2400}, 0.5}, // ratio 1.3
		{models.Volume{H1: 100, H24: 2400}, 0},   // ratio 1
		{models.Volume{H1: 50, H24: 2400}, 0},    // ratio 0.5 is not dry
		{models.Volume{H1: 40, H24: 2400}, -1},   // ratio 0.4
		{models.Volume{H1: 500, H24: 0}, -1},     // no 24h volume -> ratio 0
	}
	for i, tc := range cases {
		if got := c.Volume(tc.v); got.Score != tc.score {
			t.Fatalf("case %d: got %v, want %v (ratio %v)", i, got.Score, tc.score, VolumeRatio(tc.v))
		}
	}
}

func TestBuyersNoTransactionsIsNeutral(t *testing.T) {
	c := NewDefault()
	if r := c.BuyRatio(models.TxnCounts{}); r != 50 {
		t.Fatalf("expected default ratio 50, got %v", r)
	}
	got := c.Buyers(models.TxnCounts{})
	if got.Score != 0 || got.Status != models.StatusNeutral {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestBuyersBands(t *testing.T) {
	c := NewDefault()
	cases := []struct {
		buys, sells int
		score       float64
	}{
		{65, 35, 1},
		{55, 45, 0.5},
		{50, 50, 0},
		{45, 55, -0.5},
		{35, 65, -1},
		{0, 10, -1},
	}
	for _, tc := range cases {
		got := c.Buyers(models.TxnCounts{Buys: tc.buys, Sells: tc.sells})
		if got.Score != tc.score {
			t.Fatalf("%d/%d: got %v, want %v", tc.buys, tc.sells, got.Score, tc.score)
		}
	}
}

func TestLiquidityBands(t *testing.T) {
	c := NewDefault()
	cases := map[float64]float64{
		250_000: 1,
		100_000: 1,
		30_000:  0.5,
		10_000:  0,
		9_999:   -1,
		0:       -1,
	}
	for usd, want := range cases {
		if got := c.Liquidity(usd); got.Score != want {
			t.Fatalf("liquidity %v: got %v, want %v", usd, got.Score, want)
		}
	}
}

func TestTrendNeutralWithNonzeroScore(t *testing.T) {
	c := NewDefault()

	reversal := c.Trend(models.PriceChange{M5: 1, H1: 1, H6: -2})
	if reversal.Score != 0.5 || reversal.Status != models.StatusNeutral {
		t.Fatalf("reversal branch: %+v", reversal)
	}

	pullback := c.Trend(models.PriceChange{M5: -1, H1: -1, H6: 3})
	if pullback.Score != -0.5 || pullback.Status != models.StatusNeutral {
		t.Fatalf("pullback branch: %+v", pullback)
	}
}

func TestTrendPriority(t *testing.T) {
	c := NewDefault()
	cases := []struct {
		name   string
		pc     models.PriceChange
		score  float64
		status models.IndicatorStatus
	}{
		{"overextended wins over uptrend", models.PriceChange{M5: 1, H1: 1, H6: 1, H24: 150}, -0.5, models.StatusBearish},
		{"uptrend", models.PriceChange{M5: 1, H1: 1, H6: 1, H24: 20}, 1, models.StatusBullish},
		{"downtrend", models.PriceChange{M5: -1, H1: -1, H6: -1}, -1, models.StatusBearish},
		{"flat six hour counts as not up", models.PriceChange{M5: 1, H1: 1, H6: 0}, 0.5, models.StatusNeutral},
		{"mixed short window", models.PriceChange{M5: 1, H1: -1, H6: 1}, 0, models.StatusNeutral},
		{"exactly 100 is not overextended", models.PriceChange{H24: 100}, 0, models.StatusNeutral},
	}
	for _, tc := range cases {
		got := c.Trend(tc.pc)
		if got.Score != tc.score || got.Status != tc.status {
			t.Fatalf("%s: got %v/%s, want %v/%s", tc.name, got.Score, got.Status, tc.score, tc.status)
		}
	}
}

func TestCalculateScoresInRange(t *testing.T) {
	c := NewDefault()
	snaps := []models.PairSnapshot{
		{},
		{PriceChange: models.PriceChange{M5: 500, H1: 500, H6: 500, H24: 500}, Volume: models.Volume{H1: 1e9, H24: 1}, Txns1h: models.TxnCounts{Buys: 1000}, LiquidityUSD: 1e12},
		{PriceChange: models.PriceChange{M5: -99, H1: -99, H6: -99, H24: -99}, Txns1h: models.TxnCounts{Sells: 1000}},
	}
	for i, s := range snaps {
		for _, sc := range c.Calculate(s).Scores() {
			if sc.Score < -1 || sc.Score > 1 {
				t.Fatalf("snapshot %d: score %v out of range", i, sc.Score)
			}
		}
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	c := NewDefault()
	s := models.PairSnapshot{
		PriceChange:  models.PriceChange{M5: 0.3, H1: 1.7, H6: -2.2, H24: 14},
		Volume:       models.Volume{H1: 1234.5, H24: 20000},
		Txns1h:       models.TxnCounts{Buys: 31, Sells: 17},
		LiquidityUSD: 42_000,
	}
	a, b := c.Calculate(s), c.Calculate(s)
	if a != b {
		t.Fatalf("expected identical output, got %+v and %+v", a, b)
	}
}
