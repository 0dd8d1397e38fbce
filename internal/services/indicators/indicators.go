// Package indicators classifies a pair snapshot into five scored factors.
package indicators

import (
	"fmt"

	"DexPulse/internal/domain/models"
)

// Calculator applies a threshold table. The zero value is not usable; use New.
type Calculator struct {
	th Thresholds
}

// New returns a Calculator using th.
func New(th Thresholds) *Calculator {
	return &Calculator{th: th}
}

// NewDefault uses DefaultThresholds.
func NewDefault() *Calculator {
	return New(DefaultThresholds())
}

// Calculate runs all five classifiers.
func (c *Calculator) Calculate(p models.PairSnapshot) models.IndicatorSet {
	return models.IndicatorSet{
		Momentum:  c.Momentum(p.PriceChange),
		Volume:    c.Volume(p.Volume),
		Buyers:    c.Buyers(p.Txns1h),
		Liquidity: c.Liquidity(p.LiquidityUSD),
		Trend:     c.Trend(p.PriceChange),
	}
}

// Momentum tallies the 5m, 1h and 6h windows.
func (c *Calculator) Momentum(pc models.PriceChange) models.IndicatorScore {
	tally := windowVote(pc.M5, c.th.MomentumM5Floor) +
		windowVote(pc.H1, c.th.MomentumH1Floor) +
		windowVote(pc.H6, c.th.MomentumH6Floor)

	detail := fmt.Sprintf("5m %+.2f%%, 1h %+.2f%%, 6h %+.2f%%", pc.M5, pc.H1, pc.H6)
	switch {
	case tally >= c.th.MomentumTallyMin:
		return score(1, models.StatusBullish, "positive momentum: "+detail)
	case tally <= -c.th.MomentumTallyMin:
		return score(-1, models.StatusBearish, "negative momentum: "+detail)
	default:
		return score(0, models.StatusNeutral, "mixed momentum: "+detail)
	}
}

func windowVote(change, floor float64) int {
	switch {
	case change > 0:
		return 1
	case change < floor:
		return -1
	default:
		return 0
	}
}

// VolumeRatio compares 1h volume with the 24h hourly average. It is 0 when
// there is no 24h volume.
func VolumeRatio(v models.Volume) float64 {
	avg := v.H24 / 24
	if avg <= 0 {
		return 0
	}
	return v.H1 / avg
}

// Volume classifies the hourly volume ratio.
func (c *Calculator) Volume(v models.Volume) models.IndicatorScore {
	ratio := VolumeRatio(v)
	detail := fmt.Sprintf("1h volume %.2fx the 24h hourly average", ratio)
	switch {
	case ratio >= c.th.VolumeSurgeRatio:
		return score(1, models.StatusBullish, "volume surge: "+detail)
	case ratio >= c.th.VolumeElevatedRatio:
		return score(0.5, models.StatusBullish, "elevated volume: "+detail)
	case ratio < c.th.VolumeDryRatio:
		return score(-1, models.StatusBearish, "volume drying up: "+detail)
	default:
		return score(0, models.StatusNeutral, "normal volume: "+detail)
	}
}

// BuyRatio is the buy share of 1h transactions in percent.
func (c *Calculator) BuyRatio(t models.TxnCounts) float64 {
	total := t.Total()
	if total <= 0 {
		return c.th.BuyersDefaultRatio
	}
	return float64(t.Buys) * 100 / float64(total)
}

// Buyers classifies buy pressure.
func (c *Calculator) Buyers(t models.TxnCounts) models.IndicatorScore {
	ratio := c.BuyRatio(t)
	detail := fmt.Sprintf("%.1f%% buys (%d/%d)", ratio, t.Buys, t.Sells)
	switch {
	case ratio >= c.th.BuyersStrongRatio:
		return score(1, models.StatusBullish, "strong buy pressure: "+detail)
	case ratio >= c.th.BuyersLeanRatio:
		return score(0.5, models.StatusBullish, "buyers leading: "+detail)
	case ratio <= c.th.SellersStrongRatio:
		return score(-1, models.StatusBearish, "strong sell pressure: "+detail)
	case ratio <= c.th.SellersLeanRatio:
		return score(-0.5, models.StatusBearish, "sellers leading: "+detail)
	default:
		return score(0, models.StatusNeutral, "balanced flow: "+detail)
	}
}

// Liquidity classifies pool depth in USD.
func (c *Calculator) Liquidity(usd float64) models.IndicatorScore {
	detail := fmt.Sprintf("$%.0f liquidity", usd)
	switch {
	case usd >= c.th.LiquidityDeep:
		return score(1, models.StatusBullish, "deep pool: "+detail)
	case usd >= c.th.LiquidityHealthy:
		return score(0.5, models.StatusBullish, "healthy pool: "+detail)
	case usd >= c.th.LiquidityThin:
		return score(0, models.StatusNeutral, "moderate pool: "+detail)
	default:
		return score(-1, models.StatusBearish, "thin pool: "+detail)
	}
}

// Trend combines short and medium windows. The reversal and pullback
// branches carry a nonzero score with a neutral status.
func (c *Calculator) Trend(pc models.PriceChange) models.IndicatorScore {
	shortUp := pc.M5 > 0 && pc.H1 > 0
	shortDown := pc.M5 < 0 && pc.H1 < 0
	medUp := pc.H6 > 0
	medDown := pc.H6 < 0

	switch {
	case pc.H24 > c.th.TrendOverextended:
		return score(-0.5, models.StatusBearish, fmt.Sprintf("caution: up %.0f%% in 24h, overextended", pc.H24))
	case shortUp && medUp:
		return score(1, models.StatusBullish, "uptrend across short and medium windows")
	case shortDown && medDown:
		return score(-1, models.StatusBearish, "downtrend across short and medium windows")
	case shortUp && !medUp:
		return score(0.5, models.StatusNeutral, "potential reversal: short-term bounce against 6h trend")
	case shortDown && !medDown:
		return score(-0.5, models.StatusNeutral, "potential pullback: short-term dip within 6h trend")
	default:
		return score(0, models.StatusNeutral, "consolidating")
	}
}

func score(v float64, status models.IndicatorStatus, detail string) models.IndicatorScore {
	return models.IndicatorScore{Score: v, Status: status, Detail: detail}
}
