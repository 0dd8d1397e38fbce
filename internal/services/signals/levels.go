package signals

import (
	"DexPulse/internal/domain/models"

	"github.com/shopspring/decimal"
)

// Entry zone is the reference price +/- 2%.
var (
	entryLowFactor  = decimal.RequireFromString("0.98")
	entryHighFactor = decimal.RequireFromString("1.02")
	hundred         = decimal.NewFromInt(100)
)

// Target and stop percentages per signal. They do not scale with confidence.
const (
	TargetStrongBuy  = 25.0
	TargetBuy        = 15.0
	TargetHold       = 0.0
	TargetSell       = -10.0
	TargetStrongSell = -15.0

	StopBuySide  = -8.0
	StopSellSide = 8.0
	StopHold     = 5.0
)

// TargetPercent returns the fixed target for a signal.
func TargetPercent(sig models.SignalType) float64 {
	switch sig {
	case models.SignalStrongBuy:
		return TargetStrongBuy
	case models.SignalBuy:
		return TargetBuy
	case models.SignalSell:
		return TargetSell
	case models.SignalStrongSell:
		return TargetStrongSell
	default:
		return TargetHold
	}
}

// StopLossPercent returns the fixed stop for a signal.
func StopLossPercent(sig models.SignalType) float64 {
	switch {
	case sig.IsBuy():
		return StopBuySide
	case sig.IsSell():
		return StopSellSide
	default:
		return StopHold
	}
}

// EstimateLevels derives entry zone, target and stop from the reference price.
func EstimateLevels(price decimal.Decimal, sig models.SignalType) models.TradeLevels {
	target := TargetPercent(sig)
	stop := StopLossPercent(sig)
	return models.TradeLevels{
		ReferencePrice:  price,
		EntryZoneLow:    price.Mul(entryLowFactor),
		EntryZoneHigh:   price.Mul(entryHighFactor),
		TargetPercent:   target,
		StopLossPercent: stop,
		TargetPrice:     applyPercent(price, target),
		StopLossPrice:   applyPercent(price, stop),
	}
}

func applyPercent(price decimal.Decimal, pct float64) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(pct).Div(hundred))
	return price.Mul(factor)
}
