package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SignalType is the discrete directional call.
type SignalType string

const (
	SignalStrongBuy  SignalType = "STRONG_BUY"
	SignalBuy        SignalType = "BUY"
	SignalHold       SignalType = "HOLD"
	SignalSell       SignalType = "SELL"
	SignalStrongSell SignalType = "STRONG_SELL"
)

// IsBuy reports STRONG_BUY or BUY.
func (s SignalType) IsBuy() bool {
	return s == SignalStrongBuy || s == SignalBuy
}

// IsSell reports STRONG_SELL or SELL.
func (s SignalType) IsSell() bool {
	return s == SignalStrongSell || s == SignalSell
}

// IndicatorStatus is the display classification of an indicator.
type IndicatorStatus string

const (
	StatusBullish IndicatorStatus = "bullish"
	StatusBearish IndicatorStatus = "bearish"
	StatusNeutral IndicatorStatus = "neutral"
)

// IndicatorScore is one factor of the signal. Score is in [-1, 1].
type IndicatorScore struct {
	Score  float64         `json:"score"`
	Status IndicatorStatus `json:"status"`
	Detail string          `json:"detail"`
}

// IndicatorSet groups the five factors.
type IndicatorSet struct {
	Momentum  IndicatorScore `json:"momentum"`
	Volume    IndicatorScore `json:"volume"`
	Buyers    IndicatorScore `json:"buyers"`
	Liquidity IndicatorScore `json:"liquidity"`
	Trend     IndicatorScore `json:"trend"`
}

// Scores returns the factors in a fixed order.
func (s IndicatorSet) Scores() []IndicatorScore {
	return []IndicatorScore{s.Momentum, s.Volume, s.Buyers, s.Liquidity, s.Trend}
}

// Total sums the five scores.
func (s IndicatorSet) Total() float64 {
	var total float64
	for _, sc := range s.Scores() {
		total += sc.Score
	}
	return total
}

// TradeLevels are the suggested entry, target and stop levels.
type TradeLevels struct {
	ReferencePrice  decimal.Decimal `json:"referencePrice"`
	EntryZoneLow    decimal.Decimal `json:"entryZoneLow"`
	EntryZoneHigh   decimal.Decimal `json:"entryZoneHigh"`
	TargetPercent   float64         `json:"targetPercent"`
	StopLossPercent float64         `json:"stopLossPercent"`
	TargetPrice     decimal.Decimal `json:"targetPrice"`
	StopLossPrice   decimal.Decimal `json:"stopLossPrice"`
}

// SignalResult is produced from scratch for every cycle and never mutated.
type SignalResult struct {
	Pair            PairRef      `json:"pair"`
	Signal          SignalType   `json:"signal"`
	Confidence      int          `json:"confidence"`
	TotalScore      float64      `json:"totalScore"`
	NormalizedScore float64      `json:"normalizedScore"`
	Indicators      IndicatorSet `json:"indicators"`
	TradeLevels
}

// SignalRecord is a published signal as stored in history.
type SignalRecord struct {
	ChainID         string     `json:"chainId"`
	TokenAddress    string     `json:"tokenAddress"`
	PairAddress     string     `json:"pairAddress"`
	VenueID         string     `json:"venueId"`
	Signal          SignalType `json:"signal"`
	Confidence      int        `json:"confidence"`
	TotalScore      float64    `json:"totalScore"`
	ReferencePrice  string     `json:"referencePrice"`
	TargetPercent   float64    `json:"targetPercent"`
	StopLossPercent float64    `json:"stopLossPercent"`
	Generation      uint64     `json:"generation"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// NewSignalRecord flattens a result for storage and events.
func NewSignalRecord(token TokenRef, gen uint64, res *SignalResult, at time.Time) SignalRecord {
	return SignalRecord{
		ChainID:         token.ChainID,
		TokenAddress:    token.Address,
		PairAddress:     res.Pair.PairAddress,
		VenueID:         res.Pair.VenueID,
		Signal:          res.Signal,
		Confidence:      res.Confidence,
		TotalScore:      res.TotalScore,
		ReferencePrice:  res.ReferencePrice.String(),
		TargetPercent:   res.TargetPercent,
		StopLossPercent: res.StopLossPercent,
		Generation:      gen,
		CreatedAt:       at.UTC(),
	}
}
