package models

import "github.com/shopspring/decimal"

// RiskTier classifies an opportunity by profitability and depth.
type RiskTier string

const (
	TierHot   RiskTier = "hot"
	TierGem   RiskTier = "gem"
	TierDegen RiskTier = "degen"
	TierMicro RiskTier = "micro"
	TierDust  RiskTier = "dust"
	TierLow   RiskTier = "low"
	TierNoArb RiskTier = "noarb"
)

// ArbLeg is one side of an opportunity.
type ArbLeg struct {
	VenueID     string          `json:"venueId"`
	ChainID     string          `json:"chainId"`
	PairAddress string          `json:"pairAddress"`
	Price       decimal.Decimal `json:"price"`
	Liquidity   float64         `json:"liquidityUsd"`
}

// ArbitrageOpportunity is the best buy/sell spread within one quote group.
type ArbitrageOpportunity struct {
	QuoteSymbol        string   `json:"quoteSymbol"`
	Buy                ArbLeg   `json:"buy"`
	Sell               ArbLeg   `json:"sell"`
	GrossSpreadPercent float64  `json:"grossSpreadPercent"`
	NetSpreadPercent   float64  `json:"netSpreadPercent"`
	EffectiveLiquidity float64  `json:"effectiveLiquidity"`
	IsCrossChain       bool     `json:"isCrossChain"`
	RiskTier           RiskTier `json:"riskTier"`
	IsProfitable       bool     `json:"isProfitable"`
}

// SuggestionKind distinguishes adding a venue from creating a pair.
type SuggestionKind string

const (
	SuggestAddVenue SuggestionKind = "add_venue"
	SuggestNewPair  SuggestionKind = "new_pair"
)

// SuggestionPriority orders suggestions.
type SuggestionPriority string

const (
	PriorityHigh   SuggestionPriority = "high"
	PriorityMedium SuggestionPriority = "medium"
)

// PairSuggestion is a venue/quote combination not yet listed for the token.
type PairSuggestion struct {
	Kind        SuggestionKind     `json:"kind"`
	ChainID     string             `json:"chainId"`
	VenueID     string             `json:"venueId"`
	QuoteSymbol string             `json:"quoteSymbol"`
	Priority    SuggestionPriority `json:"priority"`
	Reason      string             `json:"reason"`
}

// ArbitrageReport is the scanner output for one token.
type ArbitrageReport struct {
	Token         TokenRef               `json:"token"`
	PrimaryChain  string                 `json:"primaryChain"`
	PairCount     int                    `json:"pairCount"`
	Opportunities []ArbitrageOpportunity `json:"opportunities"`
	Suggestions   []PairSuggestion       `json:"suggestions"`
}
