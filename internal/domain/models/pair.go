package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoPairs is returned when the upstream source has no pairs for a token.
	ErrNoPairs = errors.New("no pairs found for token")
	// ErrInvalidToken is returned for an empty chain or address.
	ErrInvalidToken = errors.New("invalid token reference")
	// ErrUpstream wraps transport and status failures of the pair source.
	ErrUpstream = errors.New("upstream market data unavailable")
)

// TokenRef identifies a token on a chain.
type TokenRef struct {
	ChainID string `json:"chainId"`
	Address string `json:"address"`
}

// NewTokenRef normalizes chain and address input. Hex (0x) addresses are
// case-insensitive and are lower-cased; other encodings are kept as given.
func NewTokenRef(chainID, address string) TokenRef {
	address = strings.TrimSpace(address)
	if len(address) > 2 && (address[:2] == "0x" || address[:2] == "0X") {
		address = "0x" + strings.ToLower(address[2:])
	}
	return TokenRef{
		ChainID: strings.ToLower(strings.TrimSpace(chainID)),
		Address: address,
	}
}

// IsZero reports whether chain or address is missing.
func (t TokenRef) IsZero() bool {
	return t.ChainID == "" || t.Address == ""
}

// Key is used for cache keys, Kafka keys and metric labels.
func (t TokenRef) Key() string {
	return t.ChainID + ":" + t.Address
}

func (t TokenRef) String() string {
	return t.Key()
}

// TokenInfo is one side of a trading pair.
type TokenInfo struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
	Symbol  string `json:"symbol"`
}

// PriceChange holds signed percent changes per window.
type PriceChange struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// Volume holds USD volume per window.
type Volume struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H24 float64 `json:"h24"`
}

// TxnCounts holds buy and sell counts over one hour.
type TxnCounts struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// Total returns buys plus sells.
func (t TxnCounts) Total() int {
	return t.Buys + t.Sells
}

// PairSnapshot is one trading pair at one point in time, with every numeric
// field already defaulted and non-negative where required.
type PairSnapshot struct {
	ChainID      string          `json:"chainId"`
	VenueID      string          `json:"venueId"`
	PairAddress  string          `json:"pairAddress"`
	BaseToken    TokenInfo       `json:"baseToken"`
	QuoteToken   TokenInfo       `json:"quoteToken"`
	Price        decimal.Decimal `json:"price"`
	PriceChange  PriceChange     `json:"priceChange"`
	Volume       Volume          `json:"volume"`
	Txns1h       TxnCounts       `json:"txns1h"`
	LiquidityUSD float64         `json:"liquidityUsd"`
}

// Ref returns the identity of the pair.
func (p PairSnapshot) Ref() PairRef {
	return PairRef{
		ChainID:     p.ChainID,
		VenueID:     p.VenueID,
		PairAddress: p.PairAddress,
		BaseSymbol:  p.BaseToken.Symbol,
		QuoteSymbol: p.QuoteToken.Symbol,
	}
}

// PairRef is the identity part of a PairSnapshot.
type PairRef struct {
	ChainID     string `json:"chainId"`
	VenueID     string `json:"venueId"`
	PairAddress string `json:"pairAddress"`
	BaseSymbol  string `json:"baseSymbol"`
	QuoteSymbol string `json:"quoteSymbol"`
}
