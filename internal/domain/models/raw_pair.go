package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RawPair mirrors a DexScreener pair record. Every numeric field decodes
// leniently so one bad value never fails the whole response.
type RawPair struct {
	ChainID     string        `json:"chainId"`
	DexID       string        `json:"dexId"`
	URL         string        `json:"url"`
	PairAddress string        `json:"pairAddress"`
	BaseToken   TokenInfo     `json:"baseToken"`
	QuoteToken  TokenInfo     `json:"quoteToken"`
	PriceNative FlexDecimal   `json:"priceNative"`
	PriceUsd    FlexDecimal   `json:"priceUsd"`
	Txns        RawTxns       `json:"txns"`
	Volume      RawWindows    `json:"volume"`
	PriceChange RawWindows    `json:"priceChange"`
	Liquidity   *RawLiquidity `json:"liquidity"`
	Fdv         FlexFloat     `json:"fdv"`
	MarketCap   FlexFloat     `json:"marketCap"`
	CreatedAt   FlexInt       `json:"pairCreatedAt"`
}

type RawTxns struct {
	M5  RawTxnCount `json:"m5"`
	H1  RawTxnCount `json:"h1"`
	H6  RawTxnCount `json:"h6"`
	H24 RawTxnCount `json:"h24"`
}

type RawTxnCount struct {
	Buys  FlexInt `json:"buys"`
	Sells FlexInt `json:"sells"`
}

type RawWindows struct {
	M5  FlexFloat `json:"m5"`
	H1  FlexFloat `json:"h1"`
	H6  FlexFloat `json:"h6"`
	H24 FlexFloat `json:"h24"`
}

type RawLiquidity struct {
	USD   FlexFloat `json:"usd"`
	Base  FlexFloat `json:"base"`
	Quote FlexFloat `json:"quote"`
}

// PairsResponse is the body of /latest/dex/tokens/{address}.
type PairsResponse struct {
	SchemaVersion string    `json:"schemaVersion"`
	Pairs         []RawPair `json:"pairs"`
}

// FlexFloat accepts a JSON number, a numeric string or null. Anything else,
// including NaN and Inf, decodes to 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	*f = 0
	v, ok := parseLenient(b)
	if ok {
		*f = FlexFloat(v)
	}
	return nil
}

// FlexInt is FlexFloat truncated to an integer.
type FlexInt int64

func (i *FlexInt) UnmarshalJSON(b []byte) error {
	*i = 0
	v, ok := parseLenient(b)
	if ok && v < math.MaxInt64 && v > math.MinInt64 {
		*i = FlexInt(v)
	}
	return nil
}

// FlexDecimal is a lenient decimal. Valid is false when the field was
// missing or unparsable.
type FlexDecimal struct {
	decimal.Decimal
	Valid bool
}

func (d *FlexDecimal) UnmarshalJSON(b []byte) error {
	d.Decimal, d.Valid = decimal.Zero, false
	s := unquote(b)
	if s == "" || s == "null" {
		return nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	d.Decimal, d.Valid = v, true
	return nil
}

func parseLenient(b []byte) (float64, bool) {
	s := unquote(b)
	if s == "" || s == "null" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func unquote(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
