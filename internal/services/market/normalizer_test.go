package market

import (
	"encoding/json"
	"testing"

	"DexPulse/internal/domain/models"
)

const rawBody = `{"pairs":[
 {"chainId":"Base","dexId":"Uniswap","pairAddress":"0xp1",
  "baseToken":{"address":"0xABC","symbol":"PULSE"},"quoteToken":{"address":"0xq","symbol":"WETH"},
  "priceUsd":"0.0125","txns":{"h1":{"buys":12,"sells":"8"}},
  "volume":{"m5":10,"h1":"250.5","h24":null},
  "priceChange":{"m5":"abc","h1":1.5,"h6":-2,"h24":30},
  "liquidity":{"usd":45000}},
 {"chainId":"base","dexId":"aerodrome","pairAddress":"0xp2",
  "baseToken":{"address":"0xabc","symbol":"PULSE"},"quoteToken":{"symbol":"USDC"},
  "priceUsd":"-1","txns":{"h1":{"buys":-3,"sells":2}},
  "volume":{"h1":-5,"h24":{"weird":true}},
  "liquidity":null},
 {"chainId":"base","dexId":"uniswap","pairAddress":"0xp3",
  "baseToken":{"address":"0xother","symbol":"WETH"},"quoteToken":{"address":"0xabc","symbol":"PULSE"},
  "priceUsd":"2500","liquidity":{"usd":900000}}
]}`

func decode(t *testing.T) []models.PairSnapshot {
	t.Helper()
	var resp models.PairsResponse
	if err := json.Unmarshal([]byte(rawBody), &resp); err != nil {
		t.Fatalf("lenient decode failed: %v", err)
	}
	return NormalizeAll(resp.Pairs)
}

func TestNormalizeDefaultsMalformedFields(t *testing.T) {
	pairs := decode(t)
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(pairs))
	}

	p := pairs[0]
	if p.ChainID != "base" || p.VenueID != "uniswap" {
		t.Fatalf("ids not lower-cased: %q %q", p.ChainID, p.VenueID)
	}
	if p.Price.String() != "0.0125" {
		t.Fatalf("price %s", p.Price)
	}
	if p.Txns1h.Buys != 12 || p.Txns1h.Sells != 8 {
		t.Fatalf("txns %+v", p.Txns1h)
	}
	if p.Volume.H1 != 250.5 || p.Volume.H24 != 0 {
		t.Fatalf("volume %+v", p.Volume)
	}
	if p.PriceChange.M5 != 0 || p.PriceChange.H1 != 1.5 || p.PriceChange.H6 != -2 {
		t.Fatalf("price change %+v", p.PriceChange)
	}
	if p.LiquidityUSD != 45000 {
		t.Fatalf("liquidity %v", p.LiquidityUSD)
	}

	q := pairs[1]
	if !q.Price.IsZero() || q.Txns1h.Buys != 0 || q.Volume.H1 != 0 || q.Volume.H24 != 0 || q.LiquidityUSD != 0 {
		t.Fatalf("negative or missing values not defaulted: %+v", q)
	}
}

func TestFilterBaseAndPrimary(t *testing.T) {
	pairs := FilterBase(decode(t), "0xabc")
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs with the token as base, got %d", len(pairs))
	}
	primary, ok := Primary(pairs)
	if !ok || primary.PairAddress != "0xp1" {
		t.Fatalf("unexpected primary %+v", primary)
	}
}

func TestPrimaryTieKeepsFirst(t *testing.T) {
	pairs := []models.PairSnapshot{
		{PairAddress: "a", LiquidityUSD: 10},
		{PairAddress: "b", LiquidityUSD: 10},
	}
	p, ok := Primary(pairs)
	if !ok || p.PairAddress != "a" {
		t.Fatalf("expected first pair on tie, got %q", p.PairAddress)
	}
	if _, ok := Primary(nil); ok {
		t.Fatalf("expected no primary for empty input")
	}
}

func TestFilterChain(t *testing.T) {
	pairs := []models.PairSnapshot{{ChainID: "base"}, {ChainID: "ethereum"}}
	if got := FilterChain(pairs, " BASE "); len(got) != 1 || got[0].ChainID != "base" {
		t.Fatalf("unexpected %+v", got)
	}
	if got := FilterChain(pairs, ""); len(got) != 2 {
		t.Fatalf("empty chain should keep all")
	}
}
