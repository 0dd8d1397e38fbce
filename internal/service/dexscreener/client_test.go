package dexscreener

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"DexPulse/internal/domain/models"
)

const tokenBody = `{"schemaVersion":"1.0.0","pairs":[
 {"chainId":"base","dexId":"uniswap","pairAddress":"0xp1",
  "baseToken":{"address":"0xabc","symbol":"PULSE"},"quoteToken":{"symbol":"WETH"},
  "priceUsd":"1.25","liquidity":{"usd":"50000"}}]}`

func TestTokenPairs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/latest/dex/tokens/0xabc":
			_, _ = w.Write([]byte(tokenBody))
		case "/latest/dex/tokens/0xempty":
			_, _ = w.Write([]byte(`{"schemaVersion":"1.0.0","pairs":null}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	ctx := context.Background()

	pairs, err := c.TokenPairs(ctx, models.NewTokenRef("base", "0xabc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 1 || pairs[0].PairAddress != "0xp1" || float64(pairs[0].Liquidity.USD) != 50000 {
		t.Fatalf("unexpected pairs %+v", pairs)
	}

	if _, err := c.TokenPairs(ctx, models.NewTokenRef("base", "0xempty")); !errors.Is(err, models.ErrNoPairs) {
		t.Fatalf("expected ErrNoPairs, got %v", err)
	}
	if _, err := c.TokenPairs(ctx, models.NewTokenRef("base", "0xdown")); !errors.Is(err, models.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if _, err := c.TokenPairs(ctx, models.TokenRef{}); !errors.Is(err, models.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenPairsHonoursCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient(srv.URL).TokenPairs(ctx, models.NewTokenRef("base", "0xabc"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
