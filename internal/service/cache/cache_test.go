package cache

import (
	"context"
	"testing"
	"time"
)

func TestTTLCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	c := NewTTLCache()
	c.now = func() time.Time { return now }

	_ = c.SetBytes(ctx, "a", []byte("1"), time.Second)
	_ = c.SetBytes(ctx, "b", []byte("2"), 0)

	if b, ok, _ := c.GetBytes(ctx, "a"); !ok || string(b) != "1" {
		t.Fatalf("expected hit for a")
	}

	now = now.Add(time.Second)
	if _, ok, _ := c.GetBytes(ctx, "a"); ok {
		t.Fatalf("expected a to expire")
	}
	if _, ok, _ := c.GetBytes(ctx, "b"); !ok {
		t.Fatalf("entries without ttl must not expire")
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewTTLCache()

	type report struct {
		Token string `json:"token"`
		Count int    `json:"count"`
	}
	if err := SetJSON(ctx, c, "k", report{Token: "base:0xabc", Count: 3}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got report
	ok, err := GetJSON(ctx, c, "k", &got)
	if err != nil || !ok || got.Count != 3 || got.Token != "base:0xabc" {
		t.Fatalf("unexpected %+v ok=%v err=%v", got, ok, err)
	}

	ok, err = GetJSON(ctx, c, "missing", &got)
	if ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
}
