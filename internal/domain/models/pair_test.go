package models

import "testing"

func TestNewTokenRefNormalizesHexAddresses(t *testing.T) {
	a := NewTokenRef(" Base ", "0xABCdef")
	b := NewTokenRef("base", "0xabcdef")
	if a != b || a.Key() != "base:0xabcdef" {
		t.Fatalf("expected equal refs, got %+v and %+v", a, b)
	}

	sol := NewTokenRef("solana", " So11111111111111111111111111111111111111112 ")
	if sol.Address != "So11111111111111111111111111111111111111112" {
		t.Fatalf("non-hex address must keep its case, got %q", sol.Address)
	}
	if !NewTokenRef("base", "  ").IsZero() {
		t.Fatalf("blank address must be zero")
	}
}
