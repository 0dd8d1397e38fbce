package arbitrage

import (
	"strings"
	"testing"

	"DexPulse/internal/domain/models"
)

func testReference() Reference {
	return Reference{
		"base": {
			Quotes: []QuoteAsset{high("WETH"), high("USDC"), medium("DAI"), medium("PULSE")},
			Venues: []string{"uniswap", "aerodrome", "baseswap"},
		},
	}
}

func TestSuggestionsAddVenueAndNewPair(t *testing.T) {
	s := NewScanner(WithReference(testReference()))
	pairs := []models.PairSnapshot{
		pair("base", "uniswap", "WETH", "1.0", 80_000),
	}
	report := s.Scan(models.NewTokenRef("base", "0xbase"), pairs)

	if report.PrimaryChain != "base" {
		t.Fatalf("primary chain %q", report.PrimaryChain)
	}
	got := report.Suggestions
	// WETH add-venue x2 (high), USDC new pair (high), DAI new pair (medium).
	// PULSE is the base symbol and is skipped.
	if len(got) != 4 {
		t.Fatalf("expected 4 suggestions, got %d: %+v", len(got), got)
	}
	want := []struct {
		kind  models.SuggestionKind
		venue string
		quote string
		prio  models.SuggestionPriority
	}{
		{models.SuggestAddVenue, "aerodrome", "WETH", models.PriorityHigh},
		{models.SuggestAddVenue, "baseswap", "WETH", models.PriorityHigh},
		{models.SuggestNewPair, "uniswap", "USDC", models.PriorityHigh},
		{models.SuggestNewPair, "uniswap", "DAI", models.PriorityMedium},
	}
	for i, w := range want {
		g := got[i]
		if g.Kind != w.kind || g.VenueID != w.venue || g.QuoteSymbol != w.quote || g.Priority != w.prio {
			t.Fatalf("suggestion %d: got %+v, want %+v", i, g, w)
		}
		if g.Reason == "" {
			t.Fatalf("suggestion %d has no reason", i)
		}
	}
}

func TestSuggestionsSortMediumAddVenueAfterHighNewPair(t *testing.T) {
	s := NewScanner(WithReference(testReference()))
	pairs := []models.PairSnapshot{
		pair("base", "uniswap", "DAI", "1.0", 80_000),
		pair("base", "uniswap", "WETH", "1.0", 10_000),
		pair("base", "aerodrome", "WETH", "1.0", 10_000),
	}
	got := s.Scan(models.NewTokenRef("base", "0xbase"), pairs).Suggestions
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %+v", got)
	}
	if got[0].Kind != models.SuggestNewPair || got[0].QuoteSymbol != "USDC" {
		t.Fatalf("expected high priority USDC new pair first, got %+v", got[0])
	}
	for _, g := range got[1:] {
		if g.Kind != models.SuggestAddVenue || g.QuoteSymbol != "DAI" || g.Priority != models.PriorityMedium {
			t.Fatalf("unexpected %+v", g)
		}
	}
}

func TestSuggestionsTruncatedToSix(t *testing.T) {
	ref := Reference{
		"base": {
			Quotes: []QuoteAsset{high("A"), high("B"), high("C"), high("D"), high("E"), high("F"), high("G")},
			Venues: []string{"uniswap", "aerodrome", "baseswap"},
		},
	}
	s := NewScanner(WithReference(ref))
	got := s.Scan(models.NewTokenRef("base", "0xbase"), []models.PairSnapshot{
		pair("base", "uniswap", "X", "1.0", 1_000),
	}).Suggestions
	if len(got) != MaxSuggestions {
		t.Fatalf("expected %d suggestions, got %d", MaxSuggestions, len(got))
	}
}

func TestSuggestionsUnknownChain(t *testing.T) {
	s := NewScanner(WithReference(testReference()))
	got := s.Scan(models.NewTokenRef("fantom", "0xbase"), []models.PairSnapshot{
		pair("fantom", "spooky", "WFTM", "1.0", 1_000),
	}).Suggestions
	if len(got) != 0 {
		t.Fatalf("expected no suggestions for an unknown chain, got %+v", got)
	}
}

func TestScanEmpty(t *testing.T) {
	report := NewScanner().Scan(models.NewTokenRef("base", "0xbase"), nil)
	if report.PrimaryChain != "" || len(report.Opportunities) != 0 || len(report.Suggestions) != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestReferenceOverlayReplacesChain(t *testing.T) {
	ref := DefaultReference().Overlay(Reference{
		"BASE": {Quotes: []QuoteAsset{{Symbol: "weth", Priority: "HIGH"}}, Venues: []string{"Aerodrome"}},
	})
	base, ok := ref.Chain("base")
	if !ok || len(base.Quotes) != 1 || base.Quotes[0].Symbol != "WETH" || base.Quotes[0].Priority != models.PriorityHigh {
		t.Fatalf("unexpected base reference %+v", base)
	}
	if len(base.Venues) != 1 || base.Venues[0] != "aerodrome" {
		t.Fatalf("unexpected venues %v", base.Venues)
	}
	if _, ok := ref.Chain("ethereum"); !ok {
		t.Fatalf("chains without overrides must be kept")
	}
}

func TestAddVenueSkipsCurrentVenueRegardlessOfCase(t *testing.T) {
	s := NewScanner(WithReference(testReference()))
	got := s.Suggestions(pair("Base", "Uniswap", "WETH", "1.0", 80_000), []models.PairSnapshot{
		pair("Base", "Uniswap", "WETH", "1.0", 80_000),
	})

	addVenue := 0
	for _, g := range got {
		if g.Kind != models.SuggestAddVenue {
			continue
		}
		addVenue++
		if strings.EqualFold(g.VenueID, "uniswap") {
			t.Fatalf("current venue proposed back: %+v", g)
		}
	}
	if addVenue != 2 {
		t.Fatalf("expected 2 add-venue suggestions, got %d: %+v", addVenue, got)
	}
}
