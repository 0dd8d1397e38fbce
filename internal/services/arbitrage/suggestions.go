package arbitrage

import (
	"fmt"
	"sort"
	"strings"

	"DexPulse/internal/domain/models"
)

const (
	// MaxSuggestions caps the suggestion list.
	MaxSuggestions = 6
	// MaxVenuesPerQuote caps add-venue proposals for one single-venue quote.
	MaxVenuesPerQuote = 2
)

// Suggestions proposes new venues for quotes listed on a single venue and
// new pairs for popular quotes the token lacks on its primary chain.
func (s *Scanner) Suggestions(primary models.PairSnapshot, pairs []models.PairSnapshot) []models.PairSuggestion {
	groups := groupByQuote(pairs)
	out := make([]models.PairSuggestion, 0, MaxSuggestions)

	for _, key := range sortedKeys(groups) {
		group := groups[key]
		if len(group) != 1 {
			continue
		}
		out = append(out, s.addVenue(key, group[0])...)
	}

	out = append(out, s.newPairs(primary, groups)...)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority != b.Priority {
			return a.Priority == models.PriorityHigh
		}
		if a.Kind != b.Kind {
			return a.Kind == models.SuggestAddVenue
		}
		return false
	})
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

func (s *Scanner) addVenue(quote string, only models.PairSnapshot) []models.PairSuggestion {
	chain, ok := s.ref.Chain(only.ChainID)
	if !ok {
		return nil
	}
	prio := chain.QuotePriority(quote)
	out := make([]models.PairSuggestion, 0, MaxVenuesPerQuote)
	for _, venue := range chain.Venues {
		if len(out) == MaxVenuesPerQuote {
			break
		}
		if strings.EqualFold(venue, only.VenueID) {
			continue
		}
		out = append(out, models.PairSuggestion{
			Kind:        models.SuggestAddVenue,
			ChainID:     only.ChainID,
			VenueID:     venue,
			QuoteSymbol: quote,
			Priority:    prio,
			Reason: fmt.Sprintf("%s/%s trades only on %s; a second venue on %s opens spread capture",
				only.BaseToken.Symbol, quote, only.VenueID, venue),
		})
	}
	return out
}

func (s *Scanner) newPairs(primary models.PairSnapshot, groups map[string][]models.PairSnapshot) []models.PairSuggestion {
	chain, ok := s.ref.Chain(primary.ChainID)
	if !ok {
		return nil
	}
	var venue string
	if len(chain.Venues) > 0 {
		venue = chain.Venues[0]
	}
	base := strings.ToUpper(strings.TrimSpace(primary.BaseToken.Symbol))

	var out []models.PairSuggestion
	for _, q := range chain.Quotes {
		if q.Symbol == base {
			continue
		}
		if _, listed := groups[q.Symbol]; listed {
			continue
		}
		out = append(out, models.PairSuggestion{
			Kind:        models.SuggestNewPair,
			ChainID:     primary.ChainID,
			VenueID:     venue,
			QuoteSymbol: q.Symbol,
			Priority:    q.Priority,
			Reason: fmt.Sprintf("no %s/%s pair on %s; %s is a popular quote asset there",
				primary.BaseToken.Symbol, q.Symbol, primary.ChainID, q.Symbol),
		})
	}
	return out
}
