package arbitrage

import (
	"strings"

	"DexPulse/internal/domain/models"
)

// QuoteAsset is a popular quote asset on a chain.
type QuoteAsset struct {
	Symbol   string                    `yaml:"symbol" json:"symbol"`
	Priority models.SuggestionPriority `yaml:"priority" json:"priority"`
}

// ChainReference lists the popular quote assets and venues of one chain,
// most important first.
type ChainReference struct {
	Quotes []QuoteAsset `yaml:"quotes" json:"quotes"`
	Venues []string     `yaml:"venues" json:"venues"`
}

// Reference is the static market knowledge used for suggestions.
type Reference map[string]ChainReference

// Chain looks a chain up case-insensitively.
func (r Reference) Chain(chainID string) (ChainReference, bool) {
	c, ok := r[strings.ToLower(strings.TrimSpace(chainID))]
	return c, ok
}

// QuotePriority returns the listed priority of a quote asset, or medium
// when the asset is not listed.
func (c ChainReference) QuotePriority(symbol string) models.SuggestionPriority {
	for _, q := range c.Quotes {
		if strings.EqualFold(q.Symbol, symbol) {
			if q.Priority == models.PriorityHigh {
				return models.PriorityHigh
			}
			return models.PriorityMedium
		}
	}
	return models.PriorityMedium
}

// Normalize lower-cases chain and venue ids and upper-cases quote symbols.
func (r Reference) Normalize() Reference {
	out := make(Reference, len(r))
	for chain, c := range r {
		nc := ChainReference{
			Quotes: make([]QuoteAsset, 0, len(c.Quotes)),
			Venues: make([]string, 0, len(c.Venues)),
		}
		for _, q := range c.Quotes {
			sym := strings.ToUpper(strings.TrimSpace(q.Symbol))
			if sym == "" {
				continue
			}
			prio := models.PriorityMedium
			if strings.EqualFold(string(q.Priority), string(models.PriorityHigh)) {
				prio = models.PriorityHigh
			}
			nc.Quotes = append(nc.Quotes, QuoteAsset{Symbol: sym, Priority: prio})
		}
		for _, v := range c.Venues {
			if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
				nc.Venues = append(nc.Venues, v)
			}
		}
		out[strings.ToLower(strings.TrimSpace(chain))] = nc
	}
	return out
}

// Overlay returns a copy of r where every chain present in overrides is
// replaced wholesale.
func (r Reference) Overlay(overrides Reference) Reference {
	out := make(Reference, len(r)+len(overrides))
	for chain, c := range r {
		out[chain] = c
	}
	for chain, c := range overrides.Normalize() {
		out[chain] = c
	}
	return out.Normalize()
}

func high(sym string) QuoteAsset   { return QuoteAsset{Symbol: sym, Priority: models.PriorityHigh} }
func medium(sym string) QuoteAsset { return QuoteAsset{Symbol: sym, Priority: models.PriorityMedium} }

// DefaultReference covers the chains DexScreener lists most often. Wrapped
// native, ETH and USDC equivalents are high priority.
func DefaultReference() Reference {
	return Reference{
		"ethereum": {
			Quotes: []QuoteAsset{high("WETH"), high("USDC"), medium("USDT"), medium("DAI")},
			Venues: []string{"uniswap", "sushiswap", "pancakeswap", "balancer"},
		},
		"bsc": {
			Quotes: []QuoteAsset{high("WBNB"), high("USDC"), high("ETH"), medium("USDT"), medium("BUSD")},
			Venues: []string{"pancakeswap", "uniswap", "biswap", "thena"},
		},
		"base": {
			Quotes: []QuoteAsset{high("WETH"), high("USDC"), medium("USDBC"), medium("DAI")},
			Venues: []string{"uniswap", "aerodrome", "baseswap", "sushiswap"},
		},
		"arbitrum": {
			Quotes: []QuoteAsset{high("WETH"), high("USDC"), medium("USDT"), medium("ARB")},
			Venues: []string{"uniswap", "camelot", "sushiswap", "ramses"},
		},
		"polygon": {
			Quotes: []QuoteAsset{high("WPOL"), high("WETH"), high("USDC"), medium("USDT")},
			Venues: []string{"quickswap", "uniswap", "sushiswap"},
		},
		"solana": {
			Quotes: []QuoteAsset{high("SOL"), high("USDC"), medium("USDT")},
			Venues: []string{"raydium", "orca", "meteora"},
		},
	}
}
