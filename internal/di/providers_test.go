package di

import (
	"testing"

	"DexPulse/internal/domain/models"
	icache "DexPulse/internal/service/cache"
	"DexPulse/pkg/config"
)

func TestReferenceFromConfig(t *testing.T) {
	ref := referenceFromConfig(map[string]config.ChainReference{
		"Base": {
			Quotes: []config.QuoteAsset{{Symbol: "weth", Priority: "high"}, {Symbol: "dai"}},
			Venues: []string{"Uniswap"},
		},
	}).Normalize()

	base, ok := ref.Chain("base")
	if !ok || len(base.Quotes) != 2 || base.Venues[0] != "uniswap" {
		t.Fatalf("unexpected reference %+v", ref)
	}
	if base.QuotePriority("WETH") != models.PriorityHigh || base.QuotePriority("DAI") != models.PriorityMedium {
		t.Fatalf("unexpected priorities %+v", base.Quotes)
	}
}

func TestOptionalBackendsDisabled(t *testing.T) {
	cfg := &config.Config{}

	if p, err := ProvideKafkaProducer(cfg); p != nil || err != nil {
		t.Fatalf("expected no producer, got %v %v", p, err)
	}
	if pub := ProvideSignalPublisher(nil, cfg); pub != nil {
		t.Fatalf("expected nil publisher")
	}
	if ch, err := ProvideClickHouseClient(cfg); ch != nil || err != nil {
		t.Fatalf("expected no clickhouse client, got %v %v", ch, err)
	}
	if h, err := ProvideSignalHistory(nil, cfg, nil); h != nil || err != nil {
		t.Fatalf("expected nil history, got %v %v", h, err)
	}
	if _, ok := ProvideReportCache(cfg, nil).(*icache.TTLCache); !ok {
		t.Fatalf("expected in-process cache when redis is disabled")
	}
}
