package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, "environment: test\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 || c.Refresh.Interval != 30*time.Second {
		t.Fatalf("defaults not applied: port=%d interval=%s", c.Server.Port, c.Refresh.Interval)
	}
	if c.DexScreener.BaseURL != "https://api.dexscreener.com" || c.Arbitrage.FeePercent != 0.6 {
		t.Fatalf("unexpected dexscreener/arbitrage defaults: %+v %+v", c.DexScreener, c.Arbitrage)
	}
	if c.Log.Level != "info" || c.Kafka.SignalTopic != "dexpulse.signals" {
		t.Fatalf("unexpected log/kafka defaults")
	}
	if c.Kafka.Enabled || c.ClickHouse.Enabled || c.Cache.Redis.Enabled {
		t.Fatalf("backends must be disabled by default")
	}
}

func TestLoadReferenceOverride(t *testing.T) {
	body := `
environment: test
arbitrage:
  reference:
    base:
      quotes:
        - {symbol: WETH, priority: high}
      venues: [uniswap]
`
	c, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ref := c.Arbitrage.Reference["base"]
	if len(ref.Quotes) != 1 || ref.Quotes[0].Symbol != "WETH" || len(ref.Venues) != 1 {
		t.Fatalf("unexpected reference %+v", ref)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("DEXSCREENER_BASE_URL", "http://localhost:9999")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("WATCH_TOKEN", "base/0xabc")
	t.Setenv("REFRESH_INTERVAL", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := LoadWithEnv(writeConfig(t, "environment: test\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.DexScreener.BaseURL != "http://localhost:9999" {
		t.Fatalf("base url %q", c.DexScreener.BaseURL)
	}
	if !c.Kafka.Enabled || len(c.Kafka.Brokers) != 2 {
		t.Fatalf("kafka %+v", c.Kafka.Brokers)
	}
	if c.Refresh.Interval != 5*time.Second || c.Log.Level != "debug" {
		t.Fatalf("interval %s level %s", c.Refresh.Interval, c.Log.Level)
	}
	chain, addr, ok := c.WatchTokenParts()
	if !ok || chain != "base" || addr != "0xabc" {
		t.Fatalf("watch token parts %q %q %v", chain, addr, ok)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"port":       "environment: test\nserver:\n  port: 70000\n",
		"interval":   "environment: test\nrefresh:\n  interval: 100ms\n",
		"fee":        "environment: test\narbitrage:\n  fee_percent: -1\n",
		"watch":      "environment: test\nrefresh:\n  watch_token: nochain\n",
		"kafka":      "environment: test\nkafka:\n  enabled: true\n",
		"priority":   "environment: test\narbitrage:\n  reference:\n    base:\n      quotes: [{symbol: X, priority: low}]\n",
		"clickhouse": "environment: test\nclickhouse:\n  enabled: true\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			if err == nil || !strings.Contains(err.Error(), "validate config") {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
