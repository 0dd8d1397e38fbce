package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	applogger "DexPulse/pkg/logger"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"2s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Log     applogger.Config `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	DexScreener struct {
		BaseURL   string        `yaml:"base_url" default:"https://api.dexscreener.com"`
		Timeout   time.Duration `yaml:"timeout" default:"10s"`
		UserAgent string        `yaml:"user_agent" default:"dexpulse/1.0"`
	} `yaml:"dexscreener"`
	Refresh struct {
		Interval time.Duration `yaml:"interval" default:"30s"`
		// WatchToken is activated at startup, as "chain/address".
		WatchToken string `yaml:"watch_token"`
	} `yaml:"refresh"`
	Arbitrage struct {
		FeePercent float64                   `yaml:"fee_percent" default:"0.6"`
		CacheTTL   time.Duration             `yaml:"cache_ttl" default:"15s"`
		Reference  map[string]ChainReference `yaml:"reference"`
	} `yaml:"arbitrage"`
	RateLimit struct {
		Capacity     float64 `yaml:"capacity" default:"20"`
		RefillPerSec float64 `yaml:"refill_per_sec" default:"5"`
	} `yaml:"rate_limit"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr" default:"localhost:6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		SignalTopic  string   `yaml:"signal_topic" default:"dexpulse.signals"`
		WatchTopic   string   `yaml:"watch_topic" default:"dexpulse.watch"`
		LogTopic     string   `yaml:"log_topic" default:"dexpulse.logs"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" default:"snappy"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			Linger       time.Duration `yaml:"linger" default:"50ms"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id" default:"dexpulse"`
			RetryMax   int           `yaml:"retry_max" default:"3"`
			BackoffMin time.Duration `yaml:"backoff_min" default:"100ms"`
			BackoffMax time.Duration `yaml:"backoff_max" default:"2s"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled     bool          `yaml:"enabled"`
		Host        string        `yaml:"host"`
		Port        int           `yaml:"port" default:"9000"`
		Database    string        `yaml:"database" default:"dexpulse"`
		Table       string        `yaml:"table" default:"signal_history"`
		User        string        `yaml:"user" default:"default"`
		Password    string        `yaml:"password"`
		UseHTTP     bool          `yaml:"use_http"`
		AsyncInsert bool          `yaml:"async_insert" default:"true"`
		DialTimeout time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout time.Duration `yaml:"read_timeout" default:"10s"`
	} `yaml:"clickhouse"`
}

// ChainReference is the YAML form of the popular quotes and venues of a chain.
type ChainReference struct {
	Quotes []QuoteAsset `yaml:"quotes"`
	Venues []string     `yaml:"venues"`
}

type QuoteAsset struct {
	Symbol   string `yaml:"symbol"`
	Priority string `yaml:"priority"`
}

// Load reads a YAML file, fills defaults and validates.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv is Load with environment overrides applied before validation.
func LoadWithEnv(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DEXSCREENER_BASE_URL"); v != "" {
		c.DexScreener.BaseURL = v
	}
	if v := os.Getenv("WATCH_TOKEN"); v != "" {
		c.Refresh.WatchToken = v
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("REFRESH_INTERVAL: %w", err)
		}
		c.Refresh.Interval = d
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
		c.ClickHouse.Enabled = true
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func parse(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.DexScreener.BaseURL == "" {
		return fmt.Errorf("dexscreener.base_url is required")
	}
	if c.Refresh.Interval < time.Second {
		return fmt.Errorf("refresh.interval must be at least 1s, got %s", c.Refresh.Interval)
	}
	if c.Refresh.WatchToken != "" && !strings.Contains(c.Refresh.WatchToken, "/") {
		return fmt.Errorf("refresh.watch_token must be chain/address, got '%s'", c.Refresh.WatchToken)
	}
	if c.Arbitrage.FeePercent < 0 {
		return fmt.Errorf("arbitrage.fee_percent cannot be negative")
	}
	for chain, ref := range c.Arbitrage.Reference {
		for _, q := range ref.Quotes {
			if q.Symbol == "" {
				return fmt.Errorf("arbitrage.reference.%s: quote symbol is required", chain)
			}
			if q.Priority != "" && q.Priority != "high" && q.Priority != "medium" {
				return fmt.Errorf("arbitrage.reference.%s: priority must be 'high' or 'medium', got '%s'", chain, q.Priority)
			}
		}
	}
	if c.RateLimit.Capacity < 1 || c.RateLimit.RefillPerSec <= 0 {
		return fmt.Errorf("rate_limit.capacity must be >= 1 and refill_per_sec > 0")
	}
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
		}
		if c.Kafka.SignalTopic == "" {
			return fmt.Errorf("kafka.signal_topic is required")
		}
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	return nil
}

// WatchTokenParts splits refresh.watch_token into chain and address.
func (c *Config) WatchTokenParts() (chain, address string, ok bool) {
	chain, address, ok = strings.Cut(c.Refresh.WatchToken, "/")
	if !ok || strings.TrimSpace(chain) == "" || strings.TrimSpace(address) == "" {
		return "", "", false
	}
	return chain, address, true
}
