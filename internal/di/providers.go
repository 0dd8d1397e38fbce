package di

import (
	"context"
	"fmt"
	"time"

	"DexPulse/internal/domain/models"
	"DexPulse/internal/domain/repository"
	"DexPulse/internal/handler/api"
	internalrepo "DexPulse/internal/repository"
	icache "DexPulse/internal/service/cache"
	"DexPulse/internal/service/dexscreener"
	"DexPulse/internal/service/ratelimit"
	"DexPulse/internal/services/arbitrage"
	"DexPulse/internal/services/indicators"
	"DexPulse/internal/services/signals"
	"DexPulse/internal/usecase"
	pkgch "DexPulse/pkg/clickhouse"
	"DexPulse/pkg/config"
	xhttp "DexPulse/pkg/http"
	pkgkafka "DexPulse/pkg/kafka"
	applogger "DexPulse/pkg/logger"
	"DexPulse/pkg/metrics"
	"DexPulse/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder on the default registry.
func ProvideMetrics() repository.Metrics {
	return metrics.New(prometheus.DefaultRegisterer)
}

// ProvidePairSource creates the DexScreener client.
func ProvidePairSource(cfg *config.Config, l *applogger.Logger, m repository.Metrics) repository.PairSource {
	hc := xhttp.NewClient(
		xhttp.WithTimeout(cfg.DexScreener.Timeout),
		xhttp.WithUserAgent(cfg.DexScreener.UserAgent),
	)
	return dexscreener.NewClient(cfg.DexScreener.BaseURL,
		dexscreener.WithHTTPClient(hc),
		dexscreener.WithLogger(l),
		dexscreener.WithMetrics(m),
	)
}

func ProvideSignalEngine() *signals.Engine {
	return signals.NewEngine(indicators.NewDefault())
}

// ProvideScanner builds the arbitrage scanner. Chains listed under
// arbitrage.reference replace the built-in tables.
func ProvideScanner(cfg *config.Config) *arbitrage.Scanner {
	return arbitrage.NewScanner(
		arbitrage.WithReference(arbitrage.DefaultReference().Overlay(referenceFromConfig(cfg.Arbitrage.Reference))),
		arbitrage.WithFeePercent(cfg.Arbitrage.FeePercent),
	)
}

func referenceFromConfig(in map[string]config.ChainReference) arbitrage.Reference {
	out := make(arbitrage.Reference, len(in))
	for chain, c := range in {
		quotes := make([]arbitrage.QuoteAsset, 0, len(c.Quotes))
		for _, q := range c.Quotes {
			quotes = append(quotes, arbitrage.QuoteAsset{Symbol: q.Symbol, Priority: models.SuggestionPriority(q.Priority)})
		}
		out[chain] = arbitrage.ChainReference{Quotes: quotes, Venues: c.Venues}
	}
	return out
}

// ProvideReportCache returns Redis when enabled and reachable, the in-process
// TTL cache otherwise.
func ProvideReportCache(cfg *config.Config, l *applogger.Logger) icache.BytesCache {
	if !cfg.Cache.Redis.Enabled {
		return icache.NewTTLCache()
	}
	rc := icache.NewRedisCache(icache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		l.Warn("redis unavailable, using in-process cache",
			applogger.String("addr", cfg.Cache.Redis.Addr),
			applogger.Error(err),
		)
		_ = rc.Close()
		return icache.NewTTLCache()
	}
	return rc
}

func ProvideSignalUsecase(source repository.PairSource, engine *signals.Engine, m repository.Metrics) *usecase.SignalUsecase {
	return usecase.NewSignalUsecase(source, engine, m)
}

func ProvideArbitrageUsecase(
	cfg *config.Config,
	source repository.PairSource,
	scanner *arbitrage.Scanner,
	c icache.BytesCache,
	l *applogger.Logger,
	m repository.Metrics,
) *usecase.ArbitrageUsecase {
	return usecase.NewArbitrageUsecase(source, scanner, c, cfg.Arbitrage.CacheTTL, l, m)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatching(cfg.Kafka.Producer.BatchSize, cfg.Kafka.Producer.Linger),
		pkgkafka.WithWriteTimeout(cfg.Kafka.Producer.WriteTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

func ProvideSignalPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.SignalPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.SignalTopic)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, false),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideSignalHistory creates the history table and store, or nil without
// ClickHouse.
func ProvideSignalHistory(ch *pkgch.Client, cfg *config.Config, l *applogger.Logger) (repository.SignalHistory, error) {
	if ch == nil {
		return nil, nil
	}
	store := internalrepo.NewCHSignalStore(ch.DB(), cfg.ClickHouse.Database, cfg.ClickHouse.Table, l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return store, nil
}

func ProvideRefreshController(
	cfg *config.Config,
	analyzer *usecase.SignalUsecase,
	l *applogger.Logger,
	m repository.Metrics,
	pub repository.SignalPublisher,
	hist repository.SignalHistory,
) *usecase.RefreshController {
	return usecase.NewRefreshController(analyzer,
		usecase.WithRefreshInterval(cfg.Refresh.Interval),
		usecase.WithRefreshLogger(l),
		usecase.WithRefreshMetrics(m),
		usecase.WithSignalPublisher(pub),
		usecase.WithSignalHistory(hist),
	)
}

// ProvideKafkaConsumer creates the watch command consumer, or nil when Kafka
// is disabled.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerLogger(l),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

func ProvideWatchHandler(cfg *config.Config, ctrl *usecase.RefreshController, l *applogger.Logger) *usecase.WatchCommandHandler {
	return usecase.NewWatchCommandHandler(cfg.Kafka.WatchTopic, ctrl, l)
}

func ProvideHTTPHandler(
	cfg *config.Config,
	l *applogger.Logger,
	su *usecase.SignalUsecase,
	au *usecase.ArbitrageUsecase,
	ctrl *usecase.RefreshController,
	hist repository.SignalHistory,
) *api.SignalsEchoHandler {
	return api.NewSignalsEchoHandler(l, su, au, ctrl,
		api.WithHistory(hist),
		api.WithRateLimiter(ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	ctrl *usecase.RefreshController,
	handler *api.SignalsEchoHandler,
	consumer *pkgkafka.Consumer,
	wh *usecase.WatchCommandHandler,
	producer *pkgkafka.Producer,
	pub repository.SignalPublisher,
	ch *pkgch.Client,
	c icache.BytesCache,
) *server.App {
	return server.New(cfg, l, ctrl, []xhttp.Handler{handler},
		server.WithConsumer(consumer, wh),
		server.WithLogShipping(producer, pub),
		server.WithClickHouse(ch),
		server.WithCache(c),
	)
}
