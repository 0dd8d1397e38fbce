package server

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"DexPulse/internal/domain/models"
	"DexPulse/internal/domain/repository"
	icache "DexPulse/internal/service/cache"
	"DexPulse/internal/usecase"
	pkgch "DexPulse/pkg/clickhouse"
	"DexPulse/pkg/config"
	xhttp "DexPulse/pkg/http"
	pkgkafka "DexPulse/pkg/kafka"
	applogger "DexPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	controller *usecase.RefreshController
	handlers   []xhttp.Handler
	httpServer *xhttp.Server

	consumer  *pkgkafka.Consumer
	kh        pkgkafka.MessageHandler
	producer  *pkgkafka.Producer
	publisher repository.SignalPublisher
	chClient  *pkgch.Client
	cache     icache.BytesCache
}

// Option configures optional App dependencies.
type Option func(*App)

// WithConsumer starts consumer with kh registered. Both may be nil.
func WithConsumer(consumer *pkgkafka.Consumer, kh pkgkafka.MessageHandler) Option {
	return func(a *App) {
		a.consumer = consumer
		a.kh = kh
	}
}

// WithLogShipping ships aggregated error logs through producer. The publisher
// owns the producer and is closed last.
func WithLogShipping(producer *pkgkafka.Producer, pub repository.SignalPublisher) Option {
	return func(a *App) {
		a.producer = producer
		a.publisher = pub
	}
}

// WithClickHouse closes ch on shutdown and reports its health on /readyz.
func WithClickHouse(ch *pkgch.Client) Option {
	return func(a *App) { a.chClient = ch }
}

// WithCache closes c on shutdown if it holds a connection. A pingable cache
// is also reported on /readyz.
func WithCache(c icache.BytesCache) Option {
	return func(a *App) { a.cache = c }
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, ctrl *usecase.RefreshController, handlers []xhttp.Handler, opts ...Option) *App {
	if l == nil {
		l = applogger.Nop()
	}
	a := &App{
		cfg:        cfg,
		log:        l,
		controller: ctrl,
		handlers:   handlers,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start brings every component up without blocking.
func (a *App) Start() error {
	if a.producer != nil && a.cfg.Kafka.LogTopic != "" {
		a.log.AddCollector(&applogger.CollectionConfig{
			Topic:     a.cfg.Kafka.LogTopic,
			Publisher: a.producer,
		})
	}

	if chain, address, ok := a.cfg.WatchTokenParts(); ok {
		gen := a.controller.Activate(models.NewTokenRef(chain, address))
		a.log.Info("startup token activated",
			applogger.String("token", a.cfg.Refresh.WatchToken),
			applogger.Uint64("generation", gen),
		)
	}

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		if err := a.consumer.Start(); err != nil {
			return err
		}
	}

	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	opts := []xhttp.ServerOption{
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(a.cfg.Server.SlowThreshold),
		xhttp.WithCORS(a.cfg.Server.CORS),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(a.log),
	}
	opts = append(opts, a.readinessChecks()...)
	a.httpServer = xhttp.NewServer(a.handlers, opts...)
	return a.httpServer.Start()
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (a *App) readinessChecks() []xhttp.ServerOption {
	var opts []xhttp.ServerOption
	if a.chClient != nil {
		opts = append(opts, xhttp.WithReadinessCheck("clickhouse", a.chClient.Health))
	}
	if p, ok := a.cache.(pinger); ok {
		opts = append(opts, xhttp.WithReadinessCheck("redis", p.Ping))
	}
	return opts
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	if err := a.Start(); err != nil {
		a.log.Error("app start error", applogger.Error(err))
		_ = a.Shutdown(context.Background())
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.Shutdown(context.Background())
}

// Shutdown stops intake first, then the controller, then the sinks.
func (a *App) Shutdown(ctx context.Context) error {
	a.log.Info("shutting down...")
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.log.Error("http shutdown error", applogger.Error(err))
		}
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	a.controller.Stop()

	// Final log flush still needs the producer.
	a.log.RemoveCollector()

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("kafka producer close error", applogger.Error(err))
		}
	} else if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Warn("kafka producer close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if c, ok := a.cache.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
