package usecase

import (
	"context"
	"time"

	"DexPulse/internal/domain/models"
	domrepo "DexPulse/internal/domain/repository"
	"DexPulse/internal/service/cache"
	svcmetrics "DexPulse/internal/service/metrics"
	"DexPulse/internal/services/arbitrage"
	applogger "DexPulse/pkg/logger"
)

// ArbitrageUsecase scans all of a token's pairs. Reports are cached for ttl
// when a cache is configured.
type ArbitrageUsecase struct {
	source  domrepo.PairSource
	scanner *arbitrage.Scanner
	cache   cache.BytesCache
	ttl     time.Duration
	log     *applogger.Logger
	metrics domrepo.Metrics
}

// NewArbitrageUsecase caches reports in c for ttl.
func NewArbitrageUsecase(source domrepo.PairSource, scanner *arbitrage.Scanner, c cache.BytesCache, ttl time.Duration, l *applogger.Logger, metrics domrepo.Metrics) *ArbitrageUsecase {
	if scanner == nil {
		scanner = arbitrage.NewScanner()
	}
	if l == nil {
		l = applogger.Nop()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &ArbitrageUsecase{source: source, scanner: scanner, cache: c, ttl: ttl, log: l, metrics: metrics}
}

// Scan returns the cached report for token or builds a fresh one.
func (u *ArbitrageUsecase) Scan(ctx context.Context, token models.TokenRef) (*models.ArbitrageReport, error) {
	start := time.Now()
	defer func() { u.metrics.RecordLatency("arbitrage_scan", time.Since(start).Seconds()) }()

	key := "arb:" + token.Key()
	if report, ok := u.cached(ctx, key); ok {
		return report, nil
	}

	pairs, err := loadBasePairs(ctx, u.source, token)
	if err != nil {
		return nil, err
	}
	report := u.scanner.Scan(token, pairs)

	if u.cache != nil && u.ttl > 0 {
		if err := cache.SetJSON(ctx, u.cache, key, report, u.ttl); err != nil {
			u.log.Warn("arbitrage cache write failed", applogger.String("key", key), applogger.Error(err))
			u.metrics.RecordError("cache")
		}
	}
	return &report, nil
}

func (u *ArbitrageUsecase) cached(ctx context.Context, key string) (*models.ArbitrageReport, bool) {
	if u.cache == nil || u.ttl <= 0 {
		return nil, false
	}
	var report models.ArbitrageReport
	ok, err := cache.GetJSON(ctx, u.cache, key, &report)
	switch {
	case err != nil:
		u.log.Warn("arbitrage cache read failed", applogger.String("key", key), applogger.Error(err))
		u.metrics.RecordError("cache")
		svcmetrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, false
	case !ok:
		svcmetrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	svcmetrics.CacheLookups.WithLabelValues("hit").Inc()
	return &report, true
}

type nopMetrics struct{}

func (nopMetrics) RecordCycle(string)            {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordConfidence(string, int)  {}
func (nopMetrics) RecordLatency(string, float64) {}
