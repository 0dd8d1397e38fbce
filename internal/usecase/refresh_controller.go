package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"DexPulse/internal/domain/models"
	domrepo "DexPulse/internal/domain/repository"
	domsvc "DexPulse/internal/domain/service"
	applogger "DexPulse/pkg/logger"
)

// DefaultRefreshInterval is the period between two cycles for the active token.
const DefaultRefreshInterval = 30 * time.Second

const defaultSinkTimeout = 5 * time.Second

// RefreshController keeps exactly one token refreshed on a timer.
//
// Every activation bumps a generation. A cycle carries the generation it was
// started with and its result is committed only if that generation is still
// current, checked under the same mutex that guards the active token. A token
// switch cancels the previous cycle's context and never waits for it.
type RefreshController struct {
	analyzer    domsvc.SignalAnalyzer
	interval    time.Duration
	sinkTimeout time.Duration
	log         *applogger.Logger
	metrics     domrepo.Metrics
	publisher   domrepo.SignalPublisher
	history     domrepo.SignalHistory
	now         func() time.Time

	mu      sync.Mutex
	snap    models.WatchSnapshot
	cancel  context.CancelFunc
	subs    map[int]chan models.WatchSnapshot
	nextSub int
	stopped bool

	loops sync.WaitGroup
}

// RefreshOption configures a RefreshController.
type RefreshOption func(*RefreshController)

// WithRefreshInterval sets the period between cycles. Non-positive values are ignored.
func WithRefreshInterval(d time.Duration) RefreshOption {
	return func(c *RefreshController) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithRefreshLogger sets the controller logger.
func WithRefreshLogger(l *applogger.Logger) RefreshOption {
	return func(c *RefreshController) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRefreshMetrics records cycle outcomes to m.
func WithRefreshMetrics(m domrepo.Metrics) RefreshOption {
	return func(c *RefreshController) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSignalPublisher forwards every committed result to p.
func WithSignalPublisher(p domrepo.SignalPublisher) RefreshOption {
	return func(c *RefreshController) {
		c.publisher = p
	}
}

// WithSignalHistory appends every committed result to h.
func WithSignalHistory(h domrepo.SignalHistory) RefreshOption {
	return func(c *RefreshController) {
		c.history = h
	}
}

// WithClock replaces the time source used for snapshot timestamps.
func WithClock(now func() time.Time) RefreshOption {
	return func(c *RefreshController) {
		if now != nil {
			c.now = now
		}
	}
}

// NewRefreshController returns an idle controller. Call Activate to start it.
func NewRefreshController(analyzer domsvc.SignalAnalyzer, opts ...RefreshOption) *RefreshController {
	c := &RefreshController{
		analyzer:    analyzer,
		interval:    DefaultRefreshInterval,
		sinkTimeout: defaultSinkTimeout,
		log:         applogger.Nop(),
		metrics:     nopMetrics{},
		now:         time.Now,
		snap:        models.WatchSnapshot{State: models.WatchIdle},
		subs:        make(map[int]chan models.WatchSnapshot),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.snap.UpdatedAt = c.now()
	return c
}

// Activate makes token the active token and starts fetching it immediately.
// Re-activating the active token is a no-op. It returns the generation that
// now owns the controller.
func (c *RefreshController) Activate(token models.TokenRef) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return c.snap.Generation
	}
	if c.snap.State != models.WatchIdle && c.snap.Token == token {
		return c.snap.Generation
	}

	c.cancelLocked()
	gen := c.snap.Generation + 1
	c.snap = models.WatchSnapshot{
		Token:      token,
		Generation: gen,
		State:      models.WatchFetching,
		UpdatedAt:  c.now(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.loops.Add(1)
	go c.run(ctx, token, gen)

	c.log.Info("watch activated", applogger.String("token", token.Key()), applogger.Uint64("generation", gen))
	c.broadcastLocked()
	return gen
}

// Deactivate returns the controller to Idle. Any cycle in flight is
// cancelled and its result discarded.
func (c *RefreshController) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deactivateLocked()
}

func (c *RefreshController) deactivateLocked() {
	if c.snap.State == models.WatchIdle {
		return
	}
	c.cancelLocked()
	prev := c.snap.Token
	c.snap = models.WatchSnapshot{
		Generation: c.snap.Generation + 1,
		State:      models.WatchIdle,
		UpdatedAt:  c.now(),
	}
	c.log.Info("watch deactivated", applogger.String("token", prev.Key()))
	c.broadcastLocked()
}

// Stop deactivates, waits for the cycle goroutines and closes subscriptions.
// The controller cannot be reactivated afterwards.
func (c *RefreshController) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.deactivateLocked()
	c.mu.Unlock()

	c.loops.Wait()

	c.mu.Lock()
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
	c.mu.Unlock()
}

// Latest returns the current snapshot.
func (c *RefreshController) Latest() models.WatchSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Subscribe returns a channel that always holds the most recent snapshot,
// starting with the current one.
func (c *RefreshController) Subscribe() (<-chan models.WatchSnapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan models.WatchSnapshot, 1)
	ch <- c.snap
	if c.stopped {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

func (c *RefreshController) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// broadcastLocked replaces whatever a subscriber has not read yet.
func (c *RefreshController) broadcastLocked() {
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- c.snap:
		default:
		}
	}
}

// run owns the ticker of one generation.
func (c *RefreshController) run(ctx context.Context, token models.TokenRef, gen uint64) {
	defer c.loops.Done()

	c.cycle(ctx, token, gen)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cycle(ctx, token, gen)
		}
	}
}

func (c *RefreshController) cycle(ctx context.Context, token models.TokenRef, gen uint64) {
	if !c.begin(gen) {
		return
	}

	start := time.Now()
	res, err := c.analyzer.Analyze(ctx, token)
	c.metrics.RecordLatency("refresh_cycle", time.Since(start).Seconds())

	if ctx.Err() != nil {
		c.metrics.RecordCycle("stale")
		return
	}
	if !c.commit(gen, res, err) {
		c.metrics.RecordCycle("stale")
		return
	}

	if err != nil {
		kind := "error"
		if errors.Is(err, models.ErrNoPairs) {
			kind = "no_pairs"
		}
		c.metrics.RecordCycle(kind)
		c.metrics.RecordError("refresh_" + kind)
		c.log.Warn("refresh cycle failed",
			applogger.String("token", token.Key()),
			applogger.Uint64("generation", gen),
			applogger.Error(err),
		)
		return
	}

	c.metrics.RecordCycle("ok")
	c.metrics.RecordConfidence(token.Key(), res.Confidence)
	c.log.Debug("refresh cycle done",
		applogger.String("token", token.Key()),
		applogger.String("signal", string(res.Signal)),
		applogger.Int("confidence", res.Confidence),
	)
	c.forward(token, gen, res)
}

// begin moves a current generation to Fetching, keeping the previous result
// visible while the same token is refetched.
func (c *RefreshController) begin(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.snap.Generation {
		return false
	}
	if c.snap.State != models.WatchFetching {
		c.snap.State = models.WatchFetching
		c.snap.UpdatedAt = c.now()
		c.broadcastLocked()
	}
	return true
}

// commit publishes the outcome of a cycle if gen is still current. A failed
// cycle clears the result.
func (c *RefreshController) commit(gen uint64, res *models.SignalResult, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.snap.Generation {
		return false
	}
	if err != nil {
		c.snap.State = models.WatchError
		c.snap.Result = nil
		c.snap.Error = err.Error()
	} else {
		c.snap.State = models.WatchReady
		c.snap.Result = res
		c.snap.Error = ""
	}
	c.snap.UpdatedAt = c.now()
	c.broadcastLocked()
	return true
}

// forward hands a committed result to the optional sinks. Sink failures are
// logged and counted only.
func (c *RefreshController) forward(token models.TokenRef, gen uint64, res *models.SignalResult) {
	if c.publisher == nil && c.history == nil {
		return
	}
	rec := models.NewSignalRecord(token, gen, res, c.now())

	ctx, cancel := context.WithTimeout(context.Background(), c.sinkTimeout)
	defer cancel()

	if c.publisher != nil {
		if err := c.publisher.PublishSignal(ctx, rec); err != nil {
			c.metrics.RecordError("publish")
			c.log.Error("signal publish failed", applogger.String("token", token.Key()), applogger.Error(err))
		}
	}
	if c.history != nil {
		if err := c.history.Append(ctx, rec); err != nil {
			c.metrics.RecordError("history")
			c.log.Error("signal history append failed", applogger.String("token", token.Key()), applogger.Error(err))
		}
	}
}
