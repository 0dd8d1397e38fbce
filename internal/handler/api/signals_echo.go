package api

import (
	"errors"
	"net/http"
	"time"

	"DexPulse/internal/domain/models"
	domrepo "DexPulse/internal/domain/repository"
	domsvc "DexPulse/internal/domain/service"
	"DexPulse/internal/service/metrics"
	"DexPulse/internal/service/ratelimit"
	xhttp "DexPulse/pkg/http"
	xlogger "DexPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SignalsEchoHandler serves one-shot analytics and drives the refresh
// controller over HTTP.
type SignalsEchoHandler struct {
	logger    *xlogger.Logger
	signals   domsvc.SignalAnalyzer
	arbitrage domsvc.ArbitrageAnalyzer
	watcher   domsvc.Watcher
	history   domrepo.SignalHistory
	rl        *ratelimit.Limiter
	stream    streamConfig
}

// HandlerOption configures a SignalsEchoHandler.
type HandlerOption func(*SignalsEchoHandler)

// WithHistory enables /api/signal/history. Without it the route answers 503.
func WithHistory(h domrepo.SignalHistory) HandlerOption {
	return func(s *SignalsEchoHandler) { s.history = h }
}

// WithRateLimiter throttles the analysis endpoints with rl.
func WithRateLimiter(rl *ratelimit.Limiter) HandlerOption {
	return func(s *SignalsEchoHandler) {
		if rl != nil {
			s.rl = rl
		}
	}
}

// WithStreamTimings overrides the websocket ping and write deadlines.
func WithStreamTimings(ping, write time.Duration) HandlerOption {
	return func(s *SignalsEchoHandler) {
		if ping > 0 {
			s.stream.pingInterval = ping
		}
		if write > 0 {
			s.stream.writeWait = write
		}
	}
}

// NewSignalsEchoHandler creates the HTTP handler for analysis and watch routes.
func NewSignalsEchoHandler(logger *xlogger.Logger, signals domsvc.SignalAnalyzer, arb domsvc.ArbitrageAnalyzer, watcher domsvc.Watcher, opts ...HandlerOption) *SignalsEchoHandler {
	metrics.Register()
	if logger == nil {
		logger = xlogger.Nop()
	}
	h := &SignalsEchoHandler{
		logger:    logger,
		signals:   signals,
		arbitrage: arb,
		watcher:   watcher,
		rl:        ratelimit.New(20, 5),
		stream:    defaultStreamConfig(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the handler under /api.
func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/signal", h.Signal)
	g.GET("/signal/history", h.History)
	g.GET("/arbitrage", h.Arbitrage)
	g.POST("/watch", h.Watch)
	g.GET("/watch", h.WatchState)
	g.DELETE("/watch", h.Unwatch)
	g.GET("/watch/stream", h.Stream)
}

// Signal analyzes one token on demand.
func (h *SignalsEchoHandler) Signal(c echo.Context) error {
	const endpoint = "signal"
	defer observe(endpoint, time.Now())

	req := &models.TokenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c, endpoint) {
		return h.fail(c, endpoint, xhttp.TooManyRequestsError("rate limited"))
	}

	res, err := h.signals.Analyze(c.Request().Context(), models.NewTokenRef(req.Chain, req.Token))
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Arbitrage scans one token for cross-venue spreads.
func (h *SignalsEchoHandler) Arbitrage(c echo.Context) error {
	const endpoint = "arbitrage"
	defer observe(endpoint, time.Now())

	req := &models.TokenRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c, endpoint) {
		return h.fail(c, endpoint, xhttp.TooManyRequestsError("rate limited"))
	}

	report, err := h.arbitrage.Scan(c.Request().Context(), models.NewTokenRef(req.Chain, req.Token))
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=15")
	return xhttp.SuccessResponse(c, report)
}

// History returns recent committed signals for a token.
func (h *SignalsEchoHandler) History(c echo.Context) error {
	const endpoint = "history"
	defer observe(endpoint, time.Now())

	if h.history == nil {
		return h.fail(c, endpoint, xhttp.ServiceUnavailableError("signal history is disabled"))
	}
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows, err := h.history.Recent(c.Request().Context(), models.NewTokenRef(req.Chain, req.Token), req.Limit)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Watch makes the requested token the active token.
func (h *SignalsEchoHandler) Watch(c echo.Context) error {
	const endpoint = "watch"
	defer observe(endpoint, time.Now())

	req := &models.WatchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	token := models.NewTokenRef(req.Chain, req.Token)
	if token.IsZero() {
		return h.fail(c, endpoint, models.ErrInvalidToken)
	}

	gen := h.watcher.Activate(token)
	h.logger.Info("watch requested", xlogger.String("token", token.Key()), xlogger.Uint64("generation", gen))
	return xhttp.AcceptedResponse(c, h.watcher.Latest())
}

// WatchState returns the latest watch snapshot.
func (h *SignalsEchoHandler) WatchState(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.watcher.Latest())
}

// Unwatch deactivates the active token.
func (h *SignalsEchoHandler) Unwatch(c echo.Context) error {
	h.watcher.Deactivate()
	return xhttp.SuccessResponse(c, h.watcher.Latest())
}

func (h *SignalsEchoHandler) allow(c echo.Context, endpoint string) bool {
	return h.rl.Allow(c.RealIP() + ":" + endpoint)
}

// fail maps domain errors onto AppErrors and counts them per endpoint.
func (h *SignalsEchoHandler) fail(c echo.Context, endpoint string, err error) error {
	appErr := toAppError(err)
	metrics.APIErrors.WithLabelValues(endpoint, appErr.Code).Inc()
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			xlogger.String("endpoint", endpoint),
			xlogger.Int("status", appErr.Status),
			xlogger.Error(err),
		)
	} else {
		h.logger.Debug("request rejected",
			xlogger.String("endpoint", endpoint),
			xlogger.Int("status", appErr.Status),
			xlogger.Error(err),
		)
	}
	return xhttp.AppErrorResponse(c, appErr)
}

func toAppError(err error) *xhttp.AppError {
	var appErr *xhttp.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, models.ErrNoPairs):
		return xhttp.NotFoundError("no pairs found for token").WithError(err)
	case errors.Is(err, models.ErrInvalidToken):
		return xhttp.BadRequestError("chain and token are required").WithError(err)
	case errors.Is(err, models.ErrUpstream):
		return xhttp.BadGatewayError("market data provider unavailable").WithError(err)
	default:
		return xhttp.InternalError("something went wrong").WithError(err)
	}
}

func observe(endpoint string, start time.Time) {
	metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
