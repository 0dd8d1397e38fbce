package dexscreener

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"DexPulse/internal/domain/models"
	"DexPulse/internal/domain/repository"
	xhttp "DexPulse/pkg/http"
	applogger "DexPulse/pkg/logger"
)

const DefaultBaseURL = "https://api.dexscreener.com"

// Client implements repository.PairSource against the public DexScreener API.
type Client struct {
	http    *xhttp.Client
	baseURL string
	log     *applogger.Logger
	metrics repository.Metrics
}

type Option func(*Client)

func WithHTTPClient(c *xhttp.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

func WithLogger(l *applogger.Logger) Option {
	return func(cl *Client) {
		cl.log = l
	}
}

func WithMetrics(m repository.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// NewClient returns a DexScreener client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     applogger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(xhttp.WithTimeout(10*time.Second), xhttp.WithUserAgent("dexpulse/1.0"))
	}
	return c
}

// TokenPairs returns every pair listing the token, on any chain and on
// either side. An empty listing is models.ErrNoPairs; transport and status
// failures wrap models.ErrUpstream.
func (c *Client) TokenPairs(ctx context.Context, token models.TokenRef) ([]models.RawPair, error) {
	if token.IsZero() {
		return nil, models.ErrInvalidToken
	}

	endpoint := fmt.Sprintf("%s/latest/dex/tokens/%s", c.baseURL, url.PathEscape(token.Address))
	start := time.Now()

	var resp models.PairsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{Method: xhttp.MethodGet, URL: endpoint}, &resp)
	c.observe(start, err)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Warn("dexscreener request failed",
			applogger.String("token", token.Key()),
			applogger.Error(err),
		)
		return nil, fmt.Errorf("%w: token %s: %w", models.ErrUpstream, token, err)
	}

	if len(resp.Pairs) == 0 {
		return nil, fmt.Errorf("token %s: %w", token, models.ErrNoPairs)
	}

	c.log.Debug("dexscreener pairs fetched",
		applogger.String("token", token.Key()),
		applogger.Int("pairs", len(resp.Pairs)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return resp.Pairs, nil
}

func (c *Client) observe(start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordLatency("dexscreener_fetch", time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordError("upstream")
	}
}
