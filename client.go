package twinicodo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/ratelimit"
)

// doer is the transport the client sends requests through.
// *stealth.BrowserClient implements it.
type doer interface {
	DoWithHeaderOrder(method, url string, headers map[string]string, body io.Reader, order []string) ([]byte, map[string]string, int, error)
}

// Client is the search API client. It is safe to share, but a SearchIterator
// drives it strictly one request at a time.
type Client struct {
	bc      doer
	cfg     ClientConfig
	limiter *ratelimit.Limiter
	jitter  func(context.Context) error

	mu    sync.Mutex
	creds Credentials
}

// NewClient validates the credentials and creates a search client.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg.defaults()

	if err := cfg.Credentials.Validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Credentials.AuthHeaders(); err != nil {
		return nil, err
	}

	opts := []stealth.ClientOption{
		stealth.WithHeaderOrder(searchHeaderOrder),
	}
	if cfg.Proxy != "" {
		opts = append(opts, stealth.WithProxy(cfg.Proxy))
	}
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}

	c := newClient(bc, cfg)
	c.limiter = ratelimit.NewLimiter(cfg.RateLimit)
	if !cfg.DisableJitter {
		c.jitter = stealth.DefaultJitter.Sleep
	}
	if cfg.Proxy != "" {
		slog.Info("search client using proxy", slog.String("proxy", stealth.MaskProxy(cfg.Proxy)))
	}
	return c, nil
}

// newClient wires a client around an arbitrary transport without pacing or jitter.
func newClient(bc doer, cfg ClientConfig) *Client {
	cfg.defaults()
	return &Client{
		bc:    bc,
		cfg:   cfg,
		creds: cfg.Credentials,
	}
}

// Credentials returns the current credentials, including any server-rotated ct0.
func (c *Client) Credentials() Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creds
}

// doGET performs one GET against the search API. It never retries: a transport
// failure or non-200 status is returned as a *NetworkError.
func (c *Client) doGET(ctx context.Context, endpoint, url string) ([]byte, error) {
	if c.jitter != nil {
		if err := c.jitter(ctx); err != nil {
			return nil, err
		}
	}
	if err := c.waitTurn(ctx, endpoint); err != nil {
		return nil, err
	}

	creds := c.Credentials()
	headers, err := searchHeaders(creds, c.cfg.UserAgent)
	if err != nil {
		return nil, err
	}

	body, respHdrs, status, err := c.bc.DoWithHeaderOrder("GET", url, headers, nil, searchHeaderOrder)
	if err != nil {
		c.recordAPICall(endpoint, false, false)
		return nil, &NetworkError{Endpoint: endpoint, Err: err}
	}
	if status != 200 {
		c.recordAPICall(endpoint, false, status == 429)
		if status == 429 && c.limiter != nil {
			c.limiter.MarkRateLimited(endpoint, parseRateLimitReset(respHdrs["x-rate-limit-reset"]))
		}
		slog.Warn("search non-200", slog.String("endpoint", endpoint), slog.Int("status", status), slog.String("body", truncateBytes(body, 500)))
		return nil, statusError(endpoint, status, body, respHdrs)
	}

	if newCT0 := extractCT0FromHeaders(respHdrs); newCT0 != "" && newCT0 != creds.Cookie.CT0 {
		c.mu.Lock()
		c.creds = rotateCT0(c.creds, newCT0)
		c.mu.Unlock()
		slog.Info("ct0 rotated by server", slog.String("old_prefix", creds.Cookie.CT0[:min(8, len(creds.Cookie.CT0))]))
	}
	c.recordAPICall(endpoint, true, false)
	return body, nil
}

// waitTurn blocks until the client-side rate limiter admits a request to endpoint.
func (c *Client) waitTurn(ctx context.Context, endpoint string) error {
	if c.limiter == nil {
		return nil
	}
	for !c.limiter.Allow(endpoint) {
		wait := time.Until(c.limiter.AvailableAt(endpoint))
		if wait <= 0 {
			wait = time.Second
		}
		slog.Info("search rate window exhausted, waiting", slog.String("endpoint", endpoint), slog.Duration("wait", wait))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// recordAPICall calls the metrics hook if configured.
func (c *Client) recordAPICall(endpoint string, success, rateLimited bool) {
	if c.cfg.MetricsHook != nil {
		c.cfg.MetricsHook(endpoint, success, rateLimited)
	}
}
