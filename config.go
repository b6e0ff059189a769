package twinicodo

import (
	"github.com/anatolykoptev/go-stealth/ratelimit"
)

// ClientConfig holds all configuration for the search client.
type ClientConfig struct {
	// Credentials authenticate every search request. All five values are required.
	Credentials Credentials

	// Proxy is an optional proxy URL for all requests.
	Proxy string

	// UserAgent overrides the default browser User-Agent.
	UserAgent string

	// BaseURL overrides the API origin. Default: https://api.twitter.com
	BaseURL string

	// RateLimit paces requests to the search endpoint on the client side.
	// Requests wait for the window instead of failing.
	RateLimit ratelimit.Config

	// DisableJitter turns off the randomized pre-request delay.
	DisableJitter bool

	// MetricsHook is called on each API request for external metrics collection.
	// endpoint is the operation name, success and rateLimited indicate the outcome.
	MetricsHook func(endpoint string, success, rateLimited bool)
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *ClientConfig) defaults() {
	if cfg.BaseURL == "" {
		cfg.BaseURL = twitterAPIURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.RateLimit.RequestsPerWindow == 0 {
		cfg.RateLimit = ratelimit.DefaultConfig
	}
}
