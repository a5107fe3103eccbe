package tacomail

import (
	"net/http"
	"time"
)

// Defaults for client construction and waiting.
const (
	// DefaultBaseURL is the production Tacomail instance.
	DefaultBaseURL = "https://tacomail.de"
	// DefaultWaitTimeout is the total budget of a wait call.
	DefaultWaitTimeout = 30 * time.Second
	// DefaultPollInterval is the pause between inbox polls while waiting.
	DefaultPollInterval = 2 * time.Second
)

// clientConfig holds configuration for both client variants.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// waitConfig holds configuration for waiting on emails.
type waitConfig struct {
	timeout       time.Duration
	interval      time.Duration
	expectedCount int
}

// Option configures the client.
type Option func(*clientConfig)

// WaitOption configures email waiting.
type WaitOption func(*waitConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. The caller keeps ownership;
// Close will still release its idle connections.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithWaitTimeout sets the total time budget for a wait. Default: 30s.
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// WithPollInterval sets the pause between inbox polls. Default: 2s.
func WithPollInterval(interval time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.interval = interval
	}
}

// WithExpectedCount sets the inbox size that satisfies a count-based wait.
// Values below 1 are treated as 1. Default: 1.
func WithExpectedCount(count int) WaitOption {
	return func(c *waitConfig) {
		c.expectedCount = count
	}
}

func newWaitConfig(opts []WaitOption) *waitConfig {
	cfg := &waitConfig{
		timeout:       DefaultWaitTimeout,
		interval:      DefaultPollInterval,
		expectedCount: 1,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.expectedCount < 1 {
		cfg.expectedCount = 1
	}
	return cfg
}
