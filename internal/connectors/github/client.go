package github

import (
	"context"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// MaxAttempts caps the retry tier for one logical fetch,
	// Retry-After reissues included.
	MaxAttempts = 8

	// RetryDelay is the initial backoff delay between attempts.
	RetryDelay = 500 * time.Millisecond
)

// Client wraps the go-github client behind one pooled HTTP transport.
// The transport is the only shared mutable resource of a run; it is safe
// for use by any number of concurrent fetches.
type Client struct {
	gh       *gh.Client
	token    string
	throttle *rate.Limiter
	retry    retryPolicy
}

type retryPolicy struct {
	initialDelay time.Duration
	maxAttempts  uint
}

// Option configures a Client.
type Option func(*Client)

// WithThrottle installs a proactive requests-per-second cap in front of
// every API call. Zero or negative rps leaves requests unthrottled.
func WithThrottle(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.throttle = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithBaseURL points the client at a different API root.
// The URL must end with a trailing slash. Used by tests.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.gh.BaseURL = u
		}
	}
}

// WithRetry adjusts the backoff tier. Used by tests to keep delays short.
func WithRetry(initialDelay time.Duration, maxAttempts uint) Option {
	return func(c *Client) {
		c.retry = retryPolicy{initialDelay: initialDelay, maxAttempts: maxAttempts}
	}
}

// NewClient creates a GitHub API client. An empty token yields an
// unauthenticated client; a non-empty token is attached as a bearer
// credential on every request via the oauth2 transport.
func NewClient(token string, opts ...Option) *Client {
	httpClient := &http.Client{Timeout: DefaultTimeout}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = DefaultTimeout
	}

	c := &Client{
		gh:       gh.NewClient(httpClient),
		token:    token,
		throttle: rate.NewLimiter(rate.Inf, 1),
		retry:    retryPolicy{initialDelay: RetryDelay, maxAttempts: MaxAttempts},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close tears down idle connections held by the transport pool.
func (c *Client) Close() {
	c.gh.Client().CloseIdleConnections()
}
