package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/repocat-cli/internal/core/domain"
)

// RateLimitError represents a 403/429 quota rejection. RetryAfter is zero
// when the response carried no usable Retry-After value; such errors are
// surfaced to the backoff tier instead of driving a timed reissue.
type RateLimitError struct {
	RetryAfter time.Duration
	ResetAt    time.Time
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("github: rate limit exceeded, retry after %s", e.RetryAfter)
	}
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError represents a non-2xx API response outside the rate-limit family.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// wrapError converts go-github errors to our error types.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	// Secondary rate limit: 403/429 carrying Retry-After.
	var abuse *gh.AbuseRateLimitError
	if errors.As(err, &abuse) {
		var after time.Duration
		if abuse.RetryAfter != nil {
			after = *abuse.RetryAfter
		}
		return &RateLimitError{RetryAfter: after}
	}

	// Primary rate limit: quota exhausted until the window resets.
	var primary *gh.RateLimitError
	if errors.As(err, &primary) {
		return &RateLimitError{ResetAt: primary.Rate.Reset.Time}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		if ghErr.Response.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", ghErr.Response.Request.URL.Path, domain.ErrNotFound)
		}
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        ghErr.Response.Request.URL.String(),
		}
	}

	// Transport-layer fault (connection error, timeout).
	return err
}

// IsNotFound checks if the error indicates a resource that does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr) || errors.Is(err, domain.ErrRateLimited)
}
