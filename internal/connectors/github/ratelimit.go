package github

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v5"

	"github.com/custodia-labs/repocat-cli/internal/core/domain"
)

// Quota snapshots the core API quota from /rate_limit. It shares the
// fetch retry policy. Requires a token: the quota of an anonymous client
// says nothing about the budget an authenticated run will spend.
func (c *Client) Quota(ctx context.Context) (domain.RateStatus, error) {
	if c.token == "" {
		return domain.RateStatus{}, domain.ErrAuthRequired
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.initialDelay

	return backoff.Retry(ctx, func() (domain.RateStatus, error) {
		status, err := c.fetchQuota(ctx)
		if err != nil {
			return domain.RateStatus{}, retryClass(err)
		}
		return status, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(c.retry.maxAttempts))
}

func (c *Client) fetchQuota(ctx context.Context) (domain.RateStatus, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return domain.RateStatus{}, err
	}

	limits, _, err := c.gh.RateLimit.Get(ctx)
	if err != nil {
		return domain.RateStatus{}, wrapError(err)
	}

	core := limits.GetCore()
	if core == nil {
		return domain.RateStatus{}, errors.New("github: rate limit response carried no core quota")
	}
	return domain.RateStatus{
		Remaining: core.Remaining,
		Limit:     core.Limit,
		ResetAt:   core.Reset.Time,
	}, nil
}
