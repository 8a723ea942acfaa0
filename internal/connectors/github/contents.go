package github

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v5"

	"github.com/custodia-labs/repocat-cli/internal/core/domain"
	"github.com/custodia-labs/repocat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/repocat-cli/internal/logger"
)

// Ensure Client implements the driven port.
var _ driven.ContentSource = (*Client)(nil)

// node is the decoded form of the polymorphic /contents response:
// exactly one of listing or file is set.
type node struct {
	listing []domain.Entry
	file    *domain.Blob
}

// List returns the directory listing at path in remote order.
func (c *Client) List(ctx context.Context, repo domain.Repo, path string) ([]domain.Entry, error) {
	n, err := c.contents(ctx, repo, path)
	if err != nil {
		return nil, err
	}
	if n.listing == nil {
		return nil, fmt.Errorf("%s contents %q: expected a directory listing, got a file", repo, path)
	}
	return n.listing, nil
}

// File fetches one file's decoded text content.
func (c *Client) File(ctx context.Context, repo domain.Repo, path string) (domain.Blob, error) {
	n, err := c.contents(ctx, repo, path)
	if err != nil {
		return domain.Blob{}, err
	}
	if n.file == nil {
		return domain.Blob{}, fmt.Errorf("%s contents %q: expected a file, got a directory listing", repo, path)
	}
	return *n.file, nil
}

// contents wraps one logical fetch in the retry tier: exponential backoff
// capped at maxAttempts for transient faults, with Retry-After responses
// rescheduled at the server-provided delay inside the same attempt budget.
func (c *Client) contents(ctx context.Context, repo domain.Repo, path string) (*node, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retry.initialDelay

	return backoff.Retry(ctx, func() (*node, error) {
		n, err := c.fetchContents(ctx, repo, path)
		if err != nil {
			return nil, retryClass(err)
		}
		return n, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(c.retry.maxAttempts))
}

// fetchContents performs a single /contents request and decodes the
// array-or-object response into a node.
func (c *Client) fetchContents(ctx context.Context, repo domain.Repo, path string) (*node, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	file, dir, _, err := c.gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, nil)
	if err != nil {
		return nil, wrapError(err)
	}

	if file != nil {
		// Decodes base64 or passes plain content through, per the
		// response's encoding field.
		text, err := file.GetContent()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", file.GetPath(), err)
		}
		return &node{file: &domain.Blob{Path: file.GetPath(), Text: text}}, nil
	}

	entries := make([]domain.Entry, 0, len(dir))
	for _, item := range dir {
		entries = append(entries, domain.Entry{
			Name: item.GetName(),
			Path: item.GetPath(),
			Kind: domain.EntryKind(item.GetType()),
		})
	}
	return &node{listing: entries}, nil
}

// retryClass maps a classified fetch error onto the retry tier: not-found
// and other 4xx responses are permanent, Retry-After faults reschedule at
// the server-provided delay, everything else backs off exponentially.
func retryClass(err error) error {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) && rateLimitErr.RetryAfter > 0 {
		logger.Warn("rate limit exceeded, retrying after %s", rateLimitErr.RetryAfter)
		return &backoff.RetryAfterError{Duration: rateLimitErr.RetryAfter}
	}

	if errors.Is(err, domain.ErrNotFound) {
		return backoff.Permanent(err)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		return backoff.Permanent(err)
	}

	return err
}
