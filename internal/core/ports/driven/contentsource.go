package driven

import (
	"context"

	"github.com/custodia-labs/repocat-cli/internal/core/domain"
)

// ContentSource is the read-only surface of the remote content host.
// Implementations own retries and rate limiting; callers only see the
// final outcome of each logical fetch.
type ContentSource interface {
	// List returns the directory listing at path, in the order the
	// remote returned it.
	List(ctx context.Context, repo domain.Repo, path string) ([]domain.Entry, error)

	// File fetches one file and decodes its content to text.
	File(ctx context.Context, repo domain.Repo, path string) (domain.Blob, error)

	// Quota snapshots the remaining request budget.
	// Returns domain.ErrAuthRequired when no credential is configured.
	Quota(ctx context.Context) (domain.RateStatus, error)
}
