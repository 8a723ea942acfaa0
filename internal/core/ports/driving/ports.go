package driving

import (
	"context"

	"github.com/custodia-labs/repocat-cli/internal/core/domain"
)

// DocumentBuilder flattens a repository locator into one text document.
type DocumentBuilder interface {
	Build(ctx context.Context, repoURL string) (string, error)
}

// QuotaReporter exposes the current API quota to user-facing surfaces.
type QuotaReporter interface {
	Quota(ctx context.Context) (domain.RateStatus, error)
}
