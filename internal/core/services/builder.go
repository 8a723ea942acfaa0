package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/repocat-cli/internal/core/domain"
	"github.com/custodia-labs/repocat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/repocat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/repocat-cli/internal/logger"
)

// DefaultMinRemaining is the quota floor below which a run pauses until
// the rate limit window resets.
const DefaultMinRemaining = 100

const readmeFallback = "README.md: Not found or error fetching README\n\n"

// BuilderOptions configure a document build.
type BuilderOptions struct {
	Walker WalkerOptions

	// MinRemaining is the quota guard threshold. Zero means the default.
	MinRemaining int

	// SkipGuard disables the pre-flight quota check.
	SkipGuard bool
}

// Ensure Builder implements the driving port.
var _ driving.DocumentBuilder = (*Builder)(nil)

// Builder assembles the flattened repository document. It is the one
// layer that absorbs partial failure: a failed README fetch and a failed
// tree walk each leave a diagnostic line in place of their section
// instead of aborting the run.
type Builder struct {
	source driven.ContentSource
	walker *Walker
	opts   BuilderOptions

	// sleep is swapped out in tests.
	sleep func(context.Context, time.Duration) error
}

// NewBuilder creates a builder over the given content source.
func NewBuilder(source driven.ContentSource, opts BuilderOptions) *Builder {
	if opts.MinRemaining <= 0 {
		opts.MinRemaining = DefaultMinRemaining
	}
	return &Builder{
		source: source,
		walker: NewWalker(source, opts.Walker),
		opts:   opts,
		sleep:  sleepCtx,
	}
}

// Build flattens the repository behind repoURL into one document:
// a best-effort README block, the directory tree, and the collected file
// contents. Only a malformed locator or an exhausted quota check abort
// the run; every other failure degrades into a diagnostic line.
func (b *Builder) Build(ctx context.Context, repoURL string) (string, error) {
	repo, err := domain.ParseRepoURL(repoURL)
	if err != nil {
		return "", err
	}

	runID := uuid.NewString()
	logger.Section("build " + repo.String())
	logger.Debug("run %s: flattening %s", runID, repo)

	if !b.opts.SkipGuard {
		if err := b.guard(ctx, runID); err != nil {
			return "", err
		}
	}

	var doc strings.Builder
	doc.WriteString(b.readmeSection(ctx, repo, runID))
	doc.WriteString(b.treeSection(ctx, repo, runID))
	return doc.String(), nil
}

// guard runs the one-shot pre-flight quota check: when the remaining
// budget is thin, the whole run pauses until the window resets. It is not
// re-checked mid-traversal. Without a token the check is skipped with a
// warning.
func (b *Builder) guard(ctx context.Context, runID string) error {
	status, err := b.source.Quota(ctx)
	if errors.Is(err, domain.ErrAuthRequired) {
		logger.Warn("run %s: no token configured, proceeding without rate limit check", runID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("rate limit check: %w", err)
	}

	logger.Info("run %s: rate limit %d / %d", runID, status.Remaining, status.Limit)
	if d := guardDelay(status, b.opts.MinRemaining, time.Now()); d > 0 {
		logger.Warn("run %s: approaching rate limit, sleeping for %s", runID, d)
		return b.sleep(ctx, d)
	}
	return nil
}

func (b *Builder) readmeSection(ctx context.Context, repo domain.Repo, runID string) string {
	blob, err := b.source.File(ctx, repo, "README.md")
	if err != nil {
		logger.Warn("run %s: readme: %v", runID, err)
		return readmeFallback
	}
	return "README.md:\n```\n" + blob.Text + "\n```\n\n"
}

func (b *Builder) treeSection(ctx context.Context, repo domain.Repo, runID string) string {
	traversal, err := b.walker.Walk(ctx, repo, "", 0)
	if err != nil {
		logger.Warn("run %s: walk: %v", runID, err)
		return fmt.Sprintf("Failed to build directory tree: %v\n", err)
	}

	var section strings.Builder
	section.WriteString("Directory Structure:\n")
	section.WriteString(traversal.Tree)
	section.WriteString("\n")
	for _, blob := range traversal.Contents {
		section.WriteString("\n```" + blob.Text + "```\n")
	}
	return section.String()
}

// guardDelay is pure so the pause policy can be tested against a fixed
// clock: zero when quota is healthy or the window already reset.
func guardDelay(status domain.RateStatus, minRemaining int, now time.Time) time.Duration {
	if status.Remaining >= minRemaining {
		return 0
	}
	d := status.ResetAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
