package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/custodia-labs/repocat-cli/internal/core/domain"
	"github.com/custodia-labs/repocat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/repocat-cli/internal/logger"
)

const (
	// DefaultGateCapacity bounds how many leaf content fetches may be
	// in flight at once. Listing fetches and recursion are not gated.
	DefaultGateCapacity = 100

	// DefaultExclude is the path segment that prunes a whole subtree.
	DefaultExclude = ".github"

	indentStep = "    "
)

// DefaultExtensions lists the file suffixes whose content is fetched.
// Everything else is listed in the tree but never fetched.
var DefaultExtensions = []string{".py", ".ipynb", ".html", ".css", ".js", ".jsx", ".rst", ".md"}

// WalkerOptions configure one traversal. Zero values fall back to the
// package defaults; the presentation mode is fixed for the whole run.
type WalkerOptions struct {
	Extensions []string // file suffixes eligible for content fetching
	Exclude    string   // path segment that prunes a subtree
	Gate       int64    // leaf-fetch concurrency cap
	Inline     bool     // fence contents under the tree line instead of an appendix
}

func (o WalkerOptions) withDefaults() WalkerOptions {
	if len(o.Extensions) == 0 {
		o.Extensions = DefaultExtensions
	}
	if o.Exclude == "" {
		o.Exclude = DefaultExclude
	}
	if o.Gate <= 0 {
		o.Gate = DefaultGateCapacity
	}
	return o
}

// Walker expands a repository listing into tree text and file contents.
//
// Subdirectory walks fan out one goroutine each, unbounded; leaf content
// fetches share one counting gate, released on every exit path. Results
// land in per-entry slots and are spliced in listing order after the join,
// so the output is byte-identical to a sequential depth-first walk no
// matter how the fetches actually interleave.
type Walker struct {
	source driven.ContentSource
	gate   *semaphore.Weighted
	opts   WalkerOptions
}

// NewWalker creates a walker over the given content source.
func NewWalker(source driven.ContentSource, opts WalkerOptions) *Walker {
	opts = opts.withDefaults()
	return &Walker{
		source: source,
		gate:   semaphore.NewWeighted(opts.Gate),
		opts:   opts,
	}
}

// Walk traverses the subtree rooted at path. Any listing or leaf fetch
// that fails after all retries fails the whole subtree; partial recovery
// happens one layer up, in the Builder, at whole-tree granularity.
func (w *Walker) Walk(ctx context.Context, repo domain.Repo, path string, depth int) (domain.Traversal, error) {
	entries, err := w.source.List(ctx, repo, path)
	if err != nil {
		return domain.Traversal{}, err
	}
	logger.Debug("walk %s %q: %d entries", repo, path, len(entries))

	// One slot per entry, filled concurrently, read back in listing order.
	type slot struct {
		sub  domain.Traversal // subtree outcome, for directories
		blob *domain.Blob     // decoded content, for allow-listed files
	}
	slots := make([]slot, len(entries))

	var g errgroup.Group
	for i, entry := range entries {
		if w.excluded(entry.Path) {
			continue
		}
		if entry.Kind == domain.EntryDir {
			g.Go(func() error {
				sub, err := w.Walk(ctx, repo, entry.Path, depth+1)
				if err != nil {
					return err
				}
				slots[i].sub = sub
				return nil
			})
			continue
		}
		if !w.allowed(entry.Name) {
			continue
		}
		g.Go(func() error {
			if err := w.gate.Acquire(ctx, 1); err != nil {
				return err
			}
			defer w.gate.Release(1)

			blob, err := w.source.File(ctx, repo, entry.Path)
			if err != nil {
				return err
			}
			slots[i].blob = &blob
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Traversal{}, err
	}

	indent := strings.Repeat(indentStep, depth)
	var tree strings.Builder
	var contents []domain.Blob
	for i, entry := range entries {
		if w.excluded(entry.Path) {
			continue
		}
		if entry.Kind == domain.EntryDir {
			tree.WriteString(indent + "[" + entry.Name + "/]\n")
			tree.WriteString(slots[i].sub.Tree)
			contents = append(contents, slots[i].sub.Contents...)
			continue
		}
		tree.WriteString(indent + entry.Name + "\n")
		if blob := slots[i].blob; blob != nil {
			if w.opts.Inline {
				tree.WriteString(indent + indentStep + "```" + blob.Text + "```\n")
			} else {
				contents = append(contents, *blob)
			}
		}
	}
	return domain.Traversal{Tree: tree.String(), Contents: contents}, nil
}

// excluded reports whether any path segment equals the exclusion marker.
func (w *Walker) excluded(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		if segment == w.opts.Exclude {
			return true
		}
	}
	return false
}

// allowed reports whether the file name carries an allow-listed suffix.
func (w *Walker) allowed(name string) bool {
	for _, ext := range w.opts.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
