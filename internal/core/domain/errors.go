package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidRepoURL indicates the repository locator does not contain
	// an owner and a repository name.
	ErrInvalidRepoURL = errors.New("invalid repository URL")

	// ErrAuthRequired indicates an operation needs a token but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotFound indicates the remote resource does not exist.
	// Not-found is permanent: fetches carrying it are never retried.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the API rejected a request for quota
	// reasons without a usable Retry-After.
	ErrRateLimited = errors.New("rate limited")
)
