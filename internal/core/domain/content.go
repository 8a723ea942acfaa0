package domain

import "time"

// EntryKind discriminates directory-listing rows.
type EntryKind string

const (
	EntryDir  EntryKind = "dir"
	EntryFile EntryKind = "file"
)

// Entry is one row of a directory listing, in the order the remote
// returned it. That order is load-bearing: the emitted tree preserves it.
type Entry struct {
	Name string
	Path string
	Kind EntryKind
}

// Blob is the decoded text content of one file.
type Blob struct {
	Path string
	Text string
}

// RateStatus is a point-in-time snapshot of the core API quota.
// It is read once per run, before traversal begins, and never persisted.
type RateStatus struct {
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// Traversal is the result of walking one directory subtree: the rendered
// tree text plus the fetched file contents in tree order. A directory's
// descendants form a contiguous block at the position of its tree line.
type Traversal struct {
	Tree     string
	Contents []Blob
}
