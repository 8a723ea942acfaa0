// Package domain holds the core entities of repocat: repository
// coordinates, listing entries, decoded file blobs, quota snapshots and
// traversal results. Everything here lives and dies within a single run.
package domain
