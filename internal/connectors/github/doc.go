// Package github is the GitHub implementation of the content source port.
//
// One pooled HTTP client serves every concurrent fetch of a run. Each
// logical fetch carries two retry tiers: exponential backoff for transient
// transport faults, and a Retry-After driven reissue for secondary rate
// limits, both bounded by a shared attempt budget. Not-found responses are
// permanent and never retried.
package github
