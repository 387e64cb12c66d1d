// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entry

// Candidate is an Entry produced by a single adapter from a single API
// record (spec.md §3), plus the identity of the adapter that produced it
// and an opaque source URL kept for diagnostics and telemetry.
type Candidate struct {
	*Entry
	Adapter   string
	SourceURL string
}

// NewCandidate wraps e as a Candidate attributed to adapter, fetched from
// sourceURL.
func NewCandidate(e *Entry, adapter, sourceURL string) Candidate {
	return Candidate{Entry: e, Adapter: adapter, SourceURL: sourceURL}
}
