// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"sort"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// sortStableByPriority orders candidates by priority.Index(candidate.Adapter)
// ascending, preserving relative order among candidates from the same
// adapter or from adapters absent from priority.
func sortStableByPriority(candidates []entry.Candidate, priority lookup.Priority) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return priority.Index(candidates[i].Adapter) < priority.Index(candidates[j].Adapter)
	})
}
