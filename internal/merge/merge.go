// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge implements the merger (spec.md §4.7): combining the
// original entry with the accepted candidates from each adapter, in
// adapter-priority order, under a fixed per-field policy.
package merge

import (
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
)

// listFields is the set of field names whose Kind is list-valued
// (spec.md §4.2's NameListField and the Listify adapter); every other
// recognized field is scalar.
var listFields = map[string]bool{
	"author":   true,
	"editor":   true,
	"keywords": true,
}

// Policy configures the merge (spec.md §4.6/§6's --remove-fields,
// --dont-complete, --force-overwrite flags).
type Policy struct {
	// RemoveFields are stripped from the merged entry after merging.
	RemoveFields []string
	// DontComplete fields are left exactly as in the original entry,
	// never filled or overwritten from a candidate.
	DontComplete []string
	// Force allows a scalar field present on the original entry to be
	// overwritten by a candidate's value; without it the original always
	// wins once present.
	Force bool
}

func contains(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}

// Merge combines original with candidates (already ordered by adapter
// priority) under policy, returning a new Entry. original is not mutated.
func Merge(original *entry.Entry, candidates []entry.Candidate, policy Policy) *entry.Entry {
	merged := original.Clone()

	names := collectFieldNames(original, candidates)
	for _, name := range names {
		if contains(policy.DontComplete, name) {
			continue // never touched, regardless of original presence
		}
		if !entry.IsRecognized(name) {
			continue // opaque fields are carried by Clone, never merged
		}
		if listFields[name] {
			mergeList(merged, name, candidates)
		} else {
			mergeScalar(merged, name, candidates, policy.Force)
		}
	}

	for _, name := range policy.RemoveFields {
		merged.Remove(name)
	}

	return merged
}

// mergeScalar applies spec.md §4.7's scalar rule: keep the original value
// if present (unless force is set), otherwise take the first candidate
// (by priority order) that has the field.
func mergeScalar(merged *entry.Entry, name string, candidates []entry.Candidate, force bool) {
	original := merged.Get(name)
	if original.Present() && !force {
		return
	}
	for _, c := range candidates {
		if f := c.Get(name); f.Present() {
			merged.SetField(name, f)
			return
		}
	}
}

// mergeList applies spec.md §4.7's list rule: the order-preserving union
// of the original's list and every candidate's list, using the field's
// own element-equality/combine predicate. The original's field — even if
// absent — anchors the fold so its ordering is preserved for elements it
// already contains.
func mergeList(merged *entry.Entry, name string, candidates []entry.Candidate) {
	result := merged.Get(name)
	for _, c := range candidates {
		cf := c.Get(name)
		if !cf.Present() {
			continue
		}
		if !result.Present() {
			result = cf
			continue
		}
		result = result.Combine(cf)
	}
	if result != nil {
		merged.SetField(name, result)
	}
}

// collectFieldNames returns the deduplicated union of field names present
// across original and every candidate, in original-first then
// candidate-priority order (stable, deterministic iteration for merge).
func collectFieldNames(original *entry.Entry, candidates []entry.Candidate) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(list []string) {
		for _, n := range list {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	add(original.FieldNames())
	for _, c := range candidates {
		add(c.FieldNames())
	}
	return names
}
