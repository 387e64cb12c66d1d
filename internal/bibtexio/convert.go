// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtexio

import (
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
)

// ToEntry converts a parsed bibtexio.Entry into the engine's
// entry.Entry, tagging it with src for diagnostics.
func ToEntry(e *Entry, src entry.Source) *entry.Entry {
	out := entry.New(e.Key, entry.Type(e.Type), src)
	for _, f := range e.Fields {
		out.Set(f.Name, f.Value)
	}
	return out
}

// ApplyMerged writes merged's field values back onto e in place,
// preserving e's existing field order for fields it already had and
// appending newly-filled fields at the end; fields merged no longer has
// (spec.md §4.7's remove_fields) are deleted from e.
func ApplyMerged(e *Entry, merged *entry.Entry) {
	keep := make(map[string]bool)
	for _, name := range merged.FieldNames() {
		keep[name] = true
		e.Set(name, merged.Raw(name))
	}
	var filtered []Field
	for _, f := range e.Fields {
		if keep[f.Name] {
			filtered = append(filtered, f)
		}
	}
	e.Fields = filtered
}
