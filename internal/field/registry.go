// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package field

import "github.com/mesh-intelligence/bibtex-autocomplete/internal/score"

// Registry maps a lower-cased BibTeX field name to the Kind that parses,
// compares, and merges its values (spec.md §4.2's fixed field-kind table).
// Fields absent from the registry are treated as opaque strings (Opaque)
// and never matched. The merger still fills such a field from a candidate
// when it is a recognized entry field (e.g. abstract); unrecognized ones
// are carried through merges untouched.
var Registry = map[string]Kind{
	"title":     NewStrictString("title"),
	"booktitle": NewStrictString("booktitle"),
	"journal":   NewStrictString("journal"),
	"publisher": NewStrictString("publisher"),
	"school":    NewStrictString("school"),
	"series":    NewStrictString("series"),

	"author": NameList{},
	"editor": NameList{},

	"doi":  DOI{},
	"url":  NewURL(),
	"ee":   NewURL(),
	"isbn": NewISBN(),

	"year":  NewYear(),
	"month": NewMonth(),
	"pages": NewPages(),

	"keywords": Listify(NewStrictString("keyword"), ","),
}

// For looks up the Kind registered for name, returning the opaque
// pass-through Kind when name is unrecognized.
func For(name string) Kind {
	if k, ok := Registry[name]; ok {
		return k
	}
	return Opaque
}

// opaqueKind is the Kind for fields with no type-specific comparison:
// parsing always succeeds, values are never compared, and combine always
// prefers the existing value.
type opaqueKind struct{}

// Opaque is the shared Kind instance for fields outside Registry.
var Opaque Kind = opaqueKind{}

func (opaqueKind) Name() string { return "opaque" }

func (opaqueKind) Parse(raw string) (any, bool) { return raw, true }

func (opaqueKind) ToStr(v any) string { return v.(string) }

func (opaqueKind) Matches(a, b any) (s score.Score, comparable bool) {
	return score.NoMatch, false
}

func (opaqueKind) Combine(a, b any) any { return a }
