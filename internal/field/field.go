// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package field implements the typed field model (spec.md §4.2): every
// BibTeX field value carries a raw string plus, once parsed, a kind-specific
// parsed value used for comparison and merging. A Kind is the strategy that
// knows how to parse, render, compare, and combine one field's values; Field
// is the uniform container Entry stores regardless of which Kind it holds.
package field

import (
	"strings"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/score"
)

// State records whether a Field's raw text parsed successfully.
type State int

const (
	// Empty means the raw string was blank; there is no value to compare.
	Empty State = iota
	// Parsed means Value holds a kind-specific parsed representation.
	Parsed
	// Invalid means the raw string was non-blank but the Kind rejected it;
	// the raw text is kept for display and is never merged. It is compared
	// only by Kinds that implement PartialOnInvalid.
	Invalid
)

// Kind is the strategy for one field's type: how to parse its raw text,
// render a parsed value back to a string, compare two parsed values, and
// combine two comparable values into one. Implementations operate on `any`
// and type-assert internally; Entry only ever compares or combines two
// Fields built from the same Kind, so the assertion never fails in
// practice.
type Kind interface {
	// Name is the Kind's identifier, used in diagnostics.
	Name() string
	// Parse converts raw text into a parsed value, or reports ok=false if
	// raw is not a valid value of this kind.
	Parse(raw string) (value any, ok bool)
	// ToStr renders a parsed value back to its canonical BibTeX string.
	ToStr(value any) string
	// Matches scores how well two parsed values agree. comparable=false
	// ("None" in spec.md terms) means the kind declines to compare these
	// values at all, rather than actively rejecting them.
	Matches(a, b any) (s score.Score, comparable bool)
	// Combine merges two parsed values that matched at or above the accept
	// threshold into one, e.g. preferring the richer of two strings.
	Combine(a, b any) any
}

// Field is a single BibTeX field value: its raw text plus, once parsed, a
// Kind-specific value. The zero Field is an Empty field with no Kind and
// should not be used directly; construct with New.
type Field struct {
	kind  Kind
	Raw   string
	State State
	Value any
}

// New builds a Field by parsing raw with kind. A blank raw (after trimming)
// is Empty; a non-blank raw that kind.Parse rejects is Invalid with the raw
// text preserved.
func New(kind Kind, raw string) *Field {
	raw = strings.TrimSpace(raw)
	f := &Field{kind: kind, Raw: raw}
	if raw == "" {
		f.State = Empty
		return f
	}
	v, ok := kind.Parse(raw)
	if !ok {
		f.State = Invalid
		return f
	}
	f.State = Parsed
	f.Value = v
	return f
}

// Kind returns the field's Kind.
func (f *Field) Kind() Kind {
	if f == nil {
		return nil
	}
	return f.kind
}

// Present reports whether f holds a usable value (Parsed, not Empty or
// Invalid).
func (f *Field) Present() bool {
	return f != nil && f.State == Parsed
}

// Normalized renders the field's parsed value through its Kind, or "" if
// the field is not Parsed. This is the normalize(raw) convenience spec.md
// §4.2 defines as to_str(parse(raw)).
func (f *Field) Normalized() string {
	if !f.Present() {
		return ""
	}
	return f.kind.ToStr(f.Value)
}

// PartialOnInvalid is implemented by Kinds where a parse failure on either
// side should still be comparable, at a partial score, rather than
// declined outright — so that one malformed value doesn't cause a false
// reject (spec.md §4.2, YearField).
type PartialOnInvalid interface {
	Kind
	// InvalidScore is the score Field.Matches reports when at least one
	// side failed to parse but neither side is blank.
	InvalidScore() score.Score
}

// Matches compares f against other. It returns comparable=false whenever
// either side is blank, the two fields use different Kinds, or the Kind
// itself declines to compare (e.g. one side too short to be meaningful).
// A Kind that also implements PartialOnInvalid is still given a chance to
// compare when one or both sides failed to parse but neither is blank.
func (f *Field) Matches(other *Field) (s score.Score, comparable bool) {
	if f == nil || other == nil {
		return score.NoMatch, false
	}
	if f.kind == nil || other.kind == nil || f.kind.Name() != other.kind.Name() {
		return score.NoMatch, false
	}
	if f.State == Parsed && other.State == Parsed {
		return f.kind.Matches(f.Value, other.Value)
	}
	if f.State == Empty || other.State == Empty {
		return score.NoMatch, false
	}
	if pk, ok := f.kind.(PartialOnInvalid); ok {
		return pk.InvalidScore(), true
	}
	return score.NoMatch, false
}

// Combine merges f and other under f's Kind, returning a new Field. Callers
// must only call Combine after Matches reported an accepted score; Combine
// itself does not re-check the threshold.
func (f *Field) Combine(other *Field) *Field {
	if !f.Present() {
		return other
	}
	if !other.Present() {
		return f
	}
	v := f.kind.Combine(f.Value, other.Value)
	return &Field{kind: f.kind, State: Parsed, Value: v, Raw: f.kind.ToStr(v)}
}
