// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package field

import (
	"strings"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/score"
)

// listified wraps a scalar Kind into a Kind over an ordered list of that
// scalar's parsed values, splitting and joining on sep. Used for
// "keywords"-shaped fields: a comma-separated bag compared by overlap
// rather than position (spec.md §4.2's Listify adapter).
type listified struct {
	scalar Kind
	sep    string
}

// Listify builds the Kind for a sep-separated list of values of the given
// scalar Kind, e.g. Listify(NewStrictString("keyword"), ",") for a
// "keywords" field.
func Listify(scalar Kind, sep string) Kind {
	return listified{scalar: scalar, sep: sep}
}

func (l listified) Name() string { return l.scalar.Name() + "list" }

func (l listified) Parse(raw string) (any, bool) {
	parts := strings.Split(raw, l.sep)
	values := make([]any, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, ok := l.scalar.Parse(p)
		if !ok {
			continue // an individual malformed item doesn't invalidate the whole list
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, false
	}
	return values, true
}

func (l listified) ToStr(v any) string {
	values := v.([]any)
	parts := make([]string, len(values))
	for i, val := range values {
		parts[i] = l.scalar.ToStr(val)
	}
	return strings.Join(parts, l.sep+" ")
}

// Matches scores order-independent overlap as |matched pairs| / |union|,
// where a pair matches when the scalar Kind accepts it. FIELD_NO_MATCH
// only when no pair matches (the lists are disjoint), whatever their
// sizes; otherwise partial overlap is allowed.
func (l listified) Matches(a, b any) (score.Score, bool) {
	as, bs := a.([]any), b.([]any)
	if len(as) == 0 || len(bs) == 0 {
		return score.NoMatch, false
	}

	used := make([]bool, len(bs))
	matched := 0
	for _, av := range as {
		for j, bv := range bs {
			if used[j] {
				continue
			}
			s, comparable := l.scalar.Matches(av, bv)
			if comparable && s.Accepted() {
				used[j] = true
				matched++
				break
			}
		}
	}
	if matched == 0 {
		return score.NoMatch, true
	}
	union := len(as) + len(bs) - matched
	return score.Scale(float64(matched) / float64(union)), true
}

// Combine appends items from b not already accepted-matched by an item in
// a, preserving a's order followed by b's novel items.
func (l listified) Combine(a, b any) any {
	as, bs := a.([]any), b.([]any)
	out := make([]any, len(as))
	copy(out, as)
	for _, bv := range bs {
		novel := true
		for _, av := range as {
			if s, comparable := l.scalar.Matches(av, bv); comparable && s.Accepted() {
				novel = false
				break
			}
		}
		if novel {
			out = append(out, bv)
		}
	}
	return out
}
