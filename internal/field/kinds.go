// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package field

import (
	"strconv"
	"strings"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/author"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/normalize"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/score"
)

// substringMatchFloor is the minimum shorter/longer length ratio at which a
// pure-substring title/journal/etc. relationship is still judged a partial
// match (spec.md §4.2); below it the two values are unrelated.
const substringMatchFloor = 0.8

// StrictString is the Kind for free-text fields compared by equality or
// substring containment after strong normalization (normalize.Str): title,
// journal, booktitle, publisher, school, series. Every non-blank string
// parses.
type StrictString struct {
	name string
}

// NewStrictString builds a StrictString Kind named name (used only in
// diagnostics).
func NewStrictString(name string) *StrictString { return &StrictString{name: name} }

func (k *StrictString) Name() string { return k.name }

func (k *StrictString) Parse(raw string) (any, bool) {
	return raw, true
}

func (k *StrictString) ToStr(v any) string {
	return v.(string)
}

// Matches implements spec.md §4.2's exact rule: equal after normalization is
// CERTAIN, one side a substring of the other with a length ratio at or
// above substringMatchFloor is a partial match scaled to that ratio, and
// everything else is FIELD_NO_MATCH. This is containment, not edit-distance
// similarity — a near-typo that isn't a substring never matches here.
func (k *StrictString) Matches(a, b any) (score.Score, bool) {
	as, bs := normalize.Str(a.(string)), normalize.Str(b.(string))
	if as == "" || bs == "" {
		return score.NoMatch, false
	}
	if as == bs {
		return score.CertainMatch, true
	}
	shorter, longer := as, bs
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if strings.Contains(longer, shorter) {
		ratio := float64(len(shorter)) / float64(len(longer))
		if ratio >= substringMatchFloor {
			return score.Scale(ratio), true
		}
	}
	return score.NoMatch, true
}

func (k *StrictString) Combine(a, b any) any {
	as, bs := a.(string), b.(string)
	if len(bs) > len(as) {
		return bs
	}
	return as
}

// DOI is the Kind for the "doi" field. A mismatched, successfully parsed
// DOI is a hard rejection (spec.md §4.4's DOI short-circuit): two records
// citing different DOIs are never the same work.
type DOI struct{}

func (DOI) Name() string { return "doi" }

func (DOI) Parse(raw string) (any, bool) {
	v, err := normalize.DOI(raw)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (DOI) ToStr(v any) string { return v.(string) }

func (DOI) Matches(a, b any) (score.Score, bool) {
	if a.(string) == b.(string) {
		return score.CertainMatch, true
	}
	return score.NoMatch, true
}

func (DOI) Combine(a, b any) any { return a }

// url is the Kind for "url"/"ee" fields, compared by host and path+query
// after normalize.URL decomposition.
type url struct{}

// NewURL builds the URL Kind.
func NewURL() Kind { return url{} }

type urlValue struct {
	raw       string
	host      string
	pathQuery string
}

func (url) Name() string { return "url" }

func (url) Parse(raw string) (any, bool) {
	host, pq, err := normalize.URL(raw)
	if err != nil {
		return nil, false
	}
	return urlValue{raw: raw, host: host, pathQuery: pq}, true
}

func (url) ToStr(v any) string { return v.(urlValue).raw }

func (url) Matches(a, b any) (score.Score, bool) {
	av, bv := a.(urlValue), b.(urlValue)
	if av.host != bv.host {
		return score.NoMatch, true
	}
	if av.pathQuery == bv.pathQuery {
		return score.CertainMatch, true
	}
	ratio := normalize.Similarity(av.pathQuery, bv.pathQuery)
	return score.Scale(ratio * 0.8), true // same host, differing path: never certain on path alone
}

func (url) Combine(a, b any) any {
	av, bv := a.(urlValue), b.(urlValue)
	if len(bv.raw) > len(av.raw) {
		return bv
	}
	return av
}

// year is the Kind for the "year" field: a 4-digit publication year
// compared by closeness, with exact equality certain.
type year struct{}

// NewYear builds the Year Kind.
func NewYear() Kind { return year{} }

func (year) Name() string { return "year" }

func (year) Parse(raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1000 || n > 9999 {
		return nil, false
	}
	return n, true
}

func (year) ToStr(v any) string { return strconv.Itoa(v.(int)) }

func (year) Matches(a, b any) (score.Score, bool) {
	av, bv := a.(int), b.(int)
	diff := av - bv
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return score.CertainMatch, true
	case diff == 1:
		// publication-vs-preprint-year drift is common and still a good sign.
		return score.Scale(0.6), true
	default:
		return score.NoMatch, true
	}
}

func (year) Combine(a, b any) any { return a }

// InvalidScore implements PartialOnInvalid: a year that failed to parse on
// either side (e.g. "in press", "forthcoming") is still worth a partial
// score rather than an outright decline, since rejecting the whole entry
// over one malformed year field would be a false reject.
func (year) InvalidScore() score.Score { return score.Scale(0.3) }

// pages is the Kind for the "pages" field: a "start--end" or "start-end"
// range, or a bare page/article number.
type pages struct{}

// NewPages builds the Pages Kind.
func NewPages() Kind { return pages{} }

type pagesValue struct {
	raw        string
	start, end string
}

func (pages) Name() string { return "pages" }

var pagesDashes = strings.NewReplacer("---", "-", "--", "-")

func (pages) Parse(raw string) (any, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}
	norm := pagesDashes.Replace(trimmed)
	if idx := strings.Index(norm, "-"); idx >= 0 {
		return pagesValue{raw: raw, start: strings.TrimSpace(norm[:idx]), end: strings.TrimSpace(norm[idx+1:])}, true
	}
	return pagesValue{raw: raw, start: norm, end: norm}, true
}

func (pages) ToStr(v any) string { return v.(pagesValue).raw }

func (pages) Matches(a, b any) (score.Score, bool) {
	av, bv := a.(pagesValue), b.(pagesValue)
	if av.start == bv.start && av.end == bv.end {
		return score.CertainMatch, true
	}
	if av.start == bv.start || av.end == bv.end {
		return score.Scale(0.5), true
	}
	return score.NoMatch, true
}

func (pages) Combine(a, b any) any {
	av, bv := a.(pagesValue), b.(pagesValue)
	if len(bv.raw) > len(av.raw) {
		return bv
	}
	return av
}

// month is the Kind for the "month" field: compared after normalize.Month
// maps names to their 1..12 decimal form.
type month struct{}

// NewMonth builds the Month Kind.
func NewMonth() Kind { return month{} }

func (month) Name() string { return "month" }

func (month) Parse(raw string) (any, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}
	return normalize.Month(raw), true
}

func (month) ToStr(v any) string { return v.(string) }

func (month) Matches(a, b any) (score.Score, bool) {
	if a.(string) == b.(string) {
		return score.CertainMatch, true
	}
	return score.NoMatch, true
}

func (month) Combine(a, b any) any { return a }

// isbn is the Kind for the "isbn" field, validated and compared on the
// checksum-cleaned digit string.
type isbn struct{}

// NewISBN builds the ISBN Kind.
func NewISBN() Kind { return isbn{} }

func (isbn) Name() string { return "isbn" }

func (isbn) Parse(raw string) (any, bool) {
	v, err := normalize.ISBN(raw)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (isbn) ToStr(v any) string { return v.(string) }

func (isbn) Matches(a, b any) (score.Score, bool) {
	if a.(string) == b.(string) {
		return score.CertainMatch, true
	}
	return score.NoMatch, true
}

func (isbn) Combine(a, b any) any { return a }

// NameList is the Kind for "author"/"editor" fields: an ordered list of
// author.Author parsed from the " and "-joined BibTeX convention.
type NameList struct{}

func (NameList) Name() string { return "authorlist" }

func (NameList) Parse(raw string) (any, bool) {
	list := author.ParseList(raw)
	if len(list) == 0 {
		return nil, false
	}
	return list, true
}

func (NameList) ToStr(v any) string {
	list := v.([]author.Author)
	parts := make([]string, len(list))
	for i, a := range list {
		parts[i] = a.String()
	}
	return strings.Join(parts, " and ")
}

// Matches scores order-independent set similarity (spec.md §4.2): each
// author in the first list is greedily matched, by author.Equal, against
// an unused author in the other list (the same bipartite pattern
// listified.Matches uses for keywords), so "Doe, J. and Smith, T." matches
// "Patrick, H. and Doe, J." on their shared "Doe, J." even though it sits
// at a different position in each list. Among the pairs left unmatched, a
// shared last name with incompatible first-name initials still rejects the
// whole comparison outright (spec.md §4.4/§8 scenario 4: a title match is
// not enough to paper over a clashing author).
func (NameList) Matches(a, b any) (score.Score, bool) {
	as, bs := a.([]author.Author), b.([]author.Author)
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
			if author.Equal(av, bv) {
				used[j] = true
				matched++
				break
			}
		}
	}

	for _, av := range as {
		for j, bv := range bs {
			if used[j] {
				continue
			}
			if sameLastDifferentInitials(av, bv) {
				return score.NoMatch, true
			}
		}
	}

	if matched == 0 {
		return score.NoMatch, true
	}
	if matched == len(as) && matched == len(bs) {
		return score.CertainMatch, true
	}
	union := len(as) + len(bs) - matched
	return score.Scale(float64(matched) / float64(union)), true
}

func sameLastDifferentInitials(a, b author.Author) bool {
	return !author.Equal(a, b) && normalize.StrWeak(a.LastName) == normalize.StrWeak(b.LastName)
}

// Combine implements spec.md §4.7's order-preserving union with duplicates
// suppressed: a's authors first, then any of b's authors not already
// matched (by author.Equal) to one of a's — the same novelty-check pattern
// listified.Combine uses for keywords, rather than picking whichever input
// list happens to be longer.
func (NameList) Combine(a, b any) any {
	as, bs := a.([]author.Author), b.([]author.Author)
	out := make([]author.Author, len(as))
	copy(out, as)
	for _, bv := range bs {
		novel := true
		for _, av := range as {
			if author.Equal(av, bv) {
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

var _ Kind = (*StrictString)(nil)
var _ Kind = DOI{}
var _ Kind = NameList{}
