// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package author parses and compares BibTeX author names. An Author is a
// last name plus an optional first-name string; equality is name-component
// aware so that "M. L. King" and "Martin Luther King" are judged
// compatible (initials match full names in the corresponding position).
package author

import (
	"regexp"
	"strings"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/normalize"
)

// Author is a single parsed name.
type Author struct {
	LastName    string
	FirstNames  string // empty when not present
}

// disambiguator matches a trailing purely-numeric token such as the "0001"
// DBLP appends to disambiguate identically named authors.
var disambiguator = regexp.MustCompile(`^\d+$`)

// ParseList splits a BibTeX author/editor field on " and " and parses each
// name. Empty names are skipped.
func ParseList(raw string) []Author {
	raw = strings.ReplaceAll(raw, "\n", " ")
	parts := strings.Split(raw, " and ")
	authors := make([]Author, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		authors = append(authors, Parse(p))
	}
	return authors
}

// Parse parses a single author name in either "Last, First" or
// "First Last" BibTeX convention, dropping a trailing numeric
// disambiguator token.
func Parse(raw string) Author {
	raw = strings.TrimSpace(raw)

	if idx := strings.Index(raw, ","); idx >= 0 {
		last := strings.TrimSpace(raw[:idx])
		first := strings.TrimSpace(raw[idx+1:])
		return Author{LastName: stripDisambiguator(last), FirstNames: first}
	}

	tokens := strings.Fields(raw)
	tokens = dropTrailingDisambiguator(tokens)
	if len(tokens) == 0 {
		return Author{}
	}
	if len(tokens) == 1 {
		return Author{LastName: tokens[0]}
	}
	return Author{
		LastName:   tokens[len(tokens)-1],
		FirstNames: strings.Join(tokens[:len(tokens)-1], " "),
	}
}

func dropTrailingDisambiguator(tokens []string) []string {
	if len(tokens) > 1 && disambiguator.MatchString(tokens[len(tokens)-1]) {
		return tokens[:len(tokens)-1]
	}
	return tokens
}

func stripDisambiguator(last string) string {
	tokens := strings.Fields(last)
	tokens = dropTrailingDisambiguator(tokens)
	return strings.Join(tokens, " ")
}

// lastNameKey returns the comparison key for a last name: weakly
// normalized (folded, lowercased, diacritics stripped).
func lastNameKey(s string) string {
	return normalize.StrWeak(s)
}

// Equal reports whether a and b name the same person: last names must
// match after weak normalization, and first names must be "compatible" —
// equal token-for-token, where a single-letter token (an initial, with or
// without a trailing period) matches any full token beginning with that
// letter. A missing first name on either side is compatible with anything
// (spec.md §8 scenario 3/5: missing-author promotion, same-last-name
// different-initials partial match).
func Equal(a, b Author) bool {
	if lastNameKey(a.LastName) != lastNameKey(b.LastName) {
		return false
	}
	return firstNamesCompatible(a.FirstNames, b.FirstNames)
}

func firstNamesCompatible(a, b string) bool {
	at := firstNameTokens(a)
	bt := firstNameTokens(b)
	if len(at) == 0 || len(bt) == 0 {
		return true
	}

	n := len(at)
	if len(bt) < n {
		n = len(bt)
	}
	for i := 0; i < n; i++ {
		if !tokenCompatible(at[i], bt[i]) {
			return false
		}
	}
	return true
}

func firstNameTokens(s string) []string {
	s = strings.NewReplacer(".", " ", "-", " ").Replace(s)
	return strings.Fields(normalize.StrWeak(s))
}

// tokenCompatible reports whether two normalized first-name tokens could
// refer to the same person: exact match, or one is a single-letter
// initial matching the other's leading letter.
func tokenCompatible(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) == 1 && len(b) >= 1 && a[0] == b[0] {
		return true
	}
	if len(b) == 1 && len(a) >= 1 && a[0] == b[0] {
		return true
	}
	return false
}

// String renders the author in "Last, First" BibTeX form.
func (a Author) String() string {
	if a.FirstNames == "" {
		return a.LastName
	}
	return a.LastName + ", " + a.FirstNames
}
