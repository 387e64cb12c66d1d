// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"testing"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/score"
)

func newEntry(t *testing.T, fields map[string]string) *entry.Entry {
	t.Helper()
	e := entry.New("k", "article", entry.Source{})
	for k, v := range fields {
		e.Set(k, v)
	}
	return e
}

func TestMatchDOIShortCircuit(t *testing.T) {
	l := newEntry(t, map[string]string{"doi": "10.1109/tro.2004.829459", "title": "Something else entirely"})
	c := newEntry(t, map[string]string{"doi": "10.1109/tro.2004.829459", "title": "Completely different title text"})
	if got := Match(l, c); !got.Certain() {
		t.Errorf("matching DOIs should short-circuit to certain, got %v", got)
	}

	c2 := newEntry(t, map[string]string{"doi": "10.1000/other", "title": "Something else entirely"})
	if got := Match(l, c2); got != score.NoMatch {
		t.Errorf("mismatched DOIs must reject regardless of title, got %v", got)
	}
}

func TestMatchSelfIsCertain(t *testing.T) {
	e := newEntry(t, map[string]string{
		"title":  "Reactive Path Deformation for Nonholonomic Mobile Robots",
		"author": "Lamiraux, Florent and Bonnafous, Daniel",
		"year":   "2004",
	})
	if got := Match(e, e); !got.Certain() {
		t.Errorf("self-match must be certain, got %v", got)
	}
}

func TestMatchSymmetric(t *testing.T) {
	l := newEntry(t, map[string]string{
		"title":  "Reactive Path Deformation for Nonholonomic Mobile Robots",
		"author": "Lamiraux, Florent",
		"year":   "2004",
	})
	c := newEntry(t, map[string]string{
		"title":  "Reactive path deformation for nonholonomic mobile robots",
		"author": "Lamiraux, F.",
		"year":   "2005",
	})
	if Match(l, c) != Match(c, l) {
		t.Errorf("match score must be symmetric: %v vs %v", Match(l, c), Match(c, l))
	}
}

func TestMatchRejectsOnTitleMismatch(t *testing.T) {
	l := newEntry(t, map[string]string{"title": "Reactive Path Deformation for Nonholonomic Mobile Robots"})
	c := newEntry(t, map[string]string{"title": "An Entirely Unrelated Paper About Gardening Techniques"})
	if got := Match(l, c); got != score.NoMatch {
		t.Errorf("mismatched titles should reject, got %v", got)
	}
}

func TestMatchTitleAndAuthorPromoteToCertain(t *testing.T) {
	l := newEntry(t, map[string]string{
		"title":  "Reactive Path Deformation for Nonholonomic Mobile Robots",
		"author": "Lamiraux, Florent and Bonnafous, Daniel",
	})
	c := newEntry(t, map[string]string{
		"title":  "Reactive Path Deformation for Nonholonomic Mobile Robots",
		"author": "Lamiraux, F. and Bonnafous, D.",
	})
	if got := Match(l, c); !got.Certain() {
		t.Errorf("certain title + accepted author should promote to certain, got %v", got)
	}
}

func TestMatchJunkQueryYieldsNoMatch(t *testing.T) {
	l := newEntry(t, map[string]string{"title": "156231.0649 404 nonexistant", "author": "No one"})
	c := newEntry(t, map[string]string{"title": "Reactive Path Deformation for Nonholonomic Mobile Robots"})
	if got := Match(l, c); got != score.NoMatch {
		t.Errorf("junk query vs unrelated candidate should yield NO_MATCH, got %v", got)
	}
}
