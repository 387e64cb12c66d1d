// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entry

import "testing"

func TestSetGetPresent(t *testing.T) {
	e := New("king1968", "article", Source{File: "refs.bib", Position: 1})
	e.Set("Title", "Letter from Birmingham Jail")
	e.Set("Year", "1963")
	e.Set("DOI", "not a doi")

	if !e.Present("title") {
		t.Errorf("title should be present")
	}
	if !e.Present("year") {
		t.Errorf("year should be present")
	}
	if e.Present("doi") {
		t.Errorf("invalid doi should not be present")
	}
	if e.Raw("doi") != "not a doi" {
		t.Errorf("invalid field should preserve raw text, got %q", e.Raw("doi"))
	}
	if e.Present("pages") {
		t.Errorf("absent field should not be present")
	}
}

func TestFieldNamesSortedAndCaseInsensitive(t *testing.T) {
	e := New("k", "misc", Source{})
	e.Set("Title", "A Title")
	e.Set("AUTHOR", "Doe, Jane")
	names := e.FieldNames()
	if len(names) != 2 || names[0] != "author" || names[1] != "title" {
		t.Errorf("unexpected field names: %v", names)
	}
}

func TestMissingFields(t *testing.T) {
	e := New("k", "article", Source{})
	e.Set("title", "A Title")
	missing := e.MissingFields([]string{"title", "doi", "year"})
	if len(missing) != 2 || missing[0] != "doi" || missing[1] != "year" {
		t.Errorf("unexpected missing fields: %v", missing)
	}
}

func TestCloneIndependentFieldMap(t *testing.T) {
	e := New("k", "article", Source{})
	e.Set("title", "Original")
	c := e.Clone()
	c.Set("title", "Changed")

	if e.Raw("title") != "Original" {
		t.Errorf("mutating clone should not affect original, got %q", e.Raw("title"))
	}
}

func TestIsRecognized(t *testing.T) {
	if !IsRecognized("DOI") {
		t.Errorf("doi should be recognized (case-insensitive)")
	}
	if IsRecognized("crossref_score") {
		t.Errorf("unknown field should not be recognized")
	}
}
