// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"testing"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
)

func candidate(id, adapter string, fields map[string]string) entry.Candidate {
	e := entry.New(id, "article", entry.Source{})
	for k, v := range fields {
		e.Set(k, v)
	}
	return entry.NewCandidate(e, adapter, "https://example.test/"+adapter)
}

func TestMergeFillsAbsentScalarFromHighestPriorityCandidate(t *testing.T) {
	o := entry.New("k1", "article", entry.Source{})
	o.Set("title", "Reactive Path Deformation for Nonholonomic Mobile Robots")

	c1 := candidate("c1", "crossref", map[string]string{"doi": "10.1109/tro.2004.829459"})
	c2 := candidate("c2", "openalex", map[string]string{"doi": "10.1109/other"})

	m := Merge(o, []entry.Candidate{c1, c2}, Policy{})
	if m.Raw("doi") != "10.1109/tro.2004.829459" {
		t.Errorf("doi = %q, want the first (highest priority) candidate's", m.Raw("doi"))
	}
}

func TestMergeNeverOverwritesPresentScalarWithoutForce(t *testing.T) {
	o := entry.New("k1", "article", entry.Source{})
	o.Set("journal", "User's Journal")

	c := candidate("c1", "crossref", map[string]string{"journal": "Crossref Journal"})

	m := Merge(o, []entry.Candidate{c}, Policy{})
	if m.Raw("journal") != "User's Journal" {
		t.Errorf("journal = %q, want original preserved", m.Raw("journal"))
	}
}

func TestMergeForceOverwritesScalar(t *testing.T) {
	o := entry.New("k1", "article", entry.Source{})
	o.Set("journal", "User's Journal")

	c := candidate("c1", "crossref", map[string]string{"journal": "Crossref Journal"})

	m := Merge(o, []entry.Candidate{c}, Policy{Force: true})
	if m.Raw("journal") != "Crossref Journal" {
		t.Errorf("journal = %q, want candidate value after --force", m.Raw("journal"))
	}
}

func TestMergeListUnion(t *testing.T) {
	o := entry.New("k1", "article", entry.Source{})
	o.Set("keywords", "a,b,c")

	c := candidate("c1", "crossref", map[string]string{"keywords": "b,d"})

	m := Merge(o, []entry.Candidate{c}, Policy{})
	if got := m.Raw("keywords"); got != "a, b, c, d" {
		t.Errorf("keywords = %q, want order-preserving union a, b, c, d", got)
	}
}

func TestMergeAuthorListUnionKeepsOriginalAuthors(t *testing.T) {
	o := entry.New("k1", "article", entry.Source{})
	o.Set("author", "Doe, J. and Smith, T.")

	c := candidate("c1", "crossref", map[string]string{"author": "Patrick, H. and Doe, J."})

	m := Merge(o, []entry.Candidate{c}, Policy{})
	if got := m.Raw("author"); got != "Doe, J. and Smith, T. and Patrick, H." {
		t.Errorf("author = %q, want original authors kept plus candidate's novel one", got)
	}
}

func TestMergeDontCompleteLeavesFieldUntouched(t *testing.T) {
	o := entry.New("k1", "article", entry.Source{})
	c := candidate("c1", "crossref", map[string]string{"abstract": "Some abstract."})

	m := Merge(o, []entry.Candidate{c}, Policy{DontComplete: []string{"abstract"}})
	if m.Present("abstract") {
		t.Errorf("abstract should remain absent, got %q", m.Raw("abstract"))
	}
}

func TestMergeRemoveFieldsStripsAfterMerge(t *testing.T) {
	o := entry.New("k1", "article", entry.Source{})
	c := candidate("c1", "crossref", map[string]string{"abstract": "Some abstract."})

	m := Merge(o, []entry.Candidate{c}, Policy{RemoveFields: []string{"abstract"}})
	if m.Present("abstract") {
		t.Errorf("abstract should have been removed post-merge")
	}
	for _, n := range m.FieldNames() {
		if n == "abstract" {
			t.Errorf("abstract should not appear in FieldNames after removal")
		}
	}
}

func TestMergeOpaqueFieldsPreservedVerbatim(t *testing.T) {
	o := entry.New("k1", "misc", entry.Source{})
	o.Set("customfield", "untouched value")

	c := candidate("c1", "crossref", map[string]string{"customfield": "candidate value"})

	m := Merge(o, []entry.Candidate{c}, Policy{})
	if m.Raw("customfield") != "untouched value" {
		t.Errorf("customfield = %q, opaque fields must never be merged", m.Raw("customfield"))
	}
}

func TestMergeIdempotent(t *testing.T) {
	o := entry.New("k1", "article", entry.Source{})
	o.Set("title", "Reactive Path Deformation for Nonholonomic Mobile Robots")

	c := candidate("c1", "crossref", map[string]string{
		"doi":      "10.1109/tro.2004.829459",
		"keywords": "robotics,control",
	})

	once := Merge(o, []entry.Candidate{c}, Policy{})
	reCandidate := entry.NewCandidate(once, "crossref", "https://example.test/crossref")
	twice := Merge(o, []entry.Candidate{reCandidate}, Policy{})

	if once.Raw("doi") != twice.Raw("doi") || once.Raw("keywords") != twice.Raw("keywords") {
		t.Errorf("merge not idempotent: once=%+v twice=%+v", once, twice)
	}
}
