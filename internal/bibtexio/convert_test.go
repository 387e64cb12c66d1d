// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtexio

import (
	"testing"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
)

func TestToEntryCarriesFieldsIntoEngineEntry(t *testing.T) {
	be := &Entry{
		Type: "article",
		Key:  "lamiraux2004",
		Fields: []Field{
			{Name: "title", Value: "Reactive Path Deformation for Nonholonomic Mobile Robots"},
			{Name: "year", Value: "2004"},
		},
	}

	e := ToEntry(be, entry.Source{File: "refs.bib", Position: 1})
	if e.ID != "lamiraux2004" || e.Type != "article" {
		t.Errorf("unexpected entry header: %+v", e)
	}
	if e.Raw("title") != be.Fields[0].Value {
		t.Errorf("title = %q", e.Raw("title"))
	}
	if !e.Present("year") {
		t.Error("expected year to be present and parsed")
	}
}

func TestApplyMergedFillsAndRemovesFields(t *testing.T) {
	be := &Entry{
		Type: "article",
		Key:  "k1",
		Fields: []Field{
			{Name: "title", Value: "Some Title"},
			{Name: "note", Value: "drop me"},
		},
	}

	merged := entry.New("k1", "article", entry.Source{})
	merged.Set("title", "Some Title")
	merged.Set("doi", "10.1109/tro.2004.829459")
	// note deliberately absent from merged: simulates --remove-fields note

	ApplyMerged(be, merged)

	if _, ok := be.Get("note"); ok {
		t.Error("expected note field removed after ApplyMerged")
	}
	if doi, ok := be.Get("doi"); !ok || doi != "10.1109/tro.2004.829459" {
		t.Errorf("expected doi filled, got %q (ok=%v)", doi, ok)
	}
	if title, ok := be.Get("title"); !ok || title != "Some Title" {
		t.Errorf("title should be unchanged, got %q (ok=%v)", title, ok)
	}
}
