// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"path/filepath"
	"testing"
)

func TestEnabledAdaptersOnlyQueryWins(t *testing.T) {
	p := Policy{OnlyQuery: []string{"crossref", "dblp"}, DontQuery: []string{"dblp"}}
	got := p.EnabledAdapters([]string{"crossref", "dblp", "arxiv"})
	if len(got) != 2 || got[0] != "crossref" || got[1] != "dblp" {
		t.Errorf("unexpected adapters: %v", got)
	}
}

func TestEnabledAdaptersDontQueryExcludes(t *testing.T) {
	p := Policy{DontQuery: []string{"arxiv"}}
	got := p.EnabledAdapters([]string{"crossref", "dblp", "arxiv"})
	if len(got) != 2 || got[0] != "crossref" || got[1] != "dblp" {
		t.Errorf("unexpected adapters: %v", got)
	}
}

func TestDontCompleteFieldsDerivedFromOnlyComplete(t *testing.T) {
	p := Policy{OnlyComplete: []string{"doi", "title"}}
	got := p.DontCompleteFields([]string{"doi", "title", "year", "abstract"})
	want := map[string]bool{"year": true, "abstract": true}
	if len(got) != 2 {
		t.Fatalf("expected 2 fields excluded, got %v", got)
	}
	for _, f := range got {
		if !want[f] {
			t.Errorf("unexpected excluded field %q", f)
		}
	}
}

func TestDumpAndLoadRoundTrip(t *testing.T) {
	cfg := Default("0.1.0", "https://example.test/contact")
	cfg.Policy.RemoveFields = []string{"note"}
	cfg.Adapters.CrossrefMailto = "team@example.test"

	dir := t.TempDir()
	path := filepath.Join(dir, "bibcomplete.yaml")
	if err := Write(path, cfg); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.HTTP.UserAgent != cfg.HTTP.UserAgent {
		t.Errorf("UserAgent = %q, want %q", loaded.HTTP.UserAgent, cfg.HTTP.UserAgent)
	}
	if loaded.Adapters.CrossrefMailto != "team@example.test" {
		t.Errorf("CrossrefMailto = %q", loaded.Adapters.CrossrefMailto)
	}
	if len(loaded.Policy.RemoveFields) != 1 || loaded.Policy.RemoveFields[0] != "note" {
		t.Errorf("RemoveFields = %v", loaded.Policy.RemoveFields)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Error("expected error loading nonexistent config file")
	}
}
