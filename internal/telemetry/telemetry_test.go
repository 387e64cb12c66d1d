// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package telemetry

import (
	"encoding/json"
	"testing"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/dispatch"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/score"
)

func TestBuildCountsMatchesAndFailures(t *testing.T) {
	e1 := entry.New("k1", "article", entry.Source{})
	cand := entry.NewCandidate(entry.New("c1", "article", entry.Source{}), "crossref", "https://api.crossref.org/works/10.1/x")

	results := []dispatch.EntryResult{
		{
			Entry: e1,
			Attempts: []lookup.Attempt{
				{
					Adapter: "crossref",
					Shape:   lookup.QueryShape{Kind: lookup.IDOnly},
					Outcome: lookup.Outcome{Kind: lookup.Match, Candidate: &cand, Score: score.CertainMatch},
				},
				{
					Adapter: "dblp",
					Shape:   lookup.QueryShape{Kind: lookup.TitleOnly},
					Outcome: lookup.Outcome{Kind: lookup.NetError},
				},
			},
		},
	}

	d := Build(results, map[string][]string{"k1": {"doi", "journal"}})
	if d.Summary.EntriesTotal != 1 || d.Summary.EntriesCompleted != 1 {
		t.Errorf("unexpected entry counts: %+v", d.Summary)
	}
	if d.Summary.AttemptsTotal != 2 || d.Summary.MatchesTotal != 1 || d.Summary.FailuresTotal != 1 {
		t.Errorf("unexpected attempt counts: %+v", d.Summary)
	}
	if d.Entries[0].Results[0].Candidate != cand.SourceURL {
		t.Errorf("candidate source URL not recorded: %+v", d.Entries[0].Results[0])
	}
}

func TestMarshalProducesValidJSON(t *testing.T) {
	d := Build(nil, nil)
	out, err := Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(out, &roundTrip); err != nil {
		t.Fatalf("invalid JSON produced: %v", err)
	}
	if _, ok := roundTrip["summary"]; !ok {
		t.Errorf("expected top-level 'summary' key, got %v", roundTrip)
	}
}
