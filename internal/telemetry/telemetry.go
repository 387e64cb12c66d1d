// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package telemetry builds the optional JSON dump of a run's decisions
// (spec.md §6): one record per entry with every lookup attempt, plus an
// aggregate summary, for the --dump-data CLI flag.
package telemetry

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/dispatch"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// AttemptRecord is one (adapter, query_shape, outcome) tuple, serialized
// for a single entry's results list.
type AttemptRecord struct {
	Adapter   string `json:"adapter"`
	Shape     string `json:"query_shape"`
	Outcome   string `json:"outcome"`
	Score     int    `json:"score,omitempty"`
	Candidate string `json:"candidate,omitempty"` // Candidate.SourceURL, when matched
}

// EntryRecord is one entry's full lookup history plus which fields the
// merge ultimately filled.
type EntryRecord struct {
	Key     string          `json:"key"`
	Results []AttemptRecord `json:"results"`
	Filled  []string        `json:"filled,omitempty"`
}

// Summary aggregates counts across the whole run (BatchResult-style:
// a small set of totals plus a Total()/HasFailures() pair of helpers).
type Summary struct {
	EntriesTotal     int `json:"entries_total"`
	EntriesCompleted int `json:"entries_completed"` // at least one field filled
	AttemptsTotal    int `json:"attempts_total"`
	MatchesTotal     int `json:"matches_total"`
	FailuresTotal    int `json:"failures_total"` // net_error, timeout, http_error, decode_fail
}

// Total returns the total number of entries the summary covers.
func (s Summary) Total() int { return s.EntriesTotal }

// HasFailures reports whether any adapter call failed outright (as
// opposed to returning no_match or no_records, which are not failures).
func (s Summary) HasFailures() bool { return s.FailuresTotal > 0 }

// Dump is the top-level --dump-data JSON document (spec.md §6's schema
// `{entries: [...], summary: {...}}`).
type Dump struct {
	Entries []EntryRecord `json:"entries"`
	Summary Summary       `json:"summary"`
}

// Build assembles a Dump from one dispatch.EntryResult per processed
// entry, in the same order they were dispatched.
func Build(results []dispatch.EntryResult, filledByKey map[string][]string) Dump {
	var d Dump
	d.Summary.EntriesTotal = len(results)

	for _, r := range results {
		rec := EntryRecord{Key: r.Entry.ID, Filled: filledByKey[r.Entry.ID]}
		if len(rec.Filled) > 0 {
			d.Summary.EntriesCompleted++
		}
		for _, a := range r.Attempts {
			d.Summary.AttemptsTotal++
			ar := AttemptRecord{
				Adapter: a.Adapter,
				Shape:   a.Shape.Kind.String(),
				Outcome: a.Outcome.Kind.String(),
			}
			switch a.Outcome.Kind {
			case lookup.Match:
				d.Summary.MatchesTotal++
				ar.Score = int(a.Outcome.Score)
				if a.Outcome.Candidate != nil {
					ar.Candidate = a.Outcome.Candidate.SourceURL
				}
			case lookup.NetError, lookup.Timeout, lookup.HTTPError, lookup.DecodeFail:
				d.Summary.FailuresTotal++
			}
			rec.Results = append(rec.Results, ar)
		}
		d.Entries = append(d.Entries, rec)
	}
	return d
}

// Marshal renders d as indented JSON for writing to the --dump-data path.
func Marshal(d Dump) ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling telemetry dump: %w", err)
	}
	return out, nil
}
