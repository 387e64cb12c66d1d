// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
)

// stubRecord is the decoded shape returned by the stub adapter below.
type stubRecord struct {
	Title string `json:"title"`
	DOI   string `json:"doi"`
}

type stubResponse struct {
	Results []stubRecord `json:"results"`
}

// stubAdapter is a minimal title-only JSON adapter for exercising Runner.
type stubAdapter struct {
	domain string
}

func (s *stubAdapter) Name() string   { return "stub" }
func (s *stubAdapter) Domain() string { return s.domain }
func (s *stubAdapter) Path(e *entry.Entry, shape QueryShape) (string, bool) {
	return "/search", true
}
func (s *stubAdapter) Method() string { return http.MethodGet }
func (s *stubAdapter) Headers() http.Header {
	return http.Header{"Accept": []string{"application/json"}}
}
func (s *stubAdapter) AcceptableStatus(code int) bool { return code == http.StatusOK }
func (s *stubAdapter) SupportsShape(shape QueryShape) bool {
	return shape.Kind == TitleOnly
}
func (s *stubAdapter) Params(e *entry.Entry, shape QueryShape) (map[string][]string, bool) {
	if shape.Kind != TitleOnly || !e.Present("title") {
		return nil, false
	}
	return map[string][]string{"q": {e.Raw("title")}}, true
}
func (s *stubAdapter) Body(e *entry.Entry, shape QueryShape) (io.Reader, string, bool) {
	return nil, "", false
}
func (s *stubAdapter) ExtractRecords(body []byte) ([]Record, error) {
	resp, err := DecodeJSON[stubResponse](body)
	if err != nil {
		return nil, nil
	}
	records := make([]Record, len(resp.Results))
	for i, r := range resp.Results {
		records[i] = r
	}
	return records, nil
}
func (s *stubAdapter) RecordToEntry(r Record) (*entry.Entry, error) {
	rec := r.(stubRecord)
	e := entry.New("c", "article", entry.Source{})
	e.Set("title", rec.Title)
	if rec.DOI != "" {
		e.Set("doi", rec.DOI)
	}
	return e, nil
}

func TestRunnerAcceptsMatchingRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"results":[{"title":"Reactive Path Deformation for Nonholonomic Mobile Robots","doi":"10.1109/tro.2004.829459"}]}`)
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	runner := NewRunner(srv.Client())
	runner.Scheme = u.Scheme

	e := entry.New("k1", "article", entry.Source{})
	e.Set("title", "Reactive Path Deformation for Nonholonomic Mobile Robots")

	outcome, attempts := runner.Run(t.Context(), &stubAdapter{domain: u.Host}, e)
	if outcome.Kind != Match {
		t.Fatalf("expected Match, got %v (attempts=%+v)", outcome.Kind, attempts)
	}
	if outcome.Candidate == nil || outcome.Candidate.Raw("doi") != "10.1109/tro.2004.829459" {
		t.Errorf("unexpected candidate: %+v", outcome.Candidate)
	}
}

func TestRunnerNoRecordsWhenEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":[]}`)
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	runner := NewRunner(srv.Client())
	runner.Scheme = u.Scheme

	e := entry.New("k2", "article", entry.Source{})
	e.Set("title", "156231.0649 404 nonexistant")

	outcome, _ := runner.Run(t.Context(), &stubAdapter{domain: u.Host}, e)
	if outcome.Kind != NoRecords {
		t.Errorf("expected NoRecords, got %v", outcome.Kind)
	}
}

func TestRunnerHTTPErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	runner := NewRunner(srv.Client())
	runner.Scheme = u.Scheme
	runner.MaxRetries = 0 // 404 is not retryable anyway

	e := entry.New("k3", "article", entry.Source{})
	e.Set("title", "Some Title")

	outcome, _ := runner.Run(t.Context(), &stubAdapter{domain: u.Host}, e)
	if outcome.Kind != HTTPError || outcome.StatusCode != http.StatusNotFound {
		t.Errorf("expected HTTPError 404, got %v %d", outcome.Kind, outcome.StatusCode)
	}
}

func TestRunnerNoMatchWhenNoShapeApplies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("adapter has no applicable shape and must never be invoked")
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	runner := NewRunner(srv.Client())
	runner.Scheme = u.Scheme

	// stubAdapter only supports TitleOnly; an entry with no title leaves
	// shapeOrder empty, so the adapter is never queried (spec.md §8
	// scenario 4: missing title).
	e := entry.New("k5", "article", entry.Source{})

	outcome, attempts := runner.Run(t.Context(), &stubAdapter{domain: u.Host}, e)
	if outcome.Kind != NoMatch {
		t.Errorf("expected NoMatch when no shape applies, got %v", outcome.Kind)
	}
	if len(attempts) != 0 {
		t.Errorf("expected no attempts logged, got %+v", attempts)
	}
}

func TestRunnerNoRecordsOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, strings.Repeat("not json", 1))
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	runner := NewRunner(srv.Client())
	runner.Scheme = u.Scheme

	e := entry.New("k4", "article", entry.Source{})
	e.Set("title", "Some Title")

	// stubAdapter.ExtractRecords swallows JSON errors into an empty,
	// nil-error slice per spec.md §4.5, so malformed bodies surface as
	// NoRecords rather than DecodeFail for this adapter.
	outcome, _ := runner.Run(t.Context(), &stubAdapter{domain: u.Host}, e)
	if outcome.Kind != NoRecords {
		t.Errorf("expected NoRecords for malformed body, got %v", outcome.Kind)
	}
}
