// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"fmt"
	"io"
	"net/http"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// Researchr queries the Researchr conference-publication search API, a
// thin JSON search lookup with no identifier-keyed shape.
type Researchr struct{}

func (a *Researchr) Name() string   { return "researchr" }
func (a *Researchr) Domain() string { return "researchr.org" }
func (a *Researchr) Method() string { return http.MethodGet }

func (a *Researchr) Path(e *entry.Entry, shape lookup.QueryShape) (string, bool) {
	return "/api/search/publication", true
}

func (a *Researchr) Headers() http.Header {
	return http.Header{"Accept": []string{"application/json"}}
}

func (a *Researchr) AcceptableStatus(code int) bool { return code == http.StatusOK }

func (a *Researchr) SupportsShape(shape lookup.QueryShape) bool {
	return shape.Kind == lookup.AllAuthorsTitle || shape.Kind == lookup.SingleAuthorTitle ||
		shape.Kind == lookup.TitleOnly
}

func (a *Researchr) Params(e *entry.Entry, shape lookup.QueryShape) (map[string][]string, bool) {
	q, ok := queryText(e, shape)
	if !ok {
		return nil, false
	}
	return map[string][]string{"q": {q}, "limit": {"5"}}, true
}

func (a *Researchr) Body(e *entry.Entry, shape lookup.QueryShape) (io.Reader, string, bool) {
	return nil, "", false
}

func (a *Researchr) ExtractRecords(body []byte) ([]lookup.Record, error) {
	resp, err := lookup.DecodeJSON[researchrResponse](body)
	if err != nil {
		return nil, nil
	}
	records := make([]lookup.Record, len(resp.Publications))
	for i, p := range resp.Publications {
		records[i] = p
	}
	return records, nil
}

func (a *Researchr) RecordToEntry(r lookup.Record) (*entry.Entry, error) {
	pub := r.(researchrPublication)
	if pub.Title == "" {
		return nil, fmt.Errorf("researchr: record without title")
	}
	e := entry.New("", entry.Type(firstOr(pub.Type, "inproceedings")), entry.Source{})
	e.Set("title", pub.Title)
	if pub.DOI != "" {
		e.Set("doi", pub.DOI)
	}
	if pub.Year > 0 {
		e.Set("year", fmt.Sprintf("%d", pub.Year))
	}
	if pub.Event != "" {
		e.Set("booktitle", pub.Event)
	}
	if names := pub.Authors; len(names) > 0 {
		e.Set("author", authorsField(names))
	}
	return e, nil
}

// Researchr search API JSON structures.
type researchrResponse struct {
	Publications []researchrPublication `json:"publications"`
}

type researchrPublication struct {
	Title   string   `json:"title"`
	DOI     string   `json:"doi"`
	Year    int      `json:"year"`
	Event   string   `json:"event"`
	Type    string   `json:"type"`
	Authors []string `json:"authors"`
}
