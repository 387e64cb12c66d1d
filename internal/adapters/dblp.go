// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"fmt"
	"io"
	"net/http"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// DBLP queries the DBLP computer-science bibliography search API. DBLP has
// no identifier lookup, only free-text search.
type DBLP struct{}

func (a *DBLP) Name() string   { return "dblp" }
func (a *DBLP) Domain() string { return "dblp.org" }
func (a *DBLP) Method() string { return http.MethodGet }

func (a *DBLP) Path(e *entry.Entry, shape lookup.QueryShape) (string, bool) {
	return "/search/publ/api", true
}

func (a *DBLP) Headers() http.Header {
	return http.Header{"Accept": []string{"application/json"}}
}

// AcceptableStatus: DBLP answers an empty-result search with 200, not 404,
// but is included here because some deployments proxy it behind a 404 for
// rate-limited clients.
func (a *DBLP) AcceptableStatus(code int) bool {
	return code == http.StatusOK || code == http.StatusNotFound
}

func (a *DBLP) SupportsShape(shape lookup.QueryShape) bool {
	return shape.Kind == lookup.AllAuthorsTitle || shape.Kind == lookup.SingleAuthorTitle ||
		shape.Kind == lookup.TitleOnly
}

func (a *DBLP) Params(e *entry.Entry, shape lookup.QueryShape) (map[string][]string, bool) {
	q, ok := queryText(e, shape)
	if !ok {
		return nil, false
	}
	return map[string][]string{"q": {q}, "format": {"json"}, "h": {"5"}}, true
}

func (a *DBLP) Body(e *entry.Entry, shape lookup.QueryShape) (io.Reader, string, bool) {
	return nil, "", false
}

func (a *DBLP) ExtractRecords(body []byte) ([]lookup.Record, error) {
	resp, err := lookup.DecodeJSON[dblpResponse](body)
	if err != nil {
		return nil, nil
	}
	hits := resp.Result.Hits.Hit
	records := make([]lookup.Record, len(hits))
	for i, h := range hits {
		records[i] = h.Info
	}
	return records, nil
}

func (a *DBLP) RecordToEntry(r lookup.Record) (*entry.Entry, error) {
	info := r.(dblpInfo)
	if info.Title == "" {
		return nil, fmt.Errorf("dblp: record without title")
	}
	e := entry.New("", entry.Type(dblpType(info.Type)), entry.Source{})
	e.Set("title", info.Title)
	if info.DOI != "" {
		e.Set("doi", info.DOI)
	}
	if info.Year != "" {
		e.Set("year", info.Year)
	}
	if info.Venue != "" {
		e.Set("journal", info.Venue)
	}
	if names := dblpAuthorNames(info.Authors); len(names) > 0 {
		e.Set("author", authorsField(names))
	}
	if info.Pages != "" {
		e.Set("pages", info.Pages)
	}
	return e, nil
}

func dblpType(t string) string {
	switch t {
	case "Conference and Workshop Papers":
		return "inproceedings"
	case "Journal Articles":
		return "article"
	case "Books and Theses":
		return "book"
	default:
		return "misc"
	}
}

func dblpAuthorNames(authors dblpAuthors) []string {
	switch v := authors.Author.(type) {
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				if text, ok := m["text"].(string); ok {
					names = append(names, text)
				}
			}
		}
		return names
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			return []string{text}
		}
	}
	return nil
}

// DBLP search API JSON structures. The "authors.author" field is
// polymorphic (object for one author, array for several), hence `any`.
type dblpResponse struct {
	Result dblpResult `json:"result"`
}

type dblpResult struct {
	Hits dblpHits `json:"hits"`
}

type dblpHits struct {
	Hit []dblpHit `json:"hit"`
}

type dblpHit struct {
	Info dblpInfo `json:"info"`
}

type dblpInfo struct {
	Title   string     `json:"title"`
	Venue   string     `json:"venue"`
	Year    string     `json:"year"`
	Type    string     `json:"type"`
	DOI     string     `json:"doi"`
	Pages   string     `json:"pages"`
	Authors dblpAuthors `json:"authors"`
}

type dblpAuthors struct {
	Author any `json:"author"`
}
