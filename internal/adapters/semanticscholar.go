// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"fmt"
	"io"
	"net/http"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

const semanticScholarFields = "title,abstract,authors,externalIds,year"

// SemanticScholar queries the Semantic Scholar Graph API.
type SemanticScholar struct {
	// APIKey is sent as the "x-api-key" header when set.
	APIKey string
}

func (a *SemanticScholar) Name() string   { return "semanticscholar" }
func (a *SemanticScholar) Domain() string { return "api.semanticscholar.org" }
func (a *SemanticScholar) Method() string { return http.MethodGet }

func (a *SemanticScholar) Path(e *entry.Entry, shape lookup.QueryShape) (string, bool) {
	if shape.Kind == lookup.IDOnly {
		doi, ok := idOnlySupported(e)
		if !ok {
			return "", false
		}
		return "/graph/v1/paper/DOI:" + doi, true
	}
	return "/graph/v1/paper/search", true
}

func (a *SemanticScholar) Headers() http.Header {
	h := http.Header{"Accept": []string{"application/json"}}
	if a.APIKey != "" {
		h.Set("x-api-key", a.APIKey)
	}
	return h
}

func (a *SemanticScholar) AcceptableStatus(code int) bool {
	return code == http.StatusOK || code == http.StatusNotFound
}

func (a *SemanticScholar) SupportsShape(shape lookup.QueryShape) bool {
	return shape.Kind == lookup.IDOnly || shape.Kind == lookup.AllAuthorsTitle ||
		shape.Kind == lookup.SingleAuthorTitle || shape.Kind == lookup.TitleOnly
}

func (a *SemanticScholar) Params(e *entry.Entry, shape lookup.QueryShape) (map[string][]string, bool) {
	if shape.Kind == lookup.IDOnly {
		if _, ok := idOnlySupported(e); !ok {
			return nil, false
		}
		return map[string][]string{"fields": {semanticScholarFields}}, true
	}
	q, ok := queryText(e, shape)
	if !ok {
		return nil, false
	}
	return map[string][]string{"query": {q}, "fields": {semanticScholarFields}, "limit": {"5"}}, true
}

func (a *SemanticScholar) Body(e *entry.Entry, shape lookup.QueryShape) (io.Reader, string, bool) {
	return nil, "", false
}

func (a *SemanticScholar) ExtractRecords(body []byte) ([]lookup.Record, error) {
	// A single-paper lookup (id_only) decodes to one object; a search
	// decodes to {"data": [...]}. Try the search shape first.
	if resp, err := lookup.DecodeJSON[semanticSearchResponse](body); err == nil && len(resp.Data) > 0 {
		records := make([]lookup.Record, len(resp.Data))
		for i, p := range resp.Data {
			records[i] = p
		}
		return records, nil
	}
	paper, err := lookup.DecodeJSON[semanticPaper](body)
	if err != nil || paper.Title == "" {
		return nil, nil
	}
	return []lookup.Record{paper}, nil
}

func (a *SemanticScholar) RecordToEntry(r lookup.Record) (*entry.Entry, error) {
	paper := r.(semanticPaper)
	if paper.Title == "" {
		return nil, fmt.Errorf("semanticscholar: record without title")
	}
	e := entry.New("", "article", entry.Source{})
	e.Set("title", paper.Title)
	if paper.ExternalIDs.DOI != "" {
		e.Set("doi", paper.ExternalIDs.DOI)
	}
	if paper.Year > 0 {
		e.Set("year", fmt.Sprintf("%d", paper.Year))
	}
	if paper.Abstract != "" {
		e.Set("abstract", paper.Abstract)
	}
	if names := semanticAuthorNames(paper.Authors); len(names) > 0 {
		e.Set("author", authorsField(names))
	}
	return e, nil
}

func semanticAuthorNames(authors []semanticAuthor) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// Semantic Scholar Graph API JSON structures.
type semanticSearchResponse struct {
	Data []semanticPaper `json:"data"`
}

type semanticPaper struct {
	Title       string              `json:"title"`
	Abstract    string              `json:"abstract"`
	Year        int                 `json:"year"`
	Authors     []semanticAuthor    `json:"authors"`
	ExternalIDs semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	Name string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
