// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"fmt"
	"io"
	"net/http"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// HEP queries the INSPIRE-HEP literature API, the particle-physics
// bibliography used for arXiv/HEP-adjacent entries.
type HEP struct{}

func (a *HEP) Name() string   { return "hep" }
func (a *HEP) Domain() string { return "inspirehep.net" }
func (a *HEP) Method() string { return http.MethodGet }

func (a *HEP) Path(e *entry.Entry, shape lookup.QueryShape) (string, bool) {
	return "/api/literature", true
}

func (a *HEP) Headers() http.Header {
	return http.Header{"Accept": []string{"application/json"}}
}

func (a *HEP) AcceptableStatus(code int) bool { return code == http.StatusOK }

func (a *HEP) SupportsShape(shape lookup.QueryShape) bool {
	return shape.Kind == lookup.IDOnly || shape.Kind == lookup.AllAuthorsTitle ||
		shape.Kind == lookup.SingleAuthorTitle || shape.Kind == lookup.TitleOnly
}

func (a *HEP) Params(e *entry.Entry, shape lookup.QueryShape) (map[string][]string, bool) {
	if shape.Kind == lookup.IDOnly {
		doi, ok := idOnlySupported(e)
		if !ok {
			return nil, false
		}
		return map[string][]string{"q": {"doi " + doi}, "size": {"1"}}, true
	}
	q, ok := queryText(e, shape)
	if !ok {
		return nil, false
	}
	return map[string][]string{"q": {q}, "size": {"5"}}, true
}

func (a *HEP) Body(e *entry.Entry, shape lookup.QueryShape) (io.Reader, string, bool) {
	return nil, "", false
}

func (a *HEP) ExtractRecords(body []byte) ([]lookup.Record, error) {
	resp, err := lookup.DecodeJSON[hepResponse](body)
	if err != nil {
		return nil, nil
	}
	records := make([]lookup.Record, len(resp.Hits.Hits))
	for i, h := range resp.Hits.Hits {
		records[i] = h.Metadata
	}
	return records, nil
}

func (a *HEP) RecordToEntry(r lookup.Record) (*entry.Entry, error) {
	md := r.(hepMetadata)
	title := ""
	if len(md.Titles) > 0 {
		title = md.Titles[0].Title
	}
	if title == "" {
		return nil, fmt.Errorf("hep: record without title")
	}
	e := entry.New("", "article", entry.Source{})
	e.Set("title", title)
	if len(md.DOIs) > 0 {
		e.Set("doi", md.DOIs[0].Value)
	}
	if md.PublicationInfo != nil && md.PublicationInfo.Year > 0 {
		e.Set("year", fmt.Sprintf("%d", md.PublicationInfo.Year))
	}
	if names := hepAuthorNames(md.Authors); len(names) > 0 {
		e.Set("author", authorsField(names))
	}
	return e, nil
}

func hepAuthorNames(authors []hepAuthor) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.FullName != "" {
			names = append(names, a.FullName)
		}
	}
	return names
}

// INSPIRE-HEP literature API JSON structures.
type hepResponse struct {
	Hits hepHits `json:"hits"`
}

type hepHits struct {
	Hits []hepHit `json:"hits"`
}

type hepHit struct {
	Metadata hepMetadata `json:"metadata"`
}

type hepMetadata struct {
	Titles          []hepTitle          `json:"titles"`
	DOIs            []hepDOI            `json:"dois"`
	Authors         []hepAuthor         `json:"authors"`
	PublicationInfo *hepPublicationInfo `json:"publication_info,omitempty"`
}

type hepTitle struct {
	Title string `json:"title"`
}

type hepDOI struct {
	Value string `json:"value"`
}

type hepAuthor struct {
	FullName string `json:"full_name"`
}

type hepPublicationInfo struct {
	Year int `json:"year"`
}
