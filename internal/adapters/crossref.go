// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// Crossref queries the Crossref Works API.
type Crossref struct {
	// Mailto is sent as a query parameter for polite-pool access.
	Mailto string
}

func (a *Crossref) Name() string   { return "crossref" }
func (a *Crossref) Domain() string { return "api.crossref.org" }
func (a *Crossref) Method() string { return http.MethodGet }

func (a *Crossref) Path(e *entry.Entry, shape lookup.QueryShape) (string, bool) {
	return "/works", true
}

func (a *Crossref) Headers() http.Header {
	return http.Header{"Accept": []string{"application/json"}}
}

func (a *Crossref) AcceptableStatus(code int) bool { return code == http.StatusOK }

func (a *Crossref) SupportsShape(shape lookup.QueryShape) bool {
	return shape.Kind == lookup.IDOnly || shape.Kind == lookup.AllAuthorsTitle ||
		shape.Kind == lookup.SingleAuthorTitle || shape.Kind == lookup.TitleOnly
}

func (a *Crossref) Params(e *entry.Entry, shape lookup.QueryShape) (map[string][]string, bool) {
	if shape.Kind == lookup.IDOnly {
		doi, ok := idOnlySupported(e)
		if !ok {
			return nil, false
		}
		return map[string][]string{"filter": {"doi:" + doi}, "rows": {"1"}}, true
	}
	q, ok := queryText(e, shape)
	if !ok {
		return nil, false
	}
	params := map[string][]string{"query.bibliographic": {q}, "rows": {"5"}}
	if a.Mailto != "" {
		params["mailto"] = []string{a.Mailto}
	}
	return params, true
}

func (a *Crossref) Body(e *entry.Entry, shape lookup.QueryShape) (io.Reader, string, bool) {
	return nil, "", false
}

func (a *Crossref) ExtractRecords(body []byte) ([]lookup.Record, error) {
	resp, err := lookup.DecodeJSON[crossrefResponse](body)
	if err != nil {
		return nil, nil
	}
	records := make([]lookup.Record, len(resp.Message.Items))
	for i, item := range resp.Message.Items {
		records[i] = item
	}
	return records, nil
}

func (a *Crossref) RecordToEntry(r lookup.Record) (*entry.Entry, error) {
	item := r.(crossrefItem)
	if len(item.Title) == 0 {
		return nil, fmt.Errorf("crossref: record without title")
	}
	e := entry.New("", entry.Type(firstOr(item.Type, "article")), entry.Source{})
	e.Set("title", item.Title[0])
	if item.DOI != "" {
		e.Set("doi", item.DOI)
	}
	if names := crossrefAuthorNames(item.Author); len(names) > 0 {
		e.Set("author", authorsField(names))
	}
	if y := crossrefYear(item); y != "" {
		e.Set("year", y)
	}
	if len(item.ContainerTitle) > 0 {
		e.Set("journal", item.ContainerTitle[0])
	}
	if item.Publisher != "" {
		e.Set("publisher", item.Publisher)
	}
	if item.Page != "" {
		e.Set("pages", item.Page)
	}
	return e, nil
}

func firstOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func crossrefAuthorNames(authors []crossrefAuthor) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Family == "" {
			continue
		}
		if a.Given != "" {
			names = append(names, a.Given+" "+a.Family)
		} else {
			names = append(names, a.Family)
		}
	}
	return names
}

func crossrefYear(item crossrefItem) string {
	parts := item.Published.DateParts
	if len(parts) > 0 && len(parts[0]) > 0 {
		return strconv.Itoa(parts[0][0])
	}
	return ""
}

// Crossref Works API JSON structures.
type crossrefResponse struct {
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	Items []crossrefItem `json:"items"`
}

type crossrefItem struct {
	DOI            string           `json:"DOI"`
	Title          []string         `json:"title"`
	ContainerTitle []string         `json:"container-title"`
	Author         []crossrefAuthor `json:"author"`
	Publisher      string           `json:"publisher"`
	Page           string           `json:"page"`
	Type           string           `json:"type"`
	Published      crossrefDate     `json:"published"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}
