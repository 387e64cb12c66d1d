// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// OpenAlex queries the OpenAlex Works API.
type OpenAlex struct {
	// Email is sent as the "mailto" parameter for polite-pool access.
	Email string
}

func (a *OpenAlex) Name() string   { return "openalex" }
func (a *OpenAlex) Domain() string { return "api.openalex.org" }
func (a *OpenAlex) Method() string { return http.MethodGet }

func (a *OpenAlex) Path(e *entry.Entry, shape lookup.QueryShape) (string, bool) {
	return "/works", true
}

func (a *OpenAlex) Headers() http.Header {
	return http.Header{"Accept": []string{"application/json"}}
}

func (a *OpenAlex) AcceptableStatus(code int) bool { return code == http.StatusOK }

func (a *OpenAlex) SupportsShape(shape lookup.QueryShape) bool {
	return shape.Kind == lookup.IDOnly || shape.Kind == lookup.AllAuthorsTitle ||
		shape.Kind == lookup.SingleAuthorTitle || shape.Kind == lookup.TitleOnly
}

func (a *OpenAlex) Params(e *entry.Entry, shape lookup.QueryShape) (map[string][]string, bool) {
	params := map[string][]string{}
	if a.Email != "" {
		params["mailto"] = []string{a.Email}
	}
	if shape.Kind == lookup.IDOnly {
		doi, ok := idOnlySupported(e)
		if !ok {
			return nil, false
		}
		params["filter"] = []string{"doi:" + doi}
		return params, true
	}
	q, ok := queryText(e, shape)
	if !ok {
		return nil, false
	}
	params["search"] = []string{q}
	params["per_page"] = []string{"5"}
	return params, true
}

func (a *OpenAlex) Body(e *entry.Entry, shape lookup.QueryShape) (io.Reader, string, bool) {
	return nil, "", false
}

func (a *OpenAlex) ExtractRecords(body []byte) ([]lookup.Record, error) {
	resp, err := lookup.DecodeJSON[openAlexResponse](body)
	if err != nil {
		return nil, nil
	}
	records := make([]lookup.Record, len(resp.Results))
	for i, w := range resp.Results {
		records[i] = w
	}
	return records, nil
}

func (a *OpenAlex) RecordToEntry(r lookup.Record) (*entry.Entry, error) {
	work := r.(openAlexWork)
	if work.Title == "" {
		return nil, fmt.Errorf("openalex: record without title")
	}
	e := entry.New("", "article", entry.Source{})
	e.Set("title", work.Title)
	if work.DOI != "" {
		e.Set("doi", strings.TrimPrefix(work.DOI, "https://doi.org/"))
	}
	if work.PublicationYear > 0 {
		e.Set("year", fmt.Sprintf("%d", work.PublicationYear))
	}
	if names := openAlexAuthorNames(work.Authorships); len(names) > 0 {
		e.Set("author", authorsField(names))
	}
	if abs := reconstructOpenAlexAbstract(work.AbstractInvertedIndex); abs != "" {
		e.Set("abstract", abs)
	}
	return e, nil
}

func openAlexAuthorNames(authorships []openAlexAuthorship) []string {
	names := make([]string, 0, len(authorships))
	for _, a := range authorships {
		if a.Author.DisplayName != "" {
			names = append(names, a.Author.DisplayName)
		}
	}
	return names
}

// reconstructOpenAlexAbstract inverts OpenAlex's word→positions index back
// into plain text, the same trick the teacher's acquire/openalex.go uses.
func reconstructOpenAlexAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}
	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].pos < pairs[j].pos })
	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	PublicationYear       int                  `json:"publication_year"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	DisplayName string `json:"display_name"`
}
