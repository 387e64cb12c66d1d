// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// Unpaywall queries the Unpaywall API, which is DOI-keyed only: there is
// no free-text search, so every shape but IDOnly is unsupported.
type Unpaywall struct {
	// Email is mandatory for Unpaywall and sent as the "email" parameter.
	Email string
}

func (a *Unpaywall) Name() string   { return "unpaywall" }
func (a *Unpaywall) Domain() string { return "api.unpaywall.org" }
func (a *Unpaywall) Method() string { return http.MethodGet }

func (a *Unpaywall) Path(e *entry.Entry, shape lookup.QueryShape) (string, bool) {
	doi, ok := idOnlySupported(e)
	if !ok {
		return "", false
	}
	return "/v2/" + url.PathEscape(doi), true
}

func (a *Unpaywall) Headers() http.Header {
	return http.Header{"Accept": []string{"application/json"}}
}

func (a *Unpaywall) AcceptableStatus(code int) bool {
	return code == http.StatusOK || code == http.StatusNotFound
}

func (a *Unpaywall) SupportsShape(shape lookup.QueryShape) bool {
	return shape.Kind == lookup.IDOnly
}

func (a *Unpaywall) Params(e *entry.Entry, shape lookup.QueryShape) (map[string][]string, bool) {
	if _, ok := idOnlySupported(e); !ok {
		return nil, false
	}
	email := a.Email
	if email == "" {
		email = "unpaywall@example.org"
	}
	return map[string][]string{"email": {email}}, true
}

func (a *Unpaywall) Body(e *entry.Entry, shape lookup.QueryShape) (io.Reader, string, bool) {
	return nil, "", false
}

func (a *Unpaywall) ExtractRecords(body []byte) ([]lookup.Record, error) {
	rec, err := lookup.DecodeJSON[unpaywallRecord](body)
	if err != nil {
		return nil, nil
	}
	if rec.DOI == "" {
		return nil, nil
	}
	return []lookup.Record{rec}, nil
}

func (a *Unpaywall) RecordToEntry(r lookup.Record) (*entry.Entry, error) {
	rec := r.(unpaywallRecord)
	if rec.Title == "" {
		return nil, fmt.Errorf("unpaywall: record without title")
	}
	e := entry.New("", "article", entry.Source{})
	e.Set("title", rec.Title)
	e.Set("doi", rec.DOI)
	if rec.Year > 0 {
		e.Set("year", fmt.Sprintf("%d", rec.Year))
	}
	if rec.JournalName != "" {
		e.Set("journal", rec.JournalName)
	}
	if names := unpaywallAuthorNames(rec.ZAuthors); len(names) > 0 {
		e.Set("author", authorsField(names))
	}
	if loc := rec.BestOALocation; loc != nil && loc.URLForPDF != "" {
		e.Set("url", loc.URLForPDF)
	}
	return e, nil
}

func unpaywallAuthorNames(authors []unpaywallAuthor) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Given == "" && a.Family == "" {
			continue
		}
		names = append(names, a.Given+" "+a.Family)
	}
	return names
}

// Unpaywall API JSON structures.
type unpaywallRecord struct {
	DOI            string              `json:"doi"`
	Title          string              `json:"title"`
	Year           int                 `json:"year"`
	JournalName    string              `json:"journal_name"`
	ZAuthors       []unpaywallAuthor   `json:"z_authors"`
	BestOALocation *unpaywallOALoc     `json:"best_oa_location"`
}

type unpaywallAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type unpaywallOALoc struct {
	URLForPDF string `json:"url_for_pdf"`
}
