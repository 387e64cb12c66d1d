// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// ArXiv queries the arXiv Atom export API, an XML search lookup.
type ArXiv struct{}

func (a *ArXiv) Name() string   { return "arxiv" }
func (a *ArXiv) Domain() string { return "export.arxiv.org" }
func (a *ArXiv) Method() string { return http.MethodGet }

func (a *ArXiv) Path(e *entry.Entry, shape lookup.QueryShape) (string, bool) {
	return "/api/query", true
}

func (a *ArXiv) Headers() http.Header {
	return http.Header{"Accept": []string{"application/atom+xml"}}
}

func (a *ArXiv) AcceptableStatus(code int) bool { return code == http.StatusOK }

func (a *ArXiv) SupportsShape(shape lookup.QueryShape) bool {
	return shape.Kind == lookup.IDOnly || shape.Kind == lookup.AllAuthorsTitle ||
		shape.Kind == lookup.SingleAuthorTitle || shape.Kind == lookup.TitleOnly
}

func (a *ArXiv) Params(e *entry.Entry, shape lookup.QueryShape) (map[string][]string, bool) {
	if shape.Kind == lookup.IDOnly {
		id, ok := arxivID(e)
		if !ok {
			return nil, false
		}
		return map[string][]string{"id_list": {id}}, true
	}
	q, ok := queryText(e, shape)
	if !ok {
		return nil, false
	}
	return map[string][]string{"search_query": {"all:" + q}, "max_results": {"5"}}, true
}

func (a *ArXiv) Body(e *entry.Entry, shape lookup.QueryShape) (io.Reader, string, bool) {
	return nil, "", false
}

// arxivID extracts an arXiv identifier from the entry's URL/EE field, when
// present, since arXiv isn't DOI-keyed the way most adapters are.
func arxivID(e *entry.Entry) (string, bool) {
	for _, field := range []string{"eprint", "url", "ee"} {
		if m := arxivIDPattern.FindStringSubmatch(e.Raw(field)); m != nil {
			return m[1], true
		}
	}
	return "", false
}

var arxivIDPattern = regexp.MustCompile(`(\d{4}\.\d{4,5})(v\d+)?`)

func (a *ArXiv) ExtractRecords(body []byte) ([]lookup.Record, error) {
	feed, err := lookup.DecodeXML[arxivFeed](body)
	if err != nil {
		return nil, nil
	}
	records := make([]lookup.Record, len(feed.Entries))
	for i, e := range feed.Entries {
		records[i] = e
	}
	return records, nil
}

func (a *ArXiv) RecordToEntry(r lookup.Record) (*entry.Entry, error) {
	item := r.(arxivEntry)
	title := strings.Join(strings.Fields(item.Title), " ")
	if title == "" {
		return nil, fmt.Errorf("arxiv: record without title")
	}
	e := entry.New("", "article", entry.Source{})
	e.Set("title", title)
	if m := arxivIDPattern.FindStringSubmatch(item.ID); m != nil {
		e.Set("eprint", m[1])
		e.Set("url", item.ID)
	}
	if item.DOI != "" {
		e.Set("doi", item.DOI)
	}
	if names := arxivAuthorNames(item.Authors); len(names) > 0 {
		e.Set("author", authorsField(names))
	}
	if len(item.Published) >= 4 {
		e.Set("year", item.Published[:4])
	}
	if item.Summary != "" {
		e.Set("abstract", strings.Join(strings.Fields(item.Summary), " "))
	}
	return e, nil
}

func arxivAuthorNames(authors []arxivAuthor) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
	DOI       string        `xml:"doi"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
