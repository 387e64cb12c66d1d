// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package adapters provides the concrete bibliographic API integrations
// (spec.md §4.6): thin glue over the internal/lookup framework for
// Crossref, DBLP, arXiv, Unpaywall, Researchr, OpenAlex, Semantic Scholar,
// and INSPIRE-HEP. None of this package is part of the framework's
// contract surface; each adapter only supplies what lookup.Adapter asks
// for.
package adapters

import (
	"strings"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/author"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// queryText builds the free-text search string for shape against e:
// every author's last name plus the title for AllAuthorsTitle, one
// author's last name plus the title for SingleAuthorTitle, or the title
// alone for TitleOnly. Returns ok=false when the shape can't be filled.
func queryText(e *entry.Entry, shape lookup.QueryShape) (string, bool) {
	title := e.Raw("title")
	switch shape.Kind {
	case lookup.TitleOnly:
		if title == "" {
			return "", false
		}
		return title, true
	case lookup.AllAuthorsTitle:
		if title == "" {
			return "", false
		}
		names := authorLastNames(e)
		if len(names) == 0 {
			return "", false
		}
		return strings.Join(names, " ") + " " + title, true
	case lookup.SingleAuthorTitle:
		if title == "" {
			return "", false
		}
		names := authorLastNames(e)
		if shape.AuthorIndex < 0 || shape.AuthorIndex >= len(names) {
			return "", false
		}
		return names[shape.AuthorIndex] + " " + title, true
	default:
		return "", false
	}
}

func authorLastNames(e *entry.Entry) []string {
	f := e.Get("author")
	if !f.Present() {
		return nil
	}
	list, ok := f.Value.([]author.Author)
	if !ok {
		return nil
	}
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = a.LastName
	}
	return names
}

// idOnlySupported reports whether e carries a DOI, the identifier every
// adapter in this package except ArXiv keys id_only queries on (ArXiv uses
// arxivID).
func idOnlySupported(e *entry.Entry) (string, bool) {
	f := e.Get("doi")
	if !f.Present() {
		return "", false
	}
	return f.Normalized(), true
}

// authorsField joins authors with " and " for writing into a Candidate.
func authorsField(names []string) string {
	return strings.Join(names, " and ")
}
