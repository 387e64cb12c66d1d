// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapters

import (
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/config"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// Names is every adapter this binary knows about, in a fixed canonical
// order used as the default adapter-priority table when the user hasn't
// configured one explicitly.
func Names() []string {
	return []string{
		"crossref", "dblp", "arxiv", "unpaywall",
		"researchr", "openalex", "semanticscholar", "hep",
	}
}

// All builds one instance of every adapter this binary knows about,
// wiring the contact emails and API key from keys (spec.md §6's mandatory
// contact info per polite-pool API), in the same order as Names.
func All(keys config.AdapterKeys) []lookup.Adapter {
	return []lookup.Adapter{
		&Crossref{Mailto: keys.CrossrefMailto},
		&DBLP{},
		&ArXiv{},
		&Unpaywall{Email: keys.UnpaywallEmail},
		&Researchr{},
		&OpenAlex{Email: keys.OpenAlexEmail},
		&SemanticScholar{APIKey: keys.SemanticScholarAPIKey},
		&HEP{},
	}
}
