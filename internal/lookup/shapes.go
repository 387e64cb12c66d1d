// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup implements the layered HTTP lookup framework (spec.md
// §4.5): a Base HTTPS request contract every adapter supplies, a
// MultiAttempt layer iterating query shapes in a fixed order, and a Search
// layer scoring and selecting the best candidate record from a response.
package lookup

// ShapeKind names the broad kind of query a shape represents.
type ShapeKind int

const (
	// IDOnly queries by an identifier field (DOI, arXiv id, …). Tried
	// first, and only, when the adapter supports it and the entry has the
	// identifier.
	IDOnly ShapeKind = iota
	// AllAuthorsTitle queries with every known author plus the title.
	AllAuthorsTitle
	// SingleAuthorTitle queries with one author (AuthorIndex) plus the
	// title.
	SingleAuthorTitle
	// TitleOnly queries with the title alone.
	TitleOnly
)

func (k ShapeKind) String() string {
	switch k {
	case IDOnly:
		return "id_only"
	case AllAuthorsTitle:
		return "authors+title"
	case SingleAuthorTitle:
		return "one_author+title"
	case TitleOnly:
		return "title_only"
	default:
		return "unknown"
	}
}

// QueryShape is one concrete attempt shape. AuthorIndex only matters when
// Kind is SingleAuthorTitle, selecting which author of the entry's list to
// query with.
type QueryShape struct {
	Kind        ShapeKind
	AuthorIndex int
}

func (s QueryShape) String() string {
	if s.Kind == SingleAuthorTitle {
		return s.Kind.String()
	}
	return s.Kind.String()
}

// DefaultMaxSearchQueries bounds the total number of attempts a
// multi-attempt lookup makes for one entry, across all shapes.
const DefaultMaxSearchQueries = 10
