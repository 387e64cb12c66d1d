// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"io"
	"net/http"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
)

// Record is one raw item extracted from a decoded response body, passed
// opaquely from ExtractRecords to RecordToEntry. Concrete adapters assert
// it back to their own decoded element type.
type Record any

// Adapter is the contract every concrete bibliographic API integration
// implements (spec.md §4.5's "Adapter responsibilities"). The lookup
// framework (MultiAttempt + Search) drives an Adapter; adapters never call
// each other or the framework directly.
type Adapter interface {
	// Name is the adapter's stable identifier, used in telemetry and CLI
	// --only-query/--dont-query selection.
	Name() string

	// Domain is the request host, used by the dispatcher for per-host
	// admission and rate limiting.
	Domain() string

	// Path builds the request path for e under shape (e.g. Unpaywall
	// embeds the DOI in the path rather than the query string). ok=false
	// means this shape yields nothing usable for this entry.
	Path(e *entry.Entry, shape QueryShape) (path string, ok bool)

	// Method is the HTTP method; "" defaults to GET.
	Method() string

	// Headers returns the fixed headers this adapter sends (Accept, plus
	// any auth header), in addition to the mandatory User-Agent the
	// framework sets itself.
	Headers() http.Header

	// AcceptableStatus reports whether code should be treated as a
	// response to decode, rather than an HTTP error. Some APIs (Unpaywall,
	// Semantic Scholar) answer 404 for an unknown identifier.
	AcceptableStatus(code int) bool

	// SupportsShape reports whether this adapter can build a query for
	// shape at all (e.g. only DOI-keyed adapters support IDOnly).
	SupportsShape(shape QueryShape) bool

	// Params builds the URL query parameters for e under shape. ok=false
	// means this shape, though generically supported by the adapter,
	// yields nothing usable for this particular entry (e.g. no authors).
	Params(e *entry.Entry, shape QueryShape) (params map[string][]string, ok bool)

	// Body returns an optional request body for POST adapters; ok=false
	// means no body (GET-style query-string adapters).
	Body(e *entry.Entry, shape QueryShape) (body io.Reader, contentType string, ok bool)

	// ExtractRecords decodes a response body into a sequence of raw
	// records. JSON/XML adapters decode here and return an empty, nil-error
	// slice on a body that doesn't match their expected shape (spec.md
	// §4.5: "on decode failure, yield empty sequence — no retries").
	ExtractRecords(body []byte) ([]Record, error)

	// RecordToEntry converts one raw record into a Candidate entry.
	RecordToEntry(r Record) (*entry.Entry, error)
}

// Priority is the adapter-priority table used for deterministic merge
// ordering and tie-breaking (spec.md §4.4, §4.6, §4.7). Lower index is
// higher priority. Built once per run; the CLI uses the adapters.Names()
// order.
type Priority []string

// Index returns name's position in p, or len(p) (lowest priority) if
// name is not listed.
func (p Priority) Index(name string) int {
	for i, n := range p {
		if n == name {
			return i
		}
	}
	return len(p)
}
