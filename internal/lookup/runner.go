// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/author"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/httputil"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/match"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/score"
)

// Runner drives the MultiAttempt and Search layers over a Base request for
// one Adapter and one Entry: it builds the ordered shape sequence, issues
// each request, extracts and scores candidate records, and stops at the
// first accepted match.
type Runner struct {
	Client            *http.Client
	Scheme            string // defaults to "https"
	MaxSearchQueries  int    // defaults to DefaultMaxSearchQueries
	MaxRetries        int    // forwarded to httputil.DoWithRetry
	ConnectionTimeout time.Duration // bounds one request; defaults to DefaultConnectionTimeout seconds

	// UserAgent is sent on every request (spec.md §6's mandatory
	// "bibtex-autocomplete/<version> (<contact-url>)" header); defaults to
	// DefaultUserAgent when empty.
	UserAgent string

	// AcceptThreshold overrides the matcher's default accept floor in
	// tests; zero means score.AcceptThreshold.
	AcceptThreshold score.Score
}

// NewRunner builds a Runner with spec.md §4.5/§4.6 defaults.
func NewRunner(client *http.Client) *Runner {
	return &Runner{Client: client, Scheme: "https", MaxSearchQueries: DefaultMaxSearchQueries}
}

// Run executes the multi-attempt lookup for adapter a against entry e,
// stopping at the first shape producing an accepted match, and returns
// that terminal Outcome plus the full attempt log.
func (r *Runner) Run(ctx context.Context, a Adapter, e *entry.Entry) (Outcome, []Attempt) {
	shapes := r.shapeOrder(a, e)
	if len(shapes) > r.maxQueries() {
		shapes = shapes[:r.maxQueries()]
	}

	var attempts []Attempt
	// No applicable shape (e.g. missing title) means the adapter is never
	// invoked at all; spec.md §8 scenario 4 calls that outcome NO_MATCH, not
	// a network-level non-response.
	last := Outcome{Kind: NoMatch}
	for _, shape := range shapes {
		outcome := r.attempt(ctx, a, e, shape)
		attempts = append(attempts, Attempt{Adapter: a.Name(), EntryID: e.ID, Shape: shape, Outcome: outcome})
		last = outcome
		if outcome.Kind == Match {
			return outcome, attempts
		}
		if ctx.Err() != nil {
			return Outcome{Kind: Timeout, Err: ctx.Err()}, attempts
		}
	}
	return last, attempts
}

func (r *Runner) maxQueries() int {
	if r.MaxSearchQueries > 0 {
		return r.MaxSearchQueries
	}
	return DefaultMaxSearchQueries
}

func (r *Runner) acceptThreshold() score.Score {
	if r.AcceptThreshold > 0 {
		return r.AcceptThreshold
	}
	return score.AcceptThreshold
}

func (r *Runner) userAgent() string {
	if r.UserAgent != "" {
		return r.UserAgent
	}
	return DefaultUserAgent
}

// shapeOrder builds the fixed attempt order (spec.md §4.5): id_only first
// when supported and present, then all-authors+title, then one
// single-author+title attempt per known author, then title_only. Shapes
// the adapter doesn't support, or that the entry can't fill, are skipped
// entirely rather than counted against MaxSearchQueries.
func (r *Runner) shapeOrder(a Adapter, e *entry.Entry) []QueryShape {
	var shapes []QueryShape

	if a.SupportsShape(QueryShape{Kind: IDOnly}) {
		shapes = append(shapes, QueryShape{Kind: IDOnly})
	}

	if a.SupportsShape(QueryShape{Kind: AllAuthorsTitle}) && e.Present("title") {
		shapes = append(shapes, QueryShape{Kind: AllAuthorsTitle})
	}

	if a.SupportsShape(QueryShape{Kind: SingleAuthorTitle}) && e.Present("title") {
		n := authorCount(e)
		for i := 0; i < n; i++ {
			shapes = append(shapes, QueryShape{Kind: SingleAuthorTitle, AuthorIndex: i})
		}
	}

	if a.SupportsShape(QueryShape{Kind: TitleOnly}) && e.Present("title") {
		shapes = append(shapes, QueryShape{Kind: TitleOnly})
	}

	fillable := shapes[:0]
	for _, s := range shapes {
		if _, ok := a.Path(e, s); !ok {
			continue
		}
		if _, ok := a.Params(e, s); !ok {
			continue
		}
		fillable = append(fillable, s)
	}
	return fillable
}

func authorCount(e *entry.Entry) int {
	f := e.Get("author")
	if !f.Present() {
		return 0
	}
	list, ok := f.Value.([]author.Author)
	if !ok {
		return 0
	}
	return len(list)
}

// attempt executes one Base request for shape and runs the Search layer
// (extract, score, select) over the response.
func (r *Runner) attempt(ctx context.Context, a Adapter, e *entry.Entry, shape QueryShape) Outcome {
	scheme := r.Scheme
	if scheme == "" {
		scheme = "https"
	}

	timeout := r.ConnectionTimeout
	if timeout <= 0 {
		timeout = DefaultConnectionTimeout * time.Second
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, built, err := buildRequest(reqCtx, scheme, a.Domain(), r.userAgent(), a, e, shape)
	if err != nil {
		return Outcome{Kind: NetError, Err: err}
	}
	if !built {
		return Outcome{Kind: NoRecords}
	}

	resp, err := httputil.DoWithRetry(reqCtx, r.Client, req, r.MaxRetries)
	if err != nil {
		if reqCtx.Err() != nil {
			return Outcome{Kind: Timeout, Err: err}
		}
		return Outcome{Kind: NetError, Err: err}
	}
	defer resp.Body.Close()

	if !a.AcceptableStatus(resp.StatusCode) {
		return Outcome{Kind: HTTPError, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Kind: NetError, Err: err}
	}

	records, err := a.ExtractRecords(body)
	if err != nil {
		return Outcome{Kind: DecodeFail, Err: err}
	}
	if len(records) == 0 {
		return Outcome{Kind: NoRecords}
	}

	return r.selectBest(a, e, records, req.URL.String())
}

// selectBest converts every record to a Candidate, scores it against e,
// and keeps the highest-scoring one that clears the accept threshold.
func (r *Runner) selectBest(a Adapter, e *entry.Entry, records []Record, sourceURL string) Outcome {
	var bestCand *entry.Candidate
	best := score.NoMatch
	for _, rec := range records {
		cEntry, err := a.RecordToEntry(rec)
		if err != nil || cEntry == nil {
			continue
		}
		s := match.Match(e, cEntry)
		if s > best {
			best = s
			c := entry.NewCandidate(cEntry, a.Name(), sourceURL)
			bestCand = &c
		}
	}
	if bestCand == nil || best < r.acceptThreshold() {
		return Outcome{Kind: NoMatch, Score: best}
	}
	return Outcome{Kind: Match, Score: best, Candidate: bestCand}
}
