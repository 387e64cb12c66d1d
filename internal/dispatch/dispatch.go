// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch implements the concurrent dispatcher (spec.md §4.6,
// §5): for each entry it runs every enabled adapter with bounded global and
// per-host parallelism, per-host rate limiting, a per-entry wall-clock
// budget, and DOI-certain short-circuiting, then hands the accepted
// candidates to the merger in adapter-priority order.
package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
	"github.com/mesh-intelligence/bibtex-autocomplete/internal/lookup"
)

// Config holds the dispatcher's tunable policy knobs, all with spec.md
// §4.6 defaults when zero.
type Config struct {
	GlobalConcurrency int           // N_global, default 8
	HostConcurrency   int           // N_host, default 1
	HostInterval      time.Duration // D_host, default 100ms
	EntryBudget       time.Duration // 0 = unbounded
}

const (
	defaultGlobalConcurrency = 8
	defaultHostConcurrency   = 1
	defaultHostInterval      = 100 * time.Millisecond
)

func (c Config) globalConcurrency() int {
	if c.GlobalConcurrency > 0 {
		return c.GlobalConcurrency
	}
	return defaultGlobalConcurrency
}

func (c Config) hostConcurrency() int {
	if c.HostConcurrency > 0 {
		return c.HostConcurrency
	}
	return defaultHostConcurrency
}

func (c Config) hostInterval() time.Duration {
	if c.HostInterval > 0 {
		return c.HostInterval
	}
	return defaultHostInterval
}

// Progress is reported to the UI collaborator after each entry finishes.
// EntriesScanned is the fraction of entries done so far (0..1).
// FieldsFilled is the running count of accepted candidates; it is not a
// fraction and does not count filled fields.
type Progress struct {
	EntriesScanned float64
	FieldsFilled   float64
}

// EntryResult collects everything one entry produced: every attempt made
// across every adapter (for telemetry) and the accepted candidates, in
// adapter-priority order, ready for the merger.
type EntryResult struct {
	Entry      *entry.Entry
	Candidates []entry.Candidate
	Attempts   []lookup.Attempt
}

// Dispatcher drives Runner over Adapters for a batch of entries.
type Dispatcher struct {
	Cfg        Config
	Adapters   []lookup.Adapter
	Priority   lookup.Priority
	Runner     *lookup.Runner
	OnProgress func(Progress)

	// TargetFields restricts work to entries still missing at least one of
	// these fields; empty means every entry is processed.
	TargetFields []string
}

// Run dispatches every enabled adapter against every entry still missing
// TargetFields, respecting global/per-host concurrency and rate limits,
// and returns one EntryResult per input entry in input order.
func (d *Dispatcher) Run(ctx context.Context, entries []*entry.Entry) []EntryResult {
	limiter := newHostLimiter(d.Cfg.hostConcurrency(), d.Cfg.hostInterval())
	results := make([]EntryResult, len(entries))

	var scanned, filled int64
	total := int64(len(entries))

	p := pool.New().WithMaxGoroutines(d.Cfg.globalConcurrency())
	for i, e := range entries {
		i, e := i, e
		p.Go(func() {
			if len(d.TargetFields) > 0 && len(e.MissingFields(d.TargetFields)) == 0 {
				results[i] = EntryResult{Entry: e}
				d.reportProgress(&scanned, total, &filled, 0)
				return
			}
			result := d.runEntry(ctx, e, limiter)
			results[i] = result
			d.reportProgress(&scanned, total, &filled, len(result.Candidates))
		})
	}
	p.Wait()
	return results
}

func (d *Dispatcher) reportProgress(scanned *int64, total int64, filled *int64, fieldsThisEntry int) {
	atomic.AddInt64(scanned, 1)
	atomic.AddInt64(filled, int64(fieldsThisEntry))
	if d.OnProgress == nil {
		return
	}
	d.OnProgress(Progress{
		EntriesScanned: float64(atomic.LoadInt64(scanned)) / float64(total),
		FieldsFilled:   float64(atomic.LoadInt64(filled)),
	})
}

// runEntry runs every enabled adapter for e under a shared per-entry
// budget and a cancellation signal tripped by the first certain DOI match,
// then orders the accepted candidates by adapter priority.
func (d *Dispatcher) runEntry(ctx context.Context, e *entry.Entry, limiter *hostLimiter) EntryResult {
	entryCtx := ctx
	if d.Cfg.EntryBudget > 0 {
		var cancel context.CancelFunc
		entryCtx, cancel = context.WithTimeout(ctx, d.Cfg.EntryBudget)
		defer cancel()
	}
	identifierCtx, cancelIdentifiers := context.WithCancel(entryCtx)
	defer cancelIdentifiers()

	var mu sync.Mutex
	var attempts []lookup.Attempt
	var candidates []entry.Candidate

	inner := pool.New().WithMaxGoroutines(len(d.Adapters))
	for _, a := range d.Adapters {
		a := a
		inner.Go(func() {
			release, err := limiter.Acquire(identifierCtx, a.Domain())
			if err != nil {
				return // entry budget or identifier short-circuit fired before admission
			}
			defer release()

			outcome, adapterAttempts := d.Runner.Run(identifierCtx, a, e)

			mu.Lock()
			attempts = append(attempts, adapterAttempts...)
			if outcome.Kind == lookup.Match && outcome.Candidate != nil {
				candidates = append(candidates, *outcome.Candidate)
				if outcome.Score.Certain() && outcome.Candidate.Present("doi") {
					cancelIdentifiers()
				}
			}
			mu.Unlock()
		})
	}
	inner.Wait()

	orderCandidates(candidates, d.Priority)
	return EntryResult{Entry: e, Candidates: candidates, Attempts: attempts}
}

// orderCandidates sorts candidates in place by adapter priority, stable so
// equal-priority candidates keep their completion order (spec.md §5:
// "merged in adapter-priority order, not wall-clock completion order").
func orderCandidates(candidates []entry.Candidate, priority lookup.Priority) {
	sortStableByPriority(candidates, priority)
}
