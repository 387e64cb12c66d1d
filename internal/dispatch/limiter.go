// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"context"
	"sync"
	"time"
)

// hostLimiter enforces both a per-host concurrency cap and a minimum
// inter-arrival delay between requests to the same host (spec.md §4.6's
// N_host and D_host policies). It owns no global state beyond its own
// fields; the Dispatcher holds one instance per run.
type hostLimiter struct {
	maxPerHost int
	minGap     time.Duration

	mu       sync.Mutex
	inFlight map[string]int
	lastFire map[string]time.Time
}

func newHostLimiter(maxPerHost int, minGap time.Duration) *hostLimiter {
	if maxPerHost <= 0 {
		maxPerHost = 1
	}
	return &hostLimiter{
		maxPerHost: maxPerHost,
		minGap:     minGap,
		inFlight:   make(map[string]int),
		lastFire:   make(map[string]time.Time),
	}
}

// Acquire blocks until host has a free concurrency slot and the minimum
// inter-arrival delay since the last request to host has elapsed. The
// returned release func must be called exactly once.
func (l *hostLimiter) Acquire(ctx context.Context, host string) (release func(), err error) {
	for {
		l.mu.Lock()
		wait := l.waitFor(host)
		if l.inFlight[host] < l.maxPerHost && wait <= 0 {
			l.inFlight[host]++
			l.lastFire[host] = time.Now()
			l.mu.Unlock()
			return func() { l.release(host) }, nil
		}
		l.mu.Unlock()

		if wait <= 0 {
			wait = time.Millisecond
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// waitFor returns how long the caller must still wait for host's
// inter-arrival delay, given the last fire time. Must be called with mu
// held.
func (l *hostLimiter) waitFor(host string) time.Duration {
	last, ok := l.lastFire[host]
	if !ok || l.minGap <= 0 {
		return 0
	}
	elapsed := time.Since(last)
	if elapsed >= l.minGap {
		return 0
	}
	return l.minGap - elapsed
}

func (l *hostLimiter) release(host string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.inFlight[host] > 0 {
		l.inFlight[host]--
	}
}
