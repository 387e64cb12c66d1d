// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestHostLimiterCapsConcurrencyPerHost(t *testing.T) {
	l := newHostLimiter(2, 0)
	ctx := context.Background()

	var inFlight, maxSeen int32
	release := make([]func(), 0, 5)
	for i := 0; i < 2; i++ {
		r, err := l.Acquire(ctx, "example.org")
		if err != nil {
			t.Fatalf("Acquire: %v", err)
		}
		n := atomic.AddInt32(&inFlight, 1)
		if n > maxSeen {
			maxSeen = n
		}
		release = append(release, r)
	}

	done := make(chan struct{})
	go func() {
		r, err := l.Acquire(ctx, "example.org")
		if err != nil {
			t.Errorf("Acquire: %v", err)
			return
		}
		atomic.AddInt32(&inFlight, 1)
		r()
		atomic.AddInt32(&inFlight, -1)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("third Acquire should have blocked while 2 slots were held")
	case <-time.After(20 * time.Millisecond):
	}

	release[0]()
	atomic.AddInt32(&inFlight, -1)
	release[1]()
	atomic.AddInt32(&inFlight, -1)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("third Acquire never unblocked after a slot freed")
	}

	if maxSeen > 2 {
		t.Errorf("observed %d in-flight, want <= 2", maxSeen)
	}
}

func TestHostLimiterEnforcesMinGap(t *testing.T) {
	l := newHostLimiter(1, 30*time.Millisecond)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "example.org")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	release()

	start := time.Now()
	release, err = l.Acquire(ctx, "example.org")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	release()
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Errorf("second Acquire returned after %v, want >= ~30ms gap", elapsed)
	}
}

func TestHostLimiterAcquireRespectsContextCancellation(t *testing.T) {
	l := newHostLimiter(1, 0)
	ctx := context.Background()

	_, err := l.Acquire(ctx, "example.org")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	cancelCtx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := l.Acquire(cancelCtx, "example.org"); err == nil {
		t.Error("expected Acquire to return an error on an already-cancelled context")
	}
}
