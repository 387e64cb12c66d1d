// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across the lookup and
// dispatch layers.
package httputil

import (
	"context"
	"io"
	"math"
	"math/rand"
	"net/http"
	"time"
)

// RetryBaseDelay is the base duration for exponential backoff on a
// retryable HTTP status. Tests override this to avoid real sleeps.
var RetryBaseDelay = 500 * time.Millisecond

// RetryFactor is the multiplier applied to the delay after each attempt.
var RetryFactor = 2.0

// RetryJitter is the +/- fraction of jitter applied to each computed delay.
var RetryJitter = 0.2

const defaultMaxRetries = 2

// retryableStatus reports whether status should trigger a backoff-and-retry
// rather than being treated as terminal.
func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// DoWithRetry executes an HTTP request and retries on 429/500/502/503/504
// with exponential backoff (base 500ms, factor 2, +/-20% jitter), retrying
// at most maxRetries times after the first request. When maxRetries is 0
// the default (2 retries, so 3 requests in all) is used.
//
// On each retryable response the body is drained and closed before
// sleeping. If the context is cancelled during a backoff wait the function
// returns ctx.Err(). After exhausting retries the last response is
// returned as-is so the caller can classify it as a terminal HTTP_ERROR.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		if attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff(attempt)):
		}
	}
}

// backoff computes the delay before the given (0-indexed) retry attempt,
// applying RetryJitter as a uniformly distributed +/- fraction.
func backoff(attempt int) time.Duration {
	base := float64(RetryBaseDelay) * math.Pow(RetryFactor, float64(attempt))
	jitter := 1 + (rand.Float64()*2-1)*RetryJitter
	return time.Duration(base * jitter)
}
