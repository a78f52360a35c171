// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages: retry
// with exponential backoff, and completion-based request pacing.
package httputil

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"
)

// RetryBaseDelay is the fallback base duration for exponential backoff
// between retry attempts, used when the caller passes no delay. Tests
// override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

const defaultMaxRetries = 3

// DoWithRetry executes an HTTP request and retries on retryable
// failures: transport errors (timeouts, connection resets), HTTP 429
// and 5xx responses. The delay before attempt n is
// baseDelay * 2^(n-1) plus up to 25% jitter.
//
// When maxRetries is 0 the default (3) is used; a non-positive
// baseDelay falls back to RetryBaseDelay. Before each retry the
// previous response body is drained and closed. If the context is
// cancelled during a backoff wait the function returns ctx.Err().
// After exhausting retries the last transport error or non-2xx
// response is returned as-is so the caller can classify it.
//
// A non-nil pacer is consulted before every attempt, retries included,
// and marked done after each attempt completes, so the minimum
// inter-request interval holds across the whole retry sequence.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, baseDelay time.Duration, pacer *Pacer) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if baseDelay <= 0 {
		baseDelay = RetryBaseDelay
	}

	for attempt := 0; ; attempt++ {
		if err := pacer.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := client.Do(req.Clone(ctx))
		pacer.Done()

		if err == nil && !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		// Exhausted retries — surface the last outcome as-is.
		if attempt >= maxRetries {
			return resp, err
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * baseDelay
		backoff += time.Duration(rand.Int64N(int64(backoff)/4 + 1))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// retryableStatus reports whether the HTTP status warrants a retry.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Pacer enforces a minimum interval between requests, measured from the
// completion of the previous request rather than its start. Start-based
// metering lets a slow response and the next request overlap at the
// upstream; spacing from completion cannot.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewPacer returns a Pacer with the given minimum inter-request
// interval. A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks until the interval since the last Done call has elapsed,
// or the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return nil
	}

	p.mu.Lock()
	wait := p.interval - time.Since(p.last)
	p.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// Done marks the completion of a request. The next Wait measures its
// interval from this instant.
func (p *Pacer) Done() {
	if p == nil || p.interval <= 0 {
		return
	}
	p.mu.Lock()
	p.last = time.Now()
	p.mu.Unlock()
}
