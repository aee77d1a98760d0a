package wallet

import (
	"context"
	"math"
	"sync"
	"time"
)

// rateLimiterPollInterval is how often Take rechecks token availability
// while blocked.
const rateLimiterPollInterval = 100 * time.Millisecond

// RateLimiter is a token bucket that refills continuously: every call to
// Take recomputes the tokens earned since the last update as
// floor(elapsed_seconds * capacity), caps at capacity, and only then
// spends one. It is used to throttle calls into the external oracle.
type RateLimiter struct {
	mu         sync.Mutex
	capacity   uint32
	tokens     uint32
	lastUpdate time.Time
}

// NewRateLimiter returns a RateLimiter starting at full capacity.
func NewRateLimiter(capacity uint32) *RateLimiter {
	return &RateLimiter{
		capacity:   capacity,
		tokens:     capacity,
		lastUpdate: time.Now(),
	}
}

// updateTokens refills the bucket based on elapsed wall-clock time. Caller
// must hold r.mu.
//
// earned is floor(elapsed*capacity). When that is zero (e.g. a capacity
// below 10 polled every rateLimiterPollInterval), lastUpdate is left
// unchanged so the elapsed time keeps accumulating across polls until at
// least one whole token has been earned.
func (r *RateLimiter) updateTokens() {
	now := time.Now()
	elapsed := now.Sub(r.lastUpdate).Seconds()
	earned := uint32(math.Floor(elapsed * float64(r.capacity)))
	if earned == 0 {
		return
	}

	r.tokens += earned
	if r.tokens > r.capacity {
		r.tokens = r.capacity
	}
	r.lastUpdate = now
}

// Take blocks until a token is available, then spends it. It polls every
// 100ms while empty, and returns ctx.Err() if ctx is cancelled first.
func (r *RateLimiter) Take(ctx context.Context) error {
	for {
		r.mu.Lock()
		r.updateTokens()
		if r.tokens > 0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(rateLimiterPollInterval):
		}
	}
}
