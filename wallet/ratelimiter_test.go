package wallet

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterTakeDoesNotBlockWhenTokensAvailable(t *testing.T) {
	r := NewRateLimiter(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := r.Take(ctx); err != nil {
			t.Fatalf("Take() error = %v", err)
		}
	}
}

func TestRateLimiterTakeRefillsOverTime(t *testing.T) {
	r := NewRateLimiter(1)
	ctx := context.Background()

	if err := r.Take(ctx); err != nil {
		t.Fatalf("Take() error = %v", err)
	}

	// Force the next update to see >= 1 second of elapsed time so a token
	// is guaranteed to have refilled.
	r.mu.Lock()
	r.lastUpdate = time.Now().Add(-2 * time.Second)
	r.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- r.Take(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Take() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Take() blocked despite available refill")
	}
}

func TestRateLimiterTakeRespectsCancellation(t *testing.T) {
	r := NewRateLimiter(0)
	r.tokens = 0
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Take(ctx); err != context.Canceled {
		t.Errorf("Take() error = %v, want context.Canceled", err)
	}
}
