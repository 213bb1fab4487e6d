// Package ratelimit paces adapter calls so companies sharing an ATS do not
// hammer the same backend when a refresh fans out.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jobscout/jobscout/internal/model"
)

// ProviderLimiter hands out one token bucket per provider. All adapters
// wrapping the same limiter share its pacing.
type ProviderLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	minDelay time.Duration
}

// NewProviderLimiter creates a limiter enforcing minDelay between
// consecutive requests to the same provider, with a burst of one.
func NewProviderLimiter(minDelay time.Duration) *ProviderLimiter {
	return &ProviderLimiter{
		limiters: make(map[string]*rate.Limiter),
		minDelay: minDelay,
	}
}

// Wait blocks until the provider's bucket allows another request, or the
// context is cancelled.
func (l *ProviderLimiter) Wait(ctx context.Context, provider string) error {
	l.mu.Lock()
	lim, ok := l.limiters[provider]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.minDelay), 1)
		l.limiters[provider] = lim
	}
	l.mu.Unlock()

	if err := lim.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", provider, err)
	}
	return nil
}

// Adapter is a decorator that waits for the provider's rate limiter before
// delegating to the wrapped ProviderAdapter.
type Adapter struct {
	inner   model.ProviderAdapter
	limiter *ProviderLimiter
}

// Wrap decorates an adapter with provider-level rate limiting. All adapters
// for the same provider should share the limiter instance.
func Wrap(inner model.ProviderAdapter, limiter *ProviderLimiter) *Adapter {
	return &Adapter{inner: inner, limiter: limiter}
}

func (a *Adapter) Name() string { return a.inner.Name() }

// Fetch waits for the rate limiter to allow a request, then delegates.
func (a *Adapter) Fetch(ctx context.Context, org string, limit int) ([]model.Posting, error) {
	if err := a.limiter.Wait(ctx, a.inner.Name()); err != nil {
		return nil, err
	}
	return a.inner.Fetch(ctx, org, limit)
}
