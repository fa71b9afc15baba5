// Package ratelimit provides a keyed rate limiter using the token bucket algorithm.
package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	// reapInterval is how often idle entries are scanned for removal.
	reapInterval = time.Minute

	// idleTTL is how long a key may go unused before its entry is dropped.
	// Must be long enough for a full bucket refill; a reaped key starts
	// over with a fresh burst.
	idleTTL = 10 * time.Minute
)

// entry pairs a limiter with its last-access time so idle keys can be
// reaped.
type entry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// KeyedRateLimiter manages per-key rate limiting.
// Each unique key (here: client IP) gets its own independent limiter.
// Client IPs are unbounded, so entries idle past idleTTL are reaped by a
// background goroutine; Stop shuts it down.
type KeyedRateLimiter struct {
	mu      sync.RWMutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a new keyed rate limiter.
// rps: requests per second allowed.
// burst: maximum burst size (tokens available immediately).
func New(rps float64, burst int) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}

	go krl.reapLoop()

	return krl
}

// Allow checks if a request for the given key should be allowed.
// Returns immediately without blocking. Use for inbound request protection.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.getLimiter(key).Allow()
}

// Wait blocks until a request for the given key is allowed or the context
// is canceled.
func (krl *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return krl.getLimiter(key).Wait(ctx)
}

// getLimiter returns the limiter for a key, creating one if needed.
func (krl *KeyedRateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now().UnixNano()

	// Fast path: read lock
	krl.mu.RLock()
	e, exists := krl.entries[key]
	krl.mu.RUnlock()

	if exists {
		e.lastSeen.Store(now)
		return e.limiter
	}

	krl.mu.Lock()
	defer krl.mu.Unlock()

	// Double-check after acquiring write lock
	if e, exists = krl.entries[key]; exists {
		e.lastSeen.Store(now)
		return e.limiter
	}

	e = &entry{limiter: rate.NewLimiter(krl.limit, krl.burst)}
	e.lastSeen.Store(now)
	krl.entries[key] = e
	return e.limiter
}

// Stop shuts down the reaper goroutine.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

// reapLoop periodically drops entries that have gone idle.
func (krl *KeyedRateLimiter) reapLoop() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-krl.done:
			return
		case <-ticker.C:
			krl.reapIdle(time.Now().Add(-idleTTL))
		}
	}
}

// reapIdle removes every entry last seen before the cutoff.
func (krl *KeyedRateLimiter) reapIdle(cutoff time.Time) {
	nanos := cutoff.UnixNano()

	krl.mu.Lock()
	defer krl.mu.Unlock()
	for key, e := range krl.entries {
		if e.lastSeen.Load() < nanos {
			delete(krl.entries, key)
		}
	}
}
