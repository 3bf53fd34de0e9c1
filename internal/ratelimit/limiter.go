// Package ratelimit implements the fixed-window attempt counter that guards
// the login endpoint. A window opens on the first attempt from a key and
// lasts for the configured duration; once the maximum is reached, further
// attempts are rejected until the window closes. An attempt arriving after
// the window elapsed starts a fresh window, it does not inherit the old
// count. This allows up to twice the nominal rate across a window boundary,
// which is accepted for a single-operator host.
package ratelimit

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/opentocoder/docker-panel/internal/clock"
)

// Login endpoint limits.
const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute

	// sweepChance is the fraction of Check calls that opportunistically
	// remove expired entries. Expired entries never block regardless; the
	// sweep only bounds memory.
	sweepChance = 0.01
)

// Result is the outcome of a rate-limit check.
type Result struct {
	Allowed    bool
	Remaining  int // attempts left in the open window
	RetryAfter int // seconds until the window closes, set when rejected
}

type entry struct {
	count       int
	windowStart time.Time
}

// Limiter is a per-key fixed-window attempt counter. Entries are created
// lazily on first attempt and deleted on Reset or sweep. All state lives in
// one process; a restart clears all history.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	max     int
	window  time.Duration
	clk     clock.Clock
}

// NewLimiter creates a limiter allowing max attempts per window.
// A nil clk uses the system clock.
func NewLimiter(max int, window time.Duration, clk clock.Clock) *Limiter {
	if clk == nil {
		clk = &clock.RealClock{}
	}
	return &Limiter{
		entries: make(map[string]*entry),
		max:     max,
		window:  window,
		clk:     clk,
	}
}

// Check records an attempt for key and reports whether it is allowed.
// The whole map is held under one lock: increments must not interleave, or
// concurrent attempts would be undercounted, and contention is negligible
// for a login endpoint.
func (l *Limiter) Check(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clk.Now()

	if rand.Float64() < sweepChance {
		l.sweepLocked(now)
	}

	e, ok := l.entries[key]
	if !ok || now.After(e.windowStart.Add(l.window)) {
		// First attempt, or the old window elapsed: open a fresh one.
		l.entries[key] = &entry{count: 1, windowStart: now}
		return Result{Allowed: true, Remaining: l.max - 1}
	}

	if e.count >= l.max {
		retry := int(math.Ceil(e.windowStart.Add(l.window).Sub(now).Seconds()))
		if retry < 1 {
			retry = 1
		}
		return Result{Allowed: false, Remaining: 0, RetryAfter: retry}
	}

	e.count++
	return Result{Allowed: true, Remaining: l.max - e.count}
}

// Reset removes the entry for key entirely. Called after a successful
// authentication to clear the penalty.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}

// Sweep removes all expired entries.
func (l *Limiter) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweepLocked(l.clk.Now())
}

func (l *Limiter) sweepLocked(now time.Time) {
	for key, e := range l.entries {
		if now.After(e.windowStart.Add(l.window)) {
			delete(l.entries, key)
		}
	}
}

// Len reports the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
