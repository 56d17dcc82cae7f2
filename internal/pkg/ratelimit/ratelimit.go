// Package ratelimit provides a per-key cooldown window for issuance-style
// operations (one verification email per address per window, and so on).
//
// State is process-local with no eviction: keys are bounded by real traffic
// during a process lifetime, which makes this a casual abuse deterrent, not a
// security boundary. High-cardinality or multi-instance deployments need an
// external store instead.
package ratelimit

import (
	"sync"
	"time"
)

// Cooldown records the last hit per key and rejects hits arriving inside the
// window. It is an injectable value, not package state, so handlers own its
// lifetime and tests can build fresh instances.
type Cooldown struct {
	mu   sync.Mutex
	hits map[string]time.Time
	now  func() time.Time
}

// New returns an empty Cooldown limiter.
func New() *Cooldown {
	return &Cooldown{hits: make(map[string]time.Time), now: time.Now}
}

// Hit records an attempt for key. It returns ok=false with the remaining
// cooldown when the previous hit for key is still inside window; otherwise it
// stamps now and returns ok=true. Safe for concurrent use.
func (c *Cooldown) Hit(key string, window time.Duration) (ok bool, retry time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if last, seen := c.hits[key]; seen {
		if elapsed := now.Sub(last); elapsed < window {
			return false, window - elapsed
		}
	}
	c.hits[key] = now
	return true, 0
}

// IPKey and EmailKey build the canonical limiter keys.
func IPKey(ip string) string       { return "ip:" + ip }
func EmailKey(email string) string { return "email:" + email }
