package ratelimiter

import (
	"sync"
	"time"
)

// pruneThreshold is the number of tracked keys above which Allow sweeps
// expired entries of every namespace
const pruneThreshold = 1024

// Policy caps a namespace to Limit hits per sliding Window
type Policy struct {
	Limit  int
	Window time.Duration
}

// Limiter is an in-memory sliding-window limiter keyed by namespace and key.
// A namespace without a policy denies every request.
//
//	rl := ratelimiter.New()
//	rl.SetPolicy("refresh", 6, time.Minute)
//	if !rl.Allow("refresh", clientIP) {
//	    // answer 429
//	}
type Limiter struct {
	mu       sync.Mutex
	hits     map[string][]time.Time
	policies map[string]Policy
	now      func() time.Time
}

func New() *Limiter {
	return &Limiter{
		hits:     make(map[string][]time.Time),
		policies: make(map[string]Policy),
		now:      time.Now,
	}
}

func (l *Limiter) SetPolicy(namespace string, limit int, window time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.policies[namespace] = Policy{Limit: limit, Window: window}
}

// Allow records a hit and reports whether it fits the namespace policy
func (l *Limiter) Allow(namespace, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	policy, ok := l.policies[namespace]
	if !ok {
		return false
	}

	now := l.now()
	id := namespace + ":" + key
	valid := recent(l.hits[id], now.Add(-policy.Window))

	if len(valid) >= policy.Limit {
		l.hits[id] = valid
		return false
	}
	l.hits[id] = append(valid, now)

	if len(l.hits) > pruneThreshold {
		l.pruneLocked(now)
	}
	return true
}

// RetryAfter is how long until the oldest counted hit leaves the window,
// zero when the key is not limited
func (l *Limiter) RetryAfter(namespace, key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	policy, ok := l.policies[namespace]
	if !ok {
		return 0
	}

	now := l.now()
	valid := recent(l.hits[namespace+":"+key], now.Add(-policy.Window))
	if len(valid) < policy.Limit || len(valid) == 0 {
		return 0
	}
	return valid[0].Add(policy.Window).Sub(now)
}

// Reset forgets every hit of key
func (l *Limiter) Reset(namespace, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, namespace+":"+key)
}

// Len returns the number of tracked keys
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}

func (l *Limiter) pruneLocked(now time.Time) {
	for id, times := range l.hits {
		namespace := id
		for i := 0; i < len(id); i++ {
			if id[i] == ':' {
				namespace = id[:i]
				break
			}
		}

		policy, ok := l.policies[namespace]
		if !ok {
			delete(l.hits, id)
			continue
		}
		if valid := recent(times, now.Add(-policy.Window)); len(valid) == 0 {
			delete(l.hits, id)
		} else {
			l.hits[id] = valid
		}
	}
}

// recent keeps the hits strictly after cutoff. Input is in insertion order.
func recent(times []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	return times[i:]
}
