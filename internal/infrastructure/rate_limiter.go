package infrastructure

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter hands out a token-bucket limiter per identifier (typically the
// client IP) and is applied in front of the auth endpoints.
type RateLimiter struct {
	limiters map[string]*clientLimiter
	mutex    sync.Mutex
	rate     rate.Limit
	burst    int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	// A misconfigured limit of zero would divide by zero below.
	if limit < 1 {
		limit = 1
	}
	rl := &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Every(window / time.Duration(limit)),
		burst:    limit,
	}

	go rl.cleanupStaleEntries()
	return rl
}

func (rl *RateLimiter) Allow(identifier string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	cl, exists := rl.limiters[identifier]
	if !exists {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[identifier] = cl
	}
	cl.lastSeen = time.Now()

	return cl.limiter.Allow()
}

func (rl *RateLimiter) cleanupStaleEntries() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		rl.mutex.Lock()
		cutoff := time.Now().Add(-1 * time.Hour)
		for id, cl := range rl.limiters {
			if cl.lastSeen.Before(cutoff) {
				delete(rl.limiters, id)
			}
		}
		rl.mutex.Unlock()
	}
}
