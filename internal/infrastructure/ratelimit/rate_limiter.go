package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Policy is a token bucket: Burst tokens, refilled at Every per token.
type Policy struct {
	Burst int
	Every time.Duration
}

func (p Policy) limit() rate.Limit {
	if p.Every <= 0 {
		return rate.Inf
	}
	return rate.Every(p.Every)
}

// DefaultPolicies are the per-action limits for chat actions.
func DefaultPolicies() map[string]Policy {
	return map[string]Policy{
		// 10 messages per minute
		"send_message": {Burst: 10, Every: 6 * time.Second},
		// 5 new threads per hour
		"create_thread": {Burst: 5, Every: 12 * time.Minute},
		// 30 typing events per minute
		"typing": {Burst: 30, Every: 2 * time.Second},
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter manages rate limiting for different users and actions
type RateLimiter struct {
	policies map[string]Policy
	fallback Policy
	buckets  map[string]*bucket
	mutex    sync.Mutex
}

// NewRateLimiter creates a limiter. Actions without a policy use fallback.
func NewRateLimiter(policies map[string]Policy, fallback Policy) *RateLimiter {
	return &RateLimiter{
		policies: policies,
		fallback: fallback,
		buckets:  make(map[string]*bucket),
	}
}

// Unlimited never refuses an action.
func Unlimited() *RateLimiter {
	return NewRateLimiter(nil, Policy{})
}

// Allow checks if a user action is allowed and consumes a token if so.
// When refused it returns how long until the next token.
func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	now := time.Now()
	b := rl.bucketFor(key, action, now)

	reservation := b.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, 0
	}
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

func (rl *RateLimiter) bucketFor(key, action string, now time.Time) *bucket {
	id := key + ":" + action

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	b, exists := rl.buckets[id]
	if !exists {
		policy, ok := rl.policies[action]
		if !ok {
			policy = rl.fallback
		}
		burst := policy.Burst
		if burst <= 0 {
			burst = 1
		}
		b = &bucket{limiter: rate.NewLimiter(policy.limit(), burst)}
		rl.buckets[id] = b
	}
	b.lastSeen = now
	return b
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	for id, b := range rl.buckets {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(rl.buckets, id)
		}
	}
}

// StartCleanupRoutine runs Cleanup every interval until stop is closed.
func (rl *RateLimiter) StartCleanupRoutine(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-stop:
				return
			}
		}
	}()
}
