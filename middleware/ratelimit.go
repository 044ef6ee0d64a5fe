package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

// limiterIdleTTL is how long an IP may stay silent before its bucket is
// reclaimed.
const limiterIdleTTL = 10 * time.Minute

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

type ipLimiters struct {
	mu        sync.Mutex
	rps       rate.Limit
	burst     int
	buckets   map[string]*ipBucket
	lastSweep time.Time
}

func newIPLimiters(rps rate.Limit, burst int) *ipLimiters {
	return &ipLimiters{
		rps:       rps,
		burst:     burst,
		buckets:   make(map[string]*ipBucket),
		lastSweep: time.Now(),
	}
}

// get returns the bucket for ip, creating it on first sight. Buckets
// idle past the TTL are swept at most once per TTL so the map stays
// bounded by recently active clients.
func (l *ipLimiters) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for k, b := range l.buckets {
			if now.Sub(b.seen) > limiterIdleTTL {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}
	b, ok := l.buckets[ip]
	if !ok {
		b = &ipBucket{lim: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = b
	}
	b.seen = now
	return b.lim
}

// RateLimitPerIP applies a token bucket per client IP.
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	limiters := newIPLimiters(rps, burst)
	return func(c *gin.Context) {
		if limiters.get(c.ClientIP(), time.Now()).Allow() {
			c.Next()
			return
		}
		response.AbortKO(c, 429, "Too many requests")
	}
}
