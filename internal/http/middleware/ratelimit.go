package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"recordshop/internal/logging"
)

const (
	clientIdleTTL = 3 * time.Minute
	janitorPeriod = time.Minute
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out a token bucket per client IP.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*client
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second with the
// given burst for each client IP. Stale clients are evicted until ctx is done.
func NewRateLimiter(ctx context.Context, rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*client),
		now:     time.Now,
	}
	go rl.janitor(ctx)
	return rl
}

func (rl *RateLimiter) janitor(ctx context.Context) {
	ticker := time.NewTicker(janitorPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evict(clientIdleTTL)
		}
	}
}

// evict drops clients not seen within ttl.
func (rl *RateLimiter) evict(ttl time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-ttl)
	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// Allow reports whether a request from ip may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = rl.now()
	return c.limiter.Allow()
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !rl.Allow(ip) {
				logging.WithContext(r.Context()).Warn().
					Str("remote_ip", ip).
					Msg("rate limit exceeded")
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "TooManyRequests", "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
