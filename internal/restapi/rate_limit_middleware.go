package restapi

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"transit.smartcity.org/internal/models"
)

const limiterIdleTimeout = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware provides per-client rate limiting. Clients are told
// apart by API key when the key is a known one, by remote address otherwise.
type RateLimitMiddleware struct {
	limiters    map[string]*clientLimiter
	knownKey    func(key string) bool
	mu          sync.Mutex
	rateLimit   rate.Limit
	burstSize   int
	cleanupTick *time.Ticker
	done        chan struct{}
	stopOnce    sync.Once
}

// NewRateLimitMiddleware allows requestsPerInterval requests per interval
// and per client, with bursts of the same size. Zero or less disables
// limiting. Only keys accepted by knownKey get a bucket of their own; a nil
// knownKey buckets every request by remote address.
func NewRateLimitMiddleware(requestsPerInterval int, interval time.Duration, knownKey func(key string) bool) *RateLimitMiddleware {
	rl := &RateLimitMiddleware{
		limiters:    make(map[string]*clientLimiter),
		knownKey:    knownKey,
		rateLimit:   rate.Inf,
		burstSize:   requestsPerInterval,
		cleanupTick: time.NewTicker(time.Minute),
		done:        make(chan struct{}),
	}
	if requestsPerInterval > 0 {
		rl.rateLimit = rate.Every(interval / time.Duration(requestsPerInterval))
	}

	go rl.cleanup()

	return rl
}

// Handler wraps next with the rate limit.
func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	if rl.rateLimit == rate.Inf {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(rl.clientKey(r)).Allow() {
			rl.sendRateLimitExceeded(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimitMiddleware) clientKey(r *http.Request) string {
	if key := r.URL.Query().Get("key"); key != "" && rl.knownKey != nil && rl.knownKey(key) {
		return "key:" + key
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}

// getLimiter gets or creates a rate limiter for the given client
func (rl *RateLimitMiddleware) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[key]
	if !exists {
		entry = &clientLimiter{limiter: rate.NewLimiter(rl.rateLimit, rl.burstSize)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// sendRateLimitExceeded sends a 429 Too Many Requests response
func (rl *RateLimitMiddleware) sendRateLimitExceeded(w http.ResponseWriter) {
	retryAfter := time.Duration(float64(time.Second) / float64(rl.rateLimit))
	seconds := int(retryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.burstSize))
	w.Header().Set("X-RateLimit-Remaining", "0")
	w.WriteHeader(http.StatusTooManyRequests)

	response := models.NewErrorResponse(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
	_ = jsonEncode(w, response)
}

// cleanup drops limiters of clients that have been idle for a while
func (rl *RateLimitMiddleware) cleanup() {
	for {
		select {
		case <-rl.cleanupTick.C:
			cutoff := time.Now().Add(-limiterIdleTimeout)
			rl.mu.Lock()
			for key, entry := range rl.limiters {
				if entry.lastSeen.Before(cutoff) {
					delete(rl.limiters, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.done:
			return
		}
	}
}

// Stop stops the cleanup goroutine
func (rl *RateLimitMiddleware) Stop() {
	rl.stopOnce.Do(func() {
		rl.cleanupTick.Stop()
		close(rl.done)
	})
}
