package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitConfig configures a RateLimiter. KeyFunc defaults to KeyByIP.
// Requests for which BypassFunc returns true are never counted.
type RateLimitConfig struct {
	Limit      redis_rate.Limit
	KeyFunc    func(*http.Request) string
	BypassFunc func(*http.Request) bool
}

// RateLimiter throttles requests per key. With a Redis client the counters
// are shared across instances (GCRA via redis_rate); without one, or while
// Redis is failing, each process keeps its own token buckets.
type RateLimiter struct {
	cfg   RateLimitConfig
	redis *redis_rate.Limiter // nil when no Redis is configured
	local *localBuckets
}

// NewRateLimiter builds a limiter. rdb may be nil.
func NewRateLimiter(rdb *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = KeyByIP
	}
	rl := &RateLimiter{cfg: cfg, local: newLocalBuckets(time.Now)}
	if rdb != nil {
		rl.redis = redis_rate.NewLimiter(rdb)
	}
	return rl
}

// Handler is the middleware func. Every counted response carries the
// X-RateLimit-* headers; a rejected one also carries Retry-After.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.cfg.BypassFunc != nil && rl.cfg.BypassFunc(r) {
			next.ServeHTTP(w, r)
			return
		}

		res := rl.allow(r.Context(), rl.cfg.KeyFunc(r))

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Limit.Rate))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))

		if res.Allowed == 0 {
			retry := max(int(math.Ceil(res.RetryAfter.Seconds())), 1)
			h.Set("Retry-After", strconv.Itoa(retry))
			writeErrorJSON(w, http.StatusTooManyRequests, "rate_limited",
				fmt.Sprintf("rate limit exceeded, retry after %d seconds", retry))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ctx context.Context, key string) *redis_rate.Result {
	if rl.redis != nil {
		res, err := rl.redis.Allow(ctx, key, rl.cfg.Limit)
		if err == nil {
			return res
		}
		slog.WarnContext(ctx, "redis rate limit failed, using local buckets", "error", err)
	}
	return rl.local.allow(key, rl.cfg.Limit)
}

// KeyByIP keys on the client address. chi's RealIP usually rewrites
// RemoteAddr first; the headers cover deployments without it. The last
// X-Forwarded-For hop wins since that is the one our own proxy appended.
func KeyByIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		return "ratelimit:ip:" + strings.TrimSpace(hops[len(hops)-1])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return "ratelimit:ip:" + xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ratelimit:ip:" + ip
}

// BypassHealth skips /healthz so orchestrators are never throttled.
func BypassHealth(r *http.Request) bool {
	return r.URL.Path == "/healthz"
}

// PerMinute returns a limit of n requests per minute with the given burst.
func PerMinute(n, burst int) redis_rate.Limit {
	return redis_rate.Limit{Rate: n, Burst: burst, Period: time.Minute}
}

const (
	sweepEvery = 5 * time.Minute
	idleTTL    = 10 * time.Minute
)

// localBuckets holds one token bucket per key behind a single mutex.
// Buckets idle for idleTTL are dropped during allow, at most once per
// sweepEvery, so nothing runs in the background.
type localBuckets struct {
	mu        sync.Mutex
	now       func() time.Time
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func newLocalBuckets(now func() time.Time) *localBuckets {
	return &localBuckets{now: now, buckets: make(map[string]*bucket), lastSweep: now()}
}

// allow takes one token from key's bucket and reports the outcome in
// redis_rate's shape so both backends share the header logic.
func (l *localBuckets) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	perSec := float64(limit.Rate) / limit.Period.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepEvery {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rate.Limit(perSec), limit.Burst)}
		l.buckets[key] = b
	}
	b.seen = now

	res := &redis_rate.Result{Limit: limit, RetryAfter: -1}
	if b.lim.AllowN(now, 1) {
		res.Allowed = 1
	}
	tokens := b.lim.TokensAt(now)
	res.Remaining = max(int(tokens), 0)
	res.ResetAfter = refillTime(float64(limit.Burst)-tokens, perSec)
	if res.Allowed == 0 {
		res.RetryAfter = refillTime(1-tokens, perSec)
	}
	return res
}

func (l *localBuckets) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.seen) > idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// refillTime is how long perSec takes to add the given number of tokens.
func refillTime(tokens, perSec float64) time.Duration {
	if tokens <= 0 || perSec <= 0 {
		return 0
	}
	return time.Duration(tokens / perSec * float64(time.Second))
}
