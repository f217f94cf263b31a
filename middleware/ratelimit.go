package middleware

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ulule/limiter/v3"
	limiterhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"rqbackend/models/api"
)

const rateLimitExceededMessage = "Too many requests, please try again later."

// RateLimiter allows at most max requests per client IP in each fixed window
type RateLimiter struct {
	middleware *limiterhttp.Middleware
	now        func() time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	instance := limiter.New(memory.NewStore(), limiter.Rate{
		Period: window,
		Limit:  int64(max),
	})

	l := &RateLimiter{now: time.Now}
	l.middleware = limiterhttp.NewMiddleware(
		instance,
		limiterhttp.WithKeyGetter(clientIPFromRequest),
		limiterhttp.WithLimitReachedHandler(l.handleLimitReached),
		limiterhttp.WithErrorHandler(handleLimiterError),
	)
	return l
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return l.middleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l.setRateLimitHeaders(w)
		next.ServeHTTP(w, r)
	}))
}

func (l *RateLimiter) handleLimitReached(w http.ResponseWriter, r *http.Request) {
	l.setRateLimitHeaders(w)
	log.Printf("⚠️ Rate limit exceeded for %s on %s %s", clientIPFromRequest(r), r.Method, r.URL.Path)

	w.Header().Set("Retry-After", w.Header().Get("RateLimit-Reset"))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Error: rateLimitExceededMessage}); err != nil {
		log.Printf("❌ Failed to encode rate limit response: %v", err)
	}
}

// setRateLimitHeaders rewrites the limiter's X-RateLimit-* headers as RateLimit-*,
// with the reset given in seconds from now instead of a unix timestamp
func (l *RateLimiter) setRateLimitHeaders(w http.ResponseWriter) {
	header := w.Header()
	header.Set("RateLimit-Limit", header.Get("X-RateLimit-Limit"))
	header.Set("RateLimit-Remaining", header.Get("X-RateLimit-Remaining"))

	resetIn := int64(0)
	if resetAt, err := strconv.ParseInt(header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		resetIn = max(resetAt-l.now().Unix(), 0)
	}
	header.Set("RateLimit-Reset", strconv.FormatInt(resetIn, 10))

	header.Del("X-RateLimit-Limit")
	header.Del("X-RateLimit-Remaining")
	header.Del("X-RateLimit-Reset")
}

func handleLimiterError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("❌ Rate limiter failed for %s %s: %v", r.Method, r.URL.Path, err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	if err := json.NewEncoder(w).Encode(api.ErrorResponse{Error: "Internal server error"}); err != nil {
		log.Printf("❌ Failed to encode rate limiter error response: %v", err)
	}
}

func clientIPFromRequest(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
