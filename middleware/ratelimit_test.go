package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rqbackend/models/api"
)

func doRequest(handler http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slack/search", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func assertResetWithin(t *testing.T, rr *httptest.ResponseRecorder, window time.Duration) {
	t.Helper()
	resetIn, err := strconv.Atoi(rr.Header().Get("RateLimit-Reset"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, resetIn, 0)
	assert.LessOrEqual(t, resetIn, int(window.Seconds()))
}

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	limiter := NewRateLimiter(3, 15*time.Minute)
	handler := limiter.Middleware(okHandler())

	for i := 0; i < 3; i++ {
		rr := doRequest(handler, "10.0.0.1:5000")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "3", rr.Header().Get("RateLimit-Limit"))
		assert.Equal(t, []string{"2", "1", "0"}[i], rr.Header().Get("RateLimit-Remaining"))
		assertResetWithin(t, rr, 15*time.Minute)
		assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	}

	rr := doRequest(handler, "10.0.0.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "3", rr.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "0", rr.Header().Get("RateLimit-Remaining"))
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assertResetWithin(t, rr, 15*time.Minute)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Too many requests, please try again later.", resp.Error)
}

func TestRateLimiter_SeparateClients(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	handler := limiter.Middleware(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.2:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:2").Code)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	limiter := NewRateLimiter(1, time.Second)
	handler := limiter.Middleware(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, "10.0.0.1:1").Code)

	time.Sleep(1100 * time.Millisecond)
	assert.Equal(t, http.StatusOK, doRequest(handler, "10.0.0.1:1").Code)
}

func TestSetRateLimitHeaders_ConvertsResetToSeconds(t *testing.T) {
	limiter := NewRateLimiter(10, time.Minute)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	rr := httptest.NewRecorder()
	rr.Header().Set("X-RateLimit-Limit", "10")
	rr.Header().Set("X-RateLimit-Remaining", "4")
	rr.Header().Set("X-RateLimit-Reset", strconv.FormatInt(now.Add(42*time.Second).Unix(), 10))

	limiter.setRateLimitHeaders(rr)

	assert.Equal(t, "10", rr.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "4", rr.Header().Get("RateLimit-Remaining"))
	assert.Equal(t, "42", rr.Header().Get("RateLimit-Reset"))
	assert.Empty(t, rr.Header().Get("X-RateLimit-Reset"))
}
