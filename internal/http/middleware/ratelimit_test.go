package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrprime/campaign-sync/pkg/ratelimiter"
)

func TestRateLimit(t *testing.T) {
	limiter := ratelimiter.New()
	limiter.SetPolicy("refresh", 2, time.Minute)

	calls := 0
	handler := RateLimit(limiter, "refresh", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))

	request := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, request("10.0.0.1:5001").Code)

	w := request("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too Many Requests"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, request("10.0.0.2:5000").Code)
	assert.Equal(t, 3, calls)
}

func TestClientAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "192.168.1.7:43122"
	assert.Equal(t, "192.168.1.7", clientAddr(req))

	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", clientAddr(req))
}
