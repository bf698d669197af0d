package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shutterbook/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Output: io.Discard})
}

func TestAllowEnforcesLimitPerKey(t *testing.T) {
	limiter := NewClientRateLimiter(3, time.Minute, testLogger())
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("request over the limit should be denied")
	}
	if !limiter.Allow("5.6.7.8") {
		t.Fatal("other clients must not share the same window")
	}
}

func TestAllowRecoversAfterWindow(t *testing.T) {
	limiter := NewClientRateLimiter(1, 20*time.Millisecond, testLogger())
	defer limiter.Stop()

	if !limiter.Allow("1.2.3.4") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("1.2.3.4") {
		t.Fatal("second request inside the window should be denied")
	}

	time.Sleep(30 * time.Millisecond)
	if !limiter.Allow("1.2.3.4") {
		t.Fatal("request after the window should be allowed again")
	}
}

func TestClientRateLimitMiddleware(t *testing.T) {
	limiter := NewClientRateLimiter(1, time.Minute, testLogger())
	defer limiter.Stop()

	handler := ClientRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil)
	req.RemoteAddr = "1.2.3.4:1234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status %d, want 429", rec.Code)
	}
}

func TestClientIPPrefersForwardedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")

	if got := clientIP(req); got != "203.0.113.9" {
		t.Errorf("clientIP = %q, want forwarded address", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.2, 10.0.0.1")
	if got := clientIP(req); got != "203.0.113.9" {
		t.Errorf("clientIP = %q, want first hop of the forwarded chain", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := clientIP(req); got != "10.0.0.1" {
		t.Errorf("clientIP = %q, want host without port", got)
	}
}
