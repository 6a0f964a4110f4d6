package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func doReq(h http.Handler, addr string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestLimiterAllowsUpToMax(t *testing.T) {
	l := New(3, time.Minute)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		if code := doReq(h, "10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: code %d", i+1, code)
		}
	}
	if code := doReq(h, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("over-limit request: code %d, want 429", code)
	}
}

func TestLimiterIsPerIP(t *testing.T) {
	l := New(1, time.Minute)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	if code := doReq(h, "10.0.0.1:1"); code != http.StatusOK {
		t.Fatalf("first ip: %d", code)
	}
	if code := doReq(h, "10.0.0.2:1"); code != http.StatusOK {
		t.Fatalf("second ip should have its own bucket, got %d", code)
	}
	if code := doReq(h, "10.0.0.1:1"); code != http.StatusTooManyRequests {
		t.Fatalf("first ip should be exhausted, got %d", code)
	}
}
