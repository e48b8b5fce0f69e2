package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
)

type fakeLimiter struct {
	counts map[string]int64
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{counts: make(map[string]int64)}
}

func (f *fakeLimiter) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	f.counts[scope]++
	return f.counts[scope] <= limit, f.counts[scope], nil
}

func TestFormRateLimitBlocksAfterLimit(t *testing.T) {
	limiter := newFakeLimiter()
	policy := NewFormRateLimitPolicy("forms", time.Minute, 2)
	var calls int
	handler := FormRateLimit(policy, limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/public/leads", nil)
		req.RemoteAddr = "203.0.113.7:51234"
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp
	}

	if resp := send(); resp.Code != http.StatusCreated {
		t.Fatalf("first request blocked: %d", resp.Code)
	}
	if resp := send(); resp.Code != http.StatusCreated {
		t.Fatalf("second request blocked: %d", resp.Code)
	}

	resp := send()
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeRateLimit) {
		t.Fatalf("expected code %s got %s", pkgerrors.CodeRateLimit, payload.Error.Code)
	}
	if calls != 2 {
		t.Fatalf("handler ran %d times, expected 2", calls)
	}
}

func TestFormRateLimitCountsPerClient(t *testing.T) {
	limiter := newFakeLimiter()
	policy := NewFormRateLimitPolicy("forms", time.Minute, 1)
	handler := FormRateLimit(policy, limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/public/contact", nil)
		req.Header.Set("X-Forwarded-For", ip)
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send("198.51.100.1"); code != http.StatusCreated {
		t.Fatalf("first client blocked: %d", code)
	}
	if code := send("198.51.100.2"); code != http.StatusCreated {
		t.Fatalf("second client should have its own window: %d", code)
	}
	if code := send("198.51.100.1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected repeat client blocked, got %d", code)
	}
}

func TestFormRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	limiter := newFakeLimiter()
	policy := NewFormRateLimitPolicy("forms", 0, 0)
	var calls int
	handler := FormRateLimit(policy, limiter, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 5; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/public/leads", nil))
	}
	if calls != 5 {
		t.Fatalf("disabled policy should not throttle, handler ran %d times", calls)
	}
	if len(limiter.counts) != 0 {
		t.Fatalf("disabled policy should not touch the limiter")
	}
}
