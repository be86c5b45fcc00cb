// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
)

func newTestLimiter(t *testing.T, configs map[string]Config) *Limiter {
	t.Helper()
	logger := logging.NewNoopLogger()
	return NewLimiter(configs, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("", logger), logger)
}

func TestLimiterAdmission(t *testing.T) {
	l := newTestLimiter(t, map[string]Config{
		ClassAPI: {Window: time.Minute, MaxRequests: 3},
	})

	// The Nth request in the window is admitted, the (N+1)th rejected.
	for i := 1; i <= 3; i++ {
		if d := l.Check("10.0.0.1", ClassAPI); !d.Allowed {
			t.Fatalf("request %d should be admitted", i)
		}
	}

	d := l.Check("10.0.0.1", ClassAPI)
	if d.Allowed {
		t.Fatal("request over budget should be rejected")
	}
	if d.RetryAfter <= 0 {
		t.Errorf("expected positive retry-after, got %d", d.RetryAfter)
	}
	if d.Remaining != 0 {
		t.Errorf("expected 0 remaining, got %d", d.Remaining)
	}
}

func TestLimiterWindowReset(t *testing.T) {
	l := newTestLimiter(t, map[string]Config{
		ClassAPI: {Window: time.Minute, MaxRequests: 1},
	})

	current := time.Now()
	l.now = func() time.Time { return current }

	if d := l.Check("10.0.0.1", ClassAPI); !d.Allowed {
		t.Fatal("first request should be admitted")
	}
	if d := l.Check("10.0.0.1", ClassAPI); d.Allowed {
		t.Fatal("second request should be rejected")
	}

	current = current.Add(time.Minute + time.Second)

	if d := l.Check("10.0.0.1", ClassAPI); !d.Allowed {
		t.Fatal("request after window reset should be admitted")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := newTestLimiter(t, map[string]Config{
		ClassAPI:    {Window: time.Minute, MaxRequests: 1},
		ClassTicket: {Window: time.Hour, MaxRequests: 1},
	})

	if d := l.Check("10.0.0.1", ClassAPI); !d.Allowed {
		t.Fatal("first request should be admitted")
	}

	// A different IP or a different class has its own budget.
	if d := l.Check("10.0.0.2", ClassAPI); !d.Allowed {
		t.Error("different IP should not share the counter")
	}
	if d := l.Check("10.0.0.1", ClassTicket); !d.Allowed {
		t.Error("different route class should not share the counter")
	}
}

func TestLimiterUnknownClassFallsBack(t *testing.T) {
	l := newTestLimiter(t, map[string]Config{
		ClassAPI: {Window: time.Minute, MaxRequests: 1},
	})

	if d := l.Check("10.0.0.1", "nonexistent"); !d.Allowed {
		t.Fatal("first request should be admitted")
	}
	if d := l.Check("10.0.0.1", "nonexistent"); d.Allowed {
		t.Error("fallback budget should apply to unknown classes")
	}
}

func TestLimiterRetryAfterRoundsUp(t *testing.T) {
	l := newTestLimiter(t, map[string]Config{
		ClassAPI: {Window: 90 * time.Second, MaxRequests: 1},
	})

	current := time.Now()
	l.now = func() time.Time { return current }

	l.Check("10.0.0.1", ClassAPI)

	current = current.Add(100 * time.Millisecond)
	d := l.Check("10.0.0.1", ClassAPI)

	if d.Allowed {
		t.Fatal("expected rejection")
	}
	if d.RetryAfter != 90 {
		t.Errorf("expected retry-after 90 (ceil), got %d", d.RetryAfter)
	}
}

func TestLimiterSweep(t *testing.T) {
	l := newTestLimiter(t, map[string]Config{
		ClassAPI: {Window: time.Minute, MaxRequests: 10},
	})

	current := time.Now()
	l.now = func() time.Time { return current }

	l.Check("10.0.0.1", ClassAPI)
	l.Check("10.0.0.2", ClassAPI)

	current = current.Add(2 * time.Minute)
	l.Check("10.0.0.3", ClassAPI)

	l.Sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) != 1 {
		t.Errorf("expected 1 live entry after sweep, got %d", len(l.entries))
	}
}

func TestMiddlewareHeaders(t *testing.T) {
	l := newTestLimiter(t, map[string]Config{
		ClassAPI: {Window: time.Minute, MaxRequests: 2},
	})

	handler := l.Middleware(ClassAPI)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:50000"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-RateLimit-Limit"); got != "2" {
		t.Errorf("expected limit header 2, got %q", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "1" {
		t.Errorf("expected remaining header 1, got %q", got)
	}
	if rec.Header().Get("X-RateLimit-Reset") == "" {
		t.Error("expected reset header")
	}
}

func TestMiddlewareRejection(t *testing.T) {
	l := newTestLimiter(t, map[string]Config{
		ClassAPI: {Window: time.Minute, MaxRequests: 1},
	})

	handler := l.Middleware(ClassAPI)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:50000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if i == 0 {
			continue
		}

		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
		if rec.Header().Get("Retry-After") == "" {
			t.Error("expected Retry-After header")
		}

		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON body: %v", err)
		}
		if body["code"] != "RATE_LIMIT" {
			t.Errorf("expected code RATE_LIMIT, got %v", body["code"])
		}
	}
}
