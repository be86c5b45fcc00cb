// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"sync"
	"time"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
)

// Route classes with independent budgets. Unknown classes fall back to
// the generic API budget.
const (
	ClassAPI      = "api"
	ClassCallback = "callback"
	ClassTicket   = "ticket"
)

type Config struct {
	Window      time.Duration
	MaxRequests int
}

// DefaultConfigs returns the per-class budgets used in production.
func DefaultConfigs() map[string]Config {
	return map[string]Config{
		ClassAPI:      {Window: time.Minute, MaxRequests: 100},
		ClassCallback: {Window: 15 * time.Minute, MaxRequests: 10},
		ClassTicket:   {Window: time.Hour, MaxRequests: 5},
	}
}

// Decision is the outcome of an admission check, carrying everything the
// HTTP layer needs for the rate-limit response headers.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter is an in-process sliding-window-by-fixed-bucket counter keyed
// by client IP and route class. State is process-local and resets on
// restart; under a multi-instance deployment each instance counts
// independently. This is an accepted limitation, not a bug.
type Limiter struct {
	configs map[string]Config

	mu      sync.Mutex
	entries map[string]*entry

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewLimiter(
	configs map[string]Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Limiter {
	l := new(Limiter)

	l.configs = configs
	l.entries = make(map[string]*entry)
	l.now = time.Now

	l.tracer = tracer
	l.monitor = monitor
	l.logger = logger

	return l
}

// Check admits or rejects one request for clientIP against the class
// budget.
func (l *Limiter) Check(clientIP, class string) Decision {
	cfg, ok := l.configs[class]
	if !ok {
		cfg = l.configs[ClassAPI]
	}

	key := clientIP + ":" + class
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &entry{count: 1, resetAt: now.Add(cfg.Window)}
		l.entries[key] = e
		return Decision{
			Allowed:   true,
			Limit:     cfg.MaxRequests,
			Remaining: cfg.MaxRequests - 1,
			ResetAt:   e.resetAt,
		}
	}

	e.count++
	if e.count <= cfg.MaxRequests {
		return Decision{
			Allowed:   true,
			Limit:     cfg.MaxRequests,
			Remaining: cfg.MaxRequests - e.count,
			ResetAt:   e.resetAt,
		}
	}

	retryAfter := int((e.resetAt.Sub(now) + time.Second - 1) / time.Second)
	if retryAfter < 1 {
		retryAfter = 1
	}

	return Decision{
		Allowed:    false,
		Limit:      cfg.MaxRequests,
		Remaining:  0,
		ResetAt:    e.resetAt,
		RetryAfter: retryAfter,
	}
}

// Sweep removes entries whose window has passed, to bound memory.
func (l *Limiter) Sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, key)
		}
	}
}
