// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	validator "github.com/go-playground/validator/v10"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/storage"
	"github.com/canonical/trust-service/internal/tracing"
	"github.com/canonical/trust-service/internal/types"
)

// Subdomain labels that never identify a tenant.
var reservedLabels = map[string]bool{
	"www":    true,
	"app":    true,
	"api":    true,
	"admin":  true,
	"mail":   true,
	"smtp":   true,
	"ftp":    true,
	"static": true,
	"cdn":    true,
	"status": true,
}

const (
	slugMinLen = 3
	slugMaxLen = 63
)

var _ ResolverInterface = (*Resolver)(nil)

// Resolver maps request hosts to tenants with a short-TTL in-process
// cache. Negative results (unknown slug, reserved label, non-ACTIVE
// tenant) are cached the same way to bound database load under bursty
// traffic against nonexistent subdomains.
type Resolver struct {
	storage StorageInterface
	ttl     time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry

	validate *validator.Validate
	now      func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type cacheEntry struct {
	// tenant is nil for negative entries
	tenant    *types.Tenant
	expiresAt time.Time
}

func NewResolver(
	s StorageInterface,
	ttl time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Resolver {
	r := new(Resolver)

	r.storage = s
	r.ttl = ttl
	r.cache = make(map[string]cacheEntry)
	r.validate = validator.New()
	r.now = time.Now

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}

func (r *Resolver) Resolve(ctx context.Context, host string) *types.Tenant {
	ctx, span := r.tracer.Start(ctx, "tenancy.Resolver.Resolve")
	defer span.End()

	slug, ok := r.candidateSlug(host)
	if !ok {
		return nil
	}

	return r.ResolveSlug(ctx, slug)
}

func (r *Resolver) ResolveSlug(ctx context.Context, slug string) *types.Tenant {
	ctx, span := r.tracer.Start(ctx, "tenancy.Resolver.ResolveSlug")
	defer span.End()

	slug = strings.ToLower(slug)
	if !r.validSlug(slug) {
		return nil
	}

	if entry, hit := r.cached(slug); hit {
		return entry
	}

	tenant, err := r.storage.GetTenantBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			r.store(slug, nil)
			return nil
		}
		// Transient failures are not cached so the next request retries.
		r.logger.Errorf("tenant lookup failed for slug %q: %v", slug, err)
		return nil
	}

	// A tenant that is not ACTIVE is indistinguishable from one that does
	// not exist, including in the cache.
	if !tenant.Active() {
		r.store(slug, nil)
		return nil
	}

	r.store(slug, tenant)
	return tenant
}

func (r *Resolver) Invalidate(slug string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, strings.ToLower(slug))
}

func (r *Resolver) InvalidateAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]cacheEntry)
}

// Sweep drops expired cache entries. Run periodically to bound memory.
func (r *Resolver) Sweep() {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	for slug, entry := range r.cache {
		if now.After(entry.expiresAt) {
			delete(r.cache, slug)
		}
	}
}

// candidateSlug extracts the tenant slug from a host, or reports that
// subdomain tenancy does not apply to it.
func (r *Resolver) candidateSlug(host string) (string, bool) {
	hostname := strings.ToLower(host)
	if h, _, err := net.SplitHostPort(hostname); err == nil {
		hostname = h
	}

	// Bare IPs and localhost forms have no subdomain tenancy.
	if net.ParseIP(hostname) != nil || hostname == "localhost" || strings.HasSuffix(hostname, ".localhost") {
		return "", false
	}

	labels := strings.Split(hostname, ".")
	if len(labels) < 3 {
		return "", false
	}

	if reservedLabels[labels[0]] {
		return "", false
	}

	return labels[0], true
}

func (r *Resolver) validSlug(slug string) bool {
	if len(slug) < slugMinLen || len(slug) > slugMaxLen {
		return false
	}

	return r.validate.Var(slug, "hostname_rfc1123") == nil
}

func (r *Resolver) cached(slug string) (*types.Tenant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.cache[slug]
	if !ok || r.now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.tenant, true
}

func (r *Resolver) store(slug string, tenant *types.Tenant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[slug] = cacheEntry{
		tenant:    tenant,
		expiresAt: r.now().Add(r.ttl),
	}
}
