// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"encoding/json"
	"net/http"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
)

const (
	// HeaderName is the internal routing header consumed by downstream
	// rendering and API layers. It is stripped from every inbound request
	// before the resolver sets it, so it can never originate outside the
	// edge tier.
	HeaderName = "X-Tenant-Slug"

	// DevHeaderName selects a tenant on hosts without subdomain tenancy.
	// Only honored when the middleware is built with devHeader enabled.
	DevHeaderName = "X-Dev-Tenant"
)

type Middleware struct {
	resolver  ResolverInterface
	devHeader bool

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(resolver ResolverInterface, devHeader bool, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		resolver:  resolver,
		devHeader: devHeader,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

// Resolve attaches tenant context to every request. The routing header
// is always overwritten, never trusted from the client.
func (m *Middleware) Resolve() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "tenancy.Middleware.Resolve")
			defer span.End()

			r.Header.Del(HeaderName)

			tenant := m.resolver.Resolve(ctx, r.Host)
			if tenant == nil && m.devHeader {
				if hint := r.Header.Get(DevHeaderName); hint != "" {
					tenant = m.resolver.ResolveSlug(ctx, hint)
				}
			}

			if tenant != nil {
				r.Header.Set(HeaderName, tenant.Slug)
				ctx = WithTenant(ctx, tenant)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant rejects requests without a resolved tenant. Reserved
// labels, unknown slugs and suspended tenants all get the same response.
func (m *Middleware) RequireTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := TenantFromContext(r.Context()); !ok {
				m.notFoundResponse(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) notFoundResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    "TENANT_NOT_FOUND",
		"message": "tenant not found",
	}); err != nil {
		m.logger.Errorf("failed to encode tenant not found response: %v", err)
	}
}
