// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
	"github.com/canonical/trust-service/pkg/csrf"
	"github.com/canonical/trust-service/pkg/handoff"
	"github.com/canonical/trust-service/pkg/metrics"
	"github.com/canonical/trust-service/pkg/ratelimit"
	"github.com/canonical/trust-service/pkg/session"
	"github.com/canonical/trust-service/pkg/status"
	"github.com/canonical/trust-service/pkg/tenancy"
)

// NewRouter assembles the request trust pipeline around the application
// handler. Every request is tenant resolved and rate limited; mutations
// pass the CSRF guard; authenticated reads carry a parsed session in
// context. The app handler serves everything this service does not own
// (rendering, CRUD, billing).
func NewRouter(
	tenantMiddleware *tenancy.Middleware,
	limiter *ratelimit.Limiter,
	guard *csrf.Guard,
	sessionMiddleware *session.Middleware,
	handoffAPI *handoff.API,
	app http.Handler,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		middleware.RealIP,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	// Auth endpoints live on the tenant subdomain and share the strict
	// callback budget with the identity provider callback.
	router.Group(func(r chi.Router) {
		r.Use(
			tenantMiddleware.Resolve(),
			tenantMiddleware.RequireTenant(),
			limiter.Middleware(ratelimit.ClassCallback),
			guard.EnsureToken(),
			guard.Protect(),
		)
		handoffAPI.RegisterEndpoints(r.(*chi.Mux))
	})

	router.Group(func(r chi.Router) {
		r.Use(
			tenantMiddleware.Resolve(),
			tenantMiddleware.RequireTenant(),
			guard.EnsureToken(),
			guard.Protect(),
			sessionMiddleware.Authenticate(),
		)

		r.With(limiter.Middleware(ratelimit.ClassTicket)).Handle("/api/v0/tickets", app)
		r.With(limiter.Middleware(ratelimit.ClassTicket)).Handle("/api/v0/tickets/*", app)
		r.With(limiter.Middleware(ratelimit.ClassAPI)).Handle("/*", app)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
