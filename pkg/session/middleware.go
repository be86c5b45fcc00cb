// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"net/http"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/tracing"
)

type Middleware struct {
	service ServiceInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func NewMiddleware(service ServiceInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Middleware {
	m := new(Middleware)

	m.service = service
	m.tracer = tracer
	m.logger = logger

	return m
}

// Authenticate parses the session cookie, if any, into the request
// context. Invalid artifacts leave the request anonymous, they never
// fail it. Valid sessions past half life are transparently rotated so
// the browser cookie and the context payload stay in lockstep.
func (m *Middleware) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			payload, ok := m.service.Parse(cookie.Value)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if m.service.NeedsRotation(cookie.Value) {
				if rotated, ok := m.service.Rotate(cookie.Value); ok {
					m.service.SetCookie(w, rotated)
				}
			}

			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
		})
	}
}

// RequireSession rejects anonymous requests. The response carries no
// detail about why the session was unacceptable.
func (m *Middleware) RequireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if PayloadFromContext(r.Context()) == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"code":"UNAUTHENTICATED","message":"authentication required"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
