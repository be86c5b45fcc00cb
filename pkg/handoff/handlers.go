// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package handoff

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
	"github.com/canonical/trust-service/pkg/session"
)

// idpTokenAttribute is the session attribute under which the login flow
// records the upstream provider token, revoked best effort on logout.
const idpTokenAttribute = "idp_token"

type API struct {
	service  ServiceInterface
	sessions session.ServiceInterface
	revoker  RevokerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	service ServiceInterface,
	sessions session.ServiceInterface,
	revoker RevokerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	a := new(API)

	a.service = service
	a.sessions = sessions
	a.revoker = revoker

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/auth/session", a.handleSetSession)
	mux.Post("/api/v0/auth/logout", a.handleLogout)
}

// handleSetSession completes a cross subdomain login: the canonical
// host redirected here with a handoff envelope in the query string, and
// the session cookie must be set on this host so it stays scoped to the
// tenant subdomain.
func (a *API) handleSetSession(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "handoff.API.handleSetSession")
	defer span.End()

	artifact, ok := a.service.Parse(r.URL.Query().Get("handoff"))
	if !ok {
		a.rejectInvalid(w)
		return
	}

	// The inner artifact must itself be an intact session before it is
	// handed to the browser.
	if _, ok := a.sessions.Parse(artifact); !ok {
		a.rejectInvalid(w)
		return
	}

	a.sessions.SetCookie(w, artifact)

	http.Redirect(w, r, sanitizeReturnTo(r.URL.Query().Get("return_to")), http.StatusSeeOther)
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "handoff.API.handleLogout")
	defer span.End()

	if cookie, err := r.Cookie(session.CookieName); err == nil {
		if payload, ok := a.sessions.Parse(cookie.Value); ok {
			if token := payload.Attributes[idpTokenAttribute]; token != "" && a.revoker != nil {
				if err := a.revoker.RevokeToken(ctx, token); err != nil {
					a.logger.Warnf("upstream token revocation failed: %v", err)
				}
			}
		}
	}

	a.sessions.ClearCookie(w)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"logged_out"}`))
}

func (a *API) rejectInvalid(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"code":"INVALID_REQUEST","message":"invalid request"}`))
}

// sanitizeReturnTo confines post login redirects to relative paths on
// the current host. Anything else falls back to the root.
func sanitizeReturnTo(returnTo string) string {
	if returnTo == "" {
		return "/"
	}

	if !strings.HasPrefix(returnTo, "/") || strings.HasPrefix(returnTo, "//") || strings.HasPrefix(returnTo, "/\\") {
		return "/"
	}

	return returnTo
}
