// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package csrf

import (
	"encoding/json"
	"net/http"
)

// EnsureToken sets the token cookie on responses to requests that do
// not carry one yet, so the frontend always has a token to submit.
func (g *Guard) EnsureToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := r.Cookie(CookieName); err != nil {
				if _, err := g.Issue(w); err != nil {
					g.logger.Errorf("failed to issue csrf token: %v", err)
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Protect validates the double-submit token on every mutating request.
// GET, HEAD and OPTIONS pass through. The rejection carries no detail
// about which check failed.
func (g *Guard) Protect() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := g.tracer.Start(r.Context(), "csrf.Guard.Protect")
			defer span.End()

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			if !g.Validate(r) {
				g.logger.Security().CSRFReject(r.URL.Path)
				g.invalidRequestResponse(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (g *Guard) invalidRequestResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    "INVALID_REQUEST",
		"message": "invalid request",
	}); err != nil {
		g.logger.Errorf("failed to encode csrf rejection response: %v", err)
	}
}
