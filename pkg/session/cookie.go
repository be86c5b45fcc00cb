// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"net/http"
)

// CookieName carries the session artifact. The cookie is set with no
// Domain attribute: subdomain isolation is load-bearing, a session set
// on tenantA.example.com must never be valid on tenantB.example.com.
const CookieName = "session"

func (s *Service) SetCookie(w http.ResponseWriter, artifact string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    artifact,
		Path:     "/",
		MaxAge:   int(s.lifetime.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie is the only revocation this design has: the server holds
// no session table to delete from.
func (s *Service) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
