// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
)

const (
	// CookieName holds the double-submit token. Not HttpOnly on purpose:
	// the frontend reads it to echo it back in the request header.
	// SameSite keeps it away from cross-site requests.
	CookieName = "csrf_token"
	// HeaderName is the header mutating requests must carry.
	HeaderName = "X-CSRF-Token"
	// FormField is the fallback for plain form posts.
	FormField = "csrf_token"

	tokenBytes = 32
)

// Guard implements the double-submit CSRF pattern, decoupled from
// session identity: the token exists before any login and survives
// logout.
type Guard struct {
	secure bool

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewGuard(secure bool, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Guard {
	g := new(Guard)

	g.secure = secure

	g.tracer = tracer
	g.monitor = monitor
	g.logger = logger

	return g
}

// Issue generates a fresh high-entropy token and sets it as the token
// cookie. Returns the token value.
func (g *Guard) Issue(w http.ResponseWriter) (string, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate csrf token: %w", err)
	}

	token := base64.RawURLEncoding.EncodeToString(raw)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return token, nil
}

// Validate reports whether the request carries a token matching the
// cookie. All failure modes are indistinguishable to the caller.
func (g *Guard) Validate(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	submitted := r.Header.Get(HeaderName)
	if submitted == "" {
		submitted = r.PostFormValue(FormField)
	}
	if submitted == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(submitted)) == 1
}
