// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package handoff

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/trust-service/internal/crypto"
	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
	"github.com/canonical/trust-service/pkg/session"
	gomock "go.uber.org/mock/gomock"
)

func newTestSessionService(t *testing.T) *session.Service {
	t.Helper()

	encrypter, err := crypto.NewEncrypter([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewEncrypter: %v", err)
	}

	signer, err := crypto.NewSigner([]byte("fedcba9876543210fedcba9876543210"))
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}

	logger := logging.NewNoopLogger()
	return session.NewService(encrypter, signer, time.Hour, true, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("", logger), logger)
}

func newTestAPI(t *testing.T, revoker RevokerInterface) (*API, *Service, *session.Service, *chi.Mux) {
	t.Helper()

	handoffs := newTestService(t)
	sessions := newTestSessionService(t)

	logger := logging.NewNoopLogger()
	api := NewAPI(handoffs, sessions, revoker, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("", logger), logger)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	return api, handoffs, sessions, mux
}

func TestHandleSetSession(t *testing.T) {
	_, handoffs, sessions, mux := newTestAPI(t, nil)

	artifact, err := sessions.Create("user-1", "google", nil)
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}

	env, err := handoffs.Create(artifact)
	if err != nil {
		t.Fatalf("Create envelope: %v", err)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, handoffs.RedirectURL("acme", env, "/tickets"), nil))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}

	if got := rr.Header().Get("Location"); got != "/tickets" {
		t.Fatalf("expected redirect to /tickets, got %q", got)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.CookieName {
		t.Fatal("expected a session cookie to be set")
	}

	if cookies[0].Value != artifact {
		t.Fatal("expected the inner session artifact in the cookie")
	}

	if cookies[0].Domain != "" {
		t.Fatal("expected the session cookie to carry no Domain attribute")
	}
}

func TestHandleSetSessionRejectsInvalid(t *testing.T) {
	_, handoffs, sessions, mux := newTestAPI(t, nil)

	artifact, err := sessions.Create("user-1", "google", nil)
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}

	base := time.Now()
	handoffs.now = func() time.Time { return base }
	expired, err := handoffs.Create(artifact)
	if err != nil {
		t.Fatalf("Create envelope: %v", err)
	}
	handoffs.now = func() time.Time { return base.Add(time.Minute) }

	tests := []struct {
		name   string
		target string
	}{
		{"missing envelope", "/api/v0/auth/session"},
		{"forged envelope", "/api/v0/auth/session?handoff=forged.blob"},
		{"expired envelope", "/api/v0/auth/session?handoff=" + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rr.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rr.Code)
			}

			if len(rr.Result().Cookies()) != 0 {
				t.Fatal("expected no cookie on rejection")
			}
		})
	}
}

func TestHandleSetSessionSanitizesReturnTo(t *testing.T) {
	_, handoffs, sessions, mux := newTestAPI(t, nil)

	artifact, err := sessions.Create("user-1", "google", nil)
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}

	tests := []struct {
		name     string
		returnTo string
		want     string
	}{
		{"empty", "", "/"},
		{"relative", "/tickets/42", "/tickets/42"},
		{"absolute url", "https://evil.example.net/", "/"},
		{"protocol relative", "//evil.example.net/", "/"},
		{"backslash trick", "/\\evil.example.net", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := handoffs.Create(artifact)
			if err != nil {
				t.Fatalf("Create envelope: %v", err)
			}

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, handoffs.RedirectURL("acme", env, tt.returnTo), nil))

			if rr.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", rr.Code)
			}

			if got := rr.Header().Get("Location"); got != tt.want {
				t.Fatalf("expected redirect to %q, got %q", tt.want, got)
			}
		})
	}
}

func TestHandleLogout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	revoker := NewMockRevokerInterface(ctrl)
	revoker.EXPECT().RevokeToken(gomock.Any(), "upstream-token").Return(nil)

	_, _, sessions, mux := newTestAPI(t, revoker)

	artifact, err := sessions.Create("user-1", "google", map[string]string{idpTokenAttribute: "upstream-token"})
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v0/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: artifact})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatal("expected the session cookie to be cleared")
	}
}

func TestHandleLogoutAnonymous(t *testing.T) {
	// No cookie, no revocation. Logout still clears and succeeds.
	_, _, _, mux := newTestAPI(t, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v0/auth/logout", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatal("expected a deletion cookie")
	}
}

func TestHandleLogoutRevocationFailureIsBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	revoker := NewMockRevokerInterface(ctrl)
	revoker.EXPECT().RevokeToken(gomock.Any(), "upstream-token").Return(http.ErrHandlerTimeout)

	_, _, sessions, mux := newTestAPI(t, revoker)

	artifact, err := sessions.Create("user-1", "google", map[string]string{idpTokenAttribute: "upstream-token"})
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v0/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: artifact})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected logout to succeed despite revocation failure, got %d", rr.Code)
	}
}
