// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package idp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
)

// newTestProvider serves a minimal discovery document. The revocation
// handler, when non nil, receives revocation posts.
func newTestProvider(t *testing.T, withRevocation bool, revocation http.HandlerFunc) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		doc := fmt.Sprintf(`{
			"issuer": %q,
			"authorization_endpoint": %q,
			"token_endpoint": %q,
			"jwks_uri": %q`, server.URL, server.URL+"/auth", server.URL+"/token", server.URL+"/keys")
		if withRevocation {
			doc += fmt.Sprintf(`, "revocation_endpoint": %q`, server.URL+"/revoke")
		}
		doc += "}"

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	})

	if revocation != nil {
		mux.HandleFunc("/revoke", revocation)
	}

	return server
}

func newTestClient(t *testing.T, issuerURL string) *Client {
	t.Helper()

	logger := logging.NewNoopLogger()
	client, err := NewClient(context.Background(), issuerURL, "client-id", "client-secret", tracing.NewNoopTracer(), monitoring.NewNoopMonitor("", logger), logger)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	return client
}

func TestRevokeToken(t *testing.T) {
	var revoked string
	server := newTestProvider(t, true, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			t.Error("expected client credentials on the revocation call")
		}

		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		revoked = r.Form.Get("token")

		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, server.URL)

	if err := client.RevokeToken(context.Background(), "the-token"); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}

	if revoked != "the-token" {
		t.Fatalf("expected the-token to be revoked, got %q", revoked)
	}
}

func TestRevokeTokenEndpointFailure(t *testing.T) {
	server := newTestProvider(t, true, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	client := newTestClient(t, server.URL)

	if err := client.RevokeToken(context.Background(), "the-token"); err == nil {
		t.Fatal("expected an error when the revocation endpoint fails")
	}
}

func TestRevokeTokenWithoutEndpoint(t *testing.T) {
	server := newTestProvider(t, false, nil)

	client := newTestClient(t, server.URL)

	// No revocation endpoint advertised, revocation is a no-op.
	if err := client.RevokeToken(context.Background(), "the-token"); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
}

func TestNewClientDiscoveryFailure(t *testing.T) {
	logger := logging.NewNoopLogger()

	_, err := NewClient(context.Background(), "http://127.0.0.1:1/nowhere", "id", "secret", tracing.NewNoopTracer(), monitoring.NewNoopMonitor("", logger), logger)
	if err == nil {
		t.Fatal("expected discovery against an unreachable issuer to fail")
	}
}
