// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package handoff

import (
	"strings"
	"testing"
	"time"

	"github.com/canonical/trust-service/internal/crypto"
	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
)

//go:generate mockgen -build_flags=--mod=mod -package handoff -destination ./mock_handoff.go -source=./interfaces.go

func newTestService(t *testing.T) *Service {
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
	return NewService(encrypter, signer, 30*time.Second, "example.com", true, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("", logger), logger)
}

func TestCreateParseRoundTrip(t *testing.T) {
	svc := newTestService(t)

	env, err := svc.Create("inner-session-artifact")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	artifact, ok := svc.Parse(env)
	if !ok {
		t.Fatal("expected envelope to parse")
	}

	if artifact != "inner-session-artifact" {
		t.Fatalf("expected inner artifact to survive transit, got %q", artifact)
	}
}

func TestParseWindow(t *testing.T) {
	svc := newTestService(t)

	base := time.Now()
	svc.now = func() time.Time { return base }

	env, err := svc.Create("inner-session-artifact")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc.now = func() time.Time { return base.Add(time.Second) }
	if _, ok := svc.Parse(env); !ok {
		t.Fatal("expected envelope to be valid one second after issuance")
	}

	svc.now = func() time.Time { return base.Add(31 * time.Second) }
	if _, ok := svc.Parse(env); ok {
		t.Fatal("expected envelope to be rejected past its TTL")
	}
}

func TestParseRejectsTampering(t *testing.T) {
	svc := newTestService(t)

	env, err := svc.Create("inner-session-artifact")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name     string
		envelope string
	}{
		{"empty", ""},
		{"no separator", strings.ReplaceAll(env, ".", "")},
		{"garbage", "not.real"},
		{"flipped byte", flipByte(env, 3)},
		{"truncated", env[:len(env)/2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := svc.Parse(tt.envelope); ok {
				t.Fatal("expected tampered envelope to be rejected")
			}
		})
	}
}

func TestSessionArtifactIsNotAnEnvelope(t *testing.T) {
	svc := newTestService(t)

	// An artifact MACed under a different label must never verify here
	// even though it is signed with the same key.
	raw, err := svc.encrypter.Encrypt([]byte(`{"session_artifact":"x","issued_at":"2026-01-01T00:00:00Z"}`))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	foreign := raw + "." + svc.signer.Sign("session", []byte(raw))
	if _, ok := svc.Parse(foreign); ok {
		t.Fatal("expected a session labelled artifact to be rejected as an envelope")
	}
}

func TestRedirectURL(t *testing.T) {
	svc := newTestService(t)

	got := svc.RedirectURL("acme", "ENVELOPE", "/tickets")

	if !strings.HasPrefix(got, "https://acme.example.com/api/v0/auth/session?") {
		t.Fatalf("unexpected redirect target: %q", got)
	}

	if !strings.Contains(got, "handoff=ENVELOPE") {
		t.Fatalf("expected handoff parameter, got %q", got)
	}

	if !strings.Contains(got, "return_to=%2Ftickets") {
		t.Fatalf("expected encoded return_to parameter, got %q", got)
	}
}

func flipByte(s string, i int) string {
	b := []byte(s)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}
