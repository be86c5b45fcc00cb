// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package handoff

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/canonical/trust-service/internal/crypto"
	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
)

// macLabel scopes handoff MACs so a session artifact can never be
// presented as a handoff envelope.
const macLabel = "handoff"

// envelope is the transit wrapper around a session artifact. It is
// carried once as a query parameter and never persisted; the TTL is the
// only defense against the URL being logged.
type envelope struct {
	SessionArtifact string    `json:"session_artifact"`
	IssuedAt        time.Time `json:"issued_at"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	encrypter crypto.EncrypterInterface
	signer    crypto.SignerInterface

	ttl        time.Duration
	baseDomain string
	secure     bool

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	encrypter crypto.EncrypterInterface,
	signer crypto.SignerInterface,
	ttl time.Duration,
	baseDomain string,
	secure bool,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.encrypter = encrypter
	s.signer = signer
	s.ttl = ttl
	s.baseDomain = baseDomain
	s.secure = secure
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

func (s *Service) Create(sessionArtifact string) (string, error) {
	raw, err := json.Marshal(&envelope{
		SessionArtifact: sessionArtifact,
		IssuedAt:        s.now(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize handoff envelope: %w", err)
	}

	ciphertext, err := s.encrypter.Encrypt(raw)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt handoff envelope: %w", err)
	}

	return ciphertext + "." + s.signer.Sign(macLabel, []byte(ciphertext)), nil
}

func (s *Service) Parse(blob string) (string, bool) {
	artifact, reason := s.open(blob)
	if reason != "" {
		s.logger.Security().HandoffReject(reason)
		return "", false
	}

	return artifact, true
}

func (s *Service) open(blob string) (string, string) {
	ciphertext, mac, found := strings.Cut(blob, ".")
	if !found {
		return "", "malformed"
	}

	if !s.signer.Verify(macLabel, []byte(ciphertext), mac) {
		return "", "bad signature"
	}

	raw, err := s.encrypter.Decrypt(ciphertext)
	if err != nil {
		return "", "decrypt failure"
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", "malformed envelope"
	}

	if env.SessionArtifact == "" || env.IssuedAt.IsZero() {
		return "", "malformed envelope"
	}

	if s.now().Sub(env.IssuedAt) > s.ttl {
		return "", "expired"
	}

	return env.SessionArtifact, ""
}

// RedirectURL builds the tenant subdomain target the canonical host
// redirects to after the identity provider callback completes.
func (s *Service) RedirectURL(tenantSlug, env, returnTo string) string {
	scheme := "http"
	if s.secure {
		scheme = "https"
	}

	query := url.Values{}
	query.Set("handoff", env)
	if returnTo != "" {
		query.Set("return_to", returnTo)
	}

	target := url.URL{
		Scheme:   scheme,
		Host:     tenantSlug + "." + s.baseDomain,
		Path:     "/api/v0/auth/session",
		RawQuery: query.Encode(),
	}

	return target.String()
}
