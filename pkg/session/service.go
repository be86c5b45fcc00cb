// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/canonical/trust-service/internal/crypto"
	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
)

// macLabel scopes session MACs so no other artifact type verifies here.
const macLabel = "session"

var _ ServiceInterface = (*Service)(nil)

// Service creates, parses and rotates stateless session artifacts.
// An artifact is base64url(AEAD ciphertext) + "." + base64url(MAC over
// that ciphertext); the MAC is verified before any decryption is
// attempted.
type Service struct {
	encrypter crypto.EncrypterInterface
	signer    crypto.SignerInterface

	lifetime time.Duration
	secure   bool

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	encrypter crypto.EncrypterInterface,
	signer crypto.SignerInterface,
	lifetime time.Duration,
	secure bool,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.encrypter = encrypter
	s.signer = signer
	s.lifetime = lifetime
	s.secure = secure
	s.now = time.Now

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

func (s *Service) Create(subjectID, provider string, attributes map[string]string) (string, error) {
	sessionID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := s.now()
	payload := &Payload{
		SubjectID:  subjectID,
		Provider:   provider,
		Attributes: attributes,
		SessionID:  sessionID.String(),
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.lifetime),
	}

	return s.seal(payload)
}

func (s *Service) Parse(artifact string) (*Payload, bool) {
	payload, reason := s.open(artifact)
	if reason != "" {
		s.logger.Security().SessionReject(reason)
		return nil, false
	}

	return payload, true
}

// NeedsRotation reports whether the artifact has aged past half its
// lifetime. Rotation bounds the blast radius of a leaked artifact
// without forcing re-authentication.
func (s *Service) NeedsRotation(artifact string) bool {
	payload, reason := s.open(artifact)
	if reason != "" {
		return false
	}

	return s.now().Sub(payload.IssuedAt) > s.lifetime/2
}

// Rotate re-issues the login under a fresh encryption and lifetime,
// keeping the SessionID for identity continuity. The serialized form
// always differs from the input.
func (s *Service) Rotate(artifact string) (string, bool) {
	payload, reason := s.open(artifact)
	if reason != "" {
		return "", false
	}

	now := s.now()
	rotated := &Payload{
		SubjectID:  payload.SubjectID,
		Provider:   payload.Provider,
		Attributes: payload.Attributes,
		SessionID:  payload.SessionID,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.lifetime),
	}

	sealed, err := s.seal(rotated)
	if err != nil {
		s.logger.Errorf("failed to rotate session: %v", err)
		return "", false
	}

	s.logger.Security().SessionRotated(payload.SessionID)
	return sealed, true
}

func (s *Service) seal(payload *Payload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize session payload: %w", err)
	}

	ciphertext, err := s.encrypter.Encrypt(raw)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt session payload: %w", err)
	}

	return ciphertext + "." + s.signer.Sign(macLabel, []byte(ciphertext)), nil
}

// open validates an artifact and returns the payload, or a non-empty
// rejection reason. The reason is for operational logs only and never
// crosses the trust boundary.
func (s *Service) open(artifact string) (*Payload, string) {
	ciphertext, mac, found := strings.Cut(artifact, ".")
	if !found {
		return nil, "malformed"
	}

	if !s.signer.Verify(macLabel, []byte(ciphertext), mac) {
		return nil, "bad signature"
	}

	raw, err := s.encrypter.Decrypt(ciphertext)
	if err != nil {
		return nil, "decrypt failure"
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, "malformed payload"
	}

	if payload.SubjectID == "" || payload.SessionID == "" || !payload.ExpiresAt.After(payload.IssuedAt) {
		return nil, "malformed payload"
	}

	if s.now().After(payload.ExpiresAt) {
		return nil, "expired"
	}

	return &payload, ""
}
