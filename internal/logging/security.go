// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

// SecurityLogger emits structured audit events for security-relevant
// branches. Events carry classification only, never secret material
// (raw tokens, artifact contents, cookie values).
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "system.startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "system.shutdown"))
}

// SessionReject records a session artifact that failed validation.
// The reason stays in the logs, the caller only ever sees "invalid".
func (s *SecurityLogger) SessionReject(reason string) {
	s.l.Warn("session artifact rejected",
		zap.String("event", "session.reject"),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) SessionRotated(sessionID string) {
	s.l.Info("session rotated",
		zap.String("event", "session.rotate"),
		zap.String("session_id", sessionID),
	)
}

func (s *SecurityLogger) HandoffReject(reason string) {
	s.l.Warn("handoff envelope rejected",
		zap.String("event", "handoff.reject"),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) CSRFReject(path string) {
	s.l.Warn("csrf validation failed",
		zap.String("event", "csrf.reject"),
		zap.String("path", path),
	)
}

func (s *SecurityLogger) RateLimited(class, clientIP string) {
	s.l.Warn("rate limit exceeded",
		zap.String("event", "ratelimit.reject"),
		zap.String("route_class", class),
		zap.String("client_ip", clientIP),
	)
}

func (s *SecurityLogger) CredentialRefreshed(tenantID, provider string) {
	s.l.Info("delegated credential refreshed",
		zap.String("event", "credential.refresh"),
		zap.String("tenant_id", tenantID),
		zap.String("provider", provider),
	)
}

func (s *SecurityLogger) CredentialDisconnected(tenantID, provider string) {
	s.l.Warn("delegated credential disconnected",
		zap.String("event", "credential.disconnect"),
		zap.String("tenant_id", tenantID),
		zap.String("provider", provider),
	)
}
