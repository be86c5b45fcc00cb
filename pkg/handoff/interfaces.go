// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package handoff

import (
	"context"
)

type ServiceInterface interface {
	// Create wraps a session artifact in a short lived envelope for
	// transit across the subdomain boundary.
	Create(sessionArtifact string) (string, error)
	// Parse unwraps an envelope. Forgery, tampering and expiry are
	// indistinguishable to the caller.
	Parse(envelope string) (string, bool)
	RedirectURL(tenantSlug, envelope, returnTo string) string
}

// RevokerInterface is the best effort logout hook against the upstream
// identity provider. Failures are logged, never surfaced.
type RevokerInterface interface {
	RevokeToken(ctx context.Context, token string) error
}
