// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"time"
)

// Payload is the full server-side view of a login. The server keeps no
// session table: everything lives in the signed and encrypted artifact
// the browser holds.
type Payload struct {
	SubjectID string `json:"subject_id"`
	// Provider is the identity provider that authenticated the subject.
	Provider string `json:"provider"`
	// Attributes is an opaque bag of display/profile values.
	Attributes map[string]string `json:"attributes,omitempty"`
	// SessionID is stable across rotations of the same login. Used for
	// CSRF binding and revocation correlation.
	SessionID string    `json:"session_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
