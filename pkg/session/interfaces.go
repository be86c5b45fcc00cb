// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"net/http"
)

type ServiceInterface interface {
	Create(subjectID, provider string, attributes map[string]string) (string, error)
	// Parse validates an artifact. Forgery, tampering, malformation and
	// expiry are deliberately indistinguishable: callers only learn
	// valid or not.
	Parse(artifact string) (*Payload, bool)
	NeedsRotation(artifact string) bool
	Rotate(artifact string) (string, bool)

	SetCookie(w http.ResponseWriter, artifact string)
	ClearCookie(w http.ResponseWriter)
}
