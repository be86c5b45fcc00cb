// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package delegation

import (
	"errors"
)

var (
	// ErrUnauthorized marks a terminal refresh failure, the upstream
	// provider rejected the refresh token itself. Provider clients wrap
	// it so the coordinator can stop retrying and disconnect the tenant.
	ErrUnauthorized = errors.New("upstream rejected delegated credential")

	// ErrDisconnected is returned for credentials already marked
	// disconnected. The tenant must re-authorize the integration.
	ErrDisconnected = errors.New("delegated credential disconnected")
)
