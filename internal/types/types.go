// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Tenant lifecycle states. A tenant is only visible to request handling
// while ACTIVE; SETUP and SUSPENDED tenants resolve as not found.
const (
	TenantStatusSetup     = "SETUP"
	TenantStatusActive    = "ACTIVE"
	TenantStatusSuspended = "SUSPENDED"
)

type Tenant struct {
	ID        string    `db:"id"`
	Slug      string    `db:"slug"`
	Name      string    `db:"name"`
	Status    string    `db:"status"`
	Plan      string    `db:"plan"`
	CreatedAt time.Time `db:"created_at"`
}

func (t *Tenant) Active() bool {
	return t != nil && t.Status == TenantStatusActive
}

// DelegatedCredential is an OAuth access/refresh token pair held on behalf
// of a tenant for a third-party integration. Token columns are stored
// encrypted and only ever decrypted in memory.
type DelegatedCredential struct {
	ID                    string    `db:"id"`
	TenantID              string    `db:"tenant_id"`
	Provider              string    `db:"provider"`
	EncryptedAccessToken  string    `db:"encrypted_access_token"`
	EncryptedRefreshToken string    `db:"encrypted_refresh_token"`
	ExpiresAt             time.Time `db:"expires_at"`
	Connected             bool      `db:"connected"`
	LastRefreshedAt       time.Time `db:"last_refreshed_at"`
	CreatedAt             time.Time `db:"created_at"`
}
