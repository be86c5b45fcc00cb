// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/trust-service/internal/types"
)

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*types.Tenant, error)
	SetTenantStatus(ctx context.Context, id, status string) error

	GetDelegatedCredential(ctx context.Context, tenantID, provider string) (*types.DelegatedCredential, error)
	UpdateDelegatedCredential(ctx context.Context, tenantID, provider, encryptedAccess, encryptedRefresh string, expiresAt time.Time) error
	MarkCredentialDisconnected(ctx context.Context, tenantID, provider string) error
	ListStaleCredentials(ctx context.Context, refreshedBefore time.Time) ([]*types.DelegatedCredential, error)
}
