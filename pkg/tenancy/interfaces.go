// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"

	"github.com/canonical/trust-service/internal/types"
)

type ResolverInterface interface {
	// Resolve maps a request host to its ACTIVE tenant, or nil.
	Resolve(ctx context.Context, host string) *types.Tenant
	// ResolveSlug looks up an ACTIVE tenant by slug directly, or nil.
	ResolveSlug(ctx context.Context, slug string) *types.Tenant
	Invalidate(slug string)
	InvalidateAll()
}

// StorageInterface is the subset of the storage layer the resolver needs.
type StorageInterface interface {
	GetTenantBySlug(ctx context.Context, slug string) (*types.Tenant, error)
}
