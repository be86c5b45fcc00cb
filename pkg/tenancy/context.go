// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"

	"github.com/canonical/trust-service/internal/types"
)

// Define a private custom type to avoid collisions
type contextKey struct{}

var tenantContextKey = contextKey{}

// WithTenant returns a new context with the given tenant derived from the parent context.
func WithTenant(ctx context.Context, tenant *types.Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey, tenant)
}

// TenantFromContext retrieves the tenant from the context.
// Returns nil and false if no tenant is present.
func TenantFromContext(ctx context.Context) (*types.Tenant, bool) {
	t, ok := ctx.Value(tenantContextKey).(*types.Tenant)
	return t, ok && t != nil
}
