// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package delegation

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/canonical/trust-service/internal/types"
)

type CoordinatorInterface interface {
	GetValidAccessToken(ctx context.Context, cred *types.DelegatedCredential) (string, error)
}

// StorageInterface is the subset of the storage layer the coordinator
// and the background sweeper need.
type StorageInterface interface {
	GetDelegatedCredential(ctx context.Context, tenantID, provider string) (*types.DelegatedCredential, error)
	UpdateDelegatedCredential(ctx context.Context, tenantID, provider, encryptedAccess, encryptedRefresh string, expiresAt time.Time) error
	MarkCredentialDisconnected(ctx context.Context, tenantID, provider string) error
	ListStaleCredentials(ctx context.Context, refreshedBefore time.Time) ([]*types.DelegatedCredential, error)
}

// ProviderInterface is the upstream token endpoint. Implementations
// return an error wrapping ErrUnauthorized when the refresh token was
// rejected, any other error is treated as transient.
type ProviderInterface interface {
	RefreshAccessToken(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	ValidateCredentials(ctx context.Context, accessToken string) error
}
