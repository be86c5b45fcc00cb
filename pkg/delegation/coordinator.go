// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package delegation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/canonical/trust-service/internal/crypto"
	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
	"github.com/canonical/trust-service/internal/types"
)

var _ CoordinatorInterface = (*Coordinator)(nil)

// Coordinator hands out valid delegated access tokens, refreshing them
// upstream when they approach expiry. Upstream refresh tokens rotate on
// use, so two parallel refreshes of the same credential would invalidate
// each other and lock the tenant out until re-authorization. The
// per-credential single flight group is the correctness core of this
// type: the Nth concurrent caller for a tenant and provider observes the
// same outcome as the first, with exactly one upstream call between them.
type Coordinator struct {
	storage   StorageInterface
	provider  ProviderInterface
	encrypter crypto.EncrypterInterface

	safetyMargin    time.Duration
	upstreamTimeout time.Duration

	group singleflight.Group
	now   func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewCoordinator(
	storage StorageInterface,
	provider ProviderInterface,
	encrypter crypto.EncrypterInterface,
	safetyMargin time.Duration,
	upstreamTimeout time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Coordinator {
	c := new(Coordinator)

	c.storage = storage
	c.provider = provider
	c.encrypter = encrypter
	c.safetyMargin = safetyMargin
	c.upstreamTimeout = upstreamTimeout
	c.now = time.Now

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}

func (c *Coordinator) GetValidAccessToken(ctx context.Context, cred *types.DelegatedCredential) (string, error) {
	ctx, span := c.tracer.Start(ctx, "delegation.Coordinator.GetValidAccessToken")
	defer span.End()

	if cred == nil || !cred.Connected {
		return "", ErrDisconnected
	}

	access, err := c.encrypter.Decrypt(cred.EncryptedAccessToken)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt access token: %w", err)
	}

	if cred.ExpiresAt.After(c.now().Add(c.safetyMargin)) {
		return string(access), nil
	}

	// The in-flight entry is keyed per credential, since a tenant holds
	// an independent refresh token per provider. The group releases the
	// entry when the shared call settles, success or failure.
	token, err, _ := c.group.Do(cred.TenantID+":"+cred.Provider, func() (any, error) {
		return c.refresh(ctx, cred)
	})
	if err != nil {
		return "", err
	}

	return token.(string), nil
}

func (c *Coordinator) refresh(ctx context.Context, cred *types.DelegatedCredential) (string, error) {
	// The outcome is shared by every waiter, so the first caller's
	// cancellation must not abort it. The upstream timeout is the only
	// bound on the call.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.upstreamTimeout)
	defer cancel()

	refreshToken, err := c.encrypter.Decrypt(cred.EncryptedRefreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt refresh token: %w", err)
	}

	token, err := c.provider.RefreshAccessToken(ctx, string(refreshToken))
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			if markErr := c.storage.MarkCredentialDisconnected(ctx, cred.TenantID, cred.Provider); markErr != nil {
				c.logger.Errorf("failed to mark credential disconnected for tenant %s: %v", cred.TenantID, markErr)
			}
			c.logger.Security().CredentialDisconnected(cred.TenantID, cred.Provider)
		}
		return "", fmt.Errorf("upstream refresh failed: %w", err)
	}

	encryptedAccess, err := c.encrypter.Encrypt([]byte(token.AccessToken))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt access token: %w", err)
	}

	// Some providers only rotate the refresh token occasionally and
	// return an empty one otherwise.
	encryptedRefresh := cred.EncryptedRefreshToken
	if token.RefreshToken != "" {
		encryptedRefresh, err = c.encrypter.Encrypt([]byte(token.RefreshToken))
		if err != nil {
			return "", fmt.Errorf("failed to encrypt refresh token: %w", err)
		}
	}

	if err := c.storage.UpdateDelegatedCredential(ctx, cred.TenantID, cred.Provider, encryptedAccess, encryptedRefresh, token.Expiry); err != nil {
		return "", fmt.Errorf("failed to persist refreshed credential: %w", err)
	}

	c.logger.Security().CredentialRefreshed(cred.TenantID, cred.Provider)

	return token.AccessToken, nil
}
