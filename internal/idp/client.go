// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package idp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	oidc "github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
)

// providerClaims is the slice of the OIDC discovery document this
// client cares about beyond what go-oidc exposes directly.
type providerClaims struct {
	RevocationEndpoint string `json:"revocation_endpoint"`
}

// Client wraps the upstream identity provider's discovered metadata.
// Session logout uses it to revoke provider tokens best effort; the
// authorization code exchange itself lives outside this service.
type Client struct {
	clientID     string
	clientSecret string

	revocationEndpoint string

	http *http.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(
	ctx context.Context,
	issuerURL string,
	clientID string,
	clientSecret string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*Client, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("identity provider discovery failed: %w", err)
	}

	var claims providerClaims
	if err := provider.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to read provider metadata: %w", err)
	}

	c := new(Client)

	c.clientID = clientID
	c.clientSecret = clientSecret
	c.revocationEndpoint = claims.RevocationEndpoint
	c.http = http.DefaultClient

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	if c.revocationEndpoint == "" {
		logger.Warnf("identity provider %s advertises no revocation endpoint, logout revocation disabled", issuerURL)
	}

	return c, nil
}

// RevokeToken posts an RFC 7009 revocation request. Providers without a
// revocation endpoint make this a no-op.
func (c *Client) RevokeToken(ctx context.Context, token string) error {
	ctx, span := c.tracer.Start(ctx, "idp.Client.RevokeToken")
	defer span.End()

	if c.revocationEndpoint == "" {
		return nil
	}

	form := url.Values{}
	form.Set("token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.revocationEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build revocation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("revocation call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("revocation endpoint returned %d", resp.StatusCode)
	}

	return nil
}
