// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ticketing

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
	"github.com/canonical/trust-service/pkg/delegation"
)

var _ delegation.ProviderInterface = (*Client)(nil)

// Client talks to the upstream ticketing provider's OAuth token
// endpoint on behalf of tenants. It implements the refresh grant only;
// the initial authorization code exchange happens elsewhere.
type Client struct {
	config   oauth2.Config
	probeURL string

	http *http.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(
	tokenURL string,
	clientID string,
	clientSecret string,
	probeURL string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Client {
	c := new(Client)

	c.config = oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	c.probeURL = probeURL
	c.http = http.DefaultClient

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}

// RefreshAccessToken exchanges a refresh token for a fresh token pair.
// A 400 or 401 from the token endpoint means the refresh token itself
// was rejected and is reported as delegation.ErrUnauthorized.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	ctx, span := c.tracer.Start(ctx, "ticketing.Client.RefreshAccessToken")
	defer span.End()

	source := c.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	token, err := source.Token()
	if err != nil {
		if retrieveErr, ok := err.(*oauth2.RetrieveError); ok {
			code := retrieveErr.Response.StatusCode
			if code == http.StatusBadRequest || code == http.StatusUnauthorized {
				return nil, fmt.Errorf("token endpoint returned %d: %w", code, delegation.ErrUnauthorized)
			}
		}
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	return token, nil
}

// ValidateCredentials probes the provider API with the access token.
// Callers bound the call with a context timeout.
func (c *Client) ValidateCredentials(ctx context.Context, accessToken string) error {
	ctx, span := c.tracer.Start(ctx, "ticketing.Client.ValidateCredentials")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.probeURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build probe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("credential probe failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("probe returned %d: %w", resp.StatusCode, delegation.ErrUnauthorized)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("probe returned %d", resp.StatusCode)
	}

	return nil
}
