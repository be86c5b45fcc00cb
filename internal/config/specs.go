// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// EncryptionKey and SigningKey are base64 encoded 32 byte keys.
	EncryptionKey string `envconfig:"encryption_key" required:"true"`
	SigningKey    string `envconfig:"signing_key" required:"true"`

	// BaseDomain is the apex domain tenant subdomains hang off of,
	// e.g. "example.com" serves tenants as "<slug>.example.com".
	BaseDomain string `envconfig:"base_domain" required:"true"`
	// SecureCookies should only be disabled for local development.
	SecureCookies bool `envconfig:"secure_cookies" default:"true"`
	// DevTenantHeaderEnabled allows the X-Dev-Tenant header to select a
	// tenant on hosts without subdomain tenancy (localhost, bare IPs).
	// Never enable in production.
	DevTenantHeaderEnabled bool `envconfig:"dev_tenant_header_enabled" default:"false"`

	SessionLifetime time.Duration `envconfig:"session_lifetime" default:"168h"`
	HandoffTTL      time.Duration `envconfig:"handoff_ttl" default:"30s"`
	TenantCacheTTL  time.Duration `envconfig:"tenant_cache_ttl" default:"5m"`

	RateLimitSweepInterval time.Duration `envconfig:"rate_limit_sweep_interval" default:"5m"`

	// Delegated OAuth credential refresh.
	RefreshSafetyMargin  time.Duration `envconfig:"refresh_safety_margin" default:"5m"`
	CredentialSweepEvery time.Duration `envconfig:"credential_sweep_every" default:"12h"`
	CredentialStaleAfter time.Duration `envconfig:"credential_stale_after" default:"168h"`

	TicketingTokenURL   string        `envconfig:"ticketing_token_url"`
	TicketingClientID   string        `envconfig:"ticketing_client_id"`
	TicketingSecret     string        `envconfig:"ticketing_client_secret"`
	TicketingProbeURL   string        `envconfig:"ticketing_probe_url"`
	UpstreamCallTimeout time.Duration `envconfig:"upstream_call_timeout" default:"10s"`

	IdentityProviderURL  string `envconfig:"identity_provider_url"`
	IdentityClientID     string `envconfig:"identity_client_id"`
	IdentityClientSecret string `envconfig:"identity_client_secret"`
}
