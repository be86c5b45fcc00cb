// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package delegation

import (
	"context"
	"time"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/tracing"
)

// Sweeper proactively refreshes credentials whose refresh token has not
// been exercised recently. Long lived refresh tokens carry their own
// hard expiry upstream; a tenant with no traffic for weeks would
// otherwise hit it and need full re-authorization.
type Sweeper struct {
	storage     StorageInterface
	coordinator CoordinatorInterface

	interval   time.Duration
	staleAfter time.Duration

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func NewSweeper(
	storage StorageInterface,
	coordinator CoordinatorInterface,
	interval time.Duration,
	staleAfter time.Duration,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *Sweeper {
	s := new(Sweeper)

	s.storage = storage
	s.coordinator = coordinator
	s.interval = interval
	s.staleAfter = staleAfter

	s.tracer = tracer
	s.logger = logger

	return s
}

// Run blocks until ctx is cancelled, sweeping on every interval tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "delegation.Sweeper.sweep")
	defer span.End()

	stale, err := s.storage.ListStaleCredentials(ctx, time.Now().Add(-s.staleAfter))
	if err != nil {
		s.logger.Errorf("credential sweep listing failed: %v", err)
		return
	}

	for _, cred := range stale {
		// A stale credential's access token is long expired, so this
		// always takes the refresh path, sharing the single flight
		// group with any concurrent request traffic.
		if _, err := s.coordinator.GetValidAccessToken(ctx, cred); err != nil {
			s.logger.Warnf("proactive refresh failed for tenant %s provider %s: %v", cred.TenantID, cred.Provider, err)
		}
	}

	if len(stale) > 0 {
		s.logger.Infof("credential sweep processed %d stale credentials", len(stale))
	}
}
