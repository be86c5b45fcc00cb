// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/trust-service/internal/db"
	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
	"github.com/canonical/trust-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	status := t.Status
	if status == "" {
		status = types.TenantStatusSetup
	}

	var newTenant types.Tenant
	err = s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "slug", "name", "status", "plan").
		Values(id.String(), t.Slug, t.Name, status, t.Plan).
		Suffix("RETURNING id, slug, name, status, plan, created_at").
		QueryRowContext(ctx).
		Scan(&newTenant.ID, &newTenant.Slug, &newTenant.Name, &newTenant.Status, &newTenant.Plan, &newTenant.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert tenant: %w", err)
	}

	return &newTenant, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	return s.getTenant(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetTenantBySlug(ctx context.Context, slug string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantBySlug")
	defer span.End()

	return s.getTenant(ctx, sq.Eq{"slug": slug})
}

func (s *Storage) getTenant(ctx context.Context, pred sq.Eq) (*types.Tenant, error) {
	var t types.Tenant
	err := s.db.Statement(ctx).
		Select("id", "slug", "name", "status", "plan", "created_at").
		From("tenants").
		Where(pred).
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Slug, &t.Name, &t.Status, &t.Plan, &t.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &t, nil
}

func (s *Storage) SetTenantStatus(ctx context.Context, id, status string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetTenantStatus")
	defer span.End()

	if status != types.TenantStatusSuspended {
		return s.setTenantStatus(ctx, id, status)
	}

	// Suspension also severs the tenant's delegated grants, in the same
	// transaction as the status flip, so refresh traffic stops the moment
	// the tenant disappears from request handling.
	return s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.setTenantStatus(ctx, id, status); err != nil {
			return err
		}

		_, err := s.db.Statement(ctx).
			Update("delegated_credentials").
			Set("connected", false).
			Where(sq.Eq{"tenant_id": id}).
			ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to disconnect tenant credentials: %w", err)
		}

		return nil
	})
}

func (s *Storage) setTenantStatus(ctx context.Context, id, status string) error {
	res, err := s.db.Statement(ctx).
		Update("tenants").
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update tenant status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) GetDelegatedCredential(ctx context.Context, tenantID, provider string) (*types.DelegatedCredential, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetDelegatedCredential")
	defer span.End()

	var c types.DelegatedCredential
	err := s.db.Statement(ctx).
		Select("id", "tenant_id", "provider", "encrypted_access_token", "encrypted_refresh_token", "expires_at", "connected", "last_refreshed_at", "created_at").
		From("delegated_credentials").
		Where(sq.Eq{"tenant_id": tenantID, "provider": provider}).
		QueryRowContext(ctx).
		Scan(&c.ID, &c.TenantID, &c.Provider, &c.EncryptedAccessToken, &c.EncryptedRefreshToken, &c.ExpiresAt, &c.Connected, &c.LastRefreshedAt, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get delegated credential: %w", err)
	}

	return &c, nil
}

// UpdateDelegatedCredential persists a freshly rotated token pair. The
// refresh coordinator is the only writer after the initial authorization
// code exchange.
func (s *Storage) UpdateDelegatedCredential(ctx context.Context, tenantID, provider, encryptedAccess, encryptedRefresh string, expiresAt time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateDelegatedCredential")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("delegated_credentials").
		Set("encrypted_access_token", encryptedAccess).
		Set("encrypted_refresh_token", encryptedRefresh).
		Set("expires_at", expiresAt).
		Set("connected", true).
		Set("last_refreshed_at", sq.Expr("now()")).
		Where(sq.Eq{"tenant_id": tenantID, "provider": provider}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update delegated credential: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) MarkCredentialDisconnected(ctx context.Context, tenantID, provider string) error {
	ctx, span := s.tracer.Start(ctx, "storage.MarkCredentialDisconnected")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("delegated_credentials").
		Set("connected", false).
		Where(sq.Eq{"tenant_id": tenantID, "provider": provider}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to mark credential disconnected: %w", err)
	}

	return nil
}

// ListStaleCredentials returns connected credentials that have not been
// refreshed since the given time. Used by the background sweep to keep
// long-lived refresh tokens from hard-expiring untouched.
func (s *Storage) ListStaleCredentials(ctx context.Context, refreshedBefore time.Time) ([]*types.DelegatedCredential, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListStaleCredentials")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "tenant_id", "provider", "encrypted_access_token", "encrypted_refresh_token", "expires_at", "connected", "last_refreshed_at", "created_at").
		From("delegated_credentials").
		Where(sq.Eq{"connected": true}).
		Where(sq.Lt{"last_refreshed_at": refreshedBefore}).
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list stale credentials: %w", err)
	}
	defer rows.Close()

	var creds []*types.DelegatedCredential
	for rows.Next() {
		var c types.DelegatedCredential
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Provider, &c.EncryptedAccessToken, &c.EncryptedRefreshToken, &c.ExpiresAt, &c.Connected, &c.LastRefreshedAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		creds = append(creds, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credential rows: %w", err)
	}

	return creds, nil
}
