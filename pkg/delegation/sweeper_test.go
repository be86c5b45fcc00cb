// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package delegation

import (
	"context"
	"errors"
	"testing"
	"time"

	gomock "go.uber.org/mock/gomock"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/tracing"
	"github.com/canonical/trust-service/internal/types"
)

func TestSweeperRefreshesStaleCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := NewMockStorageInterface(ctrl)
	coordinator := NewMockCoordinatorInterface(ctrl)

	stale := []*types.DelegatedCredential{
		{ID: "cred-1", TenantID: "tenant-1", Provider: "zendesk", Connected: true},
		{ID: "cred-2", TenantID: "tenant-2", Provider: "zendesk", Connected: true},
	}

	storage.EXPECT().ListStaleCredentials(gomock.Any(), gomock.Any()).Return(stale, nil)
	coordinator.EXPECT().GetValidAccessToken(gomock.Any(), stale[0]).Return("token-1", nil)
	coordinator.EXPECT().GetValidAccessToken(gomock.Any(), stale[1]).Return("", errors.New("upstream 503"))

	sweeper := NewSweeper(storage, coordinator, 12*time.Hour, 168*time.Hour, tracing.NewNoopTracer(), logging.NewNoopLogger())
	sweeper.sweep(context.Background())
}

func TestSweeperListFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := NewMockStorageInterface(ctrl)
	coordinator := NewMockCoordinatorInterface(ctrl)

	storage.EXPECT().ListStaleCredentials(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	sweeper := NewSweeper(storage, coordinator, 12*time.Hour, 168*time.Hour, tracing.NewNoopTracer(), logging.NewNoopLogger())
	sweeper.sweep(context.Background())
}

func TestSweeperRunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storage := NewMockStorageInterface(ctrl)
	coordinator := NewMockCoordinatorInterface(ctrl)
	storage.EXPECT().ListStaleCredentials(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	sweeper := NewSweeper(storage, coordinator, 5*time.Millisecond, 168*time.Hour, tracing.NewNoopTracer(), logging.NewNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return after cancellation")
	}
}
