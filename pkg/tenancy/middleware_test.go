// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/trust-service/internal/logging"
	"github.com/canonical/trust-service/internal/monitoring"
	"github.com/canonical/trust-service/internal/tracing"
)

func newTestMiddleware(t *testing.T, resolver ResolverInterface, devHeader bool) *Middleware {
	t.Helper()
	logger := logging.NewNoopLogger()
	return NewMiddleware(resolver, devHeader, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("", logger), logger)
}

func TestMiddlewareStripsInboundHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockResolver := NewMockResolverInterface(ctrl)
	mockResolver.EXPECT().Resolve(gomock.Any(), "www.example.com").Return(nil)

	var seenHeader string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenHeader = r.Header.Get(HeaderName)
	})

	mdw := newTestMiddleware(t, mockResolver, false)

	req := httptest.NewRequest(http.MethodGet, "http://www.example.com/", nil)
	// A client attempting to spoof the routing header.
	req.Header.Set(HeaderName, "victim")

	mdw.Resolve()(next).ServeHTTP(httptest.NewRecorder(), req)

	if seenHeader != "" {
		t.Errorf("spoofed header survived to downstream: %q", seenHeader)
	}
}

func TestMiddlewareSetsHeaderAndContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tenant := activeTenant("acme")

	mockResolver := NewMockResolverInterface(ctrl)
	mockResolver.EXPECT().Resolve(gomock.Any(), "acme.example.com").Return(tenant)

	var gotHeader string
	var gotTenant bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(HeaderName)
		_, gotTenant = TenantFromContext(r.Context())
	})

	mdw := newTestMiddleware(t, mockResolver, false)

	req := httptest.NewRequest(http.MethodGet, "http://acme.example.com/", nil)
	mdw.Resolve()(next).ServeHTTP(httptest.NewRecorder(), req)

	if gotHeader != "acme" {
		t.Errorf("expected routing header %q, got %q", "acme", gotHeader)
	}
	if !gotTenant {
		t.Error("expected tenant in request context")
	}
}

func TestMiddlewareDevTenantHint(t *testing.T) {
	testCases := []struct {
		name      string
		devHeader bool
		wantCalls bool
	}{
		{name: "enabled", devHeader: true, wantCalls: true},
		{name: "disabled", devHeader: false, wantCalls: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockResolver := NewMockResolverInterface(ctrl)
			mockResolver.EXPECT().Resolve(gomock.Any(), "localhost:3000").Return(nil)
			if tc.wantCalls {
				mockResolver.EXPECT().ResolveSlug(gomock.Any(), "acme").Return(activeTenant("acme"))
			}

			mdw := newTestMiddleware(t, mockResolver, tc.devHeader)

			req := httptest.NewRequest(http.MethodGet, "http://localhost:3000/", nil)
			req.Header.Set(DevHeaderName, "acme")

			var gotTenant bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, gotTenant = TenantFromContext(r.Context())
			})

			mdw.Resolve()(next).ServeHTTP(httptest.NewRecorder(), req)

			if gotTenant != tc.wantCalls {
				t.Errorf("tenant in context: got %v, want %v", gotTenant, tc.wantCalls)
			}
		})
	}
}

func TestRequireTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockResolver := NewMockResolverInterface(ctrl)
	mdw := newTestMiddleware(t, mockResolver, false)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "http://ghost.example.com/", nil)
	rec := httptest.NewRecorder()

	mdw.RequireTenant()(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %q", ct)
	}
}
