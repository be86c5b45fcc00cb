// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
)

type contextKey int

const payloadContextKey contextKey = iota

func WithPayload(ctx context.Context, payload *Payload) context.Context {
	return context.WithValue(ctx, payloadContextKey, payload)
}

// PayloadFromContext returns the validated session for the request, or
// nil when the caller is anonymous.
func PayloadFromContext(ctx context.Context) *Payload {
	if payload, ok := ctx.Value(payloadContextKey).(*Payload); ok {
		return payload
	}

	return nil
}
