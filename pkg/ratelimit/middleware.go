// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
)

// Middleware enforces a route-class budget and sets the standard
// rate-limit response headers on every response.
func (l *Limiter) Middleware(class string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := l.tracer.Start(r.Context(), "ratelimit.Limiter.Middleware")
			defer span.End()

			clientIP := clientIP(r)
			decision := l.Check(clientIP, class)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

			if !decision.Allowed {
				l.logger.Security().RateLimited(class, clientIP)

				w.Header().Set("Retry-After", strconv.Itoa(decision.RetryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				if err := json.NewEncoder(w).Encode(map[string]interface{}{
					"code":    "RATE_LIMIT",
					"message": "too many requests",
				}); err != nil {
					l.logger.Errorf("failed to encode rate limit response: %v", err)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP trusts RemoteAddr, which chi's RealIP middleware has already
// rewritten from X-Forwarded-For when the request came through the edge.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
