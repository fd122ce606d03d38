// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"inkpress/internal/blog"
	"inkpress/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the authenticated caller.
	IdentityKey contextKey = "identity"
	// TokenKey is the context key for the raw bearer token.
	TokenKey contextKey = "token"
	// authErrKey carries a credential check that failed for reasons other
	// than a bad token.
	authErrKey contextKey = "auth_error"
)

// CallerResolver turns a bearer token into a caller identity.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, credential string) (*models.Identity, error)
}

// Authenticate resolves the bearer token, if any, and stores the caller
// in the request context. Downstream handlers can access it via
// IdentityFromCtx(). This middleware does NOT enforce authentication: an
// invalid token leaves the request anonymous.
func Authenticate(resolver CallerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), TokenKey, token)
			caller, err := resolver.ResolveCaller(ctx, token)
			switch {
			case err == nil:
				ctx = context.WithValue(ctx, IdentityKey, caller)
			case errors.Is(err, blog.ErrStoreUnavailable):
				slog.Error("resolve caller failed", "error", err, "path", r.URL.Path)
				ctx = context.WithValue(ctx, authErrKey, err)
			default:
				slog.Debug("bearer token rejected", "error", err, "path", r.URL.Path)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth answers 401 for anonymous requests. Must be applied after
// Authenticate in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err, _ := r.Context().Value(authErrKey).(error); err != nil {
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if IdentityFromCtx(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// IdentityFromCtx extracts the caller from the request context.
// Returns nil if the request is anonymous.
func IdentityFromCtx(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(IdentityKey).(*models.Identity)
	return id
}

// TokenFromCtx returns the bearer token presented with the request.
func TokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(TokenKey).(string)
	return token
}
