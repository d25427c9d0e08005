// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package middleware provides the HTTP middleware chain for the Fitlog API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, Authentication, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	"github.com/taibuivan/fitlog/internal/platform/constants"
	"github.com/taibuivan/fitlog/internal/platform/ctxutil"
	"github.com/taibuivan/fitlog/internal/platform/respond"
	"github.com/taibuivan/fitlog/internal/platform/sec"
)

// errUnauthorized is the single rejection returned for every failed check.
var errUnauthorized = apperr.Unauthorized("Authentication required")

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing mocks to be injected during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// IdentityResolver confirms that a token subject still exists and loads its identity.
//
// It must return a NOT_FOUND [apperr.AppError] when the account is gone.
type IdentityResolver interface {
	ResolveIdentity(context context.Context, userID string) (*sec.Identity, error)
}

// Authenticate guards a route group with bearer-token authentication.
//
// # Flow
//  1. Require 'Authorization: Bearer <token>'.
//  2. Verify the token via [TokenVerifier] (signature, then expiry).
//  3. Resolve the subject via [IdentityResolver]; a deleted account is rejected.
//  4. Inject [*sec.Identity] into the request context for downstream use.
//
// Missing, malformed, forged, expired and orphaned tokens all produce the same
// 401 response. The specific reason is only logged at debug level.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			logger := ctxutil.GetLogger(request.Context())

			reject := func(reason string) {
				logger.DebugContext(request.Context(), "auth_rejected", slog.String("reason", reason))
				respond.Error(writer, request, errUnauthorized)
			}

			// ── 1. Header Extraction ──────────────────────────────────────────
			tokenStr, ok := bearerToken(request.Header.Get(constants.HeaderAuthorization))
			if !ok {
				reject("malformed_or_missing_header")
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(tokenStr)
			if err != nil {
				reject("token_verification_failed")
				return
			}

			// ── 3. Subject Resolution ─────────────────────────────────────────
			identity, err := resolver.ResolveIdentity(request.Context(), claims.UserID())
			if err != nil {
				if apperr.IsNotFound(err) {
					reject("subject_not_found")
					return
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			ctx = ctxutil.WithLogger(ctx, logger.With(slog.String("user_id", identity.UserID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// bearerToken splits an Authorization header into exactly "<scheme> <token>".
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", false
	}
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
