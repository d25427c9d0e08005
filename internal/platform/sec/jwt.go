// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the auth.TokenProvider and middleware.TokenVerifier
// interfaces.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/fitlog/internal/platform/constants"
)

// ErrInvalidToken is returned for every token that fails verification:
// bad signature, wrong algorithm, wrong issuer, expired, or malformed.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside a bearer token.
//
// The subject claim carries the user ID. Nothing else about the user is
// embedded; the middleware resolves the identity against the credential store.
type AuthClaims struct {
	jwt.RegisteredClaims
}

// UserID returns the subject the token is bound to.
func (claims *AuthClaims) UserID() string {
	return claims.Subject
}

// TokenService issues and verifies HS256 tokens signed with a process-wide secret.
//
// # Concurrency
//
// TokenService is read-only after construction and safe for concurrent use.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption customises a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService.
//
// The secret must be at least [constants.MinSecretLength] bytes; a zero ttl
// falls back to [constants.DefaultTokenTTL].
func NewTokenService(secret []byte, issuer string, ttl time.Duration, options ...TokenOption) (*TokenService, error) {
	if len(secret) < constants.MinSecretLength {
		return nil, fmt.Errorf("sec: signing secret must be at least %d bytes", constants.MinSecretLength)
	}
	if ttl == 0 {
		ttl = constants.DefaultTokenTTL
	}

	service := &TokenService{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, option := range options {
		option(service)
	}

	return service, nil
}

// IssueToken creates a signed token bound to userID.
//
// # Returns
//   - The compact JWT string.
//   - The instant the token stops being accepted.
func (service *TokenService) IssueToken(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, fmt.Errorf("sec: cannot issue token without subject")
	}

	currentTime := service.now()
	expiresAt := currentTime.Add(service.ttl)
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt.Truncate(time.Second), nil
}

// VerifyToken checks the signature first, then expiry and issuer, and returns
// the embedded claims.
//
// Every failure wraps [ErrInvalidToken]; the library error is kept in the
// chain for logging (e.g. errors.Is(err, jwt.ErrTokenExpired)).
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
