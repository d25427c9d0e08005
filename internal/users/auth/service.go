// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	"github.com/taibuivan/fitlog/internal/platform/sec"
	"github.com/taibuivan/fitlog/internal/platform/validate"
	"github.com/taibuivan/fitlog/pkg/normalize"
	"github.com/taibuivan/fitlog/pkg/uuid"
)

// # Contracts & Types

// TokenProvider issues bearer credentials bound to a user ID.
type TokenProvider interface {
	// IssueToken returns a signed token and the instant it expires.
	IssueToken(userID string) (string, time.Time, error)
}

// PasswordHasher derives and checks password verifiers.
//
// Implemented by [sec.PasswordHasher]; the account package reuses it for
// password changes.
type PasswordHasher interface {
	Hash(ctx context.Context, plainTextPassword string) (string, error)
	Verify(ctx context.Context, plainTextPassword, verifier string) bool
	Equalize(ctx context.Context, plainTextPassword string)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Login must keep returning the same
// error for an unknown email and a wrong password, in comparable time.
type Service struct {
	userRepository UserRepository
	hasher         PasswordHasher
	tokenProvider  TokenProvider
	identityCache  IdentityCache
	logger         *slog.Logger
}

// Option customises a [Service].
type Option func(*Service)

// WithIdentityCache puts a read-through cache in front of ResolveIdentity.
func WithIdentityCache(cache IdentityCache) Option {
	return func(service *Service) {
		service.identityCache = cache
	}
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	hasher PasswordHasher,
	tokenProv TokenProvider,
	logger *slog.Logger,
	options ...Option,
) *Service {
	service := &Service{
		userRepository: userRepo,
		hasher:         hasher,
		tokenProvider:  tokenProv,
		logger:         logger,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new user account, then
issues its first bearer credential.

Description: The email is normalized before the uniqueness check, so
"Ann@X.io" and "ann@x.io" name the same account. The unique index still
guards the race between two concurrent registrations.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Credentials: Created user and token
  - error: ValidationError, DuplicateIdentity or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Credentials, error) {
	name := normalize.Text(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).
		MaxLen(FieldName, name, MaxNameLength).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength).
		Email(FieldEmail, input.Email)
	ValidatePassword(validator, FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	email := normalize.Email(input.Email)

	// Verify email uniqueness. Return a client-safe duplicate error.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.DuplicateIdentity(ErrMessageUserExists)
	}
	if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	hashedPassword, err := service.hasher.Hash(context, input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Level:        LevelBeginner,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsDuplicateIdentity(err) {
			return nil, apperr.DuplicateIdentity(ErrMessageUserExists)
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	credentials, err := service.issue(user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("auth_user_registered", slog.String("user_id", user.ID))
	return credentials, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a bearer token.

Description: An unknown email still pays for one bcrypt comparison so the
response time does not reveal whether the account exists. Both failure
paths return the same [apperr.InvalidCredentials].

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Credentials: Authenticated user and token
  - error: InvalidCredentials or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Credentials, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(context, normalize.Email(input.Email))
	if err != nil {
		if !apperr.IsNotFound(err) {
			return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
		}
		service.hasher.Equalize(context, input.Password)
		service.logger.Info("auth_login_failed", slog.String("reason", "unknown_identity"))
		return nil, apperr.InvalidCredentials()
	}

	if !service.hasher.Verify(context, input.Password, user.PasswordHash) {
		service.logger.Info("auth_login_failed", slog.String("user_id", user.ID), slog.String("reason", "password_mismatch"))
		return nil, apperr.InvalidCredentials()
	}

	credentials, err := service.issue(user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("auth_login_succeeded", slog.String("user_id", user.ID))
	return credentials, nil
}

// # Identity Resolution

/*
ResolveIdentity confirms that a token subject still exists and returns its identity.

Description: Consulted by the authorization middleware on every protected
request. Cache failures degrade to a store read; they never reject a request.
A revoked entry is final until it expires.

Parameters:
  - context: context.Context
  - userID: string (token subject)

Returns:
  - *sec.Identity: The resolved subject
  - error: apperr.NotFound when the account is gone, or storage errors
*/
func (service *Service) ResolveIdentity(context context.Context, userID string) (*sec.Identity, error) {
	if service.identityCache != nil {
		identity, err := service.identityCache.Get(context, userID)
		if errors.Is(err, ErrIdentityRevoked) {
			return nil, apperr.NotFound(resourceUser)
		}
		if err != nil {
			service.logger.Warn("auth_identity_cache_unavailable", slog.Any("error", err))
		} else if identity != nil {
			return identity, nil
		}
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	identity := user.Identity()
	if service.identityCache != nil {
		if err := service.identityCache.Set(context, identity); err != nil {
			service.logger.Warn("auth_identity_cache_unavailable", slog.Any("error", err))
		}
	}

	return identity, nil
}

// # Helpers

// issue signs a token for user and bundles it with the account.
func (service *Service) issue(user *User) (*Credentials, error) {
	token, expiresAt, err := service.tokenProvider.IssueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Credentials{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// ValidatePassword applies the password policy to a candidate password.
// The account package enforces the same policy on change.
func ValidatePassword(validator *validate.Validator, field, password string) {
	validator.Required(field, password).
		MinLen(field, password, MinPasswordLength).
		MaxBytes(field, password, MaxPasswordBytes)
}
