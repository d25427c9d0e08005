// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	"github.com/taibuivan/fitlog/internal/platform/validate"
	"github.com/taibuivan/fitlog/internal/users/auth"
	"github.com/taibuivan/fitlog/pkg/normalize"
)

// # Service Layer

// Service orchestrates the authenticated member's profile use cases.
type Service struct {
	userRepository auth.UserRepository
	hasher         auth.PasswordHasher
	identityCache  auth.IdentityCache
	purgers        []OwnerDataPurger
	logger         *slog.Logger
}

// NewService constructs a new [Service]. identityCache may be nil; purgers
// are only needed for stores without cascading deletes.
func NewService(
	userRepo auth.UserRepository,
	hasher auth.PasswordHasher,
	identityCache auth.IdentityCache,
	logger *slog.Logger,
	purgers ...OwnerDataPurger,
) *Service {
	return &Service{
		userRepository: userRepo,
		hasher:         hasher,
		identityCache:  identityCache,
		purgers:        purgers,
		logger:         logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private profile of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	Name *string
}

/*
UpdateProfile applies a partial set of changes to the profile.

Description: An empty patch returns the current profile unchanged.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Validation or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	if input.Name == nil {
		return service.GetProfile(context, userID)
	}

	name := normalize.Text(*input.Name)
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, auth.MaxNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.UpdateName(context, userID, name)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.invalidate(context, userID)
	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Security

// ChangePasswordInput carries the current and replacement passwords.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

/*
ChangePassword replaces the stored verifier after checking the current password.

Description: The new password is hashed like a registration; the plaintext
never reaches the store. A wrong current password returns
[apperr.InvalidCredentials].

Parameters:
  - context: context.Context
  - userID: string
  - input: ChangePasswordInput

Returns:
  - error: Validation, credential or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID string, input ChangePasswordInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword)
	auth.ValidatePassword(validator, FieldNewPassword, input.NewPassword)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return fmt.Errorf("account_service_password_lookup_failed: %w", err)
	}

	if !service.hasher.Verify(context, input.CurrentPassword, user.PasswordHash) {
		return apperr.InvalidCredentials()
	}

	newHash, err := service.hasher.Hash(context, input.NewPassword)
	if err != nil {
		return fmt.Errorf("account_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, newHash); err != nil {
		return fmt.Errorf("account_service_password_update_failed: %w", err)
	}

	service.logger.Info("user_password_changed", slog.String("user_id", userID))
	return nil
}

/*
DeleteAccount permanently removes the account and everything it owns.

Description: Requires the current password. Tokens issued to the account stop
resolving immediately because the middleware re-checks the subject. The cached
identity is revoked before any row is removed; if revocation fails nothing is
deleted.

Parameters:
  - context: context.Context
  - userID: string
  - password: string

Returns:
  - error: Credential or storage failures
*/
func (service *Service) DeleteAccount(context context.Context, userID, password string) error {
	validator := &validate.Validator{}
	validator.Required(FieldPassword, password)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return fmt.Errorf("account_service_delete_lookup_failed: %w", err)
	}

	if !service.hasher.Verify(context, password, user.PasswordHash) {
		return apperr.InvalidCredentials()
	}

	if service.identityCache != nil {
		if err := service.identityCache.Revoke(context, userID); err != nil {
			return apperr.Internal(fmt.Errorf("account_service_revoke_failed: %w", err))
		}
	}

	if err := service.removeOwned(context, userID); err != nil {
		service.invalidate(context, userID)
		return err
	}

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))

	return nil
}

// removeOwned purges owned data and then the account row.
func (service *Service) removeOwned(context context.Context, userID string) error {
	for _, purger := range service.purgers {
		if err := purger.DeleteByOwner(context, userID); err != nil {
			return fmt.Errorf("account_service_purge_failed: %w", err)
		}
	}

	if err := service.userRepository.Delete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}
	return nil
}

// invalidate drops the cached identity; failures only cost a stale read until TTL.
func (service *Service) invalidate(context context.Context, userID string) {
	if service.identityCache == nil {
		return
	}
	if err := service.identityCache.Invalidate(context, userID); err != nil {
		service.logger.Warn("account_identity_cache_invalidate_failed", slog.Any("error", err))
	}
}
