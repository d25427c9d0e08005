// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"

	"github.com/taibuivan/fitlog/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Implementations return a NOT_FOUND [apperr.AppError] for missing rows and a
// DUPLICATE_IDENTITY one when the normalized email is already taken.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given normalized email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.DuplicateIdentity or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdateName replaces the display name and returns the refreshed account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - name: string

		Returns:
		  - *User: Updated entity
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateName(context context.Context, userID, name string) (*User, error)

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		UpdateProgress stores recomputed progress counters.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - progress: Progress

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateProgress(context context.Context, userID string, progress Progress) error

	/*
		Delete permanently removes the account.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, userID string) error
}

// # Volatile Data Access

// IdentityCache is an optional read-through cache in front of FindByID for
// the authorization middleware.
type IdentityCache interface {

	/*
		Get returns the cached identity, or nil without error on a miss.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *sec.Identity: Cached subject or nil
		  - error: Connectivity failures
	*/
	Get(context context.Context, userID string) (*sec.Identity, error)

	/*
		Set stores the identity for the cache's TTL.

		Parameters:
		  - context: context.Context
		  - identity: *sec.Identity

		Returns:
		  - error: Connectivity failures
	*/
	Set(context context.Context, identity *sec.Identity) error

	/*
		Invalidate drops the cached identity after the account changed.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Connectivity failures
	*/
	Invalidate(context context.Context, userID string) error

	/*
		Revoke marks a deleted account so Get reports [ErrIdentityRevoked] and
		Set cannot repopulate the entry for the cache's TTL.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Connectivity failures
	*/
	Revoke(context context.Context, userID string) error
}

// ErrIdentityRevoked is returned by [IdentityCache.Get] for a deleted account.
var ErrIdentityRevoked = errors.New("auth: identity revoked")
