// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles the authenticated member's own profile and the
progress counters derived from their workout history.

# Architecture

  - Service: profile reads and updates, password change, account deletion.
  - ProgressService: recomputes level, streak and total workouts after the
    session log changes.
  - Domain: This package depends on the auth package for the User entity.
*/
package account

import (
	"context"
	"time"
)

// # Repository Contracts

// WorkoutHistory exposes the session facts progress is derived from.
type WorkoutHistory interface {
	/*
		WorkoutDays summarises an owner's session log.

		Parameters:
		  - context: context.Context
		  - ownerID: string

		Returns:
		  - int: Number of sessions
		  - []time.Time: Distinct UTC calendar days with a session, most recent first
		  - error: Retrieval failures
	*/
	WorkoutDays(context context.Context, ownerID string) (int, []time.Time, error)
}

// OwnerDataPurger removes every record owned by a user.
//
// Stores without referential cascades (the in-memory ones) register a purger
// so account deletion leaves no orphaned sessions or goals.
type OwnerDataPurger interface {
	/*
		DeleteByOwner permanently removes all of the owner's records.

		Parameters:
		  - context: context.Context
		  - ownerID: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteByOwner(context context.Context, ownerID string) error
}

// # Field Identifiers

const (
	FieldName            = "name"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldPassword        = "password"
)

// # Progress Thresholds

const (
	// IntermediateThreshold is the workout count at which a member becomes Intermediate.
	IntermediateThreshold = 10

	// AdvancedThreshold is the workout count at which a member becomes Advanced.
	AdvancedThreshold = 50
)
