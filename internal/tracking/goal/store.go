// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import "context"

// Repository defines the owner-scoped persistence contract for goals.
type Repository interface {
	Create(context context.Context, goal *Goal) error

	// List returns the owner's goals, nearest deadline first. Never nil.
	List(context context.Context, ownerID string) ([]*Goal, error)

	// Get returns apperr.NotFound for missing and foreign goals alike.
	Get(context context.Context, ownerID, id string) (*Goal, error)

	// Update applies a validated, non-empty patch atomically.
	Update(context context.Context, ownerID, id string, changes Changes) (*Goal, error)

	Delete(context context.Context, ownerID, id string) error
}
