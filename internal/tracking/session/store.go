// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"time"
)

// # Session Data Access

// Repository defines the owner-scoped persistence contract for sessions.
//
// Every method takes the owner ID and applies it in the same statement as the
// record lookup; NOT_FOUND covers both "missing" and "not yours".
type Repository interface {

	/*
		Create persists a new session.

		Parameters:
		  - context: context.Context
		  - session: *Session (UserID already stamped)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		List returns the owner's sessions, most recent date first.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - filter: Filter

		Returns:
		  - []*Session: Possibly empty, never nil
		  - error: Retrieval failures
	*/
	List(context context.Context, ownerID string, filter Filter) ([]*Session, error)

	/*
		Get returns one of the owner's sessions.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - id: string

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	Get(context context.Context, ownerID, id string) (*Session, error)

	/*
		Update applies changes to one of the owner's sessions atomically.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - id: string
		  - changes: Changes (validated, non-empty)

		Returns:
		  - *Session: The updated entity
		  - error: apperr.NotFound or persistence failures
	*/
	Update(context context.Context, ownerID, id string, changes Changes) (*Session, error)

	/*
		Delete permanently removes one of the owner's sessions.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, ownerID, id string) error

	/*
		Summarize aggregates the owner's log.

		Parameters:
		  - context: context.Context
		  - ownerID: string
		  - since: time.Time (start of the recent window)

		Returns:
		  - *Summary: Totals; zero counts for an empty log
		  - error: Retrieval failures
	*/
	Summarize(context context.Context, ownerID string, since time.Time) (*Summary, error)
}

// ProgressNotifier is told when an owner's session log changed.
type ProgressNotifier interface {
	Refresh(context context.Context, userID string) error
}
