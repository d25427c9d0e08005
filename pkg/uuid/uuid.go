// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

Every primary key in Fitlog (accounts, sessions, goals) is a Version 7 UUID:
sortable by creation time and friendly to PostgreSQL B-tree indices.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// # Inspection

// Valid reports whether s is a canonical UUID string of any version.
//
// In-memory repositories use it to mirror PostgreSQL, where a malformed key
// never matches a row.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
