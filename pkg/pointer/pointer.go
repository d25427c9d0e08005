// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Optional fields of sessions (sets, reps, weight, distance, notes) and every
field of a partial update are modelled as pointers: nil means "absent" or
"leave unchanged".
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Apply overwrites *target with *patch when patch is set.
//
// It is the in-process equivalent of SQL's COALESCE($n, column).
func Apply[T any](target *T, patch *T) {
	if patch != nil {
		*target = *patch
	}
}

// ApplyOptional replaces an optional field when the patch carries a value.
// A nil patch keeps the current pointer.
func ApplyOptional[T any](target **T, patch *T) {
	if patch != nil {
		value := *patch
		*target = &value
	}
}
