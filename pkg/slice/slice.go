// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with the generic
helpers used by the in-memory repositories and statistics code.
*/
package slice

// Map maps a slice of type T to a slice of type U. A nil input yields an empty slice.
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Filter returns the elements for which predicate is true. The result is never nil.
func Filter[T any](input []T, predicate func(T) bool) []T {
	result := make([]T, 0)
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// CountBy tallies the elements of input by the key returned for each.
func CountBy[T any, K comparable](input []T, key func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, v := range input {
		counts[key(v)]++
	}
	return counts
}
