// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/fitlog/pkg/slice"
)

func TestMapAndFilter(t *testing.T) {
	assert.Equal(t, []int{2, 4}, slice.Map([]int{1, 2}, func(v int) int { return v * 2 }))
	assert.Equal(t, []string{}, slice.Map[int, string](nil, func(int) string { return "" }))

	even := slice.Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
	assert.NotNil(t, slice.Filter([]int{1}, func(int) bool { return false }))
}

func TestCountBy(t *testing.T) {
	activities := []string{"Running", "Yoga", "Running", "Cycling", "Yoga"}
	identity := func(s string) string { return s }

	assert.Equal(t, map[string]int{"Running": 2, "Yoga": 2, "Cycling": 1}, slice.CountBy(activities, identity))
}
