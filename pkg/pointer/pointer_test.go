// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/fitlog/pkg/pointer"
)

func TestTo(t *testing.T) {
	assert.Equal(t, 42, *pointer.To(42))
}

func TestApply(t *testing.T) {
	duration := 30
	pointer.Apply(&duration, nil)
	assert.Equal(t, 30, duration)

	pointer.Apply(&duration, pointer.To(45))
	assert.Equal(t, 45, duration)
}

func TestApplyOptional(t *testing.T) {
	var weight *float64
	pointer.ApplyOptional(&weight, nil)
	assert.Nil(t, weight)

	patch := 60.0
	pointer.ApplyOptional(&weight, &patch)
	patch = 70.0
	assert.Equal(t, 60.0, *weight)
}
