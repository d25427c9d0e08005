// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

/*
TestNewPasswordHasher_PreparesEqualizer ensures the throwaway verifier exists
from construction on and costs as much as a real one.
*/
func TestNewPasswordHasher_PreparesEqualizer(t *testing.T) {
	hasher, err := NewPasswordHasher(bcrypt.MinCost+1, 1)
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hasher.dummyHash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
	assert.NoError(t, bcrypt.CompareHashAndPassword(hasher.dummyHash, []byte(dummyPassword)))
}
