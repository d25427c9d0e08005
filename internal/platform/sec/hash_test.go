// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/fitlog/internal/platform/sec"
)

func newHasher(t *testing.T) *sec.PasswordHasher {
	t.Helper()
	hasher, err := sec.NewPasswordHasher(bcrypt.MinCost, 2)
	require.NoError(t, err)
	return hasher
}

/*
TestPasswordHasher_RoundTrip checks hash-then-verify for a range of printable passwords.
*/
func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := newHasher(t)
	ctx := context.Background()

	passwords := []string{"secret1", "      ", "P@ssw0rd!~`", "ünïcødé-pass", "a-much-longer-passphrase-with-words"}

	for _, password := range passwords {
		t.Run(password, func(t *testing.T) {
			verifier, err := hasher.Hash(ctx, password)
			require.NoError(t, err)

			assert.NotEqual(t, password, verifier)
			assert.True(t, hasher.Verify(ctx, password, verifier))
			assert.False(t, hasher.Verify(ctx, password+"x", verifier))
			assert.False(t, hasher.Verify(ctx, "secret2", verifier))
		})
	}
}

/*
TestPasswordHasher_Salted verifies that two hashes of the same password differ.
*/
func TestPasswordHasher_Salted(t *testing.T) {
	hasher := newHasher(t)
	ctx := context.Background()

	first, err := hasher.Hash(ctx, "secret1")
	require.NoError(t, err)
	second, err := hasher.Hash(ctx, "secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestPasswordHasher_MalformedVerifier ensures broken verifiers fail closed.
*/
func TestPasswordHasher_MalformedVerifier(t *testing.T) {
	hasher := newHasher(t)
	ctx := context.Background()

	for _, verifier := range []string{"", "secret1", "$2a$04$short", "$9z$10$abcdefghijklmnopqrstuv"} {
		assert.False(t, hasher.Verify(ctx, "secret1", verifier))
	}
}

/*
TestNewPasswordHasher_CostRange rejects bcrypt costs outside the supported range.
*/
func TestNewPasswordHasher_CostRange(t *testing.T) {
	_, err := sec.NewPasswordHasher(bcrypt.MinCost-1, 1)
	assert.Error(t, err)

	_, err = sec.NewPasswordHasher(bcrypt.MaxCost+1, 1)
	assert.Error(t, err)
}
