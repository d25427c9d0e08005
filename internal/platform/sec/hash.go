// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// dummyPassword is hashed once and compared against when a login names an
// unknown account, so both failure paths spend the same bcrypt work.
const dummyPassword = "fitlog-timing-equalizer"

// PasswordHasher hashes and verifies passwords with bcrypt.
//
// # Concurrency
//
// bcrypt is CPU-bound. A weighted semaphore caps the number of hash or verify
// calls running at once so a burst of logins cannot starve the request
// handlers of CPU. Waiting callers give up when their context is cancelled.
type PasswordHasher struct {
	cost int
	pool *semaphore.Weighted

	// dummyHash is compared against by Equalize; it carries the same cost as real verifiers.
	dummyHash []byte
}

// NewPasswordHasher constructs a [PasswordHasher].
//
// # Parameters
//   - cost: bcrypt work factor, within [bcrypt.MinCost, bcrypt.MaxCost].
//   - concurrency: maximum parallel hash operations; values below 1 use runtime.NumCPU().
func NewPasswordHasher(cost, concurrency int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("sec: bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to prepare timing equalizer: %w", err)
	}

	return &PasswordHasher{
		cost:      cost,
		pool:      semaphore.NewWeighted(int64(concurrency)),
		dummyHash: dummyHash,
	}, nil
}

// Hash derives a salted bcrypt verifier from a plain-text password.
func (hasher *PasswordHasher) Hash(ctx context.Context, plainTextPassword string) (string, error) {
	if err := hasher.pool.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("sec: hash pool acquire failed: %w", err)
	}
	defer hasher.pool.Release(1)

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify compares a plain-text password with a stored verifier.
//
// bcrypt compares digests in constant time. A malformed verifier, an
// oversized password or a cancelled context all report false.
func (hasher *PasswordHasher) Verify(ctx context.Context, plainTextPassword, verifier string) bool {
	if err := hasher.pool.Acquire(ctx, 1); err != nil {
		return false
	}
	defer hasher.pool.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(verifier), []byte(plainTextPassword))
	return err == nil
}

// Equalize performs a verification against a throwaway verifier and discards
// the result. Login calls it when the email is unknown.
func (hasher *PasswordHasher) Equalize(ctx context.Context, plainTextPassword string) {
	_ = hasher.Verify(ctx, plainTextPassword, string(hasher.dummyHash))
}

