// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
)

// MemoryUserRepository keeps accounts in process memory.
//
// It backs STORAGE_DRIVER=memory and the service tests. The email index gives
// the same uniqueness guarantee as the PostgreSQL unique index.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	records map[string]User
	byEmail map[string]string
	now     func() time.Time
}

// NewMemoryUserRepository returns an empty in-memory repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		records: map[string]User{},
		byEmail: map[string]string{},
		now:     time.Now,
	}
}

func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.records[id]
	if !ok {
		return nil, apperr.NotFound(resourceUser)
	}
	return &user, nil
}

func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	id, ok := repository.byEmail[email]
	if !ok {
		return nil, apperr.NotFound(resourceUser)
	}
	user := repository.records[id]
	return &user, nil
}

func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.byEmail[user.Email]; taken {
		return apperr.DuplicateIdentity(ErrMessageUserExists)
	}

	now := repository.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	repository.records[user.ID] = *user
	repository.byEmail[user.Email] = user.ID
	return nil
}

func (repository *MemoryUserRepository) UpdateName(_ context.Context, userID, name string) (*User, error) {
	var updated User
	err := repository.mutate(userID, func(user *User) {
		user.Name = name
		updated = *user
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (repository *MemoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	return repository.mutate(userID, func(user *User) {
		user.PasswordHash = newHash
	})
}

func (repository *MemoryUserRepository) UpdateProgress(_ context.Context, userID string, progress Progress) error {
	return repository.mutate(userID, func(user *User) {
		user.Level = progress.Level
		user.Streak = progress.Streak
		user.TotalWorkouts = progress.TotalWorkouts
	})
}

func (repository *MemoryUserRepository) Delete(_ context.Context, userID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.records[userID]
	if !ok {
		return apperr.NotFound(resourceUser)
	}
	delete(repository.byEmail, user.Email)
	delete(repository.records, userID)
	return nil
}

// mutate applies change to a copy of the record under the write lock and stores it back.
func (repository *MemoryUserRepository) mutate(userID string, change func(*User)) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	user, ok := repository.records[userID]
	if !ok {
		return apperr.NotFound(resourceUser)
	}
	change(&user)
	user.UpdatedAt = repository.now().UTC()
	repository.records[userID] = user
	return nil
}
