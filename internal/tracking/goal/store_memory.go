// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	"github.com/taibuivan/fitlog/pkg/pointer"
	"github.com/taibuivan/fitlog/pkg/slice"
)

// MemoryRepository keeps goals in process memory. It also implements
// account.OwnerDataPurger.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]Goal
	now     func() time.Time
}

// NewMemoryRepository returns an empty in-memory goal repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: map[string]Goal{}, now: time.Now}
}

func (repository *MemoryRepository) Create(_ context.Context, goal *Goal) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := repository.now().UTC()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	repository.records[goal.ID] = *goal
	return nil
}

func (repository *MemoryRepository) List(_ context.Context, ownerID string) ([]*Goal, error) {
	repository.mu.RLock()
	owned := make([]Goal, 0)
	for _, goal := range repository.records {
		if goal.UserID == ownerID {
			owned = append(owned, goal)
		}
	}
	repository.mu.RUnlock()

	slices.SortFunc(owned, func(a, b Goal) int {
		if c := a.Deadline.Compare(b.Deadline); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return slice.Map(owned, func(goal Goal) *Goal { return &goal }), nil
}

func (repository *MemoryRepository) Get(_ context.Context, ownerID, id string) (*Goal, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	goal, ok := repository.records[id]
	if !ok || goal.UserID != ownerID {
		return nil, apperr.NotFound(resourceGoal)
	}
	return &goal, nil
}

func (repository *MemoryRepository) Update(_ context.Context, ownerID, id string, changes Changes) (*Goal, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	goal, ok := repository.records[id]
	if !ok || goal.UserID != ownerID {
		return nil, apperr.NotFound(resourceGoal)
	}

	pointer.Apply(&goal.Name, changes.Name)
	pointer.Apply(&goal.Target, changes.Target)
	pointer.Apply(&goal.Current, changes.Current)
	pointer.Apply(&goal.Metric, changes.Metric)
	pointer.Apply(&goal.Deadline, changes.Deadline)
	goal.UpdatedAt = repository.now().UTC()

	repository.records[id] = goal
	return &goal, nil
}

func (repository *MemoryRepository) Delete(_ context.Context, ownerID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	goal, ok := repository.records[id]
	if !ok || goal.UserID != ownerID {
		return apperr.NotFound(resourceGoal)
	}
	delete(repository.records, id)
	return nil
}

// DeleteByOwner implements account.OwnerDataPurger.
func (repository *MemoryRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for id, goal := range repository.records {
		if goal.UserID == ownerID {
			delete(repository.records, id)
		}
	}
	return nil
}
