// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	"github.com/taibuivan/fitlog/pkg/date"
	"github.com/taibuivan/fitlog/pkg/pointer"
	"github.com/taibuivan/fitlog/pkg/slice"
)

// MemoryRepository keeps sessions in process memory.
//
// Besides [Repository] it implements the account package's WorkoutHistory and
// OwnerDataPurger contracts, which the PostgreSQL deployment serves with SQL
// and ON DELETE CASCADE.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]Session
	now     func() time.Time
}

// NewMemoryRepository returns an empty in-memory session repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: map[string]Session{}, now: time.Now}
}

func (repository *MemoryRepository) Create(_ context.Context, session *Session) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := repository.now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	repository.records[session.ID] = *session
	return nil
}

func (repository *MemoryRepository) List(_ context.Context, ownerID string, filter Filter) ([]*Session, error) {
	owned := repository.owned(ownerID)

	matching := slice.Filter(owned, func(session Session) bool {
		if filter.From != nil && session.Date.Before(*filter.From) {
			return false
		}
		if filter.To != nil && session.Date.After(*filter.To) {
			return false
		}
		return filter.Activity == "" || strings.EqualFold(session.Activity, filter.Activity)
	})

	slices.SortFunc(matching, func(a, b Session) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	return slice.Map(matching, func(session Session) *Session { return &session }), nil
}

func (repository *MemoryRepository) Get(_ context.Context, ownerID, id string) (*Session, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	session, ok := repository.records[id]
	if !ok || session.UserID != ownerID {
		return nil, apperr.NotFound(resourceSession)
	}
	return &session, nil
}

func (repository *MemoryRepository) Update(_ context.Context, ownerID, id string, changes Changes) (*Session, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	session, ok := repository.records[id]
	if !ok || session.UserID != ownerID {
		return nil, apperr.NotFound(resourceSession)
	}

	pointer.Apply(&session.Date, changes.Date)
	pointer.Apply(&session.Activity, changes.Activity)
	pointer.Apply(&session.Duration, changes.Duration)
	pointer.Apply(&session.Intensity, changes.Intensity)
	pointer.Apply(&session.Burned, changes.Burned)
	pointer.ApplyOptional(&session.Sets, changes.Sets)
	pointer.ApplyOptional(&session.Reps, changes.Reps)
	pointer.ApplyOptional(&session.Weight, changes.Weight)
	pointer.ApplyOptional(&session.Distance, changes.Distance)
	pointer.ApplyOptional(&session.Notes, changes.Notes)
	session.UpdatedAt = repository.now().UTC()

	repository.records[id] = session
	return &session, nil
}

func (repository *MemoryRepository) Delete(_ context.Context, ownerID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	session, ok := repository.records[id]
	if !ok || session.UserID != ownerID {
		return apperr.NotFound(resourceSession)
	}
	delete(repository.records, id)
	return nil
}

func (repository *MemoryRepository) Summarize(_ context.Context, ownerID string, since time.Time) (*Summary, error) {
	owned := repository.owned(ownerID)

	summary := &Summary{
		Count: len(owned),
		ByIntensity: map[Intensity]int{
			IntensityLow:    0,
			IntensityMedium: 0,
			IntensityHigh:   0,
		},
		Recent: Window{Since: since},
	}

	for _, session := range owned {
		summary.TotalDuration += session.Duration
		summary.TotalBurned += session.Burned
		summary.ByIntensity[session.Intensity]++
		if !session.Date.Before(since) {
			summary.Recent.Count++
			summary.Recent.TotalDuration += session.Duration
			summary.Recent.TotalBurned += session.Burned
		}
	}

	summary.FavoriteActivity = favorite(slice.CountBy(owned, func(session Session) string { return session.Activity }))
	return summary, nil
}

// WorkoutDays implements account.WorkoutHistory.
func (repository *MemoryRepository) WorkoutDays(_ context.Context, ownerID string) (int, []time.Time, error) {
	owned := repository.owned(ownerID)

	seen := make(map[time.Time]bool)
	days := make([]time.Time, 0)
	for _, session := range owned {
		day := date.Day(session.Date)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	slices.SortFunc(days, func(a, b time.Time) int { return b.Compare(a) })

	return len(owned), days, nil
}

// DeleteByOwner implements account.OwnerDataPurger.
func (repository *MemoryRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for id, session := range repository.records {
		if session.UserID == ownerID {
			delete(repository.records, id)
		}
	}
	return nil
}

// owned snapshots the owner's sessions under the read lock.
func (repository *MemoryRepository) owned(ownerID string) []Session {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	owned := make([]Session, 0)
	for _, session := range repository.records {
		if session.UserID == ownerID {
			owned = append(owned, session)
		}
	}
	return owned
}

// favorite picks the most frequent activity; ties go to the alphabetically first.
func favorite(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	best, bestCount := "", 0
	for _, name := range names {
		if counts[name] > bestCount {
			best, bestCount = name, counts[name]
		}
	}
	return best
}
