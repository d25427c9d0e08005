// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/fitlog/internal/users/auth"
	"github.com/taibuivan/fitlog/pkg/date"
)

// ProgressService recomputes the advisory counters stored on each account.
type ProgressService struct {
	history        WorkoutHistory
	userRepository auth.UserRepository
	identityCache  auth.IdentityCache
	logger         *slog.Logger
	now            func() time.Time
}

// NewProgressService constructs a [ProgressService]. identityCache may be nil.
func NewProgressService(
	history WorkoutHistory,
	userRepo auth.UserRepository,
	identityCache auth.IdentityCache,
	logger *slog.Logger,
) *ProgressService {
	return &ProgressService{
		history:        history,
		userRepository: userRepo,
		identityCache:  identityCache,
		logger:         logger,
		now:            time.Now,
	}
}

// WithClock replaces the time source used to decide whether a streak is still alive.
func (service *ProgressService) WithClock(now func() time.Time) *ProgressService {
	service.now = now
	return service
}

/*
Refresh recomputes and stores a member's level, streak and total workouts.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: History retrieval or persistence failures
*/
func (service *ProgressService) Refresh(context context.Context, userID string) error {
	total, days, err := service.history.WorkoutDays(context, userID)
	if err != nil {
		return fmt.Errorf("account_progress_history_failed: %w", err)
	}

	progress := Compute(total, days, service.now())
	if err := service.userRepository.UpdateProgress(context, userID, progress); err != nil {
		return fmt.Errorf("account_progress_update_failed: %w", err)
	}

	if service.identityCache != nil {
		if err := service.identityCache.Invalidate(context, userID); err != nil {
			service.logger.Warn("account_identity_cache_invalidate_failed", slog.Any("error", err))
		}
	}

	service.logger.Debug("account_progress_refreshed",
		slog.String("user_id", userID),
		slog.Int("total_workouts", progress.TotalWorkouts),
		slog.Int("streak", progress.Streak),
	)
	return nil
}

/*
Compute derives progress from a session count and the distinct workout days.

Rules:
  - TotalWorkouts is the session count.
  - Streak counts consecutive days ending at the most recent workout day,
    and is zero unless that day is today or yesterday. Days after today are ignored.
  - Level follows [IntermediateThreshold] and [AdvancedThreshold].

days must be sorted most recent first, one entry per calendar day.
*/
func Compute(total int, days []time.Time, now time.Time) auth.Progress {
	return auth.Progress{
		Level:         levelFor(total),
		Streak:        streak(days, now),
		TotalWorkouts: total,
	}
}

func levelFor(total int) auth.Level {
	switch {
	case total < IntermediateThreshold:
		return auth.LevelBeginner
	case total < AdvancedThreshold:
		return auth.LevelIntermediate
	default:
		return auth.LevelAdvanced
	}
}

func streak(days []time.Time, now time.Time) int {
	today := date.Day(now)

	// Skip future-dated sessions.
	start := 0
	for start < len(days) && date.Day(days[start]).After(today) {
		start++
	}
	if start == len(days) || date.DaysBetween(days[start], today) > 1 {
		return 0
	}

	count := 1
	for i := start + 1; i < len(days); i++ {
		if date.DaysBetween(days[i], days[i-1]) != 1 {
			break
		}
		count++
	}
	return count
}
