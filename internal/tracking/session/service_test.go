// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	"github.com/taibuivan/fitlog/internal/tracking/session"
	"github.com/taibuivan/fitlog/pkg/pointer"
)

const (
	ann = "0190f1c4-7a43-7c3e-9d5b-1f0e9a3c2b10"
	bob = "0190f1c4-7a43-7c3e-9d5b-1f0e9a3c2b11"
)

var clock = time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

type countingNotifier struct {
	calls []string
	err   error
}

func (notifier *countingNotifier) Refresh(_ context.Context, userID string) error {
	notifier.calls = append(notifier.calls, userID)
	return notifier.err
}

func newService(t *testing.T) (*session.Service, *countingNotifier) {
	t.Helper()
	notifier := &countingNotifier{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := session.NewService(session.NewMemoryRepository(), logger,
		session.WithProgressNotifier(notifier),
		session.WithClock(func() time.Time { return clock }),
	)
	return service, notifier
}

func running(day string) session.CreateInput {
	return session.CreateInput{
		Date:      pointer.To(day),
		Activity:  "Running",
		Duration:  pointer.To(30),
		Intensity: "Medium",
		Burned:    pointer.To(250),
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	require.Equal(t, apperr.CodeValidation, appError.Code)

	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	return fields
}

/*
TestCreate_StampsOwnerAndDefaults covers owner stamping and the default date.
*/
func TestCreate_StampsOwnerAndDefaults(t *testing.T) {
	service, notifier := newService(t)

	created, err := service.Create(context.Background(), ann, session.CreateInput{
		Activity:  "  Morning   Yoga ",
		Duration:  pointer.To(45),
		Intensity: "Low",
		Burned:    pointer.To(0),
		Notes:     pointer.To("felt great"),
	})
	require.NoError(t, err)

	assert.Equal(t, ann, created.UserID)
	assert.Equal(t, "Morning Yoga", created.Activity)
	assert.True(t, clock.Equal(created.Date))
	assert.Equal(t, "felt great", *created.Notes)
	assert.Nil(t, created.Sets)
	assert.Equal(t, []string{ann}, notifier.calls)
}

/*
TestCreate_Validation reports every violated field.
*/
func TestCreate_Validation(t *testing.T) {
	service, _ := newService(t)

	tests := []struct {
		name   string
		input  session.CreateInput
		fields []string
	}{
		{"empty", session.CreateInput{}, []string{"activity", "duration", "intensity", "burned"}},
		{"zero_duration", func() session.CreateInput { in := running("2026-06-01"); in.Duration = pointer.To(0); return in }(), []string{"duration"}},
		{"negative_burned", func() session.CreateInput { in := running("2026-06-01"); in.Burned = pointer.To(-1); return in }(), []string{"burned"}},
		{"unknown_intensity", func() session.CreateInput { in := running("2026-06-01"); in.Intensity = "Extreme"; return in }(), []string{"intensity"}},
		{"bad_date", running("06/01/2026"), []string{"date"}},
		{"negative_optionals", func() session.CreateInput {
			in := running("2026-06-01")
			in.Sets, in.Reps = pointer.To(-1), pointer.To(-2)
			in.Weight, in.Distance = pointer.To(-0.5), pointer.To(-3.0)
			return in
		}(), []string{"sets", "reps", "weight", "distance"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), ann, tt.input)
			assert.ElementsMatch(t, tt.fields, fieldsOf(t, err))
		})
	}
}

/*
TestList_OwnerScopedAndOrdered walks the two-user scenario: each owner only
sees their own sessions, newest date first.
*/
func TestList_OwnerScopedAndOrdered(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	older, err := service.Create(ctx, ann, running("2026-06-01"))
	require.NoError(t, err)
	newer, err := service.Create(ctx, ann, running("2026-06-05"))
	require.NoError(t, err)
	_, err = service.Create(ctx, bob, running("2026-06-03"))
	require.NoError(t, err)

	sessions, err := service.List(ctx, ann, session.Filter{})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newer.ID, sessions[0].ID)
	assert.Equal(t, older.ID, sessions[1].ID)

	empty, err := service.List(ctx, "0190f1c4-7a43-7c3e-9d5b-1f0e9a3c2b99", session.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestList_Filter(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	for _, day := range []string{"2026-06-01", "2026-06-03", "2026-06-05"} {
		_, err := service.Create(ctx, ann, running(day))
		require.NoError(t, err)
	}
	yoga := running("2026-06-04")
	yoga.Activity = "Yoga"
	_, err := service.Create(ctx, ann, yoga)
	require.NoError(t, err)

	from := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 4, 23, 59, 59, 0, time.UTC)

	window, err := service.List(ctx, ann, session.Filter{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, window, 2)

	onlyYoga, err := service.List(ctx, ann, session.Filter{Activity: "yoga"})
	require.NoError(t, err)
	require.Len(t, onlyYoga, 1)
	assert.Equal(t, "Yoga", onlyYoga[0].Activity)

	_, err = service.List(ctx, ann, session.Filter{From: &to, To: &from})
	assert.Equal(t, []string{"from"}, fieldsOf(t, err))
}

/*
TestForeignAccessIsNotFound ensures another owner's ID behaves like a missing one.
*/
func TestForeignAccessIsNotFound(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	owned, err := service.Create(ctx, ann, running("2026-06-01"))
	require.NoError(t, err)

	_, err = service.Get(ctx, bob, owned.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.Update(ctx, bob, owned.ID, session.UpdateInput{Duration: pointer.To(90)})
	assert.True(t, apperr.IsNotFound(err))

	err = service.Delete(ctx, bob, owned.ID)
	assert.True(t, apperr.IsNotFound(err))

	stillThere, err := service.Get(ctx, ann, owned.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stillThere.Duration)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	_, err := service.Get(ctx, ann, "not-a-uuid")
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.Update(ctx, ann, "42", session.UpdateInput{})
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(service.Delete(ctx, ann, "")))
}

/*
TestUpdate_PartialAndValidated applies only touched fields and leaves the record
unchanged when validation fails.
*/
func TestUpdate_PartialAndValidated(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, ann, running("2026-06-01"))
	require.NoError(t, err)

	updated, err := service.Update(ctx, ann, created.ID, session.UpdateInput{
		Duration:  pointer.To(60),
		Intensity: pointer.To("High"),
		Weight:    pointer.To(72.5),
	})
	require.NoError(t, err)
	assert.Equal(t, 60, updated.Duration)
	assert.Equal(t, session.IntensityHigh, updated.Intensity)
	assert.Equal(t, 72.5, *updated.Weight)
	assert.Equal(t, "Running", updated.Activity)
	assert.Equal(t, 250, updated.Burned)

	_, err = service.Update(ctx, ann, created.ID, session.UpdateInput{Duration: pointer.To(0)})
	assert.Equal(t, []string{"duration"}, fieldsOf(t, err))

	_, err = service.Update(ctx, ann, created.ID, session.UpdateInput{Activity: pointer.To("  ")})
	assert.Equal(t, []string{"activity"}, fieldsOf(t, err))

	current, err := service.Get(ctx, ann, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, current.Duration)
	assert.Equal(t, "Running", current.Activity)

	unchanged, err := service.Update(ctx, ann, created.ID, session.UpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, current.UpdatedAt, unchanged.UpdatedAt)
}

/*
TestCounts_CappedAtColumnRange rejects integer fields the store cannot hold,
on create and on update, without touching the stored record.
*/
func TestCounts_CappedAtColumnRange(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	oversized := running("2026-06-01")
	oversized.Duration = pointer.To(3_000_000_000)
	oversized.Burned = pointer.To(5_000_000_000)
	oversized.Sets = pointer.To(session.MaxCount + 1)
	_, err := service.Create(ctx, ann, oversized)
	assert.ElementsMatch(t, []string{"duration", "burned", "sets"}, fieldsOf(t, err))

	atLimit := running("2026-06-01")
	atLimit.Reps = pointer.To(session.MaxCount)
	created, err := service.Create(ctx, ann, atLimit)
	require.NoError(t, err)

	_, err = service.Update(ctx, ann, created.ID, session.UpdateInput{
		Reps:     pointer.To(session.MaxCount + 1),
		Duration: pointer.To(session.MaxCount + 1),
	})
	assert.ElementsMatch(t, []string{"reps", "duration"}, fieldsOf(t, err))

	current, err := service.Get(ctx, ann, created.ID)
	require.NoError(t, err)
	assert.Equal(t, session.MaxCount, *current.Reps)
	assert.Equal(t, 30, current.Duration)
}

func TestDelete_IsPermanent(t *testing.T) {
	service, notifier := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, ann, running("2026-06-01"))
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, ann, created.ID))
	assert.True(t, apperr.IsNotFound(service.Delete(ctx, ann, created.ID)))
	assert.Equal(t, []string{ann, ann}, notifier.calls)
}

func TestProgressFailureDoesNotFailWrite(t *testing.T) {
	service, notifier := newService(t)
	notifier.err = errors.New("account store unavailable")

	created, err := service.Create(context.Background(), ann, running("2026-06-01"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}

func TestStats(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	inputs := []session.CreateInput{running("2026-06-09"), running("2026-06-08"), running("2026-01-15")}
	inputs[1].Intensity = "High"
	inputs[2].Activity = "Swimming"
	inputs[2].Intensity = "Low"
	inputs[2].Burned = pointer.To(400)
	for _, input := range inputs {
		_, err := service.Create(ctx, ann, input)
		require.NoError(t, err)
	}
	_, err := service.Create(ctx, bob, running("2026-06-09"))
	require.NoError(t, err)

	summary, err := service.Stats(ctx, ann)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 90, summary.TotalDuration)
	assert.Equal(t, 900, summary.TotalBurned)
	assert.Equal(t, map[session.Intensity]int{"Low": 1, "Medium": 1, "High": 1}, summary.ByIntensity)
	assert.Equal(t, "Running", summary.FavoriteActivity)
	assert.Equal(t, 2, summary.Recent.Count)
	assert.Equal(t, 500, summary.Recent.TotalBurned)

	empty, err := service.Stats(ctx, "0190f1c4-7a43-7c3e-9d5b-1f0e9a3c2b99")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Count)
	assert.Equal(t, "", empty.FavoriteActivity)
}
