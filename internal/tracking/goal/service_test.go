// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	"github.com/taibuivan/fitlog/internal/tracking/goal"
	"github.com/taibuivan/fitlog/pkg/pointer"
)

const (
	ann = "0190f1c4-7a43-7c3e-9d5b-1f0e9a3c2b10"
	bob = "0190f1c4-7a43-7c3e-9d5b-1f0e9a3c2b11"
)

func newService() (*goal.Service, *goal.MemoryRepository) {
	repository := goal.NewMemoryRepository()
	return goal.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil))), repository
}

func marathon(deadline string) goal.CreateInput {
	return goal.CreateInput{Name: "Run 100 km", Target: pointer.To(100.0), Metric: "km", Deadline: deadline}
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

func TestCreate(t *testing.T) {
	service, _ := newService()

	created, err := service.Create(context.Background(), ann, marathon("2026-12-31"))
	require.NoError(t, err)

	assert.Equal(t, ann, created.UserID)
	assert.Equal(t, 0.0, created.Current)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), created.Deadline)
	assert.NotEmpty(t, created.ID)
}

func TestCreate_Validation(t *testing.T) {
	service, _ := newService()

	tests := []struct {
		name   string
		input  goal.CreateInput
		fields []string
	}{
		{"empty", goal.CreateInput{}, []string{"name", "metric", "target", "deadline"}},
		{"zero_target", goal.CreateInput{Name: "x", Target: pointer.To(0.0), Metric: "km", Deadline: "2026-12-31"}, []string{"target"}},
		{"negative_current", goal.CreateInput{Name: "x", Target: pointer.To(5.0), Current: pointer.To(-1.0), Metric: "km", Deadline: "2026-12-31"}, []string{"current"}},
		{"bad_deadline", marathon("next friday"), []string{"deadline"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), ann, tt.input)
			assert.ElementsMatch(t, tt.fields, fieldsOf(t, err))
		})
	}
}

func TestList_OwnerScopedByDeadline(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	later, err := service.Create(ctx, ann, marathon("2027-03-01"))
	require.NoError(t, err)
	sooner, err := service.Create(ctx, ann, marathon("2026-11-01"))
	require.NoError(t, err)
	_, err = service.Create(ctx, bob, marathon("2026-10-30"))
	require.NoError(t, err)

	goals, err := service.List(ctx, ann)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, sooner.ID, goals[0].ID)
	assert.Equal(t, later.ID, goals[1].ID)
}

func TestOwnership(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	owned, err := service.Create(ctx, ann, marathon("2026-12-31"))
	require.NoError(t, err)

	_, err = service.Get(ctx, bob, owned.ID)
	assert.True(t, apperr.IsNotFound(err))
	_, err = service.Update(ctx, bob, owned.ID, goal.UpdateInput{Current: pointer.To(50.0)})
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(service.Delete(ctx, bob, owned.ID)))
	assert.True(t, apperr.IsNotFound(service.Delete(ctx, ann, "bogus")))

	current, err := service.Get(ctx, ann, owned.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, current.Current)
}

func TestUpdate(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, ann, marathon("2026-12-31"))
	require.NoError(t, err)

	updated, err := service.Update(ctx, ann, created.ID, goal.UpdateInput{Current: pointer.To(42.5)})
	require.NoError(t, err)
	assert.Equal(t, 42.5, updated.Current)
	assert.Equal(t, 100.0, updated.Target)

	_, err = service.Update(ctx, ann, created.ID, goal.UpdateInput{Target: pointer.To(-3.0), Current: pointer.To(-1.0)})
	assert.ElementsMatch(t, []string{"target", "current"}, fieldsOf(t, err))

	current, err := service.Get(ctx, ann, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, current.Target)
	assert.Equal(t, 42.5, current.Current)

	require.NoError(t, service.Delete(ctx, ann, created.ID))
	_, err = service.Get(ctx, ann, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestMemoryRepository_DeleteByOwner(t *testing.T) {
	service, repository := newService()
	ctx := context.Background()

	_, err := service.Create(ctx, ann, marathon("2026-12-31"))
	require.NoError(t, err)
	_, err = service.Create(ctx, bob, marathon("2026-12-31"))
	require.NoError(t, err)

	require.NoError(t, repository.DeleteByOwner(ctx, ann))

	annGoals, err := service.List(ctx, ann)
	require.NoError(t, err)
	assert.Empty(t, annGoals)

	bobGoals, err := service.List(ctx, bob)
	require.NoError(t, err)
	assert.Len(t, bobGoals, 1)
}
