// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	"github.com/taibuivan/fitlog/internal/platform/validate"
	"github.com/taibuivan/fitlog/pkg/date"
	"github.com/taibuivan/fitlog/pkg/normalize"
	"github.com/taibuivan/fitlog/pkg/uuid"
)

// # Service Layer

// Service implements the ownership-scoped session use cases.
//
// The owner ID always comes from the authenticated identity; inputs carry no
// owner field, so a client cannot write into another account.
type Service struct {
	repository Repository
	notifier   ProgressNotifier
	logger     *slog.Logger
	now        func() time.Time
}

// Option customises a [Service].
type Option func(*Service)

// WithProgressNotifier registers the component told about log changes.
func WithProgressNotifier(notifier ProgressNotifier) Option {
	return func(service *Service) {
		service.notifier = notifier
	}
}

// WithClock replaces the time source used for default dates and the recent window.
func WithClock(now func() time.Time) Option {
	return func(service *Service) {
		service.now = now
	}
}

// NewService constructs a new session [Service].
func NewService(repository Repository, logger *slog.Logger, options ...Option) *Service {
	service := &Service{
		repository: repository,
		logger:     logger,
		now:        time.Now,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

// # Inputs

// CreateInput is the client payload for a new session.
type CreateInput struct {
	Date      *string  `json:"date"`
	Activity  string   `json:"activity"`
	Duration  *int     `json:"duration"`
	Intensity string   `json:"intensity"`
	Burned    *int     `json:"burned"`
	Sets      *int     `json:"sets"`
	Reps      *int     `json:"reps"`
	Weight    *float64 `json:"weight"`
	Distance  *float64 `json:"distance"`
	Notes     *string  `json:"notes"`
}

// UpdateInput is the client payload for a partial update. Absent fields are untouched.
type UpdateInput struct {
	Date      *string  `json:"date"`
	Activity  *string  `json:"activity"`
	Duration  *int     `json:"duration"`
	Intensity *string  `json:"intensity"`
	Burned    *int     `json:"burned"`
	Sets      *int     `json:"sets"`
	Reps      *int     `json:"reps"`
	Weight    *float64 `json:"weight"`
	Distance  *float64 `json:"distance"`
	Notes     *string  `json:"notes"`
}

// # Use Cases

/*
Create validates the payload and records a session for the owner.

Description: Date defaults to the current instant when omitted. Every
violated field is reported in a single VALIDATION_ERROR.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: CreateInput

Returns:
  - *Session: The stored session
  - error: ValidationError or storage failures
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Session, error) {
	validator := &validate.Validator{}

	activity := normalize.Text(input.Activity)
	validator.Required(FieldActivity, activity).MaxLen(FieldActivity, activity, MaxActivityLength)

	validator.Custom(FieldDuration, input.Duration == nil, "This field is required")
	if input.Duration != nil {
		validator.Positive(FieldDuration, float64(*input.Duration)).Max(FieldDuration, float64(*input.Duration), MaxCount)
	}

	validator.Required(FieldIntensity, input.Intensity)
	if input.Intensity != "" {
		validator.OneOf(FieldIntensity, input.Intensity, Intensities...)
	}

	validator.Custom(FieldBurned, input.Burned == nil, "This field is required")
	if input.Burned != nil {
		validator.NonNegative(FieldBurned, float64(*input.Burned)).Max(FieldBurned, float64(*input.Burned), MaxCount)
	}

	validateOptional(validator, input.Sets, input.Reps, input.Weight, input.Distance, input.Notes)

	sessionDate := service.now().UTC()
	if input.Date != nil {
		sessionDate = parseDate(validator, *input.Date)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	session := &Session{
		ID:        uuid.New(),
		UserID:    ownerID,
		Date:      sessionDate,
		Activity:  activity,
		Duration:  *input.Duration,
		Intensity: Intensity(input.Intensity),
		Burned:    *input.Burned,
		Sets:      input.Sets,
		Reps:      input.Reps,
		Weight:    input.Weight,
		Distance:  input.Distance,
		Notes:     input.Notes,
	}

	if err := service.repository.Create(context, session); err != nil {
		return nil, fmt.Errorf("session_service_create_failed: %w", err)
	}

	service.logger.Info("session_created",
		slog.String("session_id", session.ID),
		slog.String("user_id", ownerID),
	)
	service.notify(context, ownerID)

	return session, nil
}

/*
List returns the owner's sessions, most recent first.

Parameters:
  - context: context.Context
  - ownerID: string
  - filter: Filter (optional date bounds and activity)

Returns:
  - []*Session: Possibly empty
  - error: ValidationError for an inverted range, or storage failures
*/
func (service *Service) List(context context.Context, ownerID string, filter Filter) ([]*Session, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: FieldFrom, Message: "Must not be after 'to'"})
	}

	sessions, err := service.repository.List(context, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("session_service_list_failed: %w", err)
	}
	return sessions, nil
}

/*
Get returns one of the owner's sessions.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string

Returns:
  - *Session: The session
  - error: apperr.NotFound for malformed, missing or foreign IDs
*/
func (service *Service) Get(context context.Context, ownerID, id string) (*Session, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceSession)
	}

	session, err := service.repository.Get(context, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("session_service_get_failed: %w", err)
	}
	return session, nil
}

/*
Update validates the touched fields and applies them atomically.

Description: A failed validation leaves the stored record unchanged. An empty
patch returns the current record.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string
  - input: UpdateInput

Returns:
  - *Session: The updated session
  - error: ValidationError, apperr.NotFound or storage failures
*/
func (service *Service) Update(context context.Context, ownerID, id string, input UpdateInput) (*Session, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceSession)
	}

	validator := &validate.Validator{}
	changes := Changes{
		Duration: input.Duration,
		Burned:   input.Burned,
		Sets:     input.Sets,
		Reps:     input.Reps,
		Weight:   input.Weight,
		Distance: input.Distance,
		Notes:    input.Notes,
	}

	if input.Activity != nil {
		activity := normalize.Text(*input.Activity)
		validator.Required(FieldActivity, activity).MaxLen(FieldActivity, activity, MaxActivityLength)
		changes.Activity = &activity
	}
	if input.Duration != nil {
		validator.Positive(FieldDuration, float64(*input.Duration)).Max(FieldDuration, float64(*input.Duration), MaxCount)
	}
	if input.Intensity != nil {
		validator.OneOf(FieldIntensity, *input.Intensity, Intensities...)
		intensity := Intensity(*input.Intensity)
		changes.Intensity = &intensity
	}
	if input.Burned != nil {
		validator.NonNegative(FieldBurned, float64(*input.Burned)).Max(FieldBurned, float64(*input.Burned), MaxCount)
	}
	validateOptional(validator, input.Sets, input.Reps, input.Weight, input.Distance, input.Notes)
	if input.Date != nil {
		parsed := parseDate(validator, *input.Date)
		changes.Date = &parsed
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if changes.IsEmpty() {
		return service.Get(context, ownerID, id)
	}

	session, err := service.repository.Update(context, ownerID, id, changes)
	if err != nil {
		return nil, fmt.Errorf("session_service_update_failed: %w", err)
	}

	service.logger.Info("session_updated", slog.String("session_id", id), slog.String("user_id", ownerID))
	if changes.Date != nil {
		service.notify(context, ownerID)
	}

	return session, nil
}

/*
Delete permanently removes one of the owner's sessions.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, ownerID, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(resourceSession)
	}

	if err := service.repository.Delete(context, ownerID, id); err != nil {
		return fmt.Errorf("session_service_delete_failed: %w", err)
	}

	service.logger.Info("session_deleted", slog.String("session_id", id), slog.String("user_id", ownerID))
	service.notify(context, ownerID)

	return nil
}

/*
Stats aggregates the owner's log, including the trailing [RecentWindow].

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - *Summary: Totals
  - error: Storage failures
*/
func (service *Service) Stats(context context.Context, ownerID string) (*Summary, error) {
	since := date.Day(service.now().Add(-RecentWindow))

	summary, err := service.repository.Summarize(context, ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("session_service_stats_failed: %w", err)
	}
	return summary, nil
}

// # Helpers

// notify refreshes derived progress. The write already succeeded, so failures are only logged.
func (service *Service) notify(context context.Context, ownerID string) {
	if service.notifier == nil {
		return
	}
	if err := service.notifier.Refresh(context, ownerID); err != nil {
		service.logger.Error("session_progress_refresh_failed",
			slog.String("user_id", ownerID),
			slog.Any("error", err),
		)
	}
}

func validateOptional(validator *validate.Validator, sets, reps *int, weight, distance *float64, notes *string) {
	if sets != nil {
		validator.NonNegative(FieldSets, float64(*sets)).Max(FieldSets, float64(*sets), MaxCount)
	}
	if reps != nil {
		validator.NonNegative(FieldReps, float64(*reps)).Max(FieldReps, float64(*reps), MaxCount)
	}
	if weight != nil {
		validator.NonNegative(FieldWeight, *weight)
	}
	if distance != nil {
		validator.NonNegative(FieldDistance, *distance)
	}
	if notes != nil {
		validator.MaxLen(FieldNotes, *notes, MaxNotesLength)
	}
}

func parseDate(validator *validate.Validator, raw string) time.Time {
	parsed, err := date.Parse(raw)
	validator.Custom(FieldDate, err != nil, "Must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	return parsed
}
