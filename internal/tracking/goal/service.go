// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	"github.com/taibuivan/fitlog/internal/platform/validate"
	"github.com/taibuivan/fitlog/pkg/date"
	"github.com/taibuivan/fitlog/pkg/normalize"
	"github.com/taibuivan/fitlog/pkg/uuid"
)

// Service implements the ownership-scoped goal use cases.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new goal [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// CreateInput is the client payload for a new goal.
type CreateInput struct {
	Name     string   `json:"name"`
	Target   *float64 `json:"target"`
	Current  *float64 `json:"current"`
	Metric   string   `json:"metric"`
	Deadline string   `json:"deadline"`
}

// UpdateInput is the client payload for a partial update.
type UpdateInput struct {
	Name     *string  `json:"name"`
	Target   *float64 `json:"target"`
	Current  *float64 `json:"current"`
	Metric   *string  `json:"metric"`
	Deadline *string  `json:"deadline"`
}

/*
Create validates the payload and records a goal for the owner.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: CreateInput

Returns:
  - *Goal: The stored goal (Current defaults to 0)
  - error: ValidationError or storage failures
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Goal, error) {
	validator := &validate.Validator{}

	name := normalize.Text(input.Name)
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)

	metric := normalize.Text(input.Metric)
	validator.Required(FieldMetric, metric).MaxLen(FieldMetric, metric, MaxMetricLength)

	validator.Custom(FieldTarget, input.Target == nil, "This field is required")
	if input.Target != nil {
		validator.Positive(FieldTarget, *input.Target)
	}

	current := 0.0
	if input.Current != nil {
		validator.NonNegative(FieldCurrent, *input.Current)
		current = *input.Current
	}

	validator.Required(FieldDeadline, input.Deadline)
	deadline, err := date.Parse(input.Deadline)
	validator.Custom(FieldDeadline, input.Deadline != "" && err != nil, dateMessage)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	goal := &Goal{
		ID:       uuid.New(),
		UserID:   ownerID,
		Name:     name,
		Target:   *input.Target,
		Current:  current,
		Metric:   metric,
		Deadline: deadline,
	}

	if err := service.repository.Create(context, goal); err != nil {
		return nil, fmt.Errorf("goal_service_create_failed: %w", err)
	}

	service.logger.Info("goal_created", slog.String("goal_id", goal.ID), slog.String("user_id", ownerID))
	return goal, nil
}

// List returns the owner's goals, nearest deadline first.
func (service *Service) List(context context.Context, ownerID string) ([]*Goal, error) {
	goals, err := service.repository.List(context, ownerID)
	if err != nil {
		return nil, fmt.Errorf("goal_service_list_failed: %w", err)
	}
	return goals, nil
}

// Get returns one of the owner's goals; malformed, missing and foreign IDs are NOT_FOUND.
func (service *Service) Get(context context.Context, ownerID, id string) (*Goal, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceGoal)
	}

	goal, err := service.repository.Get(context, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("goal_service_get_failed: %w", err)
	}
	return goal, nil
}

/*
Update validates the touched fields and applies them atomically.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string
  - input: UpdateInput

Returns:
  - *Goal: The updated goal
  - error: ValidationError, apperr.NotFound or storage failures
*/
func (service *Service) Update(context context.Context, ownerID, id string, input UpdateInput) (*Goal, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceGoal)
	}

	validator := &validate.Validator{}
	changes := Changes{Target: input.Target, Current: input.Current}

	if input.Name != nil {
		name := normalize.Text(*input.Name)
		validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
		changes.Name = &name
	}
	if input.Metric != nil {
		metric := normalize.Text(*input.Metric)
		validator.Required(FieldMetric, metric).MaxLen(FieldMetric, metric, MaxMetricLength)
		changes.Metric = &metric
	}
	if input.Target != nil {
		validator.Positive(FieldTarget, *input.Target)
	}
	if input.Current != nil {
		validator.NonNegative(FieldCurrent, *input.Current)
	}
	if input.Deadline != nil {
		deadline, err := date.Parse(*input.Deadline)
		validator.Custom(FieldDeadline, err != nil, dateMessage)
		changes.Deadline = &deadline
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if changes.IsEmpty() {
		return service.Get(context, ownerID, id)
	}

	goal, err := service.repository.Update(context, ownerID, id, changes)
	if err != nil {
		return nil, fmt.Errorf("goal_service_update_failed: %w", err)
	}

	service.logger.Info("goal_updated", slog.String("goal_id", id), slog.String("user_id", ownerID))
	return goal, nil
}

// Delete permanently removes one of the owner's goals.
func (service *Service) Delete(context context.Context, ownerID, id string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(resourceGoal)
	}

	if err := service.repository.Delete(context, ownerID, id); err != nil {
		return fmt.Errorf("goal_service_delete_failed: %w", err)
	}

	service.logger.Info("goal_deleted", slog.String("goal_id", id), slog.String("user_id", ownerID))
	return nil
}

const dateMessage = "Must be a date (YYYY-MM-DD) or RFC 3339 timestamp"
