// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package goal implements per-user training goals with the same ownership
// contract as the session log.
package goal

import "time"

// Goal is a numeric target the owner is working towards by a deadline.
type Goal struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Target    float64   `json:"target"`
	Current   float64   `json:"current"`
	Metric    string    `json:"metric"`
	Deadline  time.Time `json:"deadline"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Changes is a validated partial update. Nil fields are left untouched.
type Changes struct {
	Name     *string
	Target   *float64
	Current  *float64
	Metric   *string
	Deadline *time.Time
}

// IsEmpty reports whether the patch touches no field.
func (changes Changes) IsEmpty() bool {
	return changes == Changes{}
}

const (
	FieldID       = "id"
	FieldName     = "name"
	FieldTarget   = "target"
	FieldCurrent  = "current"
	FieldMetric   = "metric"
	FieldDeadline = "deadline"
)

const (
	MaxNameLength   = 100
	MaxMetricLength = 32
)

const resourceGoal = "Goal"
