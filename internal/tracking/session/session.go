// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the workout log: ownership-scoped CRUD over
training sessions plus the per-owner summary shown on the statistics page.

# Ownership

Every read and write is conjoined with the owner's ID. A session that exists
but belongs to someone else is indistinguishable from one that does not exist.
*/
package session

import (
	"math"
	"time"
)

// # Domain Entities

// Intensity is the perceived effort of a session.
type Intensity string

const (
	IntensityLow    Intensity = "Low"
	IntensityMedium Intensity = "Medium"
	IntensityHigh   Intensity = "High"
)

// Intensities lists the accepted values in display order.
var Intensities = []string{string(IntensityLow), string(IntensityMedium), string(IntensityHigh)}

// Session is a single logged workout.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      time.Time `json:"date"`
	Activity  string    `json:"activity"`
	Duration  int       `json:"duration"` // minutes
	Intensity Intensity `json:"intensity"`
	Burned    int       `json:"burned"` // kcal
	Sets      *int      `json:"sets,omitempty"`
	Reps      *int      `json:"reps,omitempty"`
	Weight    *float64  `json:"weight,omitempty"`
	Distance  *float64  `json:"distance,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Changes is a validated partial update. Nil fields are left untouched.
type Changes struct {
	Date      *time.Time
	Activity  *string
	Duration  *int
	Intensity *Intensity
	Burned    *int
	Sets      *int
	Reps      *int
	Weight    *float64
	Distance  *float64
	Notes     *string
}

// IsEmpty reports whether the patch touches no field.
func (changes Changes) IsEmpty() bool {
	return changes == Changes{}
}

// Filter narrows a session listing. Zero values mean "no constraint".
type Filter struct {
	From     *time.Time
	To       *time.Time
	Activity string
}

// Summary aggregates an owner's session log.
type Summary struct {
	Count            int               `json:"count"`
	TotalDuration    int               `json:"totalDuration"`
	TotalBurned      int               `json:"totalBurned"`
	ByIntensity      map[Intensity]int `json:"byIntensity"`
	FavoriteActivity string            `json:"favoriteActivity,omitempty"`
	Recent           Window            `json:"recent"`
}

// Window aggregates the sessions dated on or after Since.
type Window struct {
	Since         time.Time `json:"since"`
	Count         int       `json:"count"`
	TotalDuration int       `json:"totalDuration"`
	TotalBurned   int       `json:"totalBurned"`
}

// # Field Identifiers

const (
	FieldID        = "id"
	FieldDate      = "date"
	FieldActivity  = "activity"
	FieldDuration  = "duration"
	FieldIntensity = "intensity"
	FieldBurned    = "burned"
	FieldSets      = "sets"
	FieldReps      = "reps"
	FieldWeight    = "weight"
	FieldDistance  = "distance"
	FieldNotes     = "notes"
	FieldFrom      = "from"
	FieldTo        = "to"
)

// # Input Constraints

const (
	MaxActivityLength = 100
	MaxNotesLength    = 1000

	// MaxCount caps duration, burned, sets and reps at the INTEGER column range.
	MaxCount = math.MaxInt32

	// RecentWindow is the span covered by [Summary.Recent].
	RecentWindow = 30 * 24 * time.Hour
)

// resourceSession names the entity in NOT_FOUND messages.
const resourceSession = "Session"
