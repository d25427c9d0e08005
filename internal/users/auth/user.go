// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the credential store and the authentication service.

It owns the User entity, issues bearer credentials on registration and login,
and resolves token subjects back to identities for the authorization middleware.

# Architecture

  - Service: Register, Login and ResolveIdentity use cases.
  - Repository: UserRepository, implemented for PostgreSQL and process memory.
  - Cache: an optional Redis read-through cache for resolved identities.
*/
package auth

import (
	"time"

	"github.com/taibuivan/fitlog/internal/platform/sec"
)

// # Domain Entities

// Level is the self-reported experience bracket, recomputed from workout history.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// User represents a registered Fitlog member.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // Explicitly omitted from JSON for security.
	Level         Level     `json:"level"`
	Streak        int       `json:"streak"`
	TotalWorkouts int       `json:"totalWorkouts"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Identity projects the user onto the subject attached to authenticated requests.
func (user *User) Identity() *sec.Identity {
	return &sec.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}
}

// Progress holds the advisory counters derived from session history.
type Progress struct {
	Level         Level
	Streak        int
	TotalWorkouts int
}

// Credentials is the result of a successful registration or login.
type Credentials struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}

// # Field Identifiers

const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldToken           = "token"
	FieldExpiresAt       = "expiresAt"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
)

// # Input Constraints

const (
	// MaxNameLength is the maximum number of characters in a display name.
	MaxNameLength = 100

	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 6

	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72

	// MaxEmailLength is the RFC 5321 path limit.
	MaxEmailLength = 254
)

// ErrMessageUserExists is returned, wrapped in DUPLICATE_IDENTITY, for a taken email.
const ErrMessageUserExists = "User already exists"
