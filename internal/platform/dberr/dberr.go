// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Mapping
//   - pgx.ErrNoRows: NOT_FOUND for the given resource.
//   - 22P02 (invalid_text_representation): NOT_FOUND, a malformed key never matches a row.
//   - 23505 (unique_violation): DUPLICATE_IDENTITY.
//   - 23503 (foreign_key_violation): UNAUTHORIZED, the owning account is gone.
//   - 22003 (numeric_value_out_of_range): VALIDATION_ERROR.
//   - Anything else: INTERNAL_ERROR carrying the cause for logging.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. SQLSTATE mapping
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.InvalidTextRepresentation:
			return apperr.NotFound(resource)
		case pgerrcode.UniqueViolation:
			duplicate := apperr.DuplicateIdentity(resource + " already exists")
			duplicate.Cause = err
			return duplicate
		case pgerrcode.ForeignKeyViolation:
			orphaned := apperr.Unauthorized("Authentication required")
			orphaned.Cause = err
			return orphaned
		case pgerrcode.NumericValueOutOfRange:
			outOfRange := apperr.ValidationError("Value out of range")
			outOfRange.Cause = err
			return outOfRange
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
