// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/fitlog/internal/platform/database/schema"
	"github.com/taibuivan/fitlog/internal/platform/dberr"
)

// # Repository Implementations

// PostgresWorkoutHistory implements [WorkoutHistory] over tracking.session.
type PostgresWorkoutHistory struct {
	pool *pgxpool.Pool
}

// NewPostgresWorkoutHistory creates a new Postgres implementation of [WorkoutHistory].
func NewPostgresWorkoutHistory(pool *pgxpool.Pool) *PostgresWorkoutHistory {
	return &PostgresWorkoutHistory{pool: pool}
}

/*
WorkoutDays counts the owner's sessions and lists their distinct workout days.

Description: Days are bucketed in UTC, matching the connection time zone set
by the pool. The window function yields the total alongside every day row,
so a single round trip serves both values.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - int: Session count
  - []time.Time: Distinct days, most recent first
  - error: Database execution failures
*/
func (repository *PostgresWorkoutHistory) WorkoutDays(context context.Context, ownerID string) (int, []time.Time, error) {
	query := fmt.Sprintf(`
		SELECT date_trunc('day', %s)::date AS day, (SUM(COUNT(*)) OVER ())::bigint AS total
		FROM %s
		WHERE %s = $1
		GROUP BY day
		ORDER BY day DESC`,
		schema.TrackingSession.Date, schema.TrackingSession.Table, schema.TrackingSession.UserID)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return 0, nil, dberr.Wrap(err, "Session", "postgres_workout_history_query_failed")
	}
	defer rows.Close()

	total := 0
	days := make([]time.Time, 0)
	for rows.Next() {
		var day time.Time
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return 0, nil, dberr.Wrap(err, "Session", "postgres_workout_history_scan_failed")
		}
		total = int(count)
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, dberr.Wrap(err, "Session", "postgres_workout_history_rows_failed")
	}

	return total, days, nil
}
