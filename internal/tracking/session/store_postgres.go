// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	"github.com/taibuivan/fitlog/internal/platform/database/schema"
	"github.com/taibuivan/fitlog/internal/platform/dberr"
)

// sessionColumns is the projection shared by every query that hydrates a [Session].
var sessionColumns = strings.Join(schema.TrackingSession.Columns(), ", ")

// PostgresRepository implements [Repository] over tracking.session.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL session repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s, %s`,
		schema.TrackingSession.Table,
		schema.TrackingSession.ID, schema.TrackingSession.UserID, schema.TrackingSession.Date,
		schema.TrackingSession.Activity, schema.TrackingSession.Duration, schema.TrackingSession.Intensity,
		schema.TrackingSession.Burned, schema.TrackingSession.Sets, schema.TrackingSession.Reps,
		schema.TrackingSession.Weight, schema.TrackingSession.Distance, schema.TrackingSession.Notes,
		schema.TrackingSession.CreatedAt, schema.TrackingSession.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		session.ID, session.UserID, session.Date,
		session.Activity, session.Duration, session.Intensity,
		session.Burned, session.Sets, session.Reps,
		session.Weight, session.Distance, session.Notes,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceSession, "postgres_session_repo_create_failed")
	}
	return nil
}

// listQuery matches the activity by case-insensitive equality, never as a LIKE
// pattern, so '%' and '_' in the filter are literal.
var listQuery = fmt.Sprintf(`
	SELECT %s FROM %s
	WHERE %s = $1
	  AND ($2::timestamptz IS NULL OR %s >= $2)
	  AND ($3::timestamptz IS NULL OR %s <= $3)
	  AND ($4 = '' OR lower(%s) = lower($4))
	ORDER BY %s DESC, %s DESC, %s DESC`,
	sessionColumns, schema.TrackingSession.Table,
	schema.TrackingSession.UserID,
	schema.TrackingSession.Date,
	schema.TrackingSession.Date,
	schema.TrackingSession.Activity,
	schema.TrackingSession.Date, schema.TrackingSession.CreatedAt, schema.TrackingSession.ID,
)

/*
List returns the owner's sessions ordered by date, newest first.

Description: Optional bounds are passed as NULL and short-circuit in SQL, so
one prepared statement serves every filter combination.
*/
func (repository *PostgresRepository) List(context context.Context, ownerID string, filter Filter) ([]*Session, error) {
	rows, err := repository.pool.Query(context, listQuery, ownerID, filter.From, filter.To, filter.Activity)
	if err != nil {
		return nil, dberr.Wrap(err, resourceSession, "postgres_session_repo_list_failed")
	}
	defer rows.Close()

	sessions := make([]*Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceSession, "postgres_session_repo_scan_failed")
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceSession, "postgres_session_repo_rows_failed")
	}

	return sessions, nil
}

func (repository *PostgresRepository) Get(context context.Context, ownerID, id string) (*Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		sessionColumns, schema.TrackingSession.Table, schema.TrackingSession.ID, schema.TrackingSession.UserID)

	session, err := scanSession(repository.pool.QueryRow(context, query, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceSession, "postgres_session_repo_get_failed")
	}
	return session, nil
}

/*
Update applies a partial update in a single owner-conjoined statement.

Description: Each column is COALESCEd with its parameter, so a NULL parameter
keeps the stored value. The statement either matches the owner's row or
affects nothing, which is reported as NOT_FOUND.
*/
func (repository *PostgresRepository) Update(context context.Context, ownerID, id string, changes Changes) (*Session, error) {
	columns := []string{
		schema.TrackingSession.Date, schema.TrackingSession.Activity, schema.TrackingSession.Duration,
		schema.TrackingSession.Intensity, schema.TrackingSession.Burned, schema.TrackingSession.Sets,
		schema.TrackingSession.Reps, schema.TrackingSession.Weight, schema.TrackingSession.Distance,
		schema.TrackingSession.Notes,
	}
	assignments := make([]string, 0, len(columns)+1)
	for i, column := range columns {
		assignments = append(assignments, fmt.Sprintf("%s = COALESCE($%d, %s)", column, i+3, column))
	}
	assignments = append(assignments, schema.TrackingSession.UpdatedAt+" = NOW()")

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 AND %s = $2 RETURNING %s`,
		schema.TrackingSession.Table, strings.Join(assignments, ", "),
		schema.TrackingSession.ID, schema.TrackingSession.UserID, sessionColumns)

	session, err := scanSession(repository.pool.QueryRow(context, query,
		id, ownerID,
		changes.Date, changes.Activity, changes.Duration,
		changes.Intensity, changes.Burned, changes.Sets,
		changes.Reps, changes.Weight, changes.Distance,
		changes.Notes,
	))
	if err != nil {
		return nil, dberr.Wrap(err, resourceSession, "postgres_session_repo_update_failed")
	}
	return session, nil
}

func (repository *PostgresRepository) Delete(context context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.TrackingSession.Table, schema.TrackingSession.ID, schema.TrackingSession.UserID)

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, resourceSession, "postgres_session_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceSession)
	}
	return nil
}

/*
Summarize computes the statistics page totals with aggregate FILTER clauses.
*/
func (repository *PostgresRepository) Summarize(context context.Context, ownerID string, since time.Time) (*Summary, error) {
	table := schema.TrackingSession
	totalsQuery := fmt.Sprintf(`
		SELECT COUNT(*),
		       COALESCE(SUM(%[2]s), 0),
		       COALESCE(SUM(%[3]s), 0),
		       COUNT(*) FILTER (WHERE %[4]s = 'Low'),
		       COUNT(*) FILTER (WHERE %[4]s = 'Medium'),
		       COUNT(*) FILTER (WHERE %[4]s = 'High'),
		       COUNT(*) FILTER (WHERE %[5]s >= $2),
		       COALESCE(SUM(%[2]s) FILTER (WHERE %[5]s >= $2), 0),
		       COALESCE(SUM(%[3]s) FILTER (WHERE %[5]s >= $2), 0)
		FROM %[1]s
		WHERE %[6]s = $1`,
		table.Table, table.Duration, table.Burned, table.Intensity, table.Date, table.UserID)

	var count, duration, burned, low, medium, high, recentCount, recentDuration, recentBurned int64
	err := repository.pool.QueryRow(context, totalsQuery, ownerID, since).Scan(
		&count, &duration, &burned, &low, &medium, &high, &recentCount, &recentDuration, &recentBurned,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resourceSession, "postgres_session_repo_summary_failed")
	}

	favoriteQuery := fmt.Sprintf(`
		SELECT %[2]s FROM %[1]s WHERE %[3]s = $1
		GROUP BY %[2]s
		ORDER BY COUNT(*) DESC, %[2]s ASC
		LIMIT 1`,
		table.Table, table.Activity, table.UserID)

	var favorite string
	err = repository.pool.QueryRow(context, favoriteQuery, ownerID).Scan(&favorite)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, dberr.Wrap(err, resourceSession, "postgres_session_repo_favorite_failed")
	}

	return &Summary{
		Count:         int(count),
		TotalDuration: int(duration),
		TotalBurned:   int(burned),
		ByIntensity: map[Intensity]int{
			IntensityLow:    int(low),
			IntensityMedium: int(medium),
			IntensityHigh:   int(high),
		},
		FavoriteActivity: favorite,
		Recent: Window{
			Since:         since,
			Count:         int(recentCount),
			TotalDuration: int(recentDuration),
			TotalBurned:   int(recentBurned),
		},
	}, nil
}

// scanSession hydrates a [Session] in [schema.TrackingSessionTable.Columns] order.
func scanSession(row pgx.Row) (*Session, error) {
	session := &Session{}
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Date,
		&session.Activity,
		&session.Duration,
		&session.Intensity,
		&session.Burned,
		&session.Sets,
		&session.Reps,
		&session.Weight,
		&session.Distance,
		&session.Notes,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}
