// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	"github.com/taibuivan/fitlog/internal/platform/database/schema"
	"github.com/taibuivan/fitlog/internal/platform/dberr"
)

var goalColumns = strings.Join(schema.TrackingGoal.Columns(), ", ")

// PostgresRepository implements [Repository] over tracking.goal.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL goal repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) Create(context context.Context, goal *Goal) error {
	table := schema.TrackingGoal
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s`,
		table.Table,
		table.ID, table.UserID, table.Name, table.Target, table.Current, table.Metric, table.Deadline,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		goal.ID, goal.UserID, goal.Name, goal.Target, goal.Current, goal.Metric, goal.Deadline,
	).Scan(&goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceGoal, "postgres_goal_repo_create_failed")
	}
	return nil
}

func (repository *PostgresRepository) List(context context.Context, ownerID string) ([]*Goal, error) {
	table := schema.TrackingGoal
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC, %s ASC`,
		goalColumns, table.Table, table.UserID, table.Deadline, table.CreatedAt, table.ID)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceGoal, "postgres_goal_repo_list_failed")
	}
	defer rows.Close()

	goals := make([]*Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceGoal, "postgres_goal_repo_scan_failed")
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceGoal, "postgres_goal_repo_rows_failed")
	}

	return goals, nil
}

func (repository *PostgresRepository) Get(context context.Context, ownerID, id string) (*Goal, error) {
	table := schema.TrackingGoal
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		goalColumns, table.Table, table.ID, table.UserID)

	goal, err := scanGoal(repository.pool.QueryRow(context, query, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceGoal, "postgres_goal_repo_get_failed")
	}
	return goal, nil
}

// Update COALESCEs every column with its parameter in one owner-conjoined statement.
func (repository *PostgresRepository) Update(context context.Context, ownerID, id string, changes Changes) (*Goal, error) {
	table := schema.TrackingGoal
	columns := []string{table.Name, table.Target, table.Current, table.Metric, table.Deadline}

	assignments := make([]string, 0, len(columns)+1)
	for i, column := range columns {
		assignments = append(assignments, fmt.Sprintf("%s = COALESCE($%d, %s)", column, i+3, column))
	}
	assignments = append(assignments, table.UpdatedAt+" = NOW()")

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 AND %s = $2 RETURNING %s`,
		table.Table, strings.Join(assignments, ", "), table.ID, table.UserID, goalColumns)

	goal, err := scanGoal(repository.pool.QueryRow(context, query,
		id, ownerID,
		changes.Name, changes.Target, changes.Current, changes.Metric, changes.Deadline,
	))
	if err != nil {
		return nil, dberr.Wrap(err, resourceGoal, "postgres_goal_repo_update_failed")
	}
	return goal, nil
}

func (repository *PostgresRepository) Delete(context context.Context, ownerID, id string) error {
	table := schema.TrackingGoal
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.ID, table.UserID)

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, resourceGoal, "postgres_goal_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceGoal)
	}
	return nil
}

func scanGoal(row pgx.Row) (*Goal, error) {
	goal := &Goal{}
	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.Target,
		&goal.Current,
		&goal.Metric,
		&goal.Deadline,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return goal, nil
}
