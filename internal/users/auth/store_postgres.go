// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

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

// resourceUser names the entity in NOT_FOUND and DUPLICATE_IDENTITY messages.
const resourceUser = "User"

// userColumns is the projection shared by every query that hydrates a [User].
var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
FindByID retrieves a user record by primary key.

Description: A malformed UUID is reported by PostgreSQL as 22P02 and mapped
to NOT_FOUND, exactly like a missing row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser, "postgres_user_repo_find_by_id_failed")
	}
	return user, nil
}

/*
FindByEmail retrieves a user record by its normalized email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser, "postgres_user_repo_find_by_email_failed")
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: The unique index on email turns a concurrent double registration
into a 23505, which surfaces as DUPLICATE_IDENTITY.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist; timestamps are filled from the database)

Returns:
  - error: apperr.DuplicateIdentity or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Name, schema.UserAccount.Email, schema.UserAccount.Password,
		schema.UserAccount.Level, schema.UserAccount.Streak, schema.UserAccount.TotalWorkouts,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Level,
		user.Streak,
		user.TotalWorkouts,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceUser, "postgres_user_repo_create_failed")
	}

	return nil
}

/*
UpdateName replaces the display name.

Parameters:
  - context: context.Context
  - userID: string
  - name: string

Returns:
  - *User: The updated row
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) UpdateName(context context.Context, userID, name string) (*User, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 RETURNING %s`,
		schema.UserAccount.Table, schema.UserAccount.Name, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, userColumns)

	user, err := scanUser(repository.pool.QueryRow(context, query, userID, name))
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser, "postgres_user_repo_update_name_failed")
	}
	return user, nil
}

/*
UpdatePassword replaces only the user's password hash.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Password, schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, resourceUser, "postgres_user_repo_update_password_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}

/*
UpdateProgress stores the advisory counters derived from session history.

Parameters:
  - context: context.Context
  - userID: string
  - progress: Progress

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) UpdateProgress(context context.Context, userID string, progress Progress) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Level, schema.UserAccount.Streak, schema.UserAccount.TotalWorkouts,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, userID, progress.Level, progress.Streak, progress.TotalWorkouts)
	if err != nil {
		return dberr.Wrap(err, resourceUser, "postgres_user_repo_update_progress_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}

/*
Delete removes the account. Sessions and goals follow through ON DELETE CASCADE.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) Delete(context context.Context, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return dberr.Wrap(err, resourceUser, "postgres_user_repo_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}

// scanUser hydrates a [User] in [schema.UserAccountTable.Columns] order.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Level,
		&user.Streak,
		&user.TotalWorkouts,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
