// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

/*
Package account (Postgres) implements the storage layer for user
administration.

# Schema Table Mapping
  - users.account: Master identity and profile data.
*/
package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/dberr"
	"github.com/critiq-app/critiq/internal/users/auth"
)

const userColumns = `id, username, email, firstname, lastname, bio, role, issuperuser, createdat, updatedat`

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for user
// administration.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

func (repository *PostgresAccountRepository) List(context context.Context, search string, limit, offset int) ([]auth.User, int, error) {
	const countQuery = `
		SELECT COUNT(*)
		FROM users.account
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%')`

	const pageQuery = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%')
		ORDER BY username ASC
		LIMIT $2 OFFSET $3`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, search).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_users")
	}

	rows, err := repository.pool.Query(context, pageQuery, search, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]auth.User, 0)
	for rows.Next() {
		var user auth.User
		err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.FirstName,
			&user.LastName, &user.Bio, &user.Role, &user.IsSuperuser,
			&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	return users, total, nil
}

func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE id = $1`

	return repository.findOne(context, query, id)
}

func (repository *PostgresAccountRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE username = $1`

	return repository.findOne(context, query, username)
}

func (repository *PostgresAccountRepository) FindByEmail(context context.Context, email string) (*auth.User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM users.account
		WHERE lower(email) = lower($1)`

	return repository.findOne(context, query, email)
}

func (repository *PostgresAccountRepository) Create(context context.Context, user *auth.User) error {
	const query = `
		INSERT INTO users.account (id, username, email, firstname, lastname, bio, role, issuperuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING createdat, updatedat`

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName,
		user.Bio, user.Role, user.IsSuperuser).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET email = $2, firstname = $3, lastname = $4, bio = $5, role = $6,
		    updatedat = now()
		WHERE id = $1
		RETURNING updatedat`

	err := repository.pool.QueryRow(context, query,
		user.ID, user.Email, user.FirstName, user.LastName, user.Bio, user.Role).
		Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("User")
		}
		return dberr.Wrap(err, "update_user")
	}

	return nil
}

func (repository *PostgresAccountRepository) DeleteByUsername(context context.Context, username string) error {
	const query = `DELETE FROM users.account WHERE username = $1`

	tag, err := repository.pool.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

func (repository *PostgresAccountRepository) findOne(context context.Context, query string, argument any) (*auth.User, error) {
	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, argument).Scan(
		&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName,
		&user.Bio, &user.Role, &user.IsSuperuser, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_user")
	}

	return user, nil
}
