// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

/*
Package account handles user administration and self-profile management.

It provides the admin-only user CRUD surface and the /users/me routes through
which members view and edit their own profile.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Policy: Admin routes are gated by the authorization policy table; the
    self-profile routes only require authentication.
*/
package account

import (
	"context"

	"github.com/critiq-app/critiq/internal/users/auth"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for user administration.
type AccountRepository interface {

	/*
		List returns one page of accounts plus the unpaginated total.
		A non-empty search narrows by username substring.

		Returns:
		  - []auth.User: Page of accounts ordered by username
		  - int: Total matches
		  - error: Execution failures
	*/
	List(context context.Context, search string, limit, offset int) ([]auth.User, int, error)

	/*
		FindByID retrieves a user record by their unique ID.

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindByUsername retrieves a user record by username.

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		FindByEmail retrieves a user record by email, case-insensitively.

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*auth.User, error)

	/*
		Create persists a brand-new account on behalf of an administrator.

		Returns:
		  - error: Conflict or persistence failures
	*/
	Create(context context.Context, user *auth.User) error

	/*
		Update modifies the mutable fields of an existing user.

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		DeleteByUsername removes the account. The user's reviews and
		comments cascade with it.

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	DeleteByUsername(context context.Context, username string) error
}
