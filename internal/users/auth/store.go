// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts, limited
// to what the signup and token flows need. Administrative listing and
// mutation live in the account package.
type UserRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account.

		Returns:
		  - error: Conflict (username/email taken under concurrency) or
		    persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Volatile Data Access

// CodeRepository defines the contract for storing volatile confirmation-code
// hashes. Keys are usernames: a resignup overwrites the previous code.
type CodeRepository interface {

	/*
		Set stores a code hash for the username with the given TTL.

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, username, codeHash string, ttl time.Duration) error

	/*
		Get retrieves the stored code hash for the username.

		Returns:
		  - string: The bcrypt hash
		  - error: apperr.NotFound when absent or expired
	*/
	Get(context context.Context, username string) (string, error)

	/*
		Delete removes the code after a successful exchange.

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, username string) error
}
