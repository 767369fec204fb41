// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

/*
Package auth implements the user identity layer: signup, confirmation-code
exchange, and access token issuance.

Critiq is passwordless. A signup stores (or refreshes) an account and mails a
single-use confirmation code; exchanging that code at the token endpoint
yields an RS256-signed JWT. Nothing secret is persisted in PostgreSQL — codes
live hashed in Redis with a bounded TTL.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/critiq-app/critiq/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Critiq platform.
type User struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Bio         string       `json:"bio"`
	Role        sec.UserRole `json:"role"`
	IsSuperuser bool         `json:"-"` // Operational flag. Never exposed over the API.
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"-"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the
// authentication domain.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldCode     = "confirmation_code"
	FieldRole     = "role"
)

// UsernameMe is reserved for the self-profile route and can never be
// registered.
const UsernameMe = "me"
