// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package sec

// # User Roles

// UserRole represents the authorization tier granted to an account.
//
// Superuser is NOT a role: it is an orthogonal flag carried separately on the
// account and the token claims, and is treated as at-least-admin everywhere.
type UserRole string

const (
	// Full control over the catalog and user management
	RoleAdmin UserRole = "admin"

	// Can edit and delete any review or comment
	RoleModerator UserRole = "moderator"

	// Default tier for registered accounts
	RoleUser UserRole = "user"
)

// IsValid reports whether r is one of the assignable roles.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
