// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package sec

// # Authorization Policy
//
// Write access to every resource is decided by a single enumerated table
// instead of conditional checks scattered across handlers. This keeps the
// permission matrix auditable in one place.

// Action is a coarse operation class used by the policy table.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource names a protected resource class.
type Resource string

const (
	ResourceCategory Resource = "category"
	ResourceGenre    Resource = "genre"
	ResourceTitle    Resource = "title"
	ResourceReview   Resource = "review"
	ResourceComment  Resource = "comment"
	ResourceUser     Resource = "user"
)

// rule describes who may perform one (resource, action) pair.
type rule struct {
	// minRole is the minimum role required. Empty means any authenticated user.
	minRole UserRole
	// anonymous permits unauthenticated access (read-only endpoints).
	anonymous bool
	// ownerOverride permits the owner of the object regardless of minRole.
	ownerOverride bool
}

// policy is the full permission matrix. A missing entry denies everyone.
var policy = map[Resource]map[Action]rule{
	ResourceCategory: {
		ActionRead:   {anonymous: true},
		ActionCreate: {minRole: RoleAdmin},
		ActionDelete: {minRole: RoleAdmin},
	},
	ResourceGenre: {
		ActionRead:   {anonymous: true},
		ActionCreate: {minRole: RoleAdmin},
		ActionDelete: {minRole: RoleAdmin},
	},
	ResourceTitle: {
		ActionRead:   {anonymous: true},
		ActionCreate: {minRole: RoleAdmin},
		ActionUpdate: {minRole: RoleAdmin},
		ActionDelete: {minRole: RoleAdmin},
	},
	ResourceReview: {
		ActionRead:   {anonymous: true},
		ActionCreate: {},
		ActionUpdate: {minRole: RoleModerator, ownerOverride: true},
		ActionDelete: {minRole: RoleModerator, ownerOverride: true},
	},
	ResourceComment: {
		ActionRead:   {anonymous: true},
		ActionCreate: {},
		ActionUpdate: {minRole: RoleModerator, ownerOverride: true},
		ActionDelete: {minRole: RoleModerator, ownerOverride: true},
	},
	ResourceUser: {
		ActionRead:   {minRole: RoleAdmin},
		ActionCreate: {minRole: RoleAdmin},
		ActionUpdate: {minRole: RoleAdmin},
		ActionDelete: {minRole: RoleAdmin},
	},
}

// Actor is the identity a policy decision is made for.
//
// The zero value is an anonymous request.
type Actor struct {
	Authenticated bool
	Role          UserRole
	IsSuperuser   bool
}

// ActorFromClaims builds an [Actor] from verified token claims.
// A nil claims pointer yields the anonymous actor.
func ActorFromClaims(claims *AuthClaims) Actor {
	if claims == nil {
		return Actor{}
	}
	return Actor{
		Authenticated: true,
		Role:          UserRole(claims.Role),
		IsSuperuser:   claims.IsSuperuser,
	}
}

// Allowed decides whether the actor may perform action on resource.
//
// isOwner reports whether the actor owns the specific object (review/comment
// authorship). It is ignored for rules without an owner override.
func Allowed(actor Actor, action Action, resource Resource, isOwner bool) bool {
	actions, ok := policy[resource]
	if !ok {
		return false
	}
	r, ok := actions[action]
	if !ok {
		return false
	}

	if r.anonymous {
		return true
	}
	if !actor.Authenticated {
		return false
	}
	// Superusers act as admins across the whole matrix.
	if actor.IsSuperuser {
		return true
	}
	if r.ownerOverride && isOwner {
		return true
	}
	if r.minRole == "" {
		return true
	}
	return actor.Role.AtLeast(r.minRole)
}
