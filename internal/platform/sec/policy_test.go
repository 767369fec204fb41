// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/critiq-app/critiq/internal/platform/sec"
)

var (
	anonymous = sec.Actor{}
	member    = sec.Actor{Authenticated: true, Role: sec.RoleUser}
	moderator = sec.Actor{Authenticated: true, Role: sec.RoleModerator}
	admin     = sec.Actor{Authenticated: true, Role: sec.RoleAdmin}
	superuser = sec.Actor{Authenticated: true, Role: sec.RoleUser, IsSuperuser: true}
)

/*
TestAllowed_CatalogReads verifies that the classification and catalogue
resources are world-readable.
*/
func TestAllowed_CatalogReads(t *testing.T) {
	for _, resource := range []sec.Resource{sec.ResourceCategory, sec.ResourceGenre, sec.ResourceTitle, sec.ResourceReview, sec.ResourceComment} {
		assert.True(t, sec.Allowed(anonymous, sec.ActionRead, resource, false), "anonymous read %s", resource)
		assert.True(t, sec.Allowed(member, sec.ActionRead, resource, false), "member read %s", resource)
	}
}

/*
TestAllowed_CatalogWrites verifies that only admins manage categories,
genres, and titles.
*/
func TestAllowed_CatalogWrites(t *testing.T) {
	tests := []struct {
		name  string
		actor sec.Actor
		want  bool
	}{
		{"anonymous", anonymous, false},
		{"member", member, false},
		{"moderator", moderator, false},
		{"admin", admin, true},
		{"superuser_with_user_role", superuser, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, resource := range []sec.Resource{sec.ResourceCategory, sec.ResourceGenre, sec.ResourceTitle} {
				assert.Equal(t, tt.want, sec.Allowed(tt.actor, sec.ActionCreate, resource, false), "create %s", resource)
				assert.Equal(t, tt.want, sec.Allowed(tt.actor, sec.ActionDelete, resource, false), "delete %s", resource)
			}
		})
	}
}

/*
TestAllowed_ReviewOwnership verifies the owner-override rules for reviews
and comments: authors manage their own, moderators manage everyone's, and
plain members cannot touch someone else's.
*/
func TestAllowed_ReviewOwnership(t *testing.T) {
	for _, resource := range []sec.Resource{sec.ResourceReview, sec.ResourceComment} {
		// Any authenticated member may create; anonymous may not.
		assert.True(t, sec.Allowed(member, sec.ActionCreate, resource, false))
		assert.False(t, sec.Allowed(anonymous, sec.ActionCreate, resource, false))

		// Owner may edit and delete their own object.
		assert.True(t, sec.Allowed(member, sec.ActionUpdate, resource, true))
		assert.True(t, sec.Allowed(member, sec.ActionDelete, resource, true))

		// Non-owner member may not.
		assert.False(t, sec.Allowed(member, sec.ActionUpdate, resource, false))
		assert.False(t, sec.Allowed(member, sec.ActionDelete, resource, false))

		// Moderators and admins act on any object.
		assert.True(t, sec.Allowed(moderator, sec.ActionUpdate, resource, false))
		assert.True(t, sec.Allowed(moderator, sec.ActionDelete, resource, false))
		assert.True(t, sec.Allowed(admin, sec.ActionDelete, resource, false))

		// Anonymous never passes, ownership flag or not.
		assert.False(t, sec.Allowed(anonymous, sec.ActionDelete, resource, true))
	}
}

/*
TestAllowed_UserAdministration verifies the /users surface is admin-only.
*/
func TestAllowed_UserAdministration(t *testing.T) {
	for _, action := range []sec.Action{sec.ActionRead, sec.ActionCreate, sec.ActionUpdate, sec.ActionDelete} {
		assert.False(t, sec.Allowed(member, action, sec.ResourceUser, false))
		assert.False(t, sec.Allowed(moderator, action, sec.ResourceUser, false))
		assert.True(t, sec.Allowed(admin, action, sec.ResourceUser, false))
		assert.True(t, sec.Allowed(superuser, action, sec.ResourceUser, false))
	}
}

/*
TestAllowed_UnknownResource verifies that a missing policy entry denies
everyone, including admins.
*/
func TestAllowed_UnknownResource(t *testing.T) {
	assert.False(t, sec.Allowed(admin, sec.ActionRead, sec.Resource("unknown"), false))
	assert.False(t, sec.Allowed(admin, sec.Action("unknown"), sec.ResourceTitle, false))
}

/*
TestRole_Hierarchy verifies role ordering and validity checks.
*/
func TestRole_Hierarchy(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleModerator.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleModerator))
	assert.True(t, sec.RoleUser.AtLeast(sec.RoleUser))

	assert.True(t, sec.RoleModerator.IsValid())
	assert.False(t, sec.UserRole("owner").IsValid())

	// Unknown roles rank below every real role.
	assert.False(t, sec.UserRole("").AtLeast(sec.RoleUser))
}

/*
TestActorFromClaims verifies the claims-to-actor mapping, including the
anonymous zero value.
*/
func TestActorFromClaims(t *testing.T) {
	assert.Equal(t, sec.Actor{}, sec.ActorFromClaims(nil))

	actor := sec.ActorFromClaims(&sec.AuthClaims{
		UserID:      "user-1",
		Username:    "ada",
		Role:        "moderator",
		IsSuperuser: true,
	})
	assert.True(t, actor.Authenticated)
	assert.Equal(t, sec.RoleModerator, actor.Role)
	assert.True(t, actor.IsSuperuser)
}
