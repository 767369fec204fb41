// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package account_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/internal/users/account"
	"github.com/critiq-app/critiq/internal/users/auth"
	"github.com/critiq-app/critiq/pkg/pointer"
)

// # Fakes

type fakeAccountRepository struct {
	byID map[string]*auth.User
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{byID: make(map[string]*auth.User)}
}

func (repo *fakeAccountRepository) List(_ context.Context, search string, _, _ int) ([]auth.User, int, error) {
	out := make([]auth.User, 0)
	for _, user := range repo.byID {
		if search == "" || strings.Contains(user.Username, search) {
			out = append(out, *user)
		}
	}
	return out, len(out), nil
}

func (repo *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeAccountRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repo.byID {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeAccountRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.byID {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeAccountRepository) Create(_ context.Context, user *auth.User) error {
	user.CreatedAt = time.Now()
	stored := *user
	repo.byID[user.ID] = &stored
	return nil
}

func (repo *fakeAccountRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := repo.byID[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	user.UpdatedAt = time.Now()
	stored := *user
	repo.byID[user.ID] = &stored
	return nil
}

func (repo *fakeAccountRepository) DeleteByUsername(_ context.Context, username string) error {
	for id, user := range repo.byID {
		if user.Username == username {
			delete(repo.byID, id)
			return nil
		}
	}
	return apperr.NotFound("User")
}

// # Helpers

var (
	memberActor = sec.Actor{Authenticated: true, Role: sec.RoleUser}
	adminActor  = sec.Actor{Authenticated: true, Role: sec.RoleAdmin}
	superActor  = sec.Actor{Authenticated: true, Role: sec.RoleUser, IsSuperuser: true}
)

func newService(repo *fakeAccountRepository) *account.Service {
	return account.NewService(repo, slog.New(slog.DiscardHandler))
}

func seedUser(t *testing.T, service *account.Service, username, email string) *auth.User {
	t.Helper()
	user, err := service.Create(context.Background(), account.CreateInput{
		Username: username,
		Email:    email,
	})
	require.NoError(t, err)
	return user
}

// # Tests

func TestCreate_DefaultsRoleToUser(t *testing.T) {
	service := newService(newFakeAccountRepository())

	user := seedUser(t, service, "margaret", "margaret@example.com")
	assert.Equal(t, sec.RoleUser, user.Role)
}

func TestCreate_AdminMayAssignRole(t *testing.T) {
	service := newService(newFakeAccountRepository())

	user, err := service.Create(context.Background(), account.CreateInput{
		Username: "harriet",
		Email:    "harriet@example.com",
		Role:     "moderator",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	service := newService(newFakeAccountRepository())

	cases := []struct {
		name  string
		input account.CreateInput
	}{
		{"missing_username", account.CreateInput{Email: "a@example.com"}},
		{"reserved_username", account.CreateInput{Username: "me", Email: "a@example.com"}},
		{"malformed_email", account.CreateInput{Username: "margaret", Email: "oops"}},
		{"unknown_role", account.CreateInput{Username: "margaret", Email: "a@example.com", Role: "owner"}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), testCase.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

func TestCreate_TakenIdentifiersConflict(t *testing.T) {
	service := newService(newFakeAccountRepository())
	seedUser(t, service, "margaret", "margaret@example.com")

	_, err := service.Create(context.Background(), account.CreateInput{
		Username: "margaret",
		Email:    "other@example.com",
	})
	assert.True(t, apperr.IsConflict(err))

	_, err = service.Create(context.Background(), account.CreateInput{
		Username: "peggy",
		Email:    "margaret@example.com",
	})
	assert.True(t, apperr.IsConflict(err))
}

func TestPatch_UpdatesProfileFields(t *testing.T) {
	service := newService(newFakeAccountRepository())
	seedUser(t, service, "margaret", "margaret@example.com")

	updated, err := service.Patch(context.Background(), "margaret", account.PatchInput{
		FirstName: pointer.To("Margaret"),
		Bio:       pointer.To("Reviews mostly westerns."),
		Role:      pointer.To("moderator"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Margaret", updated.FirstName)
	assert.Equal(t, "Reviews mostly westerns.", updated.Bio)
	assert.Equal(t, sec.RoleModerator, updated.Role)
	// Username never changes through a patch.
	assert.Equal(t, "margaret", updated.Username)
}

func TestPatch_EmailCollisionConflicts(t *testing.T) {
	service := newService(newFakeAccountRepository())
	seedUser(t, service, "margaret", "margaret@example.com")
	seedUser(t, service, "harriet", "harriet@example.com")

	_, err := service.Patch(context.Background(), "harriet", account.PatchInput{
		Email: pointer.To("margaret@example.com"),
	})
	assert.True(t, apperr.IsConflict(err))

	// Re-sending your own email is not a collision.
	_, err = service.Patch(context.Background(), "harriet", account.PatchInput{
		Email: pointer.To("harriet@example.com"),
	})
	assert.NoError(t, err)
}

func TestPatch_MissingUserIsNotFound(t *testing.T) {
	service := newService(newFakeAccountRepository())

	_, err := service.Patch(context.Background(), "nobody", account.PatchInput{
		Bio: pointer.To("ghost"),
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestPatchSelf_MemberRoleChangeIsDiscarded(t *testing.T) {
	service := newService(newFakeAccountRepository())
	user := seedUser(t, service, "margaret", "margaret@example.com")

	// Members PATCH their whole profile back, role field included. The
	// request succeeds, the role stays put.
	updated, err := service.PatchSelf(context.Background(), user.ID, memberActor, account.PatchInput{
		Bio:  pointer.To("Updated bio."),
		Role: pointer.To("admin"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Updated bio.", updated.Bio)
	assert.Equal(t, sec.RoleUser, updated.Role)
}

func TestPatchSelf_AdminRoleChangeApplies(t *testing.T) {
	service := newService(newFakeAccountRepository())

	admin, err := service.Create(context.Background(), account.CreateInput{
		Username: "root",
		Email:    "root@example.com",
		Role:     "admin",
	})
	require.NoError(t, err)

	updated, err := service.PatchSelf(context.Background(), admin.ID, adminActor, account.PatchInput{
		Role: pointer.To("moderator"),
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, updated.Role)
}

func TestPatchSelf_SuperuserRoleChangeApplies(t *testing.T) {
	service := newService(newFakeAccountRepository())
	user := seedUser(t, service, "margaret", "margaret@example.com")

	updated, err := service.PatchSelf(context.Background(), user.ID, superActor, account.PatchInput{
		Role: pointer.To("admin"),
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, updated.Role)
}

func TestDelete_RemovesAccount(t *testing.T) {
	repo := newFakeAccountRepository()
	service := newService(repo)
	seedUser(t, service, "margaret", "margaret@example.com")

	require.NoError(t, service.Delete(context.Background(), "margaret"))

	_, err := service.GetByUsername(context.Background(), "margaret")
	assert.True(t, apperr.IsNotFound(err))

	assert.True(t, apperr.IsNotFound(service.Delete(context.Background(), "margaret")))
}
