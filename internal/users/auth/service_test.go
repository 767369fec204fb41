// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package auth_test

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/internal/users/auth"
)

// # Fakes

type fakeUserRepository struct {
	byUsername map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byUsername: make(map[string]*auth.User)}
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, ok := repo.byUsername[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.byUsername {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	user.CreatedAt = time.Now()
	stored := *user
	repo.byUsername[user.Username] = &stored
	return nil
}

type fakeCodeRepository struct {
	mu     sync.Mutex
	hashes map[string]string
}

func newFakeCodeRepository() *fakeCodeRepository {
	return &fakeCodeRepository{hashes: make(map[string]string)}
}

func (repo *fakeCodeRepository) Set(_ context.Context, username, codeHash string, _ time.Duration) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.hashes[username] = codeHash
	return nil
}

func (repo *fakeCodeRepository) Get(_ context.Context, username string) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	hash, ok := repo.hashes[username]
	if !ok {
		return "", apperr.NotFound("Confirmation code is invalid or expired")
	}
	return hash, nil
}

func (repo *fakeCodeRepository) Delete(_ context.Context, username string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.hashes, username)
	return nil
}

func (repo *fakeCodeRepository) stored(username string) (string, bool) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	hash, ok := repo.hashes[username]
	return hash, ok
}

// fakeMailer records deliveries and signals each one on a channel, so a
// test can wait for the background send without sleeping.
type fakeMailer struct {
	delivered chan string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{delivered: make(chan string, 8)}
}

func (mailer *fakeMailer) Send(_ context.Context, _ string, body string, _ ...string) error {
	mailer.delivered <- body
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, username, role string, isSuperuser bool, _ time.Duration) (string, error) {
	return fmt.Sprintf("token:%s:%s:%s:%t", userID, username, role, isSuperuser), nil
}

// # Helpers

type fixture struct {
	service *auth.Service
	users   *fakeUserRepository
	codes   *fakeCodeRepository
	mailer  *fakeMailer
}

func newFixture() *fixture {
	users := newFakeUserRepository()
	codes := newFakeCodeRepository()
	mailer := newFakeMailer()
	service := auth.NewService(users, codes, fakeTokenProvider{}, mailer, slog.New(slog.DiscardHandler))
	return &fixture{service: service, users: users, codes: codes, mailer: mailer}
}

// waitForCode blocks until the background mail carrying the confirmation
// code arrives, then extracts the code from the indented line of the body.
func (f *fixture) waitForCode(t *testing.T) string {
	t.Helper()
	select {
	case body := <-f.mailer.delivered:
		for _, line := range strings.Split(body, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(line, "    ") && trimmed != "" {
				return trimmed
			}
		}
		t.Fatalf("mail body carries no code: %q", body)
	case <-time.After(5 * time.Second):
		t.Fatal("confirmation mail was never sent")
	}
	return ""
}

// # Tests

func TestSignUp_CreatesMemberAndStoresHashedCode(t *testing.T) {
	f := newFixture()

	user, err := f.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "margaret",
		Email:    "margaret@example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, sec.RoleUser, user.Role)

	code := f.waitForCode(t)

	// 1. The code at rest must be a hash, never the plaintext.
	hash, ok := f.codes.stored("margaret")
	require.True(t, ok)
	assert.NotEqual(t, code, hash)
	assert.True(t, sec.CheckCodeHash(code, hash))
}

func TestSignUp_ReservedUsernameIsRejected(t *testing.T) {
	f := newFixture()

	_, err := f.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "me",
		Email:    "me@example.com",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestSignUp_InvalidInputIsRejected(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name  string
		input auth.SignUpInput
	}{
		{"missing_username", auth.SignUpInput{Email: "a@example.com"}},
		{"missing_email", auth.SignUpInput{Username: "margaret"}},
		{"malformed_email", auth.SignUpInput{Username: "margaret", Email: "not-an-email"}},
		{"username_bad_characters", auth.SignUpInput{Username: "no spaces", Email: "a@example.com"}},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := f.service.SignUp(context.Background(), testCase.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

func TestSignUp_SamePairReissuesCode(t *testing.T) {
	f := newFixture()
	input := auth.SignUpInput{Username: "margaret", Email: "margaret@example.com"}

	first, err := f.service.SignUp(context.Background(), input)
	require.NoError(t, err)
	f.waitForCode(t)

	// Resubmitting the identical pair is the lost-mail recovery path.
	second, err := f.service.SignUp(context.Background(), input)
	require.NoError(t, err)
	f.waitForCode(t)

	assert.Equal(t, first.ID, second.ID)
}

func TestSignUp_TakenIdentifiersConflict(t *testing.T) {
	f := newFixture()

	_, err := f.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "margaret",
		Email:    "margaret@example.com",
	})
	require.NoError(t, err)
	f.waitForCode(t)

	// Same username, different email.
	_, err = f.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "margaret",
		Email:    "other@example.com",
	})
	assert.True(t, apperr.IsConflict(err))

	// Same email, different username.
	_, err = f.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "peggy",
		Email:    "margaret@example.com",
	})
	assert.True(t, apperr.IsConflict(err))
}

func TestIssueToken_ExchangesValidCode(t *testing.T) {
	f := newFixture()

	user, err := f.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "margaret",
		Email:    "margaret@example.com",
	})
	require.NoError(t, err)
	code := f.waitForCode(t)

	token, err := f.service.IssueToken(context.Background(), "margaret", code)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("token:%s:margaret:user:false", user.ID), token)
}

func TestIssueToken_CodeIsSingleUse(t *testing.T) {
	f := newFixture()

	_, err := f.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "margaret",
		Email:    "margaret@example.com",
	})
	require.NoError(t, err)
	code := f.waitForCode(t)

	_, err = f.service.IssueToken(context.Background(), "margaret", code)
	require.NoError(t, err)

	_, err = f.service.IssueToken(context.Background(), "margaret", code)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

func TestIssueToken_WrongCodeIsUnauthorized(t *testing.T) {
	f := newFixture()

	_, err := f.service.SignUp(context.Background(), auth.SignUpInput{
		Username: "margaret",
		Email:    "margaret@example.com",
	})
	require.NoError(t, err)
	f.waitForCode(t)

	_, err = f.service.IssueToken(context.Background(), "margaret", "WRONGCODE")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

func TestIssueToken_UnknownUsernameIsNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.service.IssueToken(context.Background(), "nobody", "ANYCODE")
	assert.True(t, apperr.IsNotFound(err))
}
