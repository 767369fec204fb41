// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/constants"
	"github.com/critiq-app/critiq/internal/platform/mail"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/internal/platform/validate"
	"github.com/critiq-app/critiq/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating signed access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, username, role string, isSuperuser bool, timeToLive time.Duration) (string, error)
}

// usernameRegex admits word characters plus the . @ + - set, mirroring the
// users.account column constraint.
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// mailSendTimeout bounds the background delivery attempt for one code.
const mailSendTimeout = 15 * time.Second

// Service implements the signup and token-exchange use cases.
//
// # Review Process
//
// This service is critical for security. Any change to code generation,
// storage, or the exchange logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	codeRepository CodeRepository
	tokenProvider  TokenProvider
	mailer         mail.Mailer
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	userRepo UserRepository,
	codeRepo CodeRepository,
	tokenProv TokenProvider,
	mailer mail.Mailer,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		codeRepository: codeRepo,
		tokenProvider:  tokenProv,
		mailer:         mailer,
		logger:         logger,
	}
}

// # Signup Flow

// SignUpInput holds the data required to enroll (or re-enroll) a member.
type SignUpInput struct {
	Username string
	Email    string
}

/*
SignUp registers a new account, or refreshes the confirmation code for an
existing one.

Description: Submitting the exact same username+email pair again is not an
error — it re-issues the code, which is the recovery path for a lost email.
A username or email that is already bound to a DIFFERENT identity fails with
a Conflict.

Returns:
  - *User: The created or existing entity
  - error: ValidationError, Conflict, or storage failures
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, constants.MaxUsernameLength).
		Custom(FieldUsername, input.Username != "" && !usernameRegex.MatchString(input.Username),
			"May contain only letters, digits and . @ + - characters").
		NotEqual(FieldUsername, input.Username, UsernameMe, `Username "me" is reserved`).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, constants.MaxEmailLength)
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.resolveIdentity(context, input)
	if err != nil {
		return nil, err
	}

	plainCode, err := sec.GenerateConfirmationCode(constants.ConfirmationCodeLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_generation_failed: %w", err)
	}
	codeHash, err := sec.HashCode(plainCode)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_hash_failed: %w", err)
	}

	if err := service.codeRepository.Set(context, user.Username, codeHash, constants.ConfirmationCodeTTL); err != nil {
		return nil, err
	}

	service.deliverCode(user, plainCode)

	return user, nil
}

// resolveIdentity maps the signup input onto an account: the existing one
// when username and email both match, a fresh row when neither is taken.
func (service *Service) resolveIdentity(context context.Context, input SignUpInput) (*User, error) {
	existing, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		if existing.Email != input.Email {
			return nil, apperr.Conflict("Username is already taken")
		}
		return existing, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:       uuidv7.New(),
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_signed_up",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	return user, nil
}

// deliverCode mails the confirmation code in the background. Delivery is
// best effort: the signup already succeeded, and the user can always
// resubmit the form for a fresh code.
func (service *Service) deliverCode(user *User, plainCode string) {
	go func() {
		sendContext, cancel := context.WithTimeout(context.Background(), mailSendTimeout)
		defer cancel()

		subject := "Your Critiq confirmation code"
		body := fmt.Sprintf(
			"Hello %s,\n\nYour confirmation code is:\n\n    %s\n\nExchange it at POST /api/v1/auth/token within %d hours.\n",
			user.Username, plainCode, int(constants.ConfirmationCodeTTL.Hours()))

		if err := service.mailer.Send(sendContext, subject, body, user.Email); err != nil {
			service.logger.Error("confirmation_mail_failed",
				slog.String("username", user.Username),
				slog.Any("error", err))
		}
	}()
}

// # Token Exchange

/*
IssueToken exchanges a confirmation code for a signed access token.

Description: The code is single-use — it is deleted the moment it verifies.
An unknown username is NotFound (so clients can distinguish "sign up first"
from "wrong code"), while a bad or expired code is Unauthorized.

Returns:
  - string: Signed JWT access token
  - error: ValidationError, NotFound, Unauthorized, or internal failures
*/
func (service *Service) IssueToken(context context.Context, username, confirmationCode string) (string, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		Required(FieldCode, confirmationCode)
	if err := validator.Err(); err != nil {
		return "", err
	}

	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return "", err
	}

	codeHash, err := service.codeRepository.Get(context, user.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return "", apperr.Unauthorized("Confirmation code is invalid or expired")
		}
		return "", err
	}

	if !sec.CheckCodeHash(confirmationCode, codeHash) {
		return "", apperr.Unauthorized("Confirmation code is invalid or expired")
	}

	// Single use. A failed delete must not block the login, the TTL still
	// bounds the code's lifetime.
	if err := service.codeRepository.Delete(context, user.Username); err != nil {
		service.logger.Warn("confirmation_code_delete_failed",
			slog.String("username", user.Username),
			slog.Any("error", err))
	}

	token, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), user.IsSuperuser, constants.AccessTokenTTL)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_signing_failed: %w", err)
	}

	service.logger.Info("access_token_issued", slog.String("username", user.Username))

	return token, nil
}
