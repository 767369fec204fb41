// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package account

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/constants"
	"github.com/critiq-app/critiq/internal/platform/sec"
	"github.com/critiq-app/critiq/internal/platform/validate"
	"github.com/critiq-app/critiq/internal/users/auth"
	"github.com/critiq-app/critiq/pkg/uuidv7"
)

// usernameRegex mirrors the constraint enforced at signup.
var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

// # Service Layer

// Service orchestrates business logic for user administration and
// self-profile management.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # User Administration

// List returns one page of accounts and the total match count.
func (service *Service) List(context context.Context, search string, limit, offset int) ([]auth.User, int, error) {
	return service.accountRepository.List(context, search, limit, offset)
}

// GetByUsername returns a single account.
func (service *Service) GetByUsername(context context.Context, username string) (*auth.User, error) {
	return service.accountRepository.FindByUsername(context, username)
}

// CreateInput holds the fields an administrator may set when provisioning
// an account directly, bypassing the signup flow.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

/*
Create provisions an account on behalf of an administrator.

Description: Unlike signup, the role is assignable here. An account created
this way holds no confirmation code — the member still performs the normal
signup exchange to obtain a token.

Returns:
  - *auth.User: Created entity
  - error: ValidationError, Conflict, or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*auth.User, error) {
	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, constants.MaxUsernameLength).
		Custom(auth.FieldUsername, input.Username != "" && !usernameRegex.MatchString(input.Username),
			"May contain only letters, digits and . @ + - characters").
		NotEqual(auth.FieldUsername, input.Username, auth.UsernameMe, `Username "me" is reserved`).
		Required(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, constants.MaxEmailLength).
		OneOf(auth.FieldRole, input.Role,
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	if input.Email != "" {
		validator.Email(auth.FieldEmail, input.Email)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.accountRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}
	if _, err := service.accountRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	user := &auth.User{
		ID:        uuidv7.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	}
	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_created_by_admin",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)))

	return user, nil
}

// PatchInput holds the optional fields of a partial profile update. The
// username itself is immutable: it is the public identity reviews and
// comments are attributed to.
type PatchInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

/*
Patch applies a partial update to the account with the given username.

Returns:
  - *auth.User: Updated entity
  - error: NotFound, ValidationError, Conflict, or storage failures
*/
func (service *Service) Patch(context context.Context, username string, input PatchInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	return service.apply(context, user, input)
}

/*
Delete removes the account with the given username. All of the member's
reviews and comments go with it.

Returns:
  - error: NotFound or execution failures
*/
func (service *Service) Delete(context context.Context, username string) error {
	if err := service.accountRepository.DeleteByUsername(context, username); err != nil {
		return err
	}

	service.logger.Info("user_deleted", slog.String("username", username))

	return nil
}

// # Self Profile

// GetSelf returns the profile of the authenticated member.
func (service *Service) GetSelf(context context.Context, userID string) (*auth.User, error) {
	return service.accountRepository.FindByID(context, userID)
}

/*
PatchSelf applies a partial update to the caller's own profile.

Description: A role change through this path is silently discarded unless
the actor is an admin — members routinely PATCH their whole profile object
back, and failing the request over the read-only role field would make the
profile form unusable.

Returns:
  - *auth.User: Updated entity
  - error: NotFound, ValidationError, Conflict, or storage failures
*/
func (service *Service) PatchSelf(context context.Context, userID string, actor sec.Actor, input PatchInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Role != nil && !actor.IsSuperuser && !actor.Role.AtLeast(sec.RoleAdmin) {
		input.Role = nil
	}

	return service.apply(context, user, input)
}

// apply merges the patch onto the loaded user, validates the result, and
// persists it.
func (service *Service) apply(context context.Context, user *auth.User, input PatchInput) (*auth.User, error) {
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		user.Role = sec.UserRole(*input.Role)
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldEmail, user.Email).
		MaxLen(auth.FieldEmail, user.Email, constants.MaxEmailLength).
		OneOf(auth.FieldRole, string(user.Role),
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	if user.Email != "" {
		validator.Email(auth.FieldEmail, user.Email)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Email != nil {
		if existing, err := service.accountRepository.FindByEmail(context, user.Email); err == nil {
			if existing.ID != user.ID {
				return nil, apperr.Conflict("Email is already registered")
			}
		} else if !apperr.IsNotFound(err) {
			return nil, err
		}
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.String("username", user.Username))

	return user, nil
}
