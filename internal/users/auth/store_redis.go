// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/critiq-app/critiq/internal/platform/apperr"
	"github.com/critiq-app/critiq/internal/platform/constants"
)

// RedisCodeRepository implements [CodeRepository] using Redis.
//
// Only the bcrypt hash of a confirmation code is ever stored, so the cache
// holds nothing directly exchangeable for a token.
type RedisCodeRepository struct {
	client *redis.Client
}

// NewCodeRepository creates a new Redis-backed [CodeRepository].
func NewCodeRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client}
}

/*
Set stores the code hash keyed by username, replacing any previous code.

Description: The TTL restarts on every signup, so resubmitting the signup
form always leaves the user with one valid, freshly mailed code.

Returns:
  - error: Storage failures
*/
func (repository *RedisCodeRepository) Set(context context.Context, username, codeHash string, ttl time.Duration) error {
	key := constants.RedisPrefixConfirmCode + username

	if err := repository.client.Set(context, key, codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("redis_confirm_code_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the stored code hash for a username.

Description: Returns apperr.NotFound if no code is pending or it expired.

Returns:
  - string: The bcrypt hash
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisCodeRepository) Get(context context.Context, username string) (string, error) {
	key := constants.RedisPrefixConfirmCode + username

	codeHash, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Confirmation code is invalid or expired")
		}
		return "", fmt.Errorf("redis_confirm_code_get_failed: %w", err)
	}

	return codeHash, nil
}

/*
Delete removes the code after a successful token exchange.

Returns:
  - error: Deletion failures
*/
func (repository *RedisCodeRepository) Delete(context context.Context, username string) error {
	key := constants.RedisPrefixConfirmCode + username

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_confirm_code_delete_failed: %w", err)
	}

	return nil
}
