// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critiq-app/critiq/internal/platform/sec"
)

/*
TestConfirmationCode_GenerateAndCheck verifies the full code lifecycle:
generate, hash, and compare.
*/
func TestConfirmationCode_GenerateAndCheck(t *testing.T) {
	code, err := sec.GenerateConfirmationCode(20)
	require.NoError(t, err)
	// 20 random bytes encode to 32 base32 characters.
	assert.Len(t, code, 32)

	hash, err := sec.HashCode(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.True(t, sec.CheckCodeHash(code, hash))
	assert.False(t, sec.CheckCodeHash("wrong-code", hash))
	assert.False(t, sec.CheckCodeHash(code, "not-a-bcrypt-hash"))
}

/*
TestConfirmationCode_Unique verifies that consecutive codes differ.
*/
func TestConfirmationCode_Unique(t *testing.T) {
	first, err := sec.GenerateConfirmationCode(20)
	require.NoError(t, err)
	second, err := sec.GenerateConfirmationCode(20)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
