// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critiq-app/critiq/internal/platform/sec"
)

// writeTestKeyPair generates a throwaway RSA key pair and writes it as PEM
// files under dir, returning the two paths.
func writeTestKeyPair(t *testing.T, dir string) (privatePath, publicPath string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePath = filepath.Join(dir, "jwt_private.pem")
	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0o600))

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	publicPath = filepath.Join(dir, "jwt_public.pem")
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0o600))

	return privatePath, publicPath
}

/*
TestTokenService_RoundTrip verifies that a generated token carries the
custom claims back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	privatePath, publicPath := writeTestKeyPair(t, t.TempDir())

	service, err := sec.NewTokenService(privatePath, publicPath, "critiq.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-1", "ada", "moderator", true, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
	assert.True(t, claims.IsSuperuser)
	assert.Equal(t, "critiq.app", claims.Issuer)
}

/*
TestTokenService_Expired verifies that an expired token fails verification.
*/
func TestTokenService_Expired(t *testing.T) {
	privatePath, publicPath := writeTestKeyPair(t, t.TempDir())

	service, err := sec.NewTokenService(privatePath, publicPath, "critiq.app")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("user-1", "ada", "user", false, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_WrongKey verifies that a token signed with another key is
rejected.
*/
func TestTokenService_WrongKey(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	privateA, publicA := writeTestKeyPair(t, dirA)
	_, publicB := writeTestKeyPair(t, dirB)

	signer, err := sec.NewTokenService(privateA, publicA, "critiq.app")
	require.NoError(t, err)

	verifier, err := sec.NewTokenService(privateA, publicB, "critiq.app")
	require.NoError(t, err)

	token, err := signer.GenerateAccessToken("user-1", "ada", "user", false, time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_MissingKeyFile verifies the constructor fails fast on a
bad key path.
*/
func TestTokenService_MissingKeyFile(t *testing.T) {
	_, err := sec.NewTokenService("/nonexistent/private.pem", "/nonexistent/public.pem", "critiq.app")
	assert.Error(t, err)
}
