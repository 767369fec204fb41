// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package sec

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// # Confirmation Codes
//
// Signup confirmation codes replace passwords in the authentication exchange.
// They are generated from the OS entropy source and stored only as bcrypt
// hashes, so a leaked volatile store never exposes exchangeable credentials.

// codeEncoding renders codes in unpadded base32 so they survive copy/paste
// from any mail client.
var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateConfirmationCode returns a random single-use confirmation code.
//
// # Parameters
//   - byteLength: entropy in bytes before encoding (20 bytes → 32 chars).
func GenerateConfirmationCode(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
	}
	return codeEncoding.EncodeToString(raw), nil
}

// HashCode hashes a plain-text confirmation code using the bcrypt algorithm.
func HashCode(plainCode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainCode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash confirmation code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckCodeHash compares a plain-text confirmation code with its stored hash
// using bcrypt's constant-time comparison.
func CheckCodeHash(plainCode, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainCode))
	return err == nil
}
