// Package auth provides password hashing and one-time token helpers.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is deliberately above the library default. Hashing happens on
// registration and login only, so the extra latency is acceptable.
const bcryptCost = 12

// TokenTTL is how long email-verification and password-reset tokens stay valid.
const TokenTTL = time.Hour

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// RandomToken returns a 32-byte cryptographically random token in hex,
// used for email verification and password reset links.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("auth: random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// TokenExpiry returns the expiry timestamp for a token issued now.
func TokenExpiry(now time.Time) time.Time {
	return now.Add(TokenTTL)
}
