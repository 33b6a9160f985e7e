package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/freshfold/pkg/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, auth.CheckPassword(hash, "s3cret-password"))
	assert.False(t, auth.CheckPassword(hash, "wrong-password"))
	assert.False(t, auth.CheckPassword("", "s3cret-password"))
}

func TestHashPassword_Unique(t *testing.T) {
	a, err := auth.HashPassword("same input")
	require.NoError(t, err)
	b, err := auth.HashPassword("same input")
	require.NoError(t, err)

	// bcrypt salts per call.
	assert.NotEqual(t, a, b)
}

func TestRandomToken(t *testing.T) {
	a, err := auth.RandomToken()
	require.NoError(t, err)
	b, err := auth.RandomToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestTokenExpiry(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(auth.TokenTTL), auth.TokenExpiry(now))
}
