package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T, now time.Time) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testSecret, 5*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	m.now = func() time.Time { return now }
	return m
}

func TestNewTokenManagerRejectsShortSecret(t *testing.T) {
	_, err := NewTokenManager("short", time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestIssuePair(t *testing.T) {
	now := time.Now()
	m := newTestManager(t, now)

	pair, err := m.IssuePair(7)
	require.NoError(t, err)

	claims, err := m.ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, now.Add(5*time.Minute), claims.ExpiresAt, time.Second)

	_, err = m.ParseAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestRefresh(t *testing.T) {
	now := time.Now()
	m := newTestManager(t, now)
	pair, err := m.IssuePair(7)
	require.NoError(t, err)

	t.Run("Refresh token yields access token", func(t *testing.T) {
		access, err := m.Refresh(pair.Refresh)
		require.NoError(t, err)
		claims, err := m.ParseAccess(access)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
	})

	t.Run("Access token is rejected", func(t *testing.T) {
		_, err := m.Refresh(pair.Access)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("Expired refresh token", func(t *testing.T) {
		m.now = func() time.Time { return now.Add(25 * time.Hour) }
		defer func() { m.now = func() time.Time { return now } }()
		_, err := m.Refresh(pair.Refresh)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestParseAccessRejectsForeignSignature(t *testing.T) {
	now := time.Now()
	other, err := NewTokenManager("fedcba9876543210fedcba9876543210", time.Minute, time.Hour)
	require.NoError(t, err)
	pair, err := other.IssuePair(1)
	require.NoError(t, err)

	_, err = newTestManager(t, now).ParseAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = newTestManager(t, now).ParseAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
