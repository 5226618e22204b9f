package refresh_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-student-jobs/internal/config"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/token/refresh"
	refreshrepofake "github.com/jrsteele09/go-student-jobs/token/refresh/repofake"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	config.Stub
	rotate bool
}

func (c testConfig) GetRotateRefreshTokens() bool {
	return c.rotate
}

func (testConfig) GetRefreshTokenExpiry() time.Duration {
	return time.Hour
}

func fixClock(t *testing.T, now time.Time) *time.Time {
	t.Helper()
	clock := now
	refresh.NowTimeFunc = func() time.Time { return clock }
	t.Cleanup(func() { refresh.NowTimeFunc = time.Now })
	return &clock
}

func TestManager_Create(t *testing.T) {
	fixClock(t, time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	repo := refreshrepofake.NewFakeRefreshTokenRepo()
	m := refresh.NewManager(repo, testConfig{})

	first, err := m.Create("user-1")
	require.NoError(t, err)
	require.Len(t, *first, 64, "32 random bytes hex encoded")

	second, err := m.Create("user-1")
	require.NoError(t, err)
	require.NotEqual(t, *first, *second)

	_, err = m.Get(*first)
	require.ErrorIs(t, err, errors.ErrNotFound, "one refresh token per user")

	rt, err := m.Get(*second)
	require.NoError(t, err)
	require.Equal(t, "user-1", rt.UserID)
}

func TestManager_Validate(t *testing.T) {
	clock := fixClock(t, time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	repo := refreshrepofake.NewFakeRefreshTokenRepo()
	m := refresh.NewManager(repo, testConfig{})

	token, err := m.Create("user-1")
	require.NoError(t, err)

	t.Run("live token", func(t *testing.T) {
		rt, err := m.Validate(*token)
		require.NoError(t, err)
		require.Equal(t, "user-1", rt.UserID)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := m.Validate("not-a-token")
		require.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
	})

	t.Run("expired token is removed", func(t *testing.T) {
		*clock = clock.Add(2 * time.Hour)
		_, err := m.Validate(*token)
		require.ErrorIs(t, err, errors.ErrRefreshTokenExpired)

		_, err = m.Validate(*token)
		require.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
	})
}

func TestManager_Rotate(t *testing.T) {
	fixClock(t, time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))

	t.Run("disabled keeps the token", func(t *testing.T) {
		m := refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), testConfig{})
		token, err := m.Create("user-1")
		require.NoError(t, err)
		rt, err := m.Validate(*token)
		require.NoError(t, err)

		next, err := m.Rotate(rt)
		require.NoError(t, err)
		require.Nil(t, next)
		_, err = m.Validate(*token)
		require.NoError(t, err)
	})

	t.Run("enabled retires the old token", func(t *testing.T) {
		m := refresh.NewManager(refreshrepofake.NewFakeRefreshTokenRepo(), testConfig{rotate: true})
		token, err := m.Create("user-1")
		require.NoError(t, err)
		rt, err := m.Validate(*token)
		require.NoError(t, err)

		next, err := m.Rotate(rt)
		require.NoError(t, err)
		require.NotNil(t, next)
		require.NotEqual(t, *token, *next)

		_, err = m.Validate(*token)
		require.ErrorIs(t, err, errors.ErrInvalidRefreshToken)
		_, err = m.Validate(*next)
		require.NoError(t, err)
	})
}
