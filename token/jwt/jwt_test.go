package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-student-jobs/internal/config"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/token/jwt"
	"github.com/jrsteele09/go-student-jobs/users"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	config.Stub
	secret string
}

func (c testConfig) GetJWTSecret() string {
	if c.secret == "" {
		return "test-secret"
	}
	return c.secret
}

func (testConfig) GetAccessTokenExpiry() time.Duration {
	return 5 * time.Minute
}

func fixClock(t *testing.T, now time.Time) *time.Time {
	t.Helper()
	clock := now
	jwt.NowTimeFunc = func() time.Time { return clock }
	t.Cleanup(func() { jwt.NowTimeFunc = time.Now })
	return &clock
}

func testUser() *users.User {
	u := users.NewStudent("ada@example.com", "ada")
	u.ID = "user-1"
	return u
}

func TestCreator_RoundTrip(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fixClock(t, issued)

	token, err := jwt.NewCreator(testConfig{}).CreateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := jwt.NewVerifier(testConfig{}).Verify(*token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "ada@example.com", claims.Email)
	require.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
	require.NotEmpty(t, claims.ID)
	require.True(t, claims.IssuedAt.Equal(issued))
	require.True(t, claims.ExpiresAt.Equal(issued.Add(5*time.Minute)))
}

func TestCreator_UniqueTokens(t *testing.T) {
	fixClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	creator := jwt.NewCreator(testConfig{})

	a, err := creator.CreateAccessToken(testUser())
	require.NoError(t, err)
	b, err := creator.CreateAccessToken(testUser())
	require.NoError(t, err)
	require.NotEqual(t, *a, *b, "jti differs even within the same second")
}

func TestVerifier_Rejects(t *testing.T) {
	clock := fixClock(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	token, err := jwt.NewCreator(testConfig{}).CreateAccessToken(testUser())
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := jwt.NewVerifier(testConfig{}).Verify("  ")
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := jwt.NewVerifier(testConfig{}).Verify("not.a.jwt")
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := jwt.NewVerifier(testConfig{secret: "other"}).Verify(*token)
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("wrong token type", func(t *testing.T) {
		raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
			"iss":        config.Stub{}.GetIssuer(),
			"sub":        "user-1",
			"exp":        clock.Add(time.Minute).Unix(),
			"token_type": "refresh",
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = jwt.NewVerifier(testConfig{}).Verify(raw)
		require.ErrorIs(t, err, errors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		*clock = clock.Add(6 * time.Minute)
		_, err := jwt.NewVerifier(testConfig{}).Verify(*token)
		require.ErrorIs(t, err, errors.ErrTokenExpired)
	})
}

func TestInspect(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fixClock(t, issued)
	token, err := jwt.NewCreator(testConfig{}).CreateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := jwt.Inspect(*token)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", claims.Email)
	require.False(t, claims.Expired(issued.Add(time.Minute)))
	require.True(t, claims.Expired(issued.Add(5*time.Minute)))

	_, err = jwt.Inspect("opaque-refresh-token")
	require.ErrorIs(t, err, errors.ErrInvalidToken)

	require.False(t, (&jwt.Claims{}).Expired(time.Now()), "no exp claim never expires")
}
