package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-student-jobs/internal/config"
	"github.com/jrsteele09/go-student-jobs/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// TokenTypeAccess is the token_type claim carried by access tokens.
const TokenTypeAccess = "access"

// Creator issues the short-lived HS256 access tokens handed out by the stub
// backend on login and refresh.
type Creator struct {
	config config.StubConfig
}

// NewCreator creates a new JWT creator
func NewCreator(cfg config.StubConfig) *Creator {
	return &Creator{
		config: cfg,
	}
}

// CreateAccessToken creates a signed access token for user
func (c *Creator) CreateAccessToken(user *users.User) (*string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"iss":        c.config.GetIssuer(),
		"sub":        user.ID,
		"email":      user.Email,
		"iat":        now.Unix(),
		"exp":        now.Add(c.config.GetAccessTokenExpiry()).Unix(),
		"jti":        uuid.New().String(),
		"token_type": TokenTypeAccess, // refresh tokens are opaque, never JWTs
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(c.config.GetJWTSecret()))
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return &signed, nil
}
