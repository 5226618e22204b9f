package jwt

import (
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-student-jobs/internal/config"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
)

// Claims is the part of an access token the client and the stub backend care
// about.
type Claims struct {
	Subject   string
	Email     string
	TokenType string
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now. A token
// without an exp claim never expires.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Verifier validates access tokens minted by Creator.
type Verifier struct {
	config config.StubConfig
}

func NewVerifier(cfg config.StubConfig) *Verifier {
	return &Verifier{config: cfg}
}

// Verify checks the signature, issuer, expiry and token type of rawToken.
func (v *Verifier) Verify(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.ErrInvalidToken
	}

	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(v.config.GetIssuer()),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	token, err := parser.Parse(rawToken, func(*jwtlib.Token) (interface{}, error) {
		return []byte(v.config.GetJWTSecret()), nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, errors.Wrapf(errors.ErrTokenExpired, "access token")
		}
		return nil, errors.Wrapf(errors.ErrInvalidToken, "%v", err)
	}

	claims, err := claimsFrom(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "unexpected token type %q", claims.TokenType)
	}
	return claims, nil
}

// Inspect decodes rawToken WITHOUT verifying it. The client uses it only to
// show who is logged in and until when; it never decides a refresh.
func Inspect(rawToken string) (*Claims, error) {
	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "%v", err)
	}
	return claimsFrom(token)
}

func claimsFrom(token *jwtlib.Token) (*Claims, error) {
	mapClaims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "error extracting claims")
	}

	claims := &Claims{}
	claims.Subject, _ = mapClaims.GetSubject()
	claims.Email, _ = mapClaims["email"].(string)
	claims.TokenType, _ = mapClaims["token_type"].(string)
	claims.ID, _ = mapClaims["jti"].(string)
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}
