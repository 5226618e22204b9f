package config

import "time"

// StubConfig configures the in-memory backend served by cmd/stubserver.
type StubConfig interface {
	GetJWTSecret() string
	GetIssuer() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetRefreshTokenLength() int
	GetRotateRefreshTokens() bool
	GetDemoEmail() string
	GetDemoPassword() string
}

type Stub struct{}

var _ StubConfig = Stub{}

func (Stub) GetJWTSecret() string {
	return GetEnv("JWT_SECRET", "local-development-secret")
}

func (Stub) GetIssuer() string {
	return GetEnv("JWT_ISSUER", "student-jobs-stub")
}

func (Stub) GetAccessTokenExpiry() time.Duration {
	return GetDurationEnv("ACCESS_TOKEN_TTL", 5*time.Minute)
}

func (Stub) GetRefreshTokenExpiry() time.Duration {
	return GetDurationEnv("REFRESH_TOKEN_TTL", 24*time.Hour)
}

func (Stub) GetRefreshTokenLength() int {
	return 32 // 32 bytes = 256 bits
}

// GetRotateRefreshTokens makes the refresh endpoint hand out a new refresh
// token on every call and retire the old one.
func (Stub) GetRotateRefreshTokens() bool {
	return GetEnv("ROTATE_REFRESH_TOKENS", "false") == "true"
}

// GetDemoEmail is the account seeded at startup. DEMO_EMAIL=none disables it.
func (Stub) GetDemoEmail() string {
	email := GetEnv("DEMO_EMAIL", "student@example.com")
	if email == "none" {
		return ""
	}
	return email
}

func (Stub) GetDemoPassword() string {
	return GetEnv("DEMO_PASSWORD", "password123")
}
