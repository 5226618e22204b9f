package refresh

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/jrsteele09/go-student-jobs/internal/config"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
	pkgerrors "github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Manager handles refresh token creation, validation, and rotation
type Manager struct {
	repo   Repo
	config config.StubConfig
}

// NewManager creates a new refresh token manager
func NewManager(repo Repo, cfg config.StubConfig) *Manager {
	return &Manager{
		repo:   repo,
		config: cfg,
	}
}

// Create generates a new refresh token for userID and stores it. Any token
// the user already had is retired (single refresh token per user).
func (m *Manager) Create(userID string) (*string, error) {
	if existingToken, err := m.repo.GetByUserID(userID); err == nil && existingToken != nil {
		if err := m.repo.Delete(existingToken.Token); err != nil {
			return nil, pkgerrors.Wrap(err, "failed to delete existing refresh token")
		}
	}

	tokenBytes := make([]byte, m.config.GetRefreshTokenLength())
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to generate random bytes")
	}

	tokenStr := hex.EncodeToString(tokenBytes)
	if err := m.repo.Upsert(&StoredRefreshToken{
		Token:  tokenStr,
		UserID: userID,
		Iat:    NowTimeFunc(),
	}); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to store refresh token")
	}

	return &tokenStr, nil
}

// Validate returns the stored metadata for a live token. Unknown tokens are
// ErrInvalidRefreshToken, stale ones ErrRefreshTokenExpired and are deleted.
func (m *Manager) Validate(token string) (*StoredRefreshToken, error) {
	rt, err := m.repo.Get(token)
	if err != nil {
		return nil, pkgerrors.Wrap(errors.ErrInvalidRefreshToken, err.Error())
	}
	if m.IsExpired(rt) {
		_ = m.repo.Delete(token)
		return nil, errors.ErrRefreshTokenExpired
	}
	return rt, nil
}

// Rotate retires token and issues a replacement for the same user when
// rotation is enabled; otherwise it returns nil and the token stays valid.
func (m *Manager) Rotate(rt *StoredRefreshToken) (*string, error) {
	if !m.config.GetRotateRefreshTokens() {
		return nil, nil
	}
	return m.Create(rt.UserID)
}

// Get retrieves a refresh token from storage
func (m *Manager) Get(token string) (*StoredRefreshToken, error) {
	return m.repo.Get(token)
}

// Delete removes a refresh token from storage
func (m *Manager) Delete(token string) error {
	return m.repo.Delete(token)
}

// IsExpired checks if a refresh token has outlived the configured expiry
func (m *Manager) IsExpired(rt *StoredRefreshToken) bool {
	return NowTimeFunc().Sub(rt.Iat) > m.config.GetRefreshTokenExpiry()
}
