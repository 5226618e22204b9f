package credentials

import "github.com/jrsteele09/go-student-jobs/internal/utils"

// Storage keys, one per token. The file store persists them verbatim.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Store is the single owner of the session's tokens. The dispatcher reads it
// on every request and is, together with an explicit logout, the only writer.
type Store interface {
	// GetAccessToken returns the current access token or nil.
	GetAccessToken() *string
	// GetRefreshToken returns the current refresh token or nil.
	GetRefreshToken() *string
	// SetTokens writes the access token and, only when refresh is non-nil and
	// non-empty, the refresh token. An omitted refresh token is preserved.
	// An empty access token leaves the stored pair untouched.
	SetTokens(access string, refresh *string) error
	// ClearTokens removes both tokens unconditionally.
	ClearTokens() error
	// IsAuthenticated reports whether an access token is present. It is a
	// presence check only: an expired token still counts.
	IsAuthenticated() bool
}

// Credential is the authentication state of the current session.
type Credential struct {
	AccessToken  *string `json:"access_token,omitempty"`
	RefreshToken *string `json:"refresh_token,omitempty"`
}

// Set applies SetTokens semantics. An empty access token makes the whole call
// a no-op so a refresh token is never stored without an access token.
func (c *Credential) Set(access string, refresh *string) {
	if access == "" {
		return
	}
	c.AccessToken = utils.Ptr(access)
	if utils.IsSet(refresh) {
		c.RefreshToken = utils.Ptr(*refresh)
	}
}

func (c *Credential) Clear() {
	c.AccessToken = nil
	c.RefreshToken = nil
}

func (c Credential) IsAuthenticated() bool {
	return utils.IsSet(c.AccessToken)
}

// Copy returns a deep copy so callers never share the store's pointers.
func (c Credential) Copy() Credential {
	out := Credential{}
	if c.AccessToken != nil {
		out.AccessToken = utils.Ptr(*c.AccessToken)
	}
	if c.RefreshToken != nil {
		out.RefreshToken = utils.Ptr(*c.RefreshToken)
	}
	return out
}
