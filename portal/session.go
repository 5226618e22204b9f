package portal

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-student-jobs/apiclient"
	"github.com/jrsteele09/go-student-jobs/authmodel"
	"github.com/jrsteele09/go-student-jobs/credentials"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/internal/utils"
	"github.com/jrsteele09/go-student-jobs/portalmodel"
	"github.com/rs/zerolog"
)

const (
	loginFailedMessage    = "Invalid email or password"
	registerFailedMessage = "Registration failed"
)

// Session is the logged in user as the application sees it. It owns the
// login, registration and logout flows and reacts to the dispatcher ending
// the session.
type Session struct {
	client *Client
	store  credentials.Store
	logger zerolog.Logger

	lock sync.RWMutex
	user *portalmodel.Profile
}

func NewSession(client *Client, store credentials.Store, logger zerolog.Logger) *Session {
	return &Session{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Login exchanges credentials for a token pair, stores it and loads the
// profile.
func (s *Session) Login(ctx context.Context, email, password string) (*portalmodel.Profile, error) {
	req := authmodel.LoginRequest{Email: email, Password: password}.Normalise()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pair, err := s.client.Login(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("login failed")
		return nil, authError(err, loginFailedMessage)
	}

	if pair.Access == "" {
		s.logger.Warn().Str("email", req.Email).Msg("login response carried no access token")
		return nil, errors.Wrapf(errors.ErrInvalidToken, "login response has no access token")
	}

	refresh := pair.Refresh
	if err := s.store.SetTokens(pair.Access, &refresh); err != nil {
		return nil, errors.Wrapf(err, "failed to store tokens")
	}
	s.logger.Info().Str("email", req.Email).Str("token", utils.Fingerprint(pair.Access)).Msg("logged in")

	return s.LoadUser(ctx)
}

// Register creates the account and logs straight in with the same
// credentials.
func (s *Session) Register(ctx context.Context, req authmodel.RegisterRequest) (*portalmodel.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.client.Register(ctx, req); err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("registration failed")
		return nil, authError(err, registerFailedMessage)
	}
	login := req.Login()
	return s.Login(ctx, login.Email, login.Password)
}

// Logout forgets the tokens and the cached user.
func (s *Session) Logout() error {
	s.resetUser()
	if err := s.store.ClearTokens(); err != nil {
		return errors.Wrapf(err, "failed to clear tokens")
	}
	s.logger.Info().Msg("logged out")
	return nil
}

// LoadUser fetches the profile of the logged in user. Without an access
// token nothing is sent and ErrNotAuthenticated is returned.
func (s *Session) LoadUser(ctx context.Context) (*portalmodel.Profile, error) {
	if !utils.IsSet(s.store.GetAccessToken()) {
		s.resetUser()
		return nil, errors.ErrNotAuthenticated
	}

	profile, err := s.client.GetProfile(ctx)
	if err != nil {
		return nil, s.Check(err)
	}

	s.lock.Lock()
	s.user = profile
	s.lock.Unlock()
	return profile, nil
}

// User returns the profile loaded by the last successful Login or LoadUser.
func (s *Session) User() *portalmodel.Profile {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.user
}

func (s *Session) IsAuthenticated() bool {
	return s.store.IsAuthenticated()
}

// SessionEnded reports whether err means the user has to log in again.
func (s *Session) SessionEnded(err error) bool {
	return apiclient.IsSessionEnded(err)
}

// Check forces a logout when err ended the session and returns an error
// matching ErrSessionEnded; any other error is returned unchanged. A 401
// that reaches here from a protected endpoint also ends the session.
func (s *Session) Check(err error) error {
	var apiErr *APIError
	ended := s.SessionEnded(err) || (errors.As(err, &apiErr) && apiErr.Err.IsAuthRejection() && !s.client.endpoints.IsAuthEndpoint(apiErr.Err.Path))
	if !ended {
		return err
	}
	s.logger.Warn().Err(err).Msg("session ended")
	if logoutErr := s.Logout(); logoutErr != nil {
		s.logger.Error().Err(logoutErr).Msg("failed to log out")
	}
	if errors.Is(err, errors.ErrSessionEnded) {
		return err
	}
	return &apiclient.SessionEndedError{Cause: err}
}

func (s *Session) resetUser() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.user = nil
}

func authError(err error, fallback string) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &AuthError{Message: apiErr.MessageOr(fallback), Err: err}
	}
	return err
}
