package stubserver

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-student-jobs/authmodel"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/internal/utils"
	"github.com/jrsteele09/go-student-jobs/users"
)

const (
	detailNoActiveAccount = "No active account found with the given credentials"
	detailRefreshInvalid  = "Token is invalid or expired"
	msgFieldRequired      = "This field is required."
)

// RegisterHandler creates a student account. It does not log the user in.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authmodel.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDetail(w, http.StatusBadRequest, "JSON parse error", "parse_error")
			return
		}

		switch {
		case strings.TrimSpace(req.Username) == "":
			writeFieldErrors(w, "username", msgFieldRequired)
			return
		case strings.TrimSpace(req.Email) == "":
			writeFieldErrors(w, "email", msgFieldRequired)
			return
		case len(req.Password) < authmodel.MinPasswordLength:
			writeFieldErrors(w, "password", "Ensure this field has at least 8 characters.")
			return
		}

		if _, err := s.users.GetByEmail(req.Email); err == nil {
			writeFieldErrors(w, "email", "user with this email already exists.")
			return
		}

		user := users.NewStudent(req.Email, strings.TrimSpace(req.Username))
		user.DateJoined = NowTimeFunc()
		if err := user.SetPassword(req.Password); err != nil {
			s.logger.Error().Err(err).Msg("failed to hash password")
			writeDetail(w, http.StatusInternalServerError, "A server error occurred.", "")
			return
		}
		if err := s.users.Upsert(user); err != nil {
			if errors.Is(err, errors.ErrAlreadyExists) {
				writeFieldErrors(w, "email", "user with this email already exists.")
				return
			}
			s.logger.Error().Err(err).Msg("failed to store user")
			writeDetail(w, http.StatusInternalServerError, "A server error occurred.", "")
			return
		}

		s.logger.Info().Str("email", user.Email).Msg("registered user")
		writeJSON(w, http.StatusCreated, map[string]string{
			"username": user.Username,
			"email":    user.Email,
		})
	}
}

// LoginHandler exchanges email and password for a token pair.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authmodel.LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDetail(w, http.StatusBadRequest, "JSON parse error", "parse_error")
			return
		}
		req = req.Normalise()
		if req.Email == "" {
			writeFieldErrors(w, "email", msgFieldRequired)
			return
		}
		if req.Password == "" {
			writeFieldErrors(w, "password", msgFieldRequired)
			return
		}

		user, err := s.users.GetByEmail(req.Email)
		if err != nil || !user.CheckPassword(req.Password) {
			writeDetail(w, http.StatusUnauthorized, detailNoActiveAccount, "no_active_account")
			return
		}

		access, err := s.creator.CreateAccessToken(user)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to create access token")
			writeDetail(w, http.StatusInternalServerError, "A server error occurred.", "")
			return
		}
		refreshToken, err := s.refresh.Create(user.ID)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to create refresh token")
			writeDetail(w, http.StatusInternalServerError, "A server error occurred.", "")
			return
		}

		user.LastLogin = NowTimeFunc()
		if err := s.users.Upsert(user); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record last login")
		}

		s.logger.Info().Str("email", user.Email).Str("token", utils.Fingerprint(*access)).Msg("issued token pair")
		writeJSON(w, http.StatusOK, authmodel.TokenPair{Access: *access, Refresh: *refreshToken})
	}
}

// TokenRefreshHandler exchanges a refresh token for a new access token. With
// rotation enabled the response also carries a replacement refresh token.
func (s *Server) TokenRefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authmodel.RefreshRequest
		if err := decodeJSON(r, &req); err != nil {
			writeDetail(w, http.StatusBadRequest, "JSON parse error", "parse_error")
			return
		}
		if req.Refresh == "" {
			writeFieldErrors(w, "refresh", msgFieldRequired)
			return
		}

		rt, err := s.refresh.Validate(req.Refresh)
		if err != nil {
			s.logger.Debug().Err(err).Str("refresh_token", utils.Fingerprint(req.Refresh)).Msg("rejected refresh token")
			writeDetail(w, http.StatusUnauthorized, detailRefreshInvalid, codeTokenNotValid)
			return
		}

		user, err := s.users.GetByID(rt.UserID)
		if err != nil {
			_ = s.refresh.Delete(req.Refresh)
			writeDetail(w, http.StatusUnauthorized, detailRefreshInvalid, codeTokenNotValid)
			return
		}

		access, err := s.creator.CreateAccessToken(user)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to create access token")
			writeDetail(w, http.StatusInternalServerError, "A server error occurred.", "")
			return
		}
		rotated, err := s.refresh.Rotate(rt)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to rotate refresh token")
			writeDetail(w, http.StatusInternalServerError, "A server error occurred.", "")
			return
		}

		resp := authmodel.RefreshResponse{Access: *access}
		if rotated != nil {
			resp.Refresh = *rotated
		}
		s.logger.Info().Str("email", user.Email).Str("token", utils.Fingerprint(*access)).Bool("rotated", rotated != nil).Msg("refreshed access token")
		writeJSON(w, http.StatusOK, resp)
	}
}
