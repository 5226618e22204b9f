package stubserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/jrsteele09/go-student-jobs/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the authenticated user
	ContextKeyUser ContextKey = "user"
)

const (
	detailNoCredentials = "Authentication credentials were not provided."
	detailTokenInvalid  = "Given token not valid for any token type"
	codeTokenNotValid   = "token_not_valid"
)

// RequireAuth validates the Bearer access token and injects the user.
// Every failure is a 401 with a {"detail": ...} body.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeDetail(w, http.StatusUnauthorized, detailNoCredentials, "")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || strings.TrimSpace(parts[1]) == "" {
				writeDetail(w, http.StatusUnauthorized, detailTokenInvalid, codeTokenNotValid)
				return
			}

			claims, err := s.verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				s.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected access token")
				writeDetail(w, http.StatusUnauthorized, detailTokenInvalid, codeTokenNotValid)
				return
			}

			user, err := s.users.GetByID(claims.Subject)
			if err != nil {
				writeDetail(w, http.StatusUnauthorized, "User not found", "user_not_found")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin must be chained after RequireAuth.
func (s *Server) RequireAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, err := userFromContext(r.Context())
			if err != nil || !user.Admin {
				writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.", "")
				return
			}
			next(w, r)
		}
	}
}

func userFromContext(ctx context.Context) (*users.User, error) {
	user, ok := ctx.Value(ContextKeyUser).(*users.User)
	if !ok || user == nil {
		return nil, errors.ErrNotAuthenticated
	}
	return user, nil
}
