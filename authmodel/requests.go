package authmodel

import (
	"strings"

	"github.com/jrsteele09/go-student-jobs/internal/errors"
)

// MinPasswordLength mirrors the backend's registration rule.
const MinPasswordLength = 8

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalise trims the email and lower-cases it the way the backend matches it.
func (r LoginRequest) Normalise() LoginRequest {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return r
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "email is required")
	}
	if r.Password == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "password is required")
	}
	return nil
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "username is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "email is required")
	}
	if len(r.Password) < MinPasswordLength {
		return errors.Wrapf(errors.ErrInvalidRequest, "password must be at least %d characters long", MinPasswordLength)
	}
	return nil
}

// Login returns the credentials used for the automatic login after registering.
func (r RegisterRequest) Login() LoginRequest {
	return LoginRequest{Email: r.Email, Password: r.Password}
}
