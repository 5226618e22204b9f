package apiclient

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-student-jobs/internal/errors"
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Body    []byte
	Retried bool // the failure came from the single retry after a refresh
}

func newStatusError(req *Request, resp *Response, retried bool) *StatusError {
	return &StatusError{
		Method:  req.Method,
		Path:    req.Path,
		Status:  resp.Status,
		Body:    resp.Body,
		Retried: retried,
	}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// IsAuthRejection reports whether the status is the one that triggers the
// refresh branch. No other status ever does.
func (e *StatusError) IsAuthRejection() bool {
	return e.Status == http.StatusUnauthorized
}

// NetworkError is a failure to get any response at all: connectivity,
// timeouts and context cancellation.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RefreshError is the failure of the refresh call itself. Err is a
// *StatusError, a *NetworkError or a malformed/unstorable refresh response.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("token refresh failed: %v", e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// SessionEndedError is returned when an authentication rejection could not be
// recovered and the stored tokens were cleared. Cause is the original
// *StatusError when no refresh token existed, or a *RefreshError when the
// refresh was rejected. errors.Is(err, errors.ErrSessionEnded) matches it.
type SessionEndedError struct {
	Cause error
}

func (e *SessionEndedError) Error() string {
	return fmt.Sprintf("%v: %v", errors.ErrSessionEnded, e.Cause)
}

func (e *SessionEndedError) Unwrap() []error {
	return []error{errors.ErrSessionEnded, e.Cause}
}

// IsSessionEnded reports whether err means the user must log in again: the
// tokens were cleared, or the single retry was rejected again. In the second
// case the dispatcher leaves the tokens in the store, so callers must clear
// them themselves (portal.Session.Check does).
func IsSessionEnded(err error) bool {
	if errors.Is(err, errors.ErrSessionEnded) {
		return true
	}
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Retried && statusErr.IsAuthRejection()
}
