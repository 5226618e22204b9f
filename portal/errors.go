package portal

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-student-jobs/apiclient"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
	"github.com/tidwall/gjson"
)

// APIError is a non-2xx answer with the human readable message the backend
// sent, if any.
type APIError struct {
	Status  int
	Message string
	Err     *apiclient.StatusError
}

func (e *APIError) Error() string {
	return e.MessageOr(fmt.Sprintf("request failed: %d %s", e.Status, http.StatusText(e.Status)))
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// MessageOr returns the backend message, or fallback when there was none.
func (e *APIError) MessageOr(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// AuthError is a failed login or registration, carrying the message to show.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// asAPIError converts plain status failures. Session ending failures and
// network errors pass through untouched.
func asAPIError(err error) error {
	if apiclient.IsSessionEnded(err) {
		return err
	}
	var statusErr *apiclient.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}
	return &APIError{
		Status:  statusErr.Status,
		Message: ErrorMessage(statusErr.Body),
		Err:     statusErr,
	}
}

// ErrorMessage pulls a message out of an error body: "detail" when present,
// otherwise the first message of the first field (validation errors).
func ErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	doc := gjson.ParseBytes(body)
	if detail := doc.Get("detail"); detail.Type == gjson.String && detail.Str != "" {
		return detail.Str
	}

	var message string
	doc.ForEach(func(key, value gjson.Result) bool {
		switch {
		case value.IsArray():
			if first := value.Get("0"); first.Type == gjson.String {
				message = first.Str
			}
		case value.Type == gjson.String:
			message = value.Str
		}
		return false
	})
	return message
}
