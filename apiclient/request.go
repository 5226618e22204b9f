package apiclient

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	bearerPrefix        = "Bearer "
	contentTypeJSON     = "application/json"
)

// Request is an outgoing API call relative to the backend base URL. The
// dispatcher never mutates a caller's Request; it works on copies.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

func NewRequest(method, path string, body []byte) *Request {
	return &Request{
		Method: method,
		Path:   path,
		Header: http.Header{},
		Body:   body,
	}
}

// Clone returns a deep copy of r.
func (r *Request) Clone() *Request {
	out := &Request{
		Method: r.Method,
		Path:   r.Path,
		Query:  cloneValues(r.Query),
		Header: r.Header.Clone(),
	}
	if out.Header == nil {
		out.Header = http.Header{}
	}
	if r.Body != nil {
		out.Body = append([]byte(nil), r.Body...)
	}
	return out
}

// Target is the "METHOD /path" label used in logs and errors.
func (r *Request) Target() string {
	return strings.ToUpper(r.Method) + " " + r.Path
}

// BearerToken returns the credential attached to r, if any.
func (r *Request) BearerToken() string {
	auth := r.Header.Get(headerAuthorization)
	if !strings.HasPrefix(auth, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(bearerPrefix):])
}

func (r *Request) setBearer(token string) {
	r.Header.Set(headerAuthorization, bearerPrefix+token)
}

// Response is what the backend answered. Any status is a Response; only
// network level failures are reported as errors by a Transport.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
