package portal

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/jrsteele09/go-student-jobs/apiclient"
	"github.com/jrsteele09/go-student-jobs/internal/errors"
)

// Sender is the dispatcher seen from the resource wrappers.
type Sender interface {
	Send(ctx context.Context, req *apiclient.Request) (*apiclient.Response, error)
}

// Client wraps the backend resources. Every call goes through the Sender, so
// none of them handles credentials itself.
type Client struct {
	sender    Sender
	endpoints apiclient.Endpoints
}

type ClientOption func(*Client)

func WithAuthEndpoints(endpoints apiclient.Endpoints) ClientOption {
	return func(c *Client) {
		c.endpoints = endpoints
	}
}

func NewClient(sender Sender, opts ...ClientOption) *Client {
	c := &Client{
		sender:    sender,
		endpoints: apiclient.DefaultEndpoints(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends a JSON request and decodes a JSON answer into out when out is not
// nil. Non-2xx answers come back as *APIError unless they ended the session.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return errors.Wrapf(err, "failed to encode %s %s", method, path)
		}
	}

	resp, err := c.sender.Send(ctx, apiclient.NewRequest(method, path, body))
	if err != nil {
		return asAPIError(err)
	}
	if out == nil || len(resp.Body) == 0 || resp.Status == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return errors.Wrapf(err, "failed to decode %s %s", method, path)
	}
	return nil
}
