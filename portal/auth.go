package portal

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-student-jobs/authmodel"
)

func (c *Client) Login(ctx context.Context, req authmodel.LoginRequest) (*authmodel.TokenPair, error) {
	var pair authmodel.TokenPair
	if err := c.do(ctx, http.MethodPost, c.endpoints.Login, req, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

func (c *Client) Register(ctx context.Context, req authmodel.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, c.endpoints.Register, req, nil)
}

// RefreshToken calls the refresh endpoint explicitly. The dispatcher treats
// it as an auth endpoint, so it is sent without a bearer and never retried.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (*authmodel.RefreshResponse, error) {
	var resp authmodel.RefreshResponse
	if err := c.do(ctx, http.MethodPost, c.endpoints.Refresh, authmodel.RefreshRequest{Refresh: refresh}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
