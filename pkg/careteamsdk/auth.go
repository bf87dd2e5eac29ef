package careteamsdk

import (
	"context"
	"net/http"
)

// Register creates a new account and logs it in, storing the returned
// access token on the client.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", req, &resp, http.StatusCreated, false); err != nil {
		return AuthResponse{}, err
	}
	if resp.AccessToken != "" {
		c.accessToken = resp.AccessToken
	}
	return resp, nil
}

// Login exchanges credentials for an access token and stores it on the
// client.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var resp AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login",
		LoginRequest{Email: email, Password: password}, &resp, http.StatusOK, false)
	if err != nil {
		return AuthResponse{}, err
	}
	c.accessToken = resp.AccessToken
	return resp, nil
}
