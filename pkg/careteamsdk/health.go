package careteamsdk

import (
	"context"
	"net/http"
)

// Livez reports whether the service process is up.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/livez", nil, &resp, http.StatusOK, false)
	return resp, err
}

// Readyz reports whether the service can reach its dependencies.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/readyz", nil, &resp, http.StatusOK, false)
	return resp, err
}
