package careteamsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed client for the CareTeam coordination service.
// The zero value is not usable; construct with NewClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	accessToken string
}

// NewClient creates an SDK client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetAccessToken sets the bearer token used on authenticated calls.
// Login and Register set it automatically.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// AccessToken returns the bearer token currently in use.
func (c *Client) AccessToken() string {
	return c.accessToken
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// doJSON performs a request with an optional JSON body and decodes the
// expected-status JSON response into out. A nil out skips decoding.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, expectedStatus int, authed bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if c.accessToken == "" {
			return ErrUnauthorized.WithDescription("no access token set; login first")
		}
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
