package careteamsdk

import (
	"context"
	"net/http"
)

// AssignUserAccess replaces a user's roles, custom permissions and
// restrictions. Requires the admin scope.
func (c *Client) AssignUserAccess(ctx context.Context, userID string, req AssignAccessRequest) (UserInfo, error) {
	var resp UserInfo
	err := c.doJSON(ctx, http.MethodPut, "/v1/admin/users/"+userID+"/access",
		req, &resp, http.StatusOK, true)
	return resp, err
}

// SetUserActive enables or disables an account. Requires the admin
// scope.
func (c *Client) SetUserActive(ctx context.Context, userID string, active bool) (UserInfo, error) {
	var resp UserInfo
	err := c.doJSON(ctx, http.MethodPut, "/v1/admin/users/"+userID+"/active",
		SetUserActiveRequest{Active: active}, &resp, http.StatusOK, true)
	return resp, err
}
