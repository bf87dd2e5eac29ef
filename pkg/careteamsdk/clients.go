package careteamsdk

import (
	"context"
	"net/http"
)

// CreateClient registers a care recipient. The caller becomes the
// client's primary caregiver.
func (c *Client) CreateClient(ctx context.Context, req ClientRequest) (ClientResponse, error) {
	var resp ClientResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/clients", req, &resp, http.StatusCreated, true)
	return resp, err
}

// ClientAccess returns the authenticated user's capability flag bundle
// for a client.
func (c *Client) ClientAccess(ctx context.Context, clientID string) (AccessResponse, error) {
	var resp AccessResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/clients/"+clientID+"/access",
		nil, &resp, http.StatusOK, true)
	return resp, err
}

// ListCaregivers returns a client's active care team.
func (c *Client) ListCaregivers(ctx context.Context, clientID string) ([]RelationshipResponse, error) {
	var resp []RelationshipResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/clients/"+clientID+"/caregivers",
		nil, &resp, http.StatusOK, true)
	return resp, err
}

// UpdateRelationship reshapes a care-team relationship's role and
// permission grant.
func (c *Client) UpdateRelationship(ctx context.Context, relationshipID string, req UpdateRelationshipRequest) (RelationshipResponse, error) {
	var resp RelationshipResponse
	err := c.doJSON(ctx, http.MethodPatch, "/v1/relationships/"+relationshipID,
		req, &resp, http.StatusOK, true)
	return resp, err
}

// RemoveRelationship removes a caregiver from a care team. The row is
// kept for history.
func (c *Client) RemoveRelationship(ctx context.Context, relationshipID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/relationships/"+relationshipID,
		nil, nil, http.StatusNoContent, true)
}
