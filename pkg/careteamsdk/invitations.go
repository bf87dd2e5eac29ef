package careteamsdk

import (
	"context"
	"net/http"
	"net/url"
)

// SendInvitation issues a caregiver invitation. The invitee receives
// the acceptance link by email; the token is never returned here.
func (c *Client) SendInvitation(ctx context.Context, req InvitationRequest) (InvitationResponse, error) {
	var resp InvitationResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/invitations", req, &resp, http.StatusCreated, true)
	return resp, err
}

// ValidateInvitation checks an invitation token and returns the
// summary shown on the acceptance page. This call is unauthenticated.
func (c *Client) ValidateInvitation(ctx context.Context, token string) (ValidateInvitationResponse, error) {
	var resp ValidateInvitationResponse
	path := "/v1/invitations/validate?token=" + url.QueryEscape(token)
	err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, http.StatusOK, false)
	return resp, err
}

// AcceptInvitation redeems an invitation token for the authenticated
// user and returns the resulting care-team relationship.
func (c *Client) AcceptInvitation(ctx context.Context, token string) (RelationshipResponse, error) {
	var resp RelationshipResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/invitations/accept",
		AcceptInvitationRequest{Token: token}, &resp, http.StatusOK, true)
	return resp, err
}

// DeclineInvitation declines a pending invitation.
func (c *Client) DeclineInvitation(ctx context.Context, invitationID string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/invitations/"+invitationID+"/decline",
		nil, nil, http.StatusNoContent, true)
}

// CancelInvitation revokes a pending invitation on the inviter side.
func (c *Client) CancelInvitation(ctx context.Context, invitationID string) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/invitations/"+invitationID+"/cancel",
		nil, nil, http.StatusNoContent, true)
}

// ResendInvitation re-issues an invitation with a fresh token and
// expiry. The previous token becomes permanently invalid.
func (c *Client) ResendInvitation(ctx context.Context, invitationID string) (InvitationResponse, error) {
	var resp InvitationResponse
	err := c.doJSON(ctx, http.MethodPost, "/v1/invitations/"+invitationID+"/resend",
		nil, &resp, http.StatusOK, true)
	return resp, err
}

// ListClientInvitations returns every invitation issued for a client,
// newest first.
func (c *Client) ListClientInvitations(ctx context.Context, clientID string) ([]InvitationResponse, error) {
	var resp []InvitationResponse
	err := c.doJSON(ctx, http.MethodGet, "/v1/clients/"+clientID+"/invitations",
		nil, &resp, http.StatusOK, true)
	return resp, err
}
