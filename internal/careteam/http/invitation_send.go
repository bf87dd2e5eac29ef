package http

import (
	"encoding/json"
	"net/http"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
	"github.com/careteamhq/careteam/pkg/httpx"
)

type InvitationSendHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Send Caregiver Invitation
//	@Description	Issue an invitation for someone to join a client's care team. The acceptance link is emailed to
//	@Description	the invitee; the raw token is never part of the response.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		careteamsdk.InvitationRequest		true	"Invitation request"
//	@Success		201		{object}	careteamsdk.InvitationResponse		"invitation record"
//	@Failure		400		{object}	careteamsdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	careteamsdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	careteamsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationSendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req careteamsdk.InvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, careteamsdk.ErrInvalidRequest.WithDescription("invalid JSON body"))
		return
	}
	if req.ClientID == "" {
		writeAPIError(w, careteamsdk.ErrInvalidRequest.WithDescription("client_id is required"))
		return
	}
	if req.Email == "" {
		writeAPIError(w, careteamsdk.ErrInvalidRequest.WithDescription("email is required"))
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	inv, err := h.InvitationService.SendInvitation(ctx, userID, req.ClientID,
		req.Email, domain.RelationshipRole(req.Role), req.Permissions, req.PersonalMessage)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toInvitationResponse(inv))
}
