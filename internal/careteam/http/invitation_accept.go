package http

import (
	"encoding/json"
	"net/http"

	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
	"github.com/careteamhq/careteam/pkg/httpx"
)

type InvitationAcceptHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		Accept Invitation
//	@Description	Redeem an invitation token for the authenticated user, joining the client's care team with the
//	@Description	role and permissions the invitation carries. Each token can be redeemed exactly once.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		careteamsdk.AcceptInvitationRequest	true	"Accept request"
//	@Success		200		{object}	careteamsdk.RelationshipResponse	"resulting care-team relationship"
//	@Failure		400		{object}	careteamsdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	careteamsdk.ErrorResponse			"error, error_description"
//	@Failure		410		{object}	careteamsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/accept [post].
func (h *InvitationAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req careteamsdk.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, careteamsdk.ErrInvalidRequest.WithDescription("invalid JSON body"))
		return
	}
	if req.Token == "" {
		writeAPIError(w, careteamsdk.ErrInvalidRequest.WithDescription("token is required"))
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	rel, err := h.InvitationService.AcceptInvitation(ctx, req.Token, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRelationshipResponse(rel))
}
