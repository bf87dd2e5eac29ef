package http

import (
	"encoding/json"
	"net/http"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
	"github.com/careteamhq/careteam/pkg/httpx"
)

type ClientsHandler struct {
	ClientService       *service.ClientService
	AccessService       *service.AccessService
	InvitationService   *service.InvitationService
	RelationshipService *service.RelationshipService
}

// requireCapability answers 403 unless the caller holds the capability
// against the client.
func (h *ClientsHandler) requireCapability(w http.ResponseWriter, r *http.Request, userID, clientID, perm string) bool {
	allowed, err := h.AccessService.CanActOnClient(r.Context(), userID, clientID, perm)
	if err != nil {
		writeServiceError(w, r, err)
		return false
	}
	if !allowed {
		writeAPIError(w, careteamsdk.ErrPermissionDenied)
		return false
	}
	return true
}

// HandleCreate godoc
//
//	@Summary		Create Client
//	@Description	Register a care recipient. The creator automatically becomes the client's primary caregiver.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Param			request	body		careteamsdk.ClientRequest	true	"Client request"
//	@Success		201		{object}	careteamsdk.ClientResponse	"client record"
//	@Failure		400		{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req careteamsdk.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, careteamsdk.ErrInvalidRequest.WithDescription("invalid JSON body"))
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	client, err := h.ClientService.CreateClient(ctx, userID, req.FullName, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toClientResponse(client))
}

// HandleAccess godoc
//
//	@Summary		Client Access Flags
//	@Description	Return the authenticated user's capability flag bundle for a client. A user with no active
//	@Description	relationship gets a zero bundle with no_relationship set, not an error.
//	@Tags			Clients
//	@Produce		json
//	@Param			id	path		string						true	"Client ID"
//	@Success		200	{object}	careteamsdk.AccessResponse	"capability flags"
//	@Failure		404	{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/clients/{id}/access [get].
func (h *ClientsHandler) HandleAccess(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	access, err := h.AccessService.ClientAccess(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccessResponse(access))
}

// HandleCaregivers godoc
//
//	@Summary		List Care Team
//	@Description	Return a client's active caregivers. Requires view capability on the client.
//	@Tags			Clients
//	@Produce		json
//	@Param			id	path		string								true	"Client ID"
//	@Success		200	{array}		careteamsdk.RelationshipResponse	"active relationships"
//	@Failure		403	{object}	careteamsdk.ErrorResponse			"error, error_description"
//	@Failure		404	{object}	careteamsdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/clients/{id}/caregivers [get].
func (h *ClientsHandler) HandleCaregivers(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	clientID := r.PathValue("id")

	if !h.requireCapability(w, r, userID, clientID, domain.PermView) {
		return
	}

	rels, err := h.RelationshipService.ListCaregivers(r.Context(), clientID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]careteamsdk.RelationshipResponse, 0, len(rels))
	for _, rel := range rels {
		resp = append(resp, toRelationshipResponse(rel))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleInvitations godoc
//
//	@Summary		List Client Invitations
//	@Description	Return every invitation issued for a client, newest first. Requires invite capability.
//	@Tags			Clients
//	@Produce		json
//	@Param			id	path		string							true	"Client ID"
//	@Success		200	{array}		careteamsdk.InvitationResponse	"invitations"
//	@Failure		403	{object}	careteamsdk.ErrorResponse		"error, error_description"
//	@Failure		404	{object}	careteamsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/clients/{id}/invitations [get].
func (h *ClientsHandler) HandleInvitations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	clientID := r.PathValue("id")

	if !h.requireCapability(w, r, userID, clientID, domain.PermInvite) {
		return
	}

	invs, err := h.InvitationService.ListClientInvitations(r.Context(), clientID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]careteamsdk.InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		resp = append(resp, toInvitationResponse(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
