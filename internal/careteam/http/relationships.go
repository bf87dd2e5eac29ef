package http

import (
	"encoding/json"
	"net/http"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
	"github.com/careteamhq/careteam/pkg/httpx"
)

type RelationshipsHandler struct {
	RelationshipService *service.RelationshipService
	AccessService       *service.AccessService
}

// authorize checks the caller holds admin capability on the client the
// relationship belongs to.
func (h *RelationshipsHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()

	userID, ok := requireUserID(w, r)
	if !ok {
		return "", false
	}

	relationshipID := r.PathValue("id")
	rel, err := h.RelationshipService.GetRelationship(ctx, relationshipID)
	if err != nil {
		writeServiceError(w, r, err)
		return "", false
	}

	allowed, err := h.AccessService.CanActOnClient(ctx, userID, rel.ClientID, domain.PermAdmin)
	if err != nil {
		writeServiceError(w, r, err)
		return "", false
	}
	if !allowed {
		writeAPIError(w, careteamsdk.ErrPermissionDenied)
		return "", false
	}

	return relationshipID, true
}

// HandleUpdate godoc
//
//	@Summary		Update Relationship
//	@Description	Reshape a care-team relationship's role and permission grant. Requires admin capability on the
//	@Description	relationship's client.
//	@Tags			Relationships
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string									true	"Relationship ID"
//	@Param			request	body		careteamsdk.UpdateRelationshipRequest	true	"Update request"
//	@Success		200		{object}	careteamsdk.RelationshipResponse		"updated relationship"
//	@Failure		400		{object}	careteamsdk.ErrorResponse				"error, error_description"
//	@Failure		403		{object}	careteamsdk.ErrorResponse				"error, error_description"
//	@Failure		404		{object}	careteamsdk.ErrorResponse				"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/relationships/{id} [patch].
func (h *RelationshipsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req careteamsdk.UpdateRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, careteamsdk.ErrInvalidRequest.WithDescription("invalid JSON body"))
		return
	}

	relationshipID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	rel, err := h.RelationshipService.UpdateRelationship(r.Context(), relationshipID,
		domain.RelationshipRole(req.Role), req.Permissions)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRelationshipResponse(rel))
}

// HandleRemove godoc
//
//	@Summary		Remove Relationship
//	@Description	Remove a caregiver from a care team. The record is kept for history. The primary caregiver
//	@Description	cannot be removed. Removing twice succeeds without effect.
//	@Tags			Relationships
//	@Param			id	path	string	true	"Relationship ID"
//	@Success		204	"no content"
//	@Failure		400	{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/relationships/{id} [delete].
func (h *RelationshipsHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	relationshipID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.RelationshipService.RemoveRelationship(r.Context(), relationshipID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
