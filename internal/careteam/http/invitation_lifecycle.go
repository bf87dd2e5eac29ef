package http

import (
	"net/http"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
	"github.com/careteamhq/careteam/pkg/httpx"
)

// InvitationLifecycleHandler covers the per-invitation state changes:
// decline, cancel and resend.
type InvitationLifecycleHandler struct {
	InvitationService *service.InvitationService
}

// authorize loads the invitation and checks the caller may manage it.
func (h *InvitationLifecycleHandler) authorize(w http.ResponseWriter, r *http.Request) (domain.Invitation, string, bool) {
	ctx := r.Context()

	userID, ok := requireUserID(w, r)
	if !ok {
		return domain.Invitation{}, "", false
	}

	inv, err := h.InvitationService.GetInvitation(ctx, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return domain.Invitation{}, "", false
	}

	allowed, err := h.InvitationService.CanManageInvitation(ctx, userID, inv)
	if err != nil {
		writeServiceError(w, r, err)
		return domain.Invitation{}, "", false
	}
	if !allowed {
		writeAPIError(w, careteamsdk.ErrPermissionDenied)
		return domain.Invitation{}, "", false
	}

	return inv, userID, true
}

// HandleDecline godoc
//
//	@Summary		Decline Invitation
//	@Description	Decline a pending invitation. Declining an already-declined invitation succeeds without effect.
//	@Tags			Invitations
//	@Param			id	path	string	true	"Invitation ID"
//	@Success		204	"no content"
//	@Failure		403	{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/decline [post].
func (h *InvitationLifecycleHandler) HandleDecline(w http.ResponseWriter, r *http.Request) {
	inv, _, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.InvitationService.DeclineInvitation(r.Context(), inv.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCancel godoc
//
//	@Summary		Cancel Invitation
//	@Description	Revoke a pending invitation on the inviter side. Cancelling twice succeeds without effect.
//	@Tags			Invitations
//	@Param			id	path	string	true	"Invitation ID"
//	@Success		204	"no content"
//	@Failure		403	{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/cancel [post].
func (h *InvitationLifecycleHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	inv, _, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.InvitationService.CancelInvitation(r.Context(), inv.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleResend godoc
//
//	@Summary		Resend Invitation
//	@Description	Re-issue an invitation with a fresh token and expiry and send the email again. The previous
//	@Description	token becomes permanently invalid. Accepted invitations cannot be re-issued.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path		string							true	"Invitation ID"
//	@Success		200	{object}	careteamsdk.InvitationResponse	"re-issued invitation"
//	@Failure		403	{object}	careteamsdk.ErrorResponse		"error, error_description"
//	@Failure		404	{object}	careteamsdk.ErrorResponse		"error, error_description"
//	@Failure		409	{object}	careteamsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id}/resend [post].
func (h *InvitationLifecycleHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	inv, _, ok := h.authorize(w, r)
	if !ok {
		return
	}

	fresh, err := h.InvitationService.ResendInvitation(r.Context(), inv.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toInvitationResponse(fresh))
}
