package http

import (
	"net/http"

	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
	"github.com/careteamhq/careteam/pkg/httpx"
)

type InvitationValidateHandler struct {
	InvitationService *service.InvitationService
	ClientService     *service.ClientService
}

// ServeHTTP godoc
//
//	@Summary		Validate Invitation Token
//	@Description	Resolve an invitation token to the summary shown on the acceptance page. Unknown, consumed and
//	@Description	revoked tokens are indistinguishable in the response.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	query		string									true	"Invitation token"
//	@Success		200		{object}	careteamsdk.ValidateInvitationResponse	"invitation summary"
//	@Failure		404		{object}	careteamsdk.ErrorResponse				"error, error_description"
//	@Failure		410		{object}	careteamsdk.ErrorResponse				"error, error_description"
//	@Router			/v1/invitations/validate [get].
func (h *InvitationValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	inv, err := h.InvitationService.ValidateInvitationToken(ctx, r.URL.Query().Get("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := careteamsdk.ValidateInvitationResponse{
		Valid:        true,
		ClientID:     inv.ClientID,
		InvitedEmail: inv.InvitedEmail,
		Role:         string(inv.Role),
		Permissions:  inv.Permissions,
		ExpiresAt:    inv.ExpiresAt,
	}
	if client, err := h.ClientService.GetClient(ctx, inv.ClientID); err == nil {
		resp.ClientName = client.FullName
	}
	if name, err := h.InvitationService.InviterDisplayName(ctx, inv.InvitedBy); err == nil {
		resp.InviterName = name
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
