package http

import (
	"encoding/json"
	"net/http"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
	"github.com/careteamhq/careteam/pkg/httpx"
)

type AdminUsersHandler struct {
	UserService *service.UserService
}

// HandleAssignAccess godoc
//
//	@Summary		Assign User Access
//	@Description	Replace a user's roles, custom permissions and restrictions. Existing tokens keep their old
//	@Description	scopes until they expire.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"User ID"
//	@Param			request	body		careteamsdk.AssignAccessRequest	true	"Access assignment"
//	@Success		200		{object}	careteamsdk.UserInfo			"updated user"
//	@Failure		400		{object}	careteamsdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	careteamsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	careteamsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/admin/users/{id}/access [put].
func (h *AdminUsersHandler) HandleAssignAccess(w http.ResponseWriter, r *http.Request) {
	var req careteamsdk.AssignAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, careteamsdk.ErrInvalidRequest.WithDescription("invalid JSON body"))
		return
	}

	user, err := h.UserService.AssignUserAccess(r.Context(), r.PathValue("id"),
		req.Roles, req.CustomPermissions, fromRestrictionSpecs(req.Restrictions))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserInfo(user))
}

// HandleSetActive godoc
//
//	@Summary		Set User Active
//	@Description	Enable or disable an account. Disabled accounts cannot log in; tokens already issued expire
//	@Description	on their own.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"User ID"
//	@Param			request	body		careteamsdk.SetUserActiveRequest	true	"Active flag"
//	@Success		200		{object}	careteamsdk.UserInfo			"updated user"
//	@Failure		400		{object}	careteamsdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	careteamsdk.ErrorResponse		"error, error_description"
//	@Failure		404		{object}	careteamsdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/admin/users/{id}/active [put].
func (h *AdminUsersHandler) HandleSetActive(w http.ResponseWriter, r *http.Request) {
	var req careteamsdk.SetUserActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, careteamsdk.ErrInvalidRequest.WithDescription("invalid JSON body"))
		return
	}

	user, err := h.UserService.SetUserActive(r.Context(), r.PathValue("id"), req.Active)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserInfo(user))
}

func fromRestrictionSpecs(specs []careteamsdk.AccessRestrictionSpec) []domain.AccessRestriction {
	if len(specs) == 0 {
		return nil
	}
	restrictions := make([]domain.AccessRestriction, len(specs))
	for i, s := range specs {
		restrictions[i] = domain.AccessRestriction{
			Type:             domain.RestrictionType(s.Type),
			StartHour:        s.StartHour,
			EndHour:          s.EndHour,
			AllowedOrigins:   s.AllowedOrigins,
			AllowedResources: s.AllowedResources,
			AllowedActions:   s.AllowedActions,
			ExpiresAt:        s.ExpiresAt,
		}
	}
	return restrictions
}
