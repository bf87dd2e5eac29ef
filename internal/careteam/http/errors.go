package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
	"github.com/careteamhq/careteam/pkg/httpx"
	"github.com/careteamhq/careteam/pkg/slogx"
)

// writeServiceError maps service-layer sentinels onto the wire error
// taxonomy. Anything unmapped is a 500 and gets logged; the response
// stays generic.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *careteamsdk.APIError

	switch {
	case errors.Is(err, service.ErrInvalidInvitationRequest),
		errors.Is(err, service.ErrInvalidClientRequest),
		errors.Is(err, service.ErrInvalidRegistration),
		errors.Is(err, service.ErrInvalidRelationshipRole),
		errors.Is(err, service.ErrInvalidAccessAssignment):
		apiErr = careteamsdk.ErrInvalidRequest

	case errors.Is(err, service.ErrInvalidToken):
		apiErr = careteamsdk.ErrInvalidToken
	case errors.Is(err, service.ErrInvitationExpired):
		apiErr = careteamsdk.ErrInvitationExpired
	case errors.Is(err, service.ErrInvalidTransition):
		apiErr = careteamsdk.ErrInvalidTransition
	case errors.Is(err, service.ErrCannotRemovePrimary):
		apiErr = careteamsdk.ErrInvalidRequest.WithDescription("the primary caregiver cannot be removed")

	case errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrRelationshipNotFound):
		apiErr = careteamsdk.ErrNotFound

	case errors.Is(err, service.ErrPermissionDenied):
		apiErr = careteamsdk.ErrPermissionDenied
	case errors.Is(err, service.ErrEmailTaken):
		apiErr = careteamsdk.ErrConflict.WithDescription("email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		apiErr = careteamsdk.ErrUnauthorized.WithDescription("invalid credentials")
	case errors.Is(err, service.ErrUserDisabled):
		apiErr = careteamsdk.ErrPermissionDenied.WithDescription("account is disabled")

	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		apiErr = careteamsdk.ErrServerError
	}

	writeAPIError(w, apiErr)
}

func writeAPIError(w http.ResponseWriter, apiErr *careteamsdk.APIError) {
	httpx.WriteJSON(w, apiErr.StatusCode, careteamsdk.ErrorResponse{
		Error:            apiErr.Code,
		ErrorDescription: apiErr.Description,
	})
}

// requireUserID pulls the authenticated subject out of the request
// context. The authn middleware guarantees it for secured routes.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		writeAPIError(w, careteamsdk.ErrUnauthorized)
		return "", false
	}
	return userID, true
}
