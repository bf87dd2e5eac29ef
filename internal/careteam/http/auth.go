package http

import (
	"encoding/json"
	"net/http"

	"github.com/careteamhq/careteam/internal/careteam/service"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
	"github.com/careteamhq/careteam/pkg/httpx"
)

type AuthHandler struct {
	UserService *service.UserService
}

// HandleRegister godoc
//
//	@Summary		Account Registration Endpoint
//	@Description	Create a new caregiver account and return an access token for it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		careteamsdk.RegisterRequest	true	"Registration request"
//	@Success		201		{object}	careteamsdk.AuthResponse	"access_token, token_type, expires_in, user"
//	@Failure		400		{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req careteamsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, careteamsdk.ErrInvalidRequest.WithDescription("invalid JSON body"))
		return
	}

	user, err := h.UserService.Register(ctx, req.Email, req.DisplayName, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	token, err := h.UserService.IssueToken(ctx, user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, careteamsdk.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.UserService.AccessTokenTTLOrDefault().Seconds()),
		User:        toUserInfo(user),
	})
}

// HandleLogin godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchange email and password for a bearer access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		careteamsdk.LoginRequest	true	"Login request"
//	@Success		200		{object}	careteamsdk.AuthResponse	"access_token, token_type, expires_in, user"
//	@Failure		400		{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	careteamsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req careteamsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIError(w, careteamsdk.ErrInvalidRequest.WithDescription("invalid JSON body"))
		return
	}

	token, user, err := h.UserService.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, careteamsdk.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.UserService.AccessTokenTTLOrDefault().Seconds()),
		User:        toUserInfo(user),
	})
}
