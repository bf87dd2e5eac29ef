package careteamsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes used across the API surface.
const (
	ErrorCodeInvalidRequest    = "invalid_request"
	ErrorCodeUnauthorized      = "unauthorized"
	ErrorCodePermissionDenied  = "permission_denied"
	ErrorCodeNotFound          = "not_found"
	ErrorCodeInvalidToken      = "invalid_token"
	ErrorCodeInvitationExpired = "invitation_expired"
	ErrorCodeInvalidTransition = "invalid_transition"
	ErrorCodeConflict          = "conflict"
	ErrorCodeServerError       = "server_error"
)

// APIError is a typed error for any non-2xx API response. It is used
// by the server to render error responses and by the SDK to surface
// them to callers.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is allows errors.Is matching on the error code, ignoring the
// description.
func (e *APIError) Is(target error) bool {
	other, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// Predefined API errors. Handlers may copy one and replace the
// description.
var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "authentication required",
	}
	ErrPermissionDenied = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodePermissionDenied,
		Description: "permission denied",
	}
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeInvalidToken,
		Description: "invitation token is invalid or no longer active",
	}
	ErrInvitationExpired = &APIError{
		StatusCode:  http.StatusGone,
		Code:        ErrorCodeInvitationExpired,
		Description: "invitation has expired",
	}
	ErrInvalidTransition = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeInvalidTransition,
		Description: "invitation cannot transition to the requested state",
	}
	ErrConflict = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeConflict,
		Description: "resource already exists",
	}
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// WithDescription returns a copy of the error with a different
// human-readable description.
func (e *APIError) WithDescription(desc string) *APIError {
	clone := *e
	clone.Description = desc
	return &clone
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}
	}
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        er.Error,
		Description: er.ErrorDescription,
	}
}
