package careteam_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careteamhq/careteam/internal/careteam/rbac"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
)

// promoteToAdmin elevates an account directly in the store, then opens a
// fresh session so the new token carries the admin scope. Someone has to
// be the first administrator; production seeds that account the same way.
func promoteToAdmin(t *testing.T, ts *testServer, userID, userEmail string) *careteamsdk.Client {
	t.Helper()

	require.NoError(t, ts.Store.Users().UpdateUserAccess(context.Background(), userID,
		[]string{rbac.RoleAdmin}, nil, nil))

	sdk := careteamsdk.NewClient(ts.URL)
	_, err := sdk.Login(t.Context(), userEmail, defaultTestPassword)
	require.NoError(t, err, "admin login should succeed")
	return sdk
}

func TestAdminUserManagement(t *testing.T) {
	ts := setupServer(t)

	_, adminInfo := registerUser(t, ts, "admin@example.com", "Alex Admin")
	admin := promoteToAdmin(t, ts, adminInfo.ID, "admin@example.com")

	_, member := registerUser(t, ts, caregiverEmail, caregiverName)

	t.Run("role assignment changes the scopes of new sessions", func(t *testing.T) {
		updated, err := admin.AssignUserAccess(t.Context(), member.ID,
			careteamsdk.AssignAccessRequest{Roles: []string{rbac.RoleFamilyMember}})
		require.NoError(t, err)
		require.Equal(t, []string{rbac.RoleFamilyMember}, updated.Roles)

		// A family member holds only view-flavoured scopes, so the
		// edit-gated client creation route refuses a fresh session.
		session := careteamsdk.NewClient(ts.URL)
		_, err = session.Login(t.Context(), caregiverEmail, defaultTestPassword)
		require.NoError(t, err)

		_, err = session.CreateClient(t.Context(), careteamsdk.ClientRequest{FullName: "Blocked"})
		var apiErr *careteamsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	})

	t.Run("assignment shapes are validated", func(t *testing.T) {
		_, err := admin.AssignUserAccess(t.Context(), member.ID,
			careteamsdk.AssignAccessRequest{Roles: []string{"overlord"}})
		requireAPIError(t, err, careteamsdk.ErrorCodeInvalidRequest, http.StatusBadRequest)

		_, err = admin.AssignUserAccess(t.Context(), member.ID,
			careteamsdk.AssignAccessRequest{})
		requireAPIError(t, err, careteamsdk.ErrorCodeInvalidRequest, http.StatusBadRequest)

		_, err = admin.AssignUserAccess(t.Context(), member.ID,
			careteamsdk.AssignAccessRequest{
				Roles:             []string{rbac.RoleCaregiver},
				CustomPermissions: []string{"teleport"},
			})
		requireAPIError(t, err, careteamsdk.ErrorCodeInvalidRequest, http.StatusBadRequest)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := admin.AssignUserAccess(t.Context(), "no-such-user",
			careteamsdk.AssignAccessRequest{Roles: []string{rbac.RoleCaregiver}})
		requireAPIError(t, err, careteamsdk.ErrorCodeNotFound, http.StatusNotFound)
	})

	t.Run("deactivation blocks login until reactivation", func(t *testing.T) {
		updated, err := admin.SetUserActive(t.Context(), member.ID, false)
		require.NoError(t, err)
		require.Equal(t, member.ID, updated.ID)

		session := careteamsdk.NewClient(ts.URL)
		_, err = session.Login(t.Context(), caregiverEmail, defaultTestPassword)
		requireAPIError(t, err, careteamsdk.ErrorCodePermissionDenied, http.StatusForbidden)

		_, err = admin.SetUserActive(t.Context(), member.ID, true)
		require.NoError(t, err)

		_, err = session.Login(t.Context(), caregiverEmail, defaultTestPassword)
		require.NoError(t, err)
	})
}

func TestAdminEndpointsRequireAdminScope(t *testing.T) {
	ts := setupServer(t)

	caregiver, _ := registerUser(t, ts, caregiverEmail, caregiverName)
	_, other := registerUser(t, ts, coordinatorEmail, coordinatorName)

	_, err := caregiver.AssignUserAccess(t.Context(), other.ID,
		careteamsdk.AssignAccessRequest{Roles: []string{rbac.RoleAdmin}})
	var apiErr *careteamsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	_, err = caregiver.SetUserActive(t.Context(), other.ID, false)
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}
