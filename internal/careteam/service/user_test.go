package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/rbac"
	"github.com/careteamhq/careteam/pkg/idx"
	"github.com/careteamhq/careteam/pkg/jwtx"
)

func newUserService(t *testing.T, env *testEnv) *UserService {
	t.Helper()

	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "careteam-test")
	require.NoError(t, err)

	return &UserService{
		Store:    env.store,
		Resolver: env.resolver,
		Signer:   signer,
		Issuer:   "careteam-test",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	users := newUserService(t, env)
	ctx := context.Background()

	t.Run("register then login issues a scoped token", func(t *testing.T) {
		u, err := users.Register(ctx, "Casey@Example.com", "Casey Park", "sup3r-secret")
		require.NoError(t, err)
		require.Equal(t, "casey@example.com", u.Email)
		require.Equal(t, []string{"caregiver"}, u.Roles)

		token, got, err := users.Login(ctx, "casey@example.com", "sup3r-secret")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.NotEmpty(t, token)

		claims, err := users.Signer.(*jwtx.HS256).Verify(token)
		require.NoError(t, err)
		require.Equal(t, u.ID, claims.Subject)
		require.Contains(t, claims.Scopes, domain.PermView)
		require.NotContains(t, claims.Scopes, domain.PermAdmin)
	})

	t.Run("duplicate email refused", func(t *testing.T) {
		_, err := users.Register(ctx, "casey@example.com", "Casey Clone", "sup3r-secret")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("short password refused", func(t *testing.T) {
		_, err := users.Register(ctx, "short@example.com", "Short", "tiny")
		require.ErrorIs(t, err, ErrInvalidRegistration)
	})

	t.Run("wrong password refused", func(t *testing.T) {
		_, _, err := users.Login(ctx, "casey@example.com", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks like wrong password", func(t *testing.T) {
		_, _, err := users.Login(ctx, "ghost@example.com", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("disabled account refused", func(t *testing.T) {
		u, err := users.Register(ctx, "disabled@example.com", "Disabled", "sup3r-secret")
		require.NoError(t, err)
		require.NoError(t, env.store.Users().SetUserActive(ctx, u.ID, false))

		_, _, err = users.Login(ctx, "disabled@example.com", "sup3r-secret")
		require.ErrorIs(t, err, ErrUserDisabled)
	})
}

func TestAssignUserAccess(t *testing.T) {
	env := newTestEnv(t)
	users := newUserService(t, env)
	ctx := context.Background()

	u, err := users.Register(ctx, "jordan@example.com", "Jordan Lee", "sup3r-secret")
	require.NoError(t, err)

	t.Run("role promotion widens the resolved permissions", func(t *testing.T) {
		require.NotContains(t, env.resolver.UserPermissions(u), domain.PermInvite)

		got, err := users.AssignUserAccess(ctx, u.ID,
			[]string{rbac.RoleCareCoordinator}, nil, nil)
		require.NoError(t, err)
		require.Equal(t, []string{rbac.RoleCareCoordinator}, got.Roles)
		require.Contains(t, env.resolver.UserPermissions(got), domain.PermInvite)
	})

	t.Run("custom permissions and restrictions persist", func(t *testing.T) {
		got, err := users.AssignUserAccess(ctx, u.ID,
			[]string{rbac.RoleCaregiver},
			[]string{domain.PermInvite},
			[]domain.AccessRestriction{{
				Type: domain.RestrictionTime, StartHour: 8, EndHour: 18,
			}})
		require.NoError(t, err)
		require.Equal(t, []string{domain.PermInvite}, got.CustomPermissions)
		require.Len(t, got.Restrictions, 1)
	})

	t.Run("unknown role refused", func(t *testing.T) {
		_, err := users.AssignUserAccess(ctx, u.ID, []string{"overlord"}, nil, nil)
		require.ErrorIs(t, err, ErrInvalidAccessAssignment)
	})

	t.Run("unknown permission refused", func(t *testing.T) {
		_, err := users.AssignUserAccess(ctx, u.ID,
			[]string{rbac.RoleCaregiver}, []string{"teleport"}, nil)
		require.ErrorIs(t, err, ErrInvalidAccessAssignment)
	})

	t.Run("empty role list refused", func(t *testing.T) {
		_, err := users.AssignUserAccess(ctx, u.ID, nil, nil, nil)
		require.ErrorIs(t, err, ErrInvalidAccessAssignment)
	})

	t.Run("out of range time window refused", func(t *testing.T) {
		_, err := users.AssignUserAccess(ctx, u.ID,
			[]string{rbac.RoleCaregiver}, nil,
			[]domain.AccessRestriction{{Type: domain.RestrictionTime, StartHour: 25}})
		require.ErrorIs(t, err, ErrInvalidAccessAssignment)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := users.AssignUserAccess(ctx, idx.New().String(),
			[]string{rbac.RoleCaregiver}, nil, nil)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestSetUserActive(t *testing.T) {
	env := newTestEnv(t)
	users := newUserService(t, env)
	ctx := context.Background()

	u, err := users.Register(ctx, "morgan@example.com", "Morgan Quinn", "sup3r-secret")
	require.NoError(t, err)

	t.Run("disable blocks login, enable restores it", func(t *testing.T) {
		got, err := users.SetUserActive(ctx, u.ID, false)
		require.NoError(t, err)
		require.False(t, got.IsActive)

		_, _, err = users.Login(ctx, u.Email, "sup3r-secret")
		require.ErrorIs(t, err, ErrUserDisabled)

		got, err = users.SetUserActive(ctx, u.ID, true)
		require.NoError(t, err)
		require.True(t, got.IsActive)

		_, _, err = users.Login(ctx, u.Email, "sup3r-secret")
		require.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := users.SetUserActive(ctx, idx.New().String(), true)
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
