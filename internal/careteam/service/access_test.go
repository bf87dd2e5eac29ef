package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/pkg/idx"
)

func (e *testEnv) seedRelationship(t *testing.T, clientID, caregiverID string, role domain.RelationshipRole, perms []string) domain.CaregiverRelationship {
	t.Helper()

	now := time.Now().UTC()
	rel := domain.CaregiverRelationship{
		ID:          idx.New().String(),
		ClientID:    clientID,
		CaregiverID: caregiverID,
		Role:        role,
		Permissions: perms,
		IsActive:    true,
		AddedBy:     caregiverID,
		AddedAt:     now,
		UpdatedAt:   now,
	}
	require.NoError(t, e.store.Relationships().CreateRelationship(context.Background(), rel))
	return rel
}

func TestClientAccess_SelfCare(t *testing.T) {
	env := newTestEnv(t)

	access, err := env.access.ClientAccess(context.Background(), "same-id", "same-id")
	require.NoError(t, err)
	require.False(t, access.NoRelationship)
	require.True(t, access.CanView)
	require.True(t, access.CanEdit)
	require.True(t, access.CanManageMedications)
	require.True(t, access.CanManageAppointments)
	require.True(t, access.CanSendMessages)
	require.True(t, access.CanInviteCaregivers)
	require.True(t, access.CanAdminister)
}

func TestClientAccess_NoRelationship(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t)
	client := env.seedClient(t, owner.ID)
	stranger := env.seedUser(t)

	access, err := env.access.ClientAccess(ctx, stranger.ID, client.ID)
	require.NoError(t, err)
	require.True(t, access.NoRelationship)
	require.False(t, access.CanView)
	require.False(t, access.CanAdminister)
}

func TestClientAccess_PrimaryGetsEverything(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t)
	client := env.seedClient(t, owner.ID)

	// The creator's auto-granted primary relationship has no explicit
	// permission list, yet every flag must be set.
	access, err := env.access.ClientAccess(ctx, owner.ID, client.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RolePrimary, access.Role)
	require.Empty(t, access.Permissions)
	require.True(t, access.CanView)
	require.True(t, access.CanEdit)
	require.True(t, access.CanManageMedications)
	require.True(t, access.CanManageAppointments)
	require.True(t, access.CanSendMessages)
	require.True(t, access.CanInviteCaregivers)
	require.True(t, access.CanAdminister)
}

func TestClientAccess_FlagDerivation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t)
	client := env.seedClient(t, owner.ID)

	t.Run("secondary with view grant", func(t *testing.T) {
		u := env.seedUser(t)
		env.seedRelationship(t, client.ID, u.ID, domain.RoleSecondary, []string{domain.PermView})

		access, err := env.access.ClientAccess(ctx, u.ID, client.ID)
		require.NoError(t, err)
		require.True(t, access.CanView)
		require.True(t, access.CanSendMessages, "secondary role implies messaging")
		require.False(t, access.CanEdit)
		require.False(t, access.CanManageMedications)
		require.False(t, access.CanInviteCaregivers)
	})

	t.Run("edit implies the edit-adjacent flags", func(t *testing.T) {
		u := env.seedUser(t)
		env.seedRelationship(t, client.ID, u.ID, domain.RoleEmergency, []string{domain.PermEdit})

		access, err := env.access.ClientAccess(ctx, u.ID, client.ID)
		require.NoError(t, err)
		require.True(t, access.CanEdit)
		require.True(t, access.CanView)
		require.True(t, access.CanManageMedications)
		require.True(t, access.CanManageAppointments)
		require.True(t, access.CanSendMessages)
		require.False(t, access.CanAdminister)
	})

	t.Run("emergency with no grant gets nothing", func(t *testing.T) {
		u := env.seedUser(t)
		env.seedRelationship(t, client.ID, u.ID, domain.RoleEmergency, nil)

		access, err := env.access.ClientAccess(ctx, u.ID, client.ID)
		require.NoError(t, err)
		require.False(t, access.NoRelationship)
		require.False(t, access.CanView)
		require.False(t, access.CanSendMessages)
	})

	t.Run("admin grant implies invite", func(t *testing.T) {
		u := env.seedUser(t)
		env.seedRelationship(t, client.ID, u.ID, domain.RoleSecondary, []string{domain.PermAdmin})

		access, err := env.access.ClientAccess(ctx, u.ID, client.ID)
		require.NoError(t, err)
		require.True(t, access.CanInviteCaregivers)
		require.True(t, access.CanAdminister)
		require.False(t, access.CanEdit)
	})
}

func TestClientAccess_IdentityFallback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t)
	client := env.seedClient(t, owner.ID)

	t.Run("relationship keyed by profile id", func(t *testing.T) {
		now := time.Now().UTC()
		u := domain.User{
			ID:           idx.New().String(),
			Email:        "profile-user@example.com",
			DisplayName:  "Profile User",
			PasswordHash: "x",
			ProfileID:    "legacy-profile-42",
			Roles:        []string{"caregiver"},
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		require.NoError(t, env.store.Users().CreateUser(ctx, u))
		env.seedRelationship(t, client.ID, u.ProfileID, domain.RoleSecondary, []string{domain.PermView})

		access, err := env.access.ClientAccess(ctx, u.ID, client.ID)
		require.NoError(t, err)
		require.False(t, access.NoRelationship)
		require.True(t, access.CanView)
	})

	t.Run("relationship keyed by email", func(t *testing.T) {
		u := env.seedUser(t)
		env.seedRelationship(t, client.ID, u.Email, domain.RoleSecondary, []string{domain.PermView})

		access, err := env.access.ClientAccess(ctx, u.ID, client.ID)
		require.NoError(t, err)
		require.False(t, access.NoRelationship)
		require.True(t, access.CanView)
	})
}

func TestCreateClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	creator := env.seedUser(t)

	t.Run("creator becomes primary caregiver", func(t *testing.T) {
		client, err := env.clients.CreateClient(ctx, creator.ID, "Morgan Price", "morgan@example.com")
		require.NoError(t, err)

		rel, err := env.store.Relationships().GetActiveRelationship(ctx, client.ID, creator.ID)
		require.NoError(t, err)
		require.Equal(t, domain.RolePrimary, rel.Role)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := env.clients.CreateClient(ctx, creator.ID, "   ", "")
		require.ErrorIs(t, err, ErrInvalidClientRequest)
	})

	t.Run("unknown creator rejected", func(t *testing.T) {
		_, err := env.clients.CreateClient(ctx, "missing", "Morgan Price", "")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRelationshipManagement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.seedUser(t)
	client := env.seedClient(t, owner.ID)

	t.Run("update reshapes role and grant", func(t *testing.T) {
		u := env.seedUser(t)
		rel := env.seedRelationship(t, client.ID, u.ID, domain.RoleSecondary, []string{domain.PermView})

		updated, err := env.relationships.UpdateRelationship(ctx, rel.ID,
			domain.RoleEmergency, []string{domain.PermMessages})
		require.NoError(t, err)
		require.Equal(t, domain.RoleEmergency, updated.Role)
		require.Equal(t, []string{domain.PermMessages}, updated.Permissions)
	})

	t.Run("get by id", func(t *testing.T) {
		u := env.seedUser(t)
		rel := env.seedRelationship(t, client.ID, u.ID, domain.RoleSecondary, nil)

		got, err := env.relationships.GetRelationship(ctx, rel.ID)
		require.NoError(t, err)
		require.Equal(t, rel.ID, got.ID)

		_, err = env.relationships.GetRelationship(ctx, idx.New().String())
		require.ErrorIs(t, err, ErrRelationshipNotFound)
	})

	t.Run("primary cannot be removed", func(t *testing.T) {
		rel, err := env.store.Relationships().GetActiveRelationship(ctx, client.ID, owner.ID)
		require.NoError(t, err)
		require.ErrorIs(t, env.relationships.RemoveRelationship(ctx, rel.ID), ErrCannotRemovePrimary)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		u := env.seedUser(t)
		rel := env.seedRelationship(t, client.ID, u.ID, domain.RoleSecondary, nil)

		require.NoError(t, env.relationships.RemoveRelationship(ctx, rel.ID))
		require.NoError(t, env.relationships.RemoveRelationship(ctx, rel.ID))

		access, err := env.access.ClientAccess(ctx, u.ID, client.ID)
		require.NoError(t, err)
		require.True(t, access.NoRelationship)
	})

	t.Run("list returns the active team", func(t *testing.T) {
		rels, err := env.relationships.ListCaregivers(ctx, client.ID)
		require.NoError(t, err)
		require.NotEmpty(t, rels)
		for _, r := range rels {
			require.True(t, r.IsActive)
		}
	})
}
