package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/store"
	"github.com/careteamhq/careteam/pkg/cryptox"
	"github.com/careteamhq/careteam/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(filepath.Join(t.TempDir(), "careteam.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func seedUser(t *testing.T, st *Store) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        idx.New().String() + "@example.com",
		DisplayName:  "Test User",
		PasswordHash: "x",
		Roles:        []string{"caregiver"},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func seedClient(t *testing.T, st *Store, createdBy string) domain.Client {
	t.Helper()

	now := time.Now().UTC()
	c := domain.Client{
		ID:        idx.New().String(),
		FullName:  "Care Recipient",
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Clients().CreateClient(context.Background(), c))
	return c
}

func seedInvitation(t *testing.T, st *Store, clientID, invitedBy string) domain.Invitation {
	t.Helper()

	now := time.Now().UTC()
	inv := domain.Invitation{
		ID:           idx.New().String(),
		ClientID:     clientID,
		InvitedBy:    invitedBy,
		InvitedEmail: "invitee@example.com",
		Role:         domain.RoleSecondary,
		Permissions:  []string{domain.PermView},
		TokenHash:    cryptox.FingerprintToken(cryptox.MustGenerateToken(cryptox.TokenSize256)),
		Status:       domain.InvitationPending,
		ExpiresAt:    now.Add(7 * 24 * time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, st.Invitations().CreateInvitation(context.Background(), inv))
	return inv
}

func TestUsers_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	expiry := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
	u := seedUser(t, st)

	require.NoError(t, st.Users().UpdateUserAccess(ctx, u.ID,
		[]string{"caregiver", "care_coordinator"},
		[]string{domain.PermAdmin},
		[]domain.AccessRestriction{
			{Type: domain.RestrictionTime, StartHour: 8, EndHour: 18, ExpiresAt: &expiry},
		},
	))

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"caregiver", "care_coordinator"}, got.Roles)
	require.Equal(t, []string{domain.PermAdmin}, got.CustomPermissions)
	require.Len(t, got.Restrictions, 1)
	require.Equal(t, domain.RestrictionTime, got.Restrictions[0].Type)
	require.NotNil(t, got.Restrictions[0].ExpiresAt)

	byEmail, err := st.Users().GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = st.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	u := seedUser(t, st)

	dup := u
	dup.ID = idx.New().String()
	require.ErrorIs(t, st.Users().CreateUser(context.Background(), dup), store.ErrAlreadyExists)
}

func TestInvitations_PendingLookupByTokenHash(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st)
	c := seedClient(t, st, u.ID)
	inv := seedInvitation(t, st, c.ID, u.ID)

	got, err := st.Invitations().GetPendingInvitationByTokenHash(ctx, inv.TokenHash)
	require.NoError(t, err)
	require.Equal(t, inv.ID, got.ID)
	require.Equal(t, domain.InvitationPending, got.Status)

	// A non-pending invitation is invisible to token lookup.
	require.NoError(t, st.Invitations().TransitionInvitation(ctx, inv.ID, domain.InvitationCancelled))
	_, err = st.Invitations().GetPendingInvitationByTokenHash(ctx, inv.TokenHash)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestInvitations_AcceptIsConditional(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st)
	c := seedClient(t, st, u.ID)
	inv := seedInvitation(t, st, c.ID, u.ID)

	accepter := seedUser(t, st)
	now := time.Now().UTC()

	require.NoError(t, st.Invitations().MarkInvitationAccepted(ctx, inv.ID, accepter.ID, now))

	// Second accept loses the race.
	err := st.Invitations().MarkInvitationAccepted(ctx, inv.ID, accepter.ID, now)
	require.ErrorIs(t, err, store.ErrConflict)

	// So do lazy expiry and decline/cancel once accepted.
	require.ErrorIs(t, st.Invitations().MarkInvitationExpired(ctx, inv.ID), store.ErrConflict)
	require.ErrorIs(t,
		st.Invitations().TransitionInvitation(ctx, inv.ID, domain.InvitationDeclined),
		store.ErrConflict)

	got, err := st.Invitations().GetInvitationByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, domain.InvitationAccepted, got.Status)
	require.Equal(t, accepter.ID, got.InvitedUserID)
	require.NotNil(t, got.AcceptedAt)
}

func TestInvitations_RotateToken(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st)
	c := seedClient(t, st, u.ID)
	inv := seedInvitation(t, st, c.ID, u.ID)

	// Cancelled invitations can be re-issued.
	require.NoError(t, st.Invitations().TransitionInvitation(ctx, inv.ID, domain.InvitationCancelled))

	newHash := cryptox.FingerprintToken(cryptox.MustGenerateToken(cryptox.TokenSize256))
	newExpiry := time.Now().UTC().Add(7 * 24 * time.Hour)
	require.NoError(t, st.Invitations().RotateInvitationToken(ctx, inv.ID, newHash, newExpiry))

	// The old token is gone, the new one resolves, status is pending again.
	_, err := st.Invitations().GetPendingInvitationByTokenHash(ctx, inv.TokenHash)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := st.Invitations().GetPendingInvitationByTokenHash(ctx, newHash)
	require.NoError(t, err)
	require.Equal(t, inv.ID, got.ID)

	// Accepted invitations cannot be re-issued.
	accepter := seedUser(t, st)
	require.NoError(t, st.Invitations().MarkInvitationAccepted(ctx, inv.ID, accepter.ID, time.Now().UTC()))
	err = st.Invitations().RotateInvitationToken(ctx, inv.ID, newHash, newExpiry)
	require.ErrorIs(t, err, store.ErrConflict)
}

func TestInvitations_ListByClient(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st)
	c := seedClient(t, st, u.ID)
	seedInvitation(t, st, c.ID, u.ID)
	seedInvitation(t, st, c.ID, u.ID)

	other := seedClient(t, st, u.ID)
	seedInvitation(t, st, other.ID, u.ID)

	invs, err := st.Invitations().ListInvitationsByClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, invs, 2)
}

func TestRelationships_SingleActivePerPair(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st)
	c := seedClient(t, st, u.ID)
	now := time.Now().UTC()

	rel := domain.CaregiverRelationship{
		ID:          idx.New().String(),
		ClientID:    c.ID,
		CaregiverID: u.ID,
		Role:        domain.RoleSecondary,
		Permissions: []string{domain.PermView},
		IsActive:    true,
		AddedBy:     u.ID,
		AddedAt:     now,
		UpdatedAt:   now,
	}
	require.NoError(t, st.Relationships().CreateRelationship(ctx, rel))

	dup := rel
	dup.ID = idx.New().String()
	require.Error(t, st.Relationships().CreateRelationship(ctx, dup),
		"partial unique index must reject a second active relationship")

	// After soft delete, a fresh active relationship is allowed again.
	require.NoError(t, st.Relationships().DeactivateRelationship(ctx, rel.ID))
	require.NoError(t, st.Relationships().CreateRelationship(ctx, dup))

	// Deactivating twice is a conflict, and the old row survives.
	require.ErrorIs(t, st.Relationships().DeactivateRelationship(ctx, rel.ID), store.ErrConflict)
	old, err := st.Relationships().GetRelationshipByID(ctx, rel.ID)
	require.NoError(t, err)
	require.False(t, old.IsActive)
}

func TestRelationships_ActiveLookupAndGrantUpdate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st)
	c := seedClient(t, st, u.ID)
	now := time.Now().UTC()

	rel := domain.CaregiverRelationship{
		ID:          idx.New().String(),
		ClientID:    c.ID,
		CaregiverID: u.ID,
		Role:        domain.RoleEmergency,
		IsActive:    true,
		AddedBy:     u.ID,
		AddedAt:     now,
		UpdatedAt:   now,
	}
	require.NoError(t, st.Relationships().CreateRelationship(ctx, rel))

	got, err := st.Relationships().GetActiveRelationship(ctx, c.ID, u.ID)
	require.NoError(t, err)
	require.Equal(t, rel.ID, got.ID)
	require.Empty(t, got.Permissions)

	require.NoError(t, st.Relationships().UpdateRelationshipGrant(ctx, rel.ID,
		domain.RoleSecondary, []string{domain.PermView, domain.PermMessages}))

	got, err = st.Relationships().GetRelationshipByID(ctx, rel.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleSecondary, got.Role)
	require.Equal(t, []string{domain.PermView, domain.PermMessages}, got.Permissions)

	rels, err := st.Relationships().ListActiveRelationshipsByClient(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, rels, 1)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, st)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		now := time.Now().UTC()
		if err := tx.Clients().CreateClient(ctx, domain.Client{
			ID: "tx-client", FullName: "X", CreatedBy: u.ID,
			CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.Error(t, err)

	_, err = st.Clients().GetClientByID(ctx, "tx-client")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNewStore_ConnectionPragmas(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// Force a fresh connection per query; the settings must hold on
	// every connection the pool opens, not just the first.
	st.db.SetMaxIdleConns(0)

	for i := 0; i < 3; i++ {
		var busy int
		require.NoError(t, st.db.QueryRowContext(ctx, `PRAGMA busy_timeout`).Scan(&busy))
		require.Equal(t, 5000, busy)

		var fk int
		require.NoError(t, st.db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		require.Equal(t, 1, fk)

		var mode string
		require.NoError(t, st.db.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode))
		require.Equal(t, "wal", mode)
	}
}
