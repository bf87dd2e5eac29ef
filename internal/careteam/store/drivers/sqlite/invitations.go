package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/domain"
)

type invitationsRepo struct {
	q dbtx
}

const invitationColumns = `id, client_id, invited_by, invited_email, role,
	permissions, personal_message, token_hash, status, expires_at,
	accepted_at, invited_user_id, created_at, updated_at`

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.ClientID, inv.InvitedBy, inv.InvitedEmail, string(inv.Role),
		joinFields(inv.Permissions), inv.PersonalMessage, inv.TokenHash,
		string(inv.Status), inv.ExpiresAt,
		sql.NullTime{}, mapStringNull(inv.InvitedUserID),
		inv.CreatedAt, inv.UpdatedAt,
	)
	return err
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	return scanInvitation(row)
}

func (r *invitationsRepo) GetPendingInvitationByTokenHash(
	ctx context.Context,
	hash string,
) (domain.Invitation, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+invitationColumns+`
		FROM invitations
		WHERE token_hash = ? AND status = 'pending'`, hash)
	return scanInvitation(row)
}

func (r *invitationsRepo) ListInvitationsByClient(
	ctx context.Context,
	clientID string,
) ([]domain.Invitation, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+invitationColumns+`
		FROM invitations
		WHERE client_id = ?
		ORDER BY created_at DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitationRows(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

func (r *invitationsRepo) MarkInvitationAccepted(
	ctx context.Context,
	id, userID string,
	at time.Time,
) error {
	// Conditional on the invitation still being pending: the losing side of
	// a concurrent accept sees zero rows and gets ErrConflict.
	return requireRows(r.q.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'accepted', invited_user_id = ?, accepted_at = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		userID, at, at, id,
	))
}

func (r *invitationsRepo) MarkInvitationExpired(ctx context.Context, id string) error {
	return requireRows(r.q.ExecContext(ctx, `
		UPDATE invitations
		SET status = 'expired', updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		time.Now().UTC(), id,
	))
}

func (r *invitationsRepo) TransitionInvitation(
	ctx context.Context,
	id string,
	to domain.InvitationStatus,
) error {
	return requireRows(r.q.ExecContext(ctx, `
		UPDATE invitations
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		string(to), time.Now().UTC(), id,
	))
}

func (r *invitationsRepo) RotateInvitationToken(
	ctx context.Context,
	id, tokenHash string,
	expiresAt time.Time,
) error {
	// Accepted invitations are immutable; anything else may be re-issued.
	return requireRows(r.q.ExecContext(ctx, `
		UPDATE invitations
		SET token_hash = ?, expires_at = ?, status = 'pending',
		    accepted_at = NULL, invited_user_id = NULL, updated_at = ?
		WHERE id = ? AND status != 'accepted'`,
		tokenHash, expiresAt, time.Now().UTC(), id,
	))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row *sql.Row) (domain.Invitation, error) {
	return scanInvitationFrom(row)
}

func scanInvitationRows(rows *sql.Rows) (domain.Invitation, error) {
	return scanInvitationFrom(rows)
}

func scanInvitationFrom(s rowScanner) (domain.Invitation, error) {
	var (
		inv           domain.Invitation
		role, status  string
		permissions   string
		acceptedAt    sql.NullTime
		invitedUserID sql.NullString
	)
	err := s.Scan(
		&inv.ID, &inv.ClientID, &inv.InvitedBy, &inv.InvitedEmail, &role,
		&permissions, &inv.PersonalMessage, &inv.TokenHash, &status,
		&inv.ExpiresAt, &acceptedAt, &invitedUserID,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}

	inv.Role = domain.RelationshipRole(role)
	inv.Status = domain.InvitationStatus(status)
	inv.Permissions = splitFields(permissions)
	inv.AcceptedAt = mapNullTimePtr(acceptedAt)
	inv.InvitedUserID = mapNullString(invitedUserID)
	return inv, nil
}
