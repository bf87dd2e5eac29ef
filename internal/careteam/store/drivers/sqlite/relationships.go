package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/domain"
)

type relationshipsRepo struct {
	q dbtx
}

const relationshipColumns = `id, client_id, caregiver_id, role, permissions,
	is_active, added_by, added_at, updated_at`

func (r *relationshipsRepo) CreateRelationship(
	ctx context.Context,
	rel domain.CaregiverRelationship,
) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO caregiver_relationships (`+relationshipColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rel.ID, rel.ClientID, rel.CaregiverID, string(rel.Role),
		joinFields(rel.Permissions), rel.IsActive, rel.AddedBy,
		rel.AddedAt, rel.UpdatedAt,
	)
	return err
}

func (r *relationshipsRepo) GetRelationshipByID(
	ctx context.Context,
	id string,
) (domain.CaregiverRelationship, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+relationshipColumns+` FROM caregiver_relationships WHERE id = ?`, id)
	return scanRelationship(row)
}

func (r *relationshipsRepo) GetActiveRelationship(
	ctx context.Context,
	clientID, caregiverID string,
) (domain.CaregiverRelationship, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+relationshipColumns+`
		FROM caregiver_relationships
		WHERE client_id = ? AND caregiver_id = ? AND is_active = 1`,
		clientID, caregiverID)
	return scanRelationship(row)
}

func (r *relationshipsRepo) ListActiveRelationshipsByClient(
	ctx context.Context,
	clientID string,
) ([]domain.CaregiverRelationship, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+relationshipColumns+`
		FROM caregiver_relationships
		WHERE client_id = ? AND is_active = 1
		ORDER BY added_at ASC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []domain.CaregiverRelationship
	for rows.Next() {
		rel, err := scanRelationshipFrom(rows)
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}

func (r *relationshipsRepo) UpdateRelationshipGrant(
	ctx context.Context,
	id string,
	role domain.RelationshipRole,
	permissions []string,
) error {
	return requireRows(r.q.ExecContext(ctx, `
		UPDATE caregiver_relationships
		SET role = ?, permissions = ?, updated_at = ?
		WHERE id = ?`,
		string(role), joinFields(permissions), time.Now().UTC(), id,
	))
}

func (r *relationshipsRepo) DeactivateRelationship(ctx context.Context, id string) error {
	// Soft delete only; the row remains as audit history.
	return requireRows(r.q.ExecContext(ctx, `
		UPDATE caregiver_relationships
		SET is_active = 0, updated_at = ?
		WHERE id = ? AND is_active = 1`,
		time.Now().UTC(), id,
	))
}

func scanRelationship(row *sql.Row) (domain.CaregiverRelationship, error) {
	return scanRelationshipFrom(row)
}

func scanRelationshipFrom(s rowScanner) (domain.CaregiverRelationship, error) {
	var (
		rel         domain.CaregiverRelationship
		role        string
		permissions string
	)
	err := s.Scan(
		&rel.ID, &rel.ClientID, &rel.CaregiverID, &role, &permissions,
		&rel.IsActive, &rel.AddedBy, &rel.AddedAt, &rel.UpdatedAt,
	)
	if err != nil {
		return domain.CaregiverRelationship{}, mapNotFound(err)
	}

	rel.Role = domain.RelationshipRole(role)
	rel.Permissions = splitFields(permissions)
	return rel, nil
}
