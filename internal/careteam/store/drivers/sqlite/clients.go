package sqlite

import (
	"context"

	"github.com/careteamhq/careteam/internal/careteam/domain"
)

type clientsRepo struct {
	q dbtx
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO clients (id, full_name, email, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.FullName, c.Email, c.CreatedBy, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	var c domain.Client
	err := r.q.QueryRowContext(ctx, `
		SELECT id, full_name, email, created_by, created_at, updated_at
		FROM clients WHERE id = ?`, id,
	).Scan(&c.ID, &c.FullName, &c.Email, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}
