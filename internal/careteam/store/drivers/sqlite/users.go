package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/store"
)

type usersRepo struct {
	q dbtx
}

const userColumns = `id, email, display_name, profile_id, password_hash,
	roles, custom_permissions, restrictions, is_active, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	restrictions, err := marshalRestrictions(u.Restrictions)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.DisplayName, u.ProfileID, u.PasswordHash,
		joinFields(u.Roles), joinFields(u.CustomPermissions), restrictions,
		u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) UpdateUserAccess(
	ctx context.Context,
	userID string,
	roles, customPermissions []string,
	restrictions []domain.AccessRestriction,
) error {
	encoded, err := marshalRestrictions(restrictions)
	if err != nil {
		return err
	}

	return requireRows(r.q.ExecContext(ctx, `
		UPDATE users
		SET roles = ?, custom_permissions = ?, restrictions = ?, updated_at = ?
		WHERE id = ?`,
		joinFields(roles), joinFields(customPermissions), encoded,
		time.Now().UTC(), userID,
	))
}

func (r *usersRepo) SetUserActive(ctx context.Context, userID string, active bool) error {
	return requireRows(r.q.ExecContext(ctx, `
		UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?`,
		active, time.Now().UTC(), userID,
	))
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u                   domain.User
		roles, custom, rstr string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.ProfileID, &u.PasswordHash,
		&roles, &custom, &rstr, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Roles = splitFields(roles)
	u.CustomPermissions = splitFields(custom)
	u.Restrictions, err = unmarshalRestrictions(rstr)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
