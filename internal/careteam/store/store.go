package store

import (
	"context"
	"errors"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict reports a conditional update that matched zero rows: the
	// record moved out of the expected state between read and write. Callers
	// treat this as a lost race, re-read, and report accordingly.
	ErrConflict = errors.New("store: conflicting update")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and let service tests
// swap a single entity's access without faking the world.
type Store interface {
	Users() Users
	Clients() Clients
	Invitations() Invitations
	Relationships() Relationships

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back if fn errors and
	// committing otherwise. This is the recommended entry point.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store with Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail returns a user by normalized email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// UpdateUserAccess replaces the user's roles, custom permissions and
	// restrictions in one write.
	UpdateUserAccess(ctx context.Context, userID string, roles, customPermissions []string, restrictions []domain.AccessRestriction) error

	// SetUserActive flips the is_active flag.
	SetUserActive(ctx context.Context, userID string, active bool) error
}

type Clients interface {
	// CreateClient inserts a new client record.
	CreateClient(ctx context.Context, c domain.Client) error

	// GetClientByID fetches a client.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)
}

type Invitations interface {
	// CreateInvitation writes a new invitation (token_hash is the SHA-256
	// fingerprint of the opaque token).
	CreateInvitation(ctx context.Context, inv domain.Invitation) error

	// GetInvitationByID returns an invitation regardless of status.
	GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error)

	// GetPendingInvitationByTokenHash returns a pending invitation by exact
	// fingerprint match. Expiry is NOT filtered here; lazy expiry is the
	// service's job so the status flip is observable.
	GetPendingInvitationByTokenHash(ctx context.Context, hash string) (domain.Invitation, error)

	// ListInvitationsByClient returns all invitations for a client, newest
	// first.
	ListInvitationsByClient(ctx context.Context, clientID string) ([]domain.Invitation, error)

	// MarkInvitationAccepted transitions pending→accepted, recording the
	// accepting user and time. Returns ErrConflict if the invitation is no
	// longer pending at write time.
	MarkInvitationAccepted(ctx context.Context, id, userID string, at time.Time) error

	// MarkInvitationExpired transitions pending→expired. Returns ErrConflict
	// if the invitation is no longer pending.
	MarkInvitationExpired(ctx context.Context, id string) error

	// TransitionInvitation moves a pending invitation to the given terminal
	// status (declined/cancelled). Returns ErrConflict if no longer pending.
	TransitionInvitation(ctx context.Context, id string, to domain.InvitationStatus) error

	// RotateInvitationToken installs a new fingerprint and expiry and forces
	// the status back to pending. The old token becomes permanently invalid.
	// Returns ErrConflict if the invitation has been accepted.
	RotateInvitationToken(ctx context.Context, id, tokenHash string, expiresAt time.Time) error
}

type Relationships interface {
	// CreateRelationship inserts a new caregiver relationship.
	CreateRelationship(ctx context.Context, rel domain.CaregiverRelationship) error

	// GetRelationshipByID fetches a relationship regardless of active flag.
	GetRelationshipByID(ctx context.Context, id string) (domain.CaregiverRelationship, error)

	// GetActiveRelationship returns the single active relationship for a
	// (client, caregiver identifier) pair.
	GetActiveRelationship(ctx context.Context, clientID, caregiverID string) (domain.CaregiverRelationship, error)

	// ListActiveRelationshipsByClient returns a client's active care team.
	ListActiveRelationshipsByClient(ctx context.Context, clientID string) ([]domain.CaregiverRelationship, error)

	// UpdateRelationshipGrant replaces the relationship's role and
	// permission set.
	UpdateRelationshipGrant(ctx context.Context, id string, role domain.RelationshipRole, permissions []string) error

	// DeactivateRelationship soft-deletes (is_active=0). The row survives
	// for audit history. Returns ErrConflict if already inactive.
	DeactivateRelationship(ctx context.Context, id string) error
}
