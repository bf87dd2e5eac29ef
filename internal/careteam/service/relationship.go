package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/store"
	"github.com/careteamhq/careteam/pkg/slogx"
)

var (
	ErrRelationshipNotFound    = errors.New("relationship not found")
	ErrInvalidRelationshipRole = errors.New("invalid relationship role")
	ErrCannotRemovePrimary     = errors.New("primary relationship cannot be removed")
)

type RelationshipService struct {
	Store store.Store
}

// ListCaregivers returns the active care team for a client, oldest
// membership first.
func (s *RelationshipService) ListCaregivers(ctx context.Context, clientID string) ([]domain.CaregiverRelationship, error) {
	if _, err := s.Store.Clients().GetClientByID(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return s.Store.Relationships().ListActiveRelationshipsByClient(ctx, clientID)
}

// GetRelationship fetches a relationship by ID, active or not.
func (s *RelationshipService) GetRelationship(ctx context.Context, relationshipID string) (domain.CaregiverRelationship, error) {
	rel, err := s.Store.Relationships().GetRelationshipByID(ctx, relationshipID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CaregiverRelationship{}, ErrRelationshipNotFound
		}
		return domain.CaregiverRelationship{}, err
	}
	return rel, nil
}

// UpdateRelationship reshapes an existing relationship's role and
// permission grant.
func (s *RelationshipService) UpdateRelationship(ctx context.Context, relationshipID string, role domain.RelationshipRole, permissions []string) (domain.CaregiverRelationship, error) {
	log := slogx.FromContext(ctx)

	if !role.Valid() {
		return domain.CaregiverRelationship{}, ErrInvalidRelationshipRole
	}
	for _, p := range permissions {
		if !slices.Contains(domain.AllPermissions(), p) {
			return domain.CaregiverRelationship{}, ErrInvalidInvitationRequest
		}
	}

	if _, err := s.Store.Relationships().GetRelationshipByID(ctx, relationshipID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CaregiverRelationship{}, ErrRelationshipNotFound
		}
		return domain.CaregiverRelationship{}, err
	}

	if err := s.Store.Relationships().UpdateRelationshipGrant(ctx, relationshipID, role, permissions); err != nil {
		log.Error("failed to update relationship",
			slog.String("relationship_id", relationshipID),
			slog.Any("error", err),
		)
		return domain.CaregiverRelationship{}, err
	}

	log.Info("relationship updated",
		slog.String("relationship_id", relationshipID),
		slog.String("role", string(role)),
	)

	return s.Store.Relationships().GetRelationshipByID(ctx, relationshipID)
}

// RemoveRelationship soft-deletes a relationship, keeping the row for
// history. The primary caregiver cannot be removed. Removing an
// already-removed relationship is a no-op success.
func (s *RelationshipService) RemoveRelationship(ctx context.Context, relationshipID string) error {
	log := slogx.FromContext(ctx)

	rel, err := s.Store.Relationships().GetRelationshipByID(ctx, relationshipID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRelationshipNotFound
		}
		return err
	}
	if rel.Role == domain.RolePrimary {
		return ErrCannotRemovePrimary
	}
	if !rel.IsActive {
		return nil
	}

	if err := s.Store.Relationships().DeactivateRelationship(ctx, relationshipID); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Someone else deactivated it first; the intent holds.
			return nil
		}
		log.Error("failed to remove relationship",
			slog.String("relationship_id", relationshipID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("relationship removed",
		slog.String("relationship_id", relationshipID),
		slog.String("client_id", rel.ClientID),
	)
	return nil
}
