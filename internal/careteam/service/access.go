package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/rbac"
	"github.com/careteamhq/careteam/internal/careteam/store"
	"github.com/careteamhq/careteam/pkg/slogx"
)

// AccessService computes the capability flag bundle a user holds
// against one client. It is the single place relationship identity is
// resolved: callers elsewhere always pass canonical user ids.
type AccessService struct {
	Store    store.Store
	Resolver *rbac.Resolver
}

// ClientAccess resolves a user's standing on a client's care team and
// derives the capability flags from the relationship role and grant.
// A user with no active relationship gets a zero bundle with
// NoRelationship set, not an error.
func (s *AccessService) ClientAccess(ctx context.Context, userID, clientID string) (domain.ClientAccess, error) {
	log := slogx.FromContext(ctx)

	// Self-care: clients acting on their own record get a fixed grant
	// with no relationship lookup.
	if userID == clientID {
		return domain.ClientAccess{
			Permissions:           []string{domain.PermView, domain.PermEdit, domain.PermAdmin},
			CanView:               true,
			CanEdit:               true,
			CanManageMedications:  true,
			CanManageAppointments: true,
			CanSendMessages:       true,
			CanInviteCaregivers:   true,
			CanAdminister:         true,
		}, nil
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ClientAccess{}, ErrUserNotFound
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return domain.ClientAccess{}, err
	}

	rel, err := s.findRelationship(ctx, clientID, user)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ClientAccess{NoRelationship: true}, nil
		}
		log.Error("failed to resolve relationship",
			slog.String("client_id", clientID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return domain.ClientAccess{}, err
	}

	return deriveAccess(rel), nil
}

// findRelationship tries each identifier the user may be known by on a
// care team: the canonical user id, the profile id carried over from
// an external system, and finally the email address. First match wins.
func (s *AccessService) findRelationship(ctx context.Context, clientID string, user domain.User) (domain.CaregiverRelationship, error) {
	candidates := []string{user.ID}
	if user.ProfileID != "" {
		candidates = append(candidates, user.ProfileID)
	}
	if user.Email != "" {
		candidates = append(candidates, user.Email)
	}

	for _, id := range candidates {
		rel, err := s.Store.Relationships().GetActiveRelationship(ctx, clientID, id)
		if err == nil {
			return rel, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return domain.CaregiverRelationship{}, err
		}
	}
	return domain.CaregiverRelationship{}, store.ErrNotFound
}

func deriveAccess(rel domain.CaregiverRelationship) domain.ClientAccess {
	access := domain.ClientAccess{
		Role:        rel.Role,
		Permissions: rel.Permissions,
	}

	if rel.Role == domain.RolePrimary {
		access.CanView = true
		access.CanEdit = true
		access.CanManageMedications = true
		access.CanManageAppointments = true
		access.CanSendMessages = true
		access.CanInviteCaregivers = true
		access.CanAdminister = true
		return access
	}

	has := func(perm string) bool { return rel.Grants(perm) }
	secondary := rel.Role == domain.RoleSecondary

	access.CanEdit = has(domain.PermEdit)
	access.CanManageMedications = has(domain.PermMedications) || access.CanEdit
	access.CanManageAppointments = has(domain.PermAppointments) || access.CanEdit
	// Secondary caregivers can always see the record and reach the
	// family, whatever their grant. Emergency contacts get nothing
	// implicitly.
	access.CanView = has(domain.PermView) || access.CanEdit || secondary
	access.CanSendMessages = has(domain.PermMessages) || access.CanEdit || secondary
	access.CanInviteCaregivers = has(domain.PermInvite) || has(domain.PermAdmin)
	access.CanAdminister = has(domain.PermAdmin)

	return access
}

// CanActOnClient answers whether a user may perform a capability
// against a client, combining the platform-admin override with the
// care-team flag bundle.
func (s *AccessService) CanActOnClient(ctx context.Context, userID, clientID, perm string) (bool, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	// Platform admins may act on any client record. Everyone else needs
	// standing on this client's care team; system roles alone grant
	// nothing against a specific client.
	if s.Resolver.HasPermission(user, domain.PermAdmin, nil) {
		return true, nil
	}

	access, err := s.ClientAccess(ctx, userID, clientID)
	if err != nil {
		return false, err
	}
	if access.NoRelationship {
		return false, nil
	}

	switch perm {
	case domain.PermView:
		return access.CanView, nil
	case domain.PermEdit:
		return access.CanEdit, nil
	case domain.PermMedications:
		return access.CanManageMedications, nil
	case domain.PermAppointments:
		return access.CanManageAppointments, nil
	case domain.PermMessages:
		return access.CanSendMessages, nil
	case domain.PermInvite:
		return access.CanInviteCaregivers, nil
	case domain.PermAdmin:
		return access.CanAdminister, nil
	default:
		return false, nil
	}
}
