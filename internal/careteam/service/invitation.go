package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/email"
	"github.com/careteamhq/careteam/internal/careteam/rbac"
	"github.com/careteamhq/careteam/internal/careteam/store"
	"github.com/careteamhq/careteam/pkg/cryptox"
	"github.com/careteamhq/careteam/pkg/idx"
	"github.com/careteamhq/careteam/pkg/slogx"
)

var (
	ErrInvalidInvitationRequest = errors.New("invalid invitation request")
	ErrInvitationNotFound       = errors.New("invitation not found")
	ErrInvalidToken             = errors.New("invitation token is invalid")
	ErrInvitationExpired        = errors.New("invitation has expired")
	ErrInvalidTransition        = errors.New("invitation cannot transition to the requested state")
	ErrPermissionDenied         = errors.New("permission denied")
	ErrUserNotFound             = errors.New("user not found")
	ErrClientNotFound           = errors.New("client not found")
)

// DefaultInvitationTTL is how long a freshly issued or re-issued
// invitation token stays valid.
const DefaultInvitationTTL = 7 * 24 * time.Hour

type InvitationService struct {
	Store    store.Store
	Mailer   email.Mailer
	Resolver *rbac.Resolver

	// AppOrigin is the public base URL acceptance links point at.
	AppOrigin string

	// TTL defaults to DefaultInvitationTTL when zero.
	TTL time.Duration
}

func (s *InvitationService) ttl() time.Duration {
	if s.TTL != 0 {
		return s.TTL
	}
	return DefaultInvitationTTL
}

// SendInvitation issues a new invitation for a client's care team and
// dispatches the acceptance email asynchronously. The raw token only
// ever leaves through the email; callers get the stored record, which
// carries the fingerprint.
func (s *InvitationService) SendInvitation(
	ctx context.Context,
	inviterID string,
	clientID string,
	invitedEmail string,
	role domain.RelationshipRole,
	permissions []string,
	personalMessage string,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate and normalize input.
	invitedEmail = strings.ToLower(strings.TrimSpace(invitedEmail))
	if _, err := mail.ParseAddress(invitedEmail); err != nil {
		log.Warn("invitation requested with malformed email",
			slog.String("client_id", clientID),
		)
		return domain.Invitation{}, ErrInvalidInvitationRequest
	}
	if !role.Valid() {
		return domain.Invitation{}, ErrInvalidInvitationRequest
	}
	for _, p := range permissions {
		if !slices.Contains(domain.AllPermissions(), p) {
			log.Warn("invitation requested with unknown permission",
				slog.String("permission", p),
			)
			return domain.Invitation{}, ErrInvalidInvitationRequest
		}
	}

	// 2. Inviter and client must exist.
	inviter, err := s.Store.Users().GetUserByID(ctx, inviterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrUserNotFound
		}
		log.Error("failed to fetch inviter", slog.Any("error", err))
		return domain.Invitation{}, err
	}
	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrClientNotFound
		}
		log.Error("failed to fetch client", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	// 3. The inviter needs invite authority: a system-level invite or
	// admin permission, or an invite grant on their own relationship
	// with this client.
	if err := s.checkInviteAuthority(ctx, inviter, clientID); err != nil {
		log.Warn("invitation refused, inviter lacks authority",
			slog.String("inviter_id", inviterID),
			slog.String("client_id", clientID),
		)
		return domain.Invitation{}, err
	}

	// 4. Generate and fingerprint the token. Only the fingerprint is
	// persisted.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	now := time.Now().UTC()
	inv := domain.Invitation{
		ID:              idx.New().String(),
		ClientID:        clientID,
		InvitedBy:       inviterID,
		InvitedEmail:    invitedEmail,
		Role:            role,
		Permissions:     permissions,
		PersonalMessage: personalMessage,
		TokenHash:       cryptox.FingerprintToken(token),
		Status:          domain.InvitationPending,
		ExpiresAt:       now.Add(s.ttl()),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Store.Invitations().CreateInvitation(ctx, inv); err != nil {
		log.Error("failed to create invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.Invitation{}, err
	}

	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("client_id", clientID),
		slog.String("inviter_id", inviterID),
		slog.String("role", string(role)),
		slog.Time("expires_at", inv.ExpiresAt),
	)

	// 5. Dispatch the email off the request path. A delivery failure
	// is logged and never rolls back the invitation.
	s.dispatchEmail(ctx, inv, inviter.DisplayName, client.FullName, token)

	return inv, nil
}

func (s *InvitationService) checkInviteAuthority(ctx context.Context, inviter domain.User, clientID string) error {
	if s.Resolver.HasAnyPermission(inviter, []string{domain.PermInvite, domain.PermAdmin}, nil) {
		return nil
	}

	rel, err := s.Store.Relationships().GetActiveRelationship(ctx, clientID, inviter.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPermissionDenied
		}
		return err
	}
	if !rel.Grants(domain.PermInvite) && !rel.Grants(domain.PermAdmin) {
		return ErrPermissionDenied
	}
	return nil
}

// dispatchEmail sends the acceptance link in the background. The
// detached context outlives the request; the raw token goes into the
// link and must stay out of every log line.
func (s *InvitationService) dispatchEmail(ctx context.Context, inv domain.Invitation, inviterName, clientName, token string) {
	msg := email.InvitationEmail{
		To:              inv.InvitedEmail,
		InviterName:     inviterName,
		ClientName:      clientName,
		Role:            string(inv.Role),
		PersonalMessage: inv.PersonalMessage,
		InvitationLink:  fmt.Sprintf("%s/accept-invitation?token=%s", s.AppOrigin, token),
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		if err := s.Mailer.SendInvitation(bg, msg); err != nil {
			slogx.FromContext(bg).Error("failed to send invitation email",
				slog.String("invitation_id", inv.ID),
				slog.String("to", inv.InvitedEmail),
				slog.Any("error", err),
			)
		}
	}()
}

// ValidateInvitationToken resolves a raw token to its pending
// invitation. Expired invitations are flipped to expired on first
// touch; there is no background sweep.
func (s *InvitationService) ValidateInvitationToken(ctx context.Context, token string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Invitation{}, ErrInvalidToken
	}

	fingerprint := cryptox.FingerprintToken(token)
	inv, err := s.Store.Invitations().GetPendingInvitationByTokenHash(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Unknown, consumed and revoked tokens all look the same
			// to the caller.
			return domain.Invitation{}, ErrInvalidToken
		}
		log.Error("failed to fetch invitation by token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	now := time.Now().UTC()
	if inv.IsExpired(now) {
		// Lazy expiry. Losing the conditional write means someone else
		// resolved the status first; the outcome for this caller is
		// expired either way.
		if err := s.Store.Invitations().MarkInvitationExpired(ctx, inv.ID); err != nil && !errors.Is(err, store.ErrConflict) {
			log.Error("failed to mark invitation expired",
				slog.String("invitation_id", inv.ID),
				slog.Any("error", err),
			)
			return domain.Invitation{}, err
		}
		log.Debug("invitation lazily expired",
			slog.String("invitation_id", inv.ID),
		)
		return domain.Invitation{}, ErrInvitationExpired
	}

	return inv, nil
}

// InviterDisplayName resolves the display name of the user who issued
// an invitation, for the public acceptance page.
func (s *InvitationService) InviterDisplayName(ctx context.Context, userID string) (string, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.DisplayName, nil
}

// AcceptInvitation consumes a pending invitation and establishes the
// caregiver relationship it describes. The status flip is a
// conditional write, so exactly one caller wins a concurrent accept.
func (s *InvitationService) AcceptInvitation(ctx context.Context, token string, userID string) (domain.CaregiverRelationship, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.ValidateInvitationToken(ctx, token)
	if err != nil {
		return domain.CaregiverRelationship{}, err
	}

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CaregiverRelationship{}, ErrUserNotFound
		}
		log.Error("failed to fetch accepting user", slog.Any("error", err))
		return domain.CaregiverRelationship{}, err
	}

	now := time.Now().UTC()
	err = s.Store.Invitations().MarkInvitationAccepted(ctx, inv.ID, userID, now)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost the race. Re-read to report what actually happened.
			return domain.CaregiverRelationship{}, s.classifyLostAccept(ctx, inv.ID)
		}
		log.Error("failed to accept invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.CaregiverRelationship{}, err
	}

	// The invitation is consumed; anything failing from here leaves an
	// accepted invitation without its relationship and needs operator
	// attention.
	rel, err := s.establishRelationship(ctx, inv, userID, now)
	if err != nil {
		log.Error("invitation accepted but relationship write failed",
			slog.String("invitation_id", inv.ID),
			slog.String("client_id", inv.ClientID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return domain.CaregiverRelationship{}, err
	}

	log.Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("client_id", inv.ClientID),
		slog.String("user_id", userID),
		slog.String("relationship_id", rel.ID),
	)

	return rel, nil
}

func (s *InvitationService) classifyLostAccept(ctx context.Context, invitationID string) error {
	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		return ErrInvalidToken
	}
	if inv.Status == domain.InvitationExpired || inv.IsExpired(time.Now().UTC()) {
		return ErrInvitationExpired
	}
	return ErrInvalidToken
}

func (s *InvitationService) establishRelationship(ctx context.Context, inv domain.Invitation, userID string, now time.Time) (domain.CaregiverRelationship, error) {
	existing, err := s.Store.Relationships().GetActiveRelationship(ctx, inv.ClientID, userID)
	if err == nil {
		// Accepting while already on the care team reshapes the
		// existing grant instead of creating a duplicate row.
		if err := s.Store.Relationships().UpdateRelationshipGrant(ctx, existing.ID, inv.Role, inv.Permissions); err != nil {
			return domain.CaregiverRelationship{}, err
		}
		return s.Store.Relationships().GetRelationshipByID(ctx, existing.ID)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.CaregiverRelationship{}, err
	}

	rel := domain.CaregiverRelationship{
		ID:          idx.New().String(),
		ClientID:    inv.ClientID,
		CaregiverID: userID,
		Role:        inv.Role,
		Permissions: inv.Permissions,
		IsActive:    true,
		AddedBy:     inv.InvitedBy,
		AddedAt:     now,
		UpdatedAt:   now,
	}
	if err := s.Store.Relationships().CreateRelationship(ctx, rel); err != nil {
		return domain.CaregiverRelationship{}, err
	}
	return rel, nil
}

// GetInvitation fetches a single invitation record.
func (s *InvitationService) GetInvitation(ctx context.Context, invitationID string) (domain.Invitation, error) {
	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}
		return domain.Invitation{}, err
	}
	return inv, nil
}

// CanManageInvitation reports whether a user may cancel or re-issue an
// invitation: the original inviter always can, as can anyone holding
// invite authority for the client. The invited party may act on
// invitations addressed to their email.
func (s *InvitationService) CanManageInvitation(ctx context.Context, userID string, inv domain.Invitation) (bool, error) {
	if userID == inv.InvitedBy {
		return true, nil
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	if user.Email == inv.InvitedEmail {
		return true, nil
	}

	switch err := s.checkInviteAuthority(ctx, user, inv.ClientID); {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrPermissionDenied):
		return false, nil
	default:
		return false, err
	}
}

// DeclineInvitation moves a pending invitation to declined. Declining
// an already-declined invitation is a no-op success.
func (s *InvitationService) DeclineInvitation(ctx context.Context, invitationID string) error {
	return s.terminate(ctx, invitationID, domain.InvitationDeclined)
}

// CancelInvitation revokes a pending invitation on the inviter side.
// Cancelling twice is a no-op success.
func (s *InvitationService) CancelInvitation(ctx context.Context, invitationID string) error {
	return s.terminate(ctx, invitationID, domain.InvitationCancelled)
}

func (s *InvitationService) terminate(ctx context.Context, invitationID string, target domain.InvitationStatus) error {
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvitationNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return err
	}

	if inv.Status == target {
		return nil
	}
	if inv.Status != domain.InvitationPending {
		return ErrInvalidTransition
	}

	err = s.Store.Invitations().TransitionInvitation(ctx, inv.ID, target)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Lost the race. If it arrived at the target anyway, the
			// caller's intent is satisfied.
			current, rerr := s.Store.Invitations().GetInvitationByID(ctx, inv.ID)
			if rerr == nil && current.Status == target {
				return nil
			}
			return ErrInvalidTransition
		}
		log.Error("failed to transition invitation",
			slog.String("invitation_id", inv.ID),
			slog.String("target", string(target)),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("invitation "+string(target),
		slog.String("invitation_id", inv.ID),
		slog.String("client_id", inv.ClientID),
	)
	return nil
}

// ResendInvitation re-issues an invitation with a fresh token and
// expiry, returning it to pending. The previous token is permanently
// invalidated. Accepted invitations cannot be re-issued.
func (s *InvitationService) ResendInvitation(ctx context.Context, invitationID string) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	inv, err := s.Store.Invitations().GetInvitationByID(ctx, invitationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invitation{}, ErrInvitationNotFound
		}
		log.Error("failed to fetch invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}
	if inv.Status == domain.InvitationAccepted {
		return domain.Invitation{}, ErrInvalidTransition
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	expiresAt := time.Now().UTC().Add(s.ttl())
	err = s.Store.Invitations().RotateInvitationToken(ctx, inv.ID, cryptox.FingerprintToken(token), expiresAt)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Accepted between read and write.
			return domain.Invitation{}, ErrInvalidTransition
		}
		log.Error("failed to rotate invitation token",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.Invitation{}, err
	}

	fresh, err := s.Store.Invitations().GetInvitationByID(ctx, inv.ID)
	if err != nil {
		log.Error("failed to re-read rotated invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.Invitation{}, err
	}

	log.Info("invitation re-issued",
		slog.String("invitation_id", fresh.ID),
		slog.String("client_id", fresh.ClientID),
		slog.Time("expires_at", fresh.ExpiresAt),
	)

	inviterName := "A care coordinator"
	if inviter, err := s.Store.Users().GetUserByID(ctx, fresh.InvitedBy); err == nil {
		inviterName = inviter.DisplayName
	}
	clientName := "a client"
	if client, err := s.Store.Clients().GetClientByID(ctx, fresh.ClientID); err == nil {
		clientName = client.FullName
	}
	s.dispatchEmail(ctx, fresh, inviterName, clientName, token)

	return fresh, nil
}

// ListClientInvitations returns every invitation ever issued for a
// client, newest first.
func (s *InvitationService) ListClientInvitations(ctx context.Context, clientID string) ([]domain.Invitation, error) {
	if _, err := s.Store.Clients().GetClientByID(ctx, clientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return s.Store.Invitations().ListInvitationsByClient(ctx, clientID)
}
