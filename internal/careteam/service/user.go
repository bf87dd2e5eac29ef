package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/rbac"
	"github.com/careteamhq/careteam/internal/careteam/store"
	"github.com/careteamhq/careteam/pkg/cryptox"
	"github.com/careteamhq/careteam/pkg/idx"
	"github.com/careteamhq/careteam/pkg/jwtx"
	"github.com/careteamhq/careteam/pkg/slogx"
)

var (
	ErrInvalidRegistration     = errors.New("invalid registration request")
	ErrEmailTaken              = errors.New("email already registered")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUserDisabled            = errors.New("user account is disabled")
	ErrInvalidAccessAssignment = errors.New("invalid access assignment")
)

type UserService struct {
	Store    store.Store
	Resolver *rbac.Resolver
	Signer   jwtx.Signer
	Issuer   string

	// AccessTokenTTL defaults to jwtx.DefaultAccessTokenTTL when zero.
	AccessTokenTTL time.Duration
}

// AccessTokenTTLOrDefault is the effective token lifetime.
func (s *UserService) AccessTokenTTLOrDefault() time.Duration {
	if s.AccessTokenTTL > 0 {
		return s.AccessTokenTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

// Register creates a new account. New users start with the caregiver
// role; elevated roles are assigned by an administrator afterwards.
func (s *UserService) Register(ctx context.Context, userEmail, displayName, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	if _, err := mail.ParseAddress(userEmail); err != nil {
		return domain.User{}, ErrInvalidRegistration
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" || len(password) < 8 {
		return domain.User{}, ErrInvalidRegistration
	}

	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Email:        userEmail,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Roles:        []string{rbac.RoleCaregiver},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, err
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues an access token. The token's
// scopes are a snapshot of the user's resolved permissions at login
// time.
func (s *UserService) Login(ctx context.Context, userEmail, password string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	user, err := s.Store.Users().GetUserByEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a verification anyway so a missing account costs
			// the same as a wrong password.
			_ = cryptox.VerifyPassword(password, cryptox.DummyHash)
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return "", domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login failed, wrong password", slog.String("user_id", user.ID))
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return "", domain.User{}, err
	}

	if !user.IsActive {
		log.Warn("login refused, account disabled", slog.String("user_id", user.ID))
		return "", domain.User{}, ErrUserDisabled
	}

	token, err := s.IssueToken(ctx, user)
	if err != nil {
		return "", domain.User{}, err
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return token, user, nil
}

// AssignUserAccess replaces a user's roles, custom permission grant and
// restrictions wholesale. Roles must exist in the catalog and custom
// permissions must come from the known capability set. Tokens issued
// before the change keep their old scopes until they expire.
func (s *UserService) AssignUserAccess(ctx context.Context, userID string, roles, customPermissions []string, restrictions []domain.AccessRestriction) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if len(roles) == 0 {
		return domain.User{}, ErrInvalidAccessAssignment
	}
	for _, role := range roles {
		if !s.Resolver.KnownRole(role) {
			return domain.User{}, ErrInvalidAccessAssignment
		}
	}
	known := domain.AllPermissions()
	for _, perm := range customPermissions {
		if !slices.Contains(known, perm) {
			return domain.User{}, ErrInvalidAccessAssignment
		}
	}
	for _, restriction := range restrictions {
		if !validRestriction(restriction) {
			return domain.User{}, ErrInvalidAccessAssignment
		}
	}

	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if err := s.Store.Users().UpdateUserAccess(ctx, userID, roles, customPermissions, restrictions); err != nil {
		log.Error("failed to update user access", slog.Any("error", err))
		return domain.User{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	log.Info("user access updated",
		slog.String("user_id", userID),
		slog.Any("roles", roles),
	)
	return user, nil
}

// SetUserActive enables or disables an account. Disabled accounts
// cannot log in; tokens already in the wild expire on their own.
func (s *UserService) SetUserActive(ctx context.Context, userID string, active bool) (domain.User, error) {
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	if err := s.Store.Users().SetUserActive(ctx, userID, active); err != nil {
		slogx.FromContext(ctx).Error("failed to set active flag", slog.Any("error", err))
		return domain.User{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user active flag set",
		slog.String("user_id", userID),
		slog.Bool("active", active),
	)
	return user, nil
}

func validRestriction(r domain.AccessRestriction) bool {
	switch r.Type {
	case domain.RestrictionTime:
		return r.StartHour >= 0 && r.StartHour < 24 && r.EndHour >= 0 && r.EndHour < 24
	case domain.RestrictionLocation, domain.RestrictionResource, domain.RestrictionAction:
		return true
	default:
		return false
	}
}

// IssueToken signs an access token for an already-authenticated user.
func (s *UserService) IssueToken(ctx context.Context, user domain.User) (string, error) {
	scopes := s.Resolver.UserPermissions(user)
	claims := jwtx.NewAccessClaims(user.ID, scopes, s.AccessTokenTTLOrDefault(), s.Issuer, user.Email, user.DisplayName, time.Now().UTC())

	token, err := s.Signer.Sign(claims)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to sign access token", slog.Any("error", err))
		return "", err
	}
	return token, nil
}
