package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/internal/careteam/store"
	"github.com/careteamhq/careteam/pkg/idx"
	"github.com/careteamhq/careteam/pkg/slogx"
)

var ErrInvalidClientRequest = errors.New("invalid client request")

type ClientService struct {
	Store store.Store
}

// CreateClient registers a new care recipient and grants the creator a
// primary relationship in the same transaction.
func (s *ClientService) CreateClient(ctx context.Context, createdBy, fullName, clientEmail string) (domain.Client, error) {
	log := slogx.FromContext(ctx)

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return domain.Client{}, ErrInvalidClientRequest
	}
	clientEmail = strings.ToLower(strings.TrimSpace(clientEmail))
	if clientEmail != "" {
		if _, err := mail.ParseAddress(clientEmail); err != nil {
			return domain.Client{}, ErrInvalidClientRequest
		}
	}

	if _, err := s.Store.Users().GetUserByID(ctx, createdBy); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrUserNotFound
		}
		log.Error("failed to fetch creating user", slog.Any("error", err))
		return domain.Client{}, err
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:        idx.New().String(),
		FullName:  fullName,
		Email:     clientEmail,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Clients().CreateClient(ctx, client); err != nil {
			return err
		}
		// The creator starts as the primary caregiver. Primary grants
		// every capability, so no explicit permission list is needed.
		return tx.Relationships().CreateRelationship(ctx, domain.CaregiverRelationship{
			ID:          idx.New().String(),
			ClientID:    client.ID,
			CaregiverID: createdBy,
			Role:        domain.RolePrimary,
			IsActive:    true,
			AddedBy:     createdBy,
			AddedAt:     now,
			UpdatedAt:   now,
		})
	})
	if err != nil {
		log.Error("failed to create client",
			slog.String("created_by", createdBy),
			slog.Any("error", err),
		)
		return domain.Client{}, err
	}

	log.Info("client created",
		slog.String("client_id", client.ID),
		slog.String("created_by", createdBy),
	)

	return client, nil
}

// GetClient fetches a single client record.
func (s *ClientService) GetClient(ctx context.Context, clientID string) (domain.Client, error) {
	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		return domain.Client{}, err
	}
	return client, nil
}
