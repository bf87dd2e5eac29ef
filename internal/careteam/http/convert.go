package http

import (
	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/careteamhq/careteam/pkg/careteamsdk"
)

func toInvitationResponse(inv domain.Invitation) careteamsdk.InvitationResponse {
	return careteamsdk.InvitationResponse{
		ID:              inv.ID,
		ClientID:        inv.ClientID,
		InvitedBy:       inv.InvitedBy,
		InvitedEmail:    inv.InvitedEmail,
		Role:            string(inv.Role),
		Permissions:     inv.Permissions,
		PersonalMessage: inv.PersonalMessage,
		Status:          string(inv.Status),
		ExpiresAt:       inv.ExpiresAt,
		CreatedAt:       inv.CreatedAt,
	}
}

func toRelationshipResponse(rel domain.CaregiverRelationship) careteamsdk.RelationshipResponse {
	return careteamsdk.RelationshipResponse{
		ID:          rel.ID,
		ClientID:    rel.ClientID,
		CaregiverID: rel.CaregiverID,
		Role:        string(rel.Role),
		Permissions: rel.Permissions,
		IsActive:    rel.IsActive,
		AddedBy:     rel.AddedBy,
		AddedAt:     rel.AddedAt,
	}
}

func toClientResponse(c domain.Client) careteamsdk.ClientResponse {
	return careteamsdk.ClientResponse{
		ID:        c.ID,
		FullName:  c.FullName,
		Email:     c.Email,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}

func toAccessResponse(a domain.ClientAccess) careteamsdk.AccessResponse {
	return careteamsdk.AccessResponse{
		Role:                  string(a.Role),
		Permissions:           a.Permissions,
		CanView:               a.CanView,
		CanEdit:               a.CanEdit,
		CanManageMedications:  a.CanManageMedications,
		CanManageAppointments: a.CanManageAppointments,
		CanSendMessages:       a.CanSendMessages,
		CanInviteCaregivers:   a.CanInviteCaregivers,
		CanAdminister:         a.CanAdminister,
		NoRelationship:        a.NoRelationship,
	}
}

func toUserInfo(u domain.User) careteamsdk.UserInfo {
	return careteamsdk.UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Roles:       u.Roles,
	}
}
