package domain

import (
	"slices"
	"time"
)

type RelationshipRole string

const (
	RolePrimary   RelationshipRole = "primary"
	RoleSecondary RelationshipRole = "secondary"
	RoleEmergency RelationshipRole = "emergency"
)

// Valid reports whether r is one of the known relationship roles.
func (r RelationshipRole) Valid() bool {
	switch r {
	case RolePrimary, RoleSecondary, RoleEmergency:
		return true
	}
	return false
}

// CaregiverRelationship is the durable record granting a user ongoing
// rights over a client's record. At most one active relationship exists per
// (ClientID, CaregiverID) pair. Removal is a soft delete so the audit trail
// survives.
type CaregiverRelationship struct {
	ID          string
	ClientID    string
	CaregiverID string
	Role        RelationshipRole
	Permissions []string
	IsActive    bool
	AddedBy     string
	AddedAt     time.Time
	UpdatedAt   time.Time
}

// Grants reports whether the relationship carries the capability tag. A
// primary relationship holds full permissions no matter what its stored
// permission set says.
func (r CaregiverRelationship) Grants(perm string) bool {
	if r.Role == RolePrimary {
		return true
	}
	return slices.Contains(r.Permissions, perm)
}
