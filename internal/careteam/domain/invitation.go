package domain

import "time"

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationDeclined  InvitationStatus = "declined"
	InvitationCancelled InvitationStatus = "cancelled"
	InvitationExpired   InvitationStatus = "expired"
)

// Terminal reports whether no further transitions are possible except an
// explicit resend re-issuance.
func (s InvitationStatus) Terminal() bool {
	return s != InvitationPending
}

// Invitation is a time-limited, token-authenticated offer for a person to
// become a caregiver for a specific client. Rows are never deleted; a
// terminal status is the record of history.
type Invitation struct {
	ID              string
	ClientID        string
	InvitedBy       string // inviter's user id
	InvitedEmail    string // normalized lower-case
	Role            RelationshipRole
	Permissions     []string
	PersonalMessage string
	TokenHash       string // SHA-256 fingerprint; the raw token is never stored
	Status          InvitationStatus
	ExpiresAt       time.Time
	AcceptedAt      *time.Time
	InvitedUserID   string // set on acceptance
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsExpired reports whether the invitation's clock-based expiry has passed,
// regardless of whether the status has caught up yet. Expiry is applied
// lazily on read.
func (i Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
