package domain

import "time"

// User is any authenticated actor: caregivers, coordinators, admins, and
// clients managing their own record.
type User struct {
	ID          string
	Email       string
	DisplayName string

	// ProfileID is an optional secondary identifier carried over from
	// external profile systems. Older relationship rows may reference a
	// caregiver by profile id or email instead of user id; identity
	// resolution happens once at the access boundary.
	ProfileID string

	PasswordHash string

	// Roles are catalog role names assigned to the user.
	Roles []string

	// CustomPermissions extend (never subtract from) role-granted
	// permissions.
	CustomPermissions []string

	// Restrictions narrow when granted permissions may be exercised.
	Restrictions []AccessRestriction

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
