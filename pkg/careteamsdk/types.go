package careteamsdk

import "time"

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// LoginRequest exchanges credentials for an access token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the issued bearer token and its owner.
type AuthResponse struct {
	AccessToken string   `json:"access_token,omitempty"`
	TokenType   string   `json:"token_type,omitempty"`
	ExpiresIn   int      `json:"expires_in,omitempty"`
	User        UserInfo `json:"user"`
}

// UserInfo is the public shape of an account.
type UserInfo struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"display_name"`
	Roles       []string `json:"roles,omitempty"`
}

// InvitationRequest asks for a caregiver invitation to be issued.
type InvitationRequest struct {
	ClientID        string   `json:"client_id"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	Permissions     []string `json:"permissions,omitempty"`
	PersonalMessage string   `json:"personal_message,omitempty"`
}

// InvitationResponse is an invitation record. The raw token is never
// part of any API response; it travels only in the invitation email.
type InvitationResponse struct {
	ID              string    `json:"id"`
	ClientID        string    `json:"client_id"`
	InvitedBy       string    `json:"invited_by"`
	InvitedEmail    string    `json:"invited_email"`
	Role            string    `json:"role"`
	Permissions     []string  `json:"permissions,omitempty"`
	PersonalMessage string    `json:"personal_message,omitempty"`
	Status          string    `json:"status"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// ValidateInvitationResponse summarizes a pending invitation for the
// acceptance page.
type ValidateInvitationResponse struct {
	Valid        bool      `json:"valid"`
	ClientID     string    `json:"client_id,omitempty"`
	ClientName   string    `json:"client_name,omitempty"`
	InviterName  string    `json:"inviter_name,omitempty"`
	InvitedEmail string    `json:"invited_email,omitempty"`
	Role         string    `json:"role,omitempty"`
	Permissions  []string  `json:"permissions,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

// AcceptInvitationRequest redeems an invitation token for the
// authenticated user.
type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

// RelationshipResponse is an entry on a client's care team.
type RelationshipResponse struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	CaregiverID string    `json:"caregiver_id"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
	IsActive    bool      `json:"is_active"`
	AddedBy     string    `json:"added_by"`
	AddedAt     time.Time `json:"added_at"`
}

// UpdateRelationshipRequest reshapes a relationship's role and grant.
type UpdateRelationshipRequest struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
}

// ClientRequest registers a care recipient.
type ClientRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

// ClientResponse is a care recipient record.
type ClientResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// AccessResponse is the capability flag bundle for a user against a
// client.
type AccessResponse struct {
	Role                  string   `json:"role,omitempty"`
	Permissions           []string `json:"permissions,omitempty"`
	CanView               bool     `json:"can_view"`
	CanEdit               bool     `json:"can_edit"`
	CanManageMedications  bool     `json:"can_manage_medications"`
	CanManageAppointments bool     `json:"can_manage_appointments"`
	CanSendMessages       bool     `json:"can_send_messages"`
	CanInviteCaregivers   bool     `json:"can_invite_caregivers"`
	CanAdminister         bool     `json:"can_administer"`
	NoRelationship        bool     `json:"no_relationship"`
}

// AccessRestrictionSpec narrows when a granted permission may be
// exercised. Time windows use hours in [0,24) and may wrap midnight.
type AccessRestrictionSpec struct {
	Type             string     `json:"type"`
	StartHour        int        `json:"start_hour,omitempty"`
	EndHour          int        `json:"end_hour,omitempty"`
	AllowedOrigins   []string   `json:"allowed_origins,omitempty"`
	AllowedResources []string   `json:"allowed_resources,omitempty"`
	AllowedActions   []string   `json:"allowed_actions,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

// AssignAccessRequest replaces a user's roles, custom permissions and
// restrictions wholesale.
type AssignAccessRequest struct {
	Roles             []string                `json:"roles"`
	CustomPermissions []string                `json:"custom_permissions,omitempty"`
	Restrictions      []AccessRestrictionSpec `json:"restrictions,omitempty"`
}

// SetUserActiveRequest enables or disables an account.
type SetUserActiveRequest struct {
	Active bool `json:"active"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// ErrorResponse is the wire shape of every API error.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
