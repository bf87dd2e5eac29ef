package domain

// ClientAccess is the capability flag bundle computed for one user
// against one client. NoRelationship distinguishes "not connected"
// from a permission denial.
type ClientAccess struct {
	Role                  RelationshipRole `json:"role,omitempty"`
	Permissions           []string         `json:"permissions,omitempty"`
	CanView               bool             `json:"can_view"`
	CanEdit               bool             `json:"can_edit"`
	CanManageMedications  bool             `json:"can_manage_medications"`
	CanManageAppointments bool             `json:"can_manage_appointments"`
	CanSendMessages       bool             `json:"can_send_messages"`
	CanInviteCaregivers   bool             `json:"can_invite_caregivers"`
	CanAdminister         bool             `json:"can_administer"`
	NoRelationship        bool             `json:"no_relationship"`
}
