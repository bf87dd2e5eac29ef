package domain

// Capability tags. The same atomic permissions are used by the system-wide
// role catalog and by per-relationship grants; the resolver and the
// caregiver permission view combine them into a final decision.
const (
	PermView         = "view"
	PermEdit         = "edit"
	PermMedications  = "medications"
	PermAppointments = "appointments"
	PermMessages     = "messages"
	PermInvite       = "invite"
	PermAdmin        = "admin"
)

// AllPermissions lists every capability tag the service knows about.
func AllPermissions() []string {
	return []string{
		PermView,
		PermEdit,
		PermMedications,
		PermAppointments,
		PermMessages,
		PermInvite,
		PermAdmin,
	}
}
