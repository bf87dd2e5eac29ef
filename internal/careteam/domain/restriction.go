package domain

import "time"

type RestrictionType string

const (
	RestrictionTime     RestrictionType = "time"
	RestrictionLocation RestrictionType = "location"
	RestrictionResource RestrictionType = "resource"
	RestrictionAction   RestrictionType = "action"
)

// AccessRestriction narrows when a granted permission may be exercised.
// An expired restriction is skipped during evaluation, never deleted;
// removal is a separate administrative action.
type AccessRestriction struct {
	Type RestrictionType `json:"type"`

	// Time window, hours in [0,24). Windows may wrap midnight
	// (StartHour > EndHour).
	StartHour int `json:"start_hour,omitempty"`
	EndHour   int `json:"end_hour,omitempty"`

	// Allow-lists for location/resource/action restrictions.
	AllowedOrigins   []string `json:"allowed_origins,omitempty"`
	AllowedResources []string `json:"allowed_resources,omitempty"`
	AllowedActions   []string `json:"allowed_actions,omitempty"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the restriction itself has lapsed.
func (r AccessRestriction) Expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}
