package rbac

import (
	"testing"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/domain"
	"github.com/stretchr/testify/require"
)

func at(hour int) time.Time {
	return time.Date(2025, 3, 10, hour, 30, 0, 0, time.UTC)
}

func TestHourInWindow(t *testing.T) {
	tests := []struct {
		name             string
		hour, start, end int
		want             bool
	}{
		{"inside plain window", 10, 9, 17, true},
		{"start is inclusive", 9, 9, 17, true},
		{"end is exclusive", 17, 9, 17, false},
		{"outside plain window", 3, 9, 17, false},
		{"wraparound late night", 23, 22, 6, true},
		{"wraparound early morning", 2, 22, 6, true},
		{"wraparound outside", 12, 22, 6, false},
		{"degenerate window allows all", 12, 8, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, hourInWindow(tt.hour, tt.start, tt.end))
		})
	}
}

func TestEvaluateRestrictions_TimeWindow(t *testing.T) {
	rs := []domain.AccessRestriction{
		{Type: domain.RestrictionTime, StartHour: 9, EndHour: 17},
	}

	require.True(t, EvaluateRestrictions(rs, RequestContext{Time: at(10)}))
	require.False(t, EvaluateRestrictions(rs, RequestContext{Time: at(20)}))
}

func TestEvaluateRestrictions_Location(t *testing.T) {
	rs := []domain.AccessRestriction{
		{Type: domain.RestrictionLocation, AllowedOrigins: []string{"10.1.0.0", "office-vpn"}},
	}

	require.True(t, EvaluateRestrictions(rs, RequestContext{Time: at(10), Origin: "office-vpn"}))
	require.False(t, EvaluateRestrictions(rs, RequestContext{Time: at(10), Origin: "coffee-shop"}))
}

func TestEvaluateRestrictions_ResourceAndAction(t *testing.T) {
	rs := []domain.AccessRestriction{
		{Type: domain.RestrictionResource, AllowedResources: []string{"medications"}},
		{Type: domain.RestrictionAction, AllowedActions: []string{"read"}},
	}

	ok := EvaluateRestrictions(rs, RequestContext{Time: at(10), Resource: "medications", Action: "read"})
	require.True(t, ok)

	// AND semantics: one failing restriction denies the whole check.
	ok = EvaluateRestrictions(rs, RequestContext{Time: at(10), Resource: "medications", Action: "write"})
	require.False(t, ok)
}

func TestEvaluateRestrictions_ExpiredSkipped(t *testing.T) {
	past := at(10).Add(-48 * time.Hour)
	rs := []domain.AccessRestriction{
		{
			Type:           domain.RestrictionLocation,
			AllowedOrigins: []string{"nowhere"},
			ExpiresAt:      &past,
		},
	}

	// The restriction would deny, but it has lapsed, so it is treated as
	// absent.
	require.True(t, EvaluateRestrictions(rs, RequestContext{Time: at(10), Origin: "anywhere"}))
}

func TestEvaluateRestrictions_UnknownTypeFailsClosed(t *testing.T) {
	rs := []domain.AccessRestriction{{Type: "geofence"}}
	require.False(t, EvaluateRestrictions(rs, RequestContext{Time: at(10)}))
}

func TestEvaluateRestrictions_Empty(t *testing.T) {
	require.True(t, EvaluateRestrictions(nil, RequestContext{Time: at(10)}))
}
