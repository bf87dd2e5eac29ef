package rbac

import (
	"slices"
	"time"

	"github.com/careteamhq/careteam/internal/careteam/domain"
)

// RequestContext carries the contextual facts a restriction can test:
// when the request happens, where it comes from, and what it touches.
type RequestContext struct {
	Time     time.Time
	Origin   string
	Resource string
	Action   string
}

// EvaluateRestrictions applies every restriction to the request context.
// All must pass (AND semantics). A restriction whose own expiry has lapsed
// is skipped, treated as absent rather than deleted.
func EvaluateRestrictions(restrictions []domain.AccessRestriction, rctx RequestContext) bool {
	now := rctx.Time
	if now.IsZero() {
		now = time.Now()
	}

	for _, r := range restrictions {
		if r.Expired(now) {
			continue
		}
		if !evaluateRestriction(r, rctx, now) {
			return false
		}
	}
	return true
}

func evaluateRestriction(r domain.AccessRestriction, rctx RequestContext, now time.Time) bool {
	switch r.Type {
	case domain.RestrictionTime:
		return hourInWindow(now.Hour(), r.StartHour, r.EndHour)
	case domain.RestrictionLocation:
		return slices.Contains(r.AllowedOrigins, rctx.Origin)
	case domain.RestrictionResource:
		return slices.Contains(r.AllowedResources, rctx.Resource)
	case domain.RestrictionAction:
		return slices.Contains(r.AllowedActions, rctx.Action)
	}
	// Unknown types fail closed.
	return false
}

// hourInWindow tests hour membership in [start, end), supporting windows
// that wrap midnight (start > end, e.g. 22-6).
func hourInWindow(hour, start, end int) bool {
	if start == end {
		// Degenerate window covers the whole day.
		return true
	}
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}
