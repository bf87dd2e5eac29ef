package rbac

import (
	"slices"

	"github.com/careteamhq/careteam/internal/careteam/domain"
)

// SelfServicePermissions is the fixed whitelist granted to a client acting
// on their own record, independent of any role assignment. View-only.
var SelfServicePermissions = []string{domain.PermView, domain.PermMessages}

// Resolver produces the final allow/deny for system-wide permission checks
// by combining the role catalog, per-user custom permissions, and the
// restriction evaluator. It fails closed at every step.
type Resolver struct {
	catalog *Catalog
}

func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

// KnownRole reports whether the catalog defines the named role.
func (r *Resolver) KnownRole(name string) bool {
	_, ok := r.catalog.Get(name)
	return ok
}

// UserPermissions returns the union of the user's role permissions (with
// one-level inheritance) and custom permissions. Custom permissions only
// ever add capability; nothing subtracts a role-granted permission.
func (r *Resolver) UserPermissions(user domain.User) []string {
	seen := make(map[string]struct{})
	var perms []string

	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		perms = append(perms, p)
	}

	for _, role := range user.Roles {
		for _, p := range r.catalog.Permissions(role) {
			add(p)
		}
	}
	for _, p := range user.CustomPermissions {
		add(p)
	}
	return perms
}

// HasPermission reports whether the user may exercise perm. Inactive users
// are always denied. Custom permissions are checked first and short-circuit
// to a grant even when no role carries the permission. When a request
// context is supplied, every non-expired restriction attached to the user
// must also pass.
func (r *Resolver) HasPermission(user domain.User, perm string, rctx *RequestContext) bool {
	if !user.IsActive {
		return false
	}

	granted := slices.Contains(user.CustomPermissions, perm)
	if !granted {
		for _, role := range user.Roles {
			if slices.Contains(r.catalog.Permissions(role), perm) {
				granted = true
				break
			}
		}
	}
	if !granted {
		return false
	}

	if rctx != nil {
		return EvaluateRestrictions(user.Restrictions, *rctx)
	}
	return true
}

// HasAnyPermission is the OR composition of HasPermission.
func (r *Resolver) HasAnyPermission(user domain.User, perms []string, rctx *RequestContext) bool {
	for _, p := range perms {
		if r.HasPermission(user, p, rctx) {
			return true
		}
	}
	return false
}

// HasAllPermissions is the AND composition of HasPermission.
func (r *Resolver) HasAllPermissions(user domain.User, perms []string, rctx *RequestContext) bool {
	for _, p := range perms {
		if !r.HasPermission(user, p, rctx) {
			return false
		}
	}
	return true
}

// CanAccessClient decides a permission check against a specific client. A
// client reading their own record gets the fixed self-service whitelist
// regardless of role assignment; everything else delegates to HasPermission.
func (r *Resolver) CanAccessClient(user domain.User, clientID, perm string, rctx *RequestContext) bool {
	if !user.IsActive {
		return false
	}

	if user.ID == clientID {
		return slices.Contains(SelfServicePermissions, perm)
	}

	return r.HasPermission(user, perm, rctx)
}
