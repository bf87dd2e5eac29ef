package rbac

import (
	"fmt"
	"sync"

	"github.com/careteamhq/careteam/internal/careteam/domain"
)

// RoleDefinition is a static catalog entry: a named permission bundle with
// optional one-level inheritance and a display priority. Priority picks the
// "highest" role for display only; it never escalates permissions beyond
// what the role and its inherits declare.
type RoleDefinition struct {
	Name        string
	Permissions []string
	Inherits    []string
	Priority    int
}

// Catalog maps role names to their definitions. It is constructed once and
// injected wherever role lookups happen; system roles are immutable after
// construction, and runtime registration is strictly additive.
type Catalog struct {
	mu    sync.RWMutex
	roles map[string]RoleDefinition
}

// NewCatalog builds a catalog from the given definitions. Later duplicates
// are rejected.
func NewCatalog(defs ...RoleDefinition) (*Catalog, error) {
	c := &Catalog{roles: make(map[string]RoleDefinition, len(defs))}
	for _, def := range defs {
		if _, exists := c.roles[def.Name]; exists {
			return nil, fmt.Errorf("rbac: duplicate role %q", def.Name)
		}
		c.roles[def.Name] = def
	}
	return c, nil
}

// System role names.
const (
	RoleAdmin           = "admin"
	RoleCareCoordinator = "care_coordinator"
	RoleCaregiver       = "caregiver"
	RoleFamilyMember    = "family_member"
	RoleClient          = "client"
)

// DefaultCatalog returns the catalog of system roles installed at process
// start.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		RoleDefinition{
			Name:        RoleAdmin,
			Permissions: domain.AllPermissions(),
			Priority:    100,
		},
		RoleDefinition{
			Name:        RoleCareCoordinator,
			Permissions: []string{domain.PermInvite},
			Inherits:    []string{RoleCaregiver},
			Priority:    80,
		},
		RoleDefinition{
			Name: RoleCaregiver,
			Permissions: []string{
				domain.PermView,
				domain.PermEdit,
				domain.PermMedications,
				domain.PermAppointments,
				domain.PermMessages,
			},
			Priority: 50,
		},
		RoleDefinition{
			Name:        RoleFamilyMember,
			Permissions: []string{domain.PermView, domain.PermMessages},
			Priority:    30,
		},
		RoleDefinition{
			Name:        RoleClient,
			Permissions: []string{domain.PermView},
			Priority:    20,
		},
	)
	if err != nil {
		// Definitions above are static; a duplicate is a programming error.
		panic(err)
	}
	return c
}

// Register adds a custom role at runtime. Redefining an existing role
// (system or custom) is refused: registration is additive only.
func (c *Catalog) Register(def RoleDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("rbac: role name is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.roles[def.Name]; exists {
		return fmt.Errorf("rbac: role %q already defined", def.Name)
	}
	c.roles[def.Name] = def
	return nil
}

// Get returns the definition for a role name.
func (c *Catalog) Get(name string) (RoleDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.roles[name]
	return def, ok
}

// Highest returns the highest-priority role among names, for display.
// Unknown names are ignored; ok is false if none resolve.
func (c *Catalog) Highest(names []string) (RoleDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var best RoleDefinition
	found := false
	for _, name := range names {
		def, ok := c.roles[name]
		if !ok {
			continue
		}
		if !found || def.Priority > best.Priority {
			best = def
			found = true
		}
	}
	return best, found
}

// Permissions returns the permission set of a role plus its one-level
// inherits. Inheritance is not chased transitively: only the roles a
// definition names directly contribute.
func (c *Catalog) Permissions(name string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	def, ok := c.roles[name]
	if !ok {
		return nil
	}

	perms := make([]string, 0, len(def.Permissions))
	perms = append(perms, def.Permissions...)
	for _, parent := range def.Inherits {
		if pdef, ok := c.roles[parent]; ok {
			perms = append(perms, pdef.Permissions...)
		}
	}
	return perms
}
