package domain

// Role is one of the four organizational roles managed by the engine.
type Role string

const (
	RoleFrontlineStaff Role = "frontline-staff"
	RoleSiteSupervisor Role = "site-supervisor"
	RoleProgramLeader  Role = "program-leader"
	RoleDataViewer     Role = "data-viewer"

	// RoleAdministrator is a super-role held by operator accounts. It is a
	// valid actor role but never a node in the org tree.
	RoleAdministrator Role = "administrator"
)

// AttributeMode describes how a role's program/sites are sourced.
type AttributeMode string

const (
	// AttributeAuthoritative: program and sites are user-supplied.
	AttributeAuthoritative AttributeMode = "authoritative"
	// AttributeSingleSite: program is inherited from the parent; exactly one
	// site is chosen from the parent's program.
	AttributeSingleSite AttributeMode = "single-site"
	// AttributeInherited: program and sites are copied from the parent and
	// not independently editable.
	AttributeInherited AttributeMode = "inherited"
	// AttributeNone: no program/sites apply.
	AttributeNone AttributeMode = "none"
)

// roleDefinition captures the structural constraints of one role.
type roleDefinition struct {
	requiredParent Role // empty = tree root
	mode           AttributeMode
	next           Role // empty = no further promotion
}

// catalog is the fixed role catalog. The promotion chain is linear and total:
// frontline-staff → site-supervisor → program-leader → data-viewer.
var catalog = map[Role]roleDefinition{
	RoleFrontlineStaff: {requiredParent: RoleSiteSupervisor, mode: AttributeInherited, next: RoleSiteSupervisor},
	RoleSiteSupervisor: {requiredParent: RoleProgramLeader, mode: AttributeSingleSite, next: RoleProgramLeader},
	RoleProgramLeader:  {requiredParent: "", mode: AttributeAuthoritative, next: RoleDataViewer},
	RoleDataViewer:     {requiredParent: "", mode: AttributeNone, next: ""},
}

// IsOrgRole reports whether r is one of the four tree-managed roles.
func IsOrgRole(r Role) bool {
	_, ok := catalog[r]
	return ok
}

// RequiredParentRole returns the role a parent node must hold for a user with
// role r, and false when r is a tree root (no parent required).
// Unknown roles are a programming error and panic.
func RequiredParentRole(r Role) (Role, bool) {
	def := mustLookup(r)
	return def.requiredParent, def.requiredParent != ""
}

// AttrMode returns the attribute-inheritance mode of r.
// Unknown roles are a programming error and panic.
func AttrMode(r Role) AttributeMode {
	return mustLookup(r).mode
}

// NextRole returns the single legal promotion target for r, and false when r
// has no further promotion (data-viewer).
// Unknown roles are a programming error and panic.
func NextRole(r Role) (Role, bool) {
	def := mustLookup(r)
	return def.next, def.next != ""
}

func mustLookup(r Role) roleDefinition {
	def, ok := catalog[r]
	if !ok {
		panic("domain: unknown role " + string(r))
	}
	return def
}
