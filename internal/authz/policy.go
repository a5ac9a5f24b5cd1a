// Package authz holds the role policy as data: a fixed table mapping each
// role to the operation classes it may perform. Handlers never branch on
// roles directly; the router attaches a single check per route.
package authz

// Role is one of the three back-office roles.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleUser        Role = "user"
	RoleSuperviseur Role = "superviseur"
)

// Operation classes gating the REST surface.
type Operation string

const (
	// OpRead covers listing and fetching projects, conventions, partners
	// and financial data.
	OpRead Operation = "read"
	// OpWrite covers create/update/delete of domain entities and junctions.
	OpWrite Operation = "write"
	// OpManageUsers covers the account administration surface.
	OpManageUsers Operation = "manage_users"
)

var policy = map[Role]map[Operation]bool{
	RoleAdmin: {
		OpRead:        true,
		OpWrite:       true,
		OpManageUsers: true,
	},
	RoleUser: {
		OpRead:  true,
		OpWrite: true,
	},
	RoleSuperviseur: {
		OpRead: true,
	},
}

// Allowed reports whether role may perform op. Unknown roles are denied.
func Allowed(role Role, op Operation) bool {
	return policy[role][op]
}

// Roles returns every known role.
func Roles() []Role {
	return []Role{RoleAdmin, RoleUser, RoleSuperviseur}
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	_, ok := policy[Role(s)]
	return ok
}
