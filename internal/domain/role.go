package domain

// Role is the access level stored on a user record. It is read once at
// login into the session and not re-checked for the rest of the
// session; the staleness window is accepted.
type Role string

const (
	RoleMember Role = "member"
	RoleTester Role = "tester"
	RoleAdmin  Role = "admin"
)

// Capability names a single gated operation.
type Capability string

const (
	CapViewCollection Capability = "view_collection"
	CapEditCollection Capability = "edit_collection"
	CapTestFeatures   Capability = "test_features"
	CapManageUsers    Capability = "manage_users"
)

// capabilities is an explicit per-role table. The roles do not form a
// linear hierarchy: tester gains test_features but not manage_users.
var capabilities = map[Role][]Capability{
	RoleMember: {CapViewCollection, CapEditCollection},
	RoleTester: {CapViewCollection, CapEditCollection, CapTestFeatures},
	RoleAdmin:  {CapViewCollection, CapEditCollection, CapTestFeatures, CapManageUsers},
}

// Has reports whether the role grants the capability. Unknown roles
// grant nothing.
func (r Role) Has(c Capability) bool {
	for _, cap := range capabilities[r] {
		if cap == c {
			return true
		}
	}
	return false
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	_, ok := capabilities[r]
	return ok
}

// Roles lists the assignable roles in display order.
func Roles() []Role {
	return []Role{RoleMember, RoleTester, RoleAdmin}
}
