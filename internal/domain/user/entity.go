package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner - full access
	RoleManager  Role = "manager"  // Maintains shift plans and rates
	RoleEmployee Role = "employee" // Regular employee
)

var RoleValues = []string{string(RoleOwner), string(RoleManager), string(RoleEmployee)}

// IsManager checks if role is manager or owner
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}
