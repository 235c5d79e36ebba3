package model

// Role is the closed set of account roles. Keeping it a dedicated type
// forces authorization sites to compare against the constants below instead
// of loose strings.
type Role string

const (
	// RoleUser is a job seeker who can apply to jobs.
	RoleUser Role = "USER"
	// RoleCompany is an account bound to exactly one company via CompanyID.
	RoleCompany Role = "COMPANY"
	// RoleAdmin has unrestricted access to every resource.
	RoleAdmin Role = "ADMIN"
)

// Roles lists every valid role.
var Roles = []Role{RoleUser, RoleCompany, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleCompany, RoleAdmin:
		return true
	}
	return false
}
