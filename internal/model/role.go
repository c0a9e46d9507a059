package model

// Role identifies what a member is allowed to do. It is a closed set;
// comparisons elsewhere switch exhaustively over these constants.
type Role string

const (
	// RoleSeeker is a member requesting aid.
	RoleSeeker Role = "Seeker"
	// RoleDonor is a member offering aid.
	RoleDonor Role = "Donor"
	// RoleAdmin is a back-office operator with full read/delete authority.
	RoleAdmin Role = "Admin"
)

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleSeeker, RoleDonor, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Registrable reports whether the role may be chosen at self-registration.
// Admin identities are provisioned through the admin signup flow, never here.
func (r Role) Registrable() bool {
	return r == RoleSeeker || r == RoleDonor
}
