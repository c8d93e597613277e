package authorization

type UserRole string

const (
	RoleContractor UserRole = "contractor"
	RoleAgency     UserRole = "agency"
	RoleAdmin      UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

// CanViewReports reports whether the role may read the agency-facing audit
// listings.
func (r UserRole) CanViewReports() bool {
	return r == RoleAgency || r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleContractor || r == RoleAgency || r == RoleAdmin
}

// ParseUserRole maps unknown role strings to the least privileged role.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleContractor
}
