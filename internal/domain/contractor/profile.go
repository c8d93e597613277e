package contractor

// EmploymentType classifies how a worker is engaged. Only recognized types
// are allowed to punch the clock.
type EmploymentType string

const (
	EmploymentContractor EmploymentType = "contractor"
	EmploymentTemp       EmploymentType = "temp"
)

var validEmploymentTypes = map[EmploymentType]bool{
	EmploymentContractor: true,
	EmploymentTemp:       true,
}

func (e EmploymentType) String() string {
	return string(e)
}

func (e EmploymentType) IsValid() bool {
	return validEmploymentTypes[e]
}

// Profile is the read-only eligibility record for a worker. It is created
// and deactivated by the external admin workflow; the clock subsystem only
// consults it before any punch logic runs.
type Profile struct {
	UserID         string
	Agency         string
	EmploymentType EmploymentType
	IsActive       bool
}

// Eligible reports whether this profile may use the clock at all.
func (p *Profile) Eligible() bool {
	return p != nil && p.IsActive && p.EmploymentType.IsValid()
}
