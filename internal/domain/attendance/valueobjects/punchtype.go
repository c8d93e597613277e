package valueobjects

// PunchType is the requested clock transition.
type PunchType string

const (
	PunchClockIn    PunchType = "CLOCK_IN"
	PunchLunchStart PunchType = "LUNCH_START"
	PunchLunchEnd   PunchType = "LUNCH_END"
	PunchClockOut   PunchType = "CLOCK_OUT"
)

var validPunchTypes = map[PunchType]bool{
	PunchClockIn:    true,
	PunchLunchStart: true,
	PunchLunchEnd:   true,
	PunchClockOut:   true,
}

func (p PunchType) String() string {
	return string(p)
}

func (p PunchType) IsValid() bool {
	return validPunchTypes[p]
}
