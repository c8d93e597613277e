package valueobjects

import "time"

// ShiftType classifies a worked segment by its clock-in hour.
type ShiftType string

const (
	ShiftDay   ShiftType = "DAY"
	ShiftNight ShiftType = "NIGHT"
)

const (
	dayShiftStartHour = 6
	dayShiftEndHour   = 18
)

func (s ShiftType) String() string {
	return string(s)
}

// ClassifyShift derives the shift from a clock-in instant in the business
// timezone: 06:00-17:59 is DAY, everything else NIGHT.
func ClassifyShift(clockInAt time.Time, loc *time.Location) ShiftType {
	hour := clockInAt.In(loc).Hour()
	if hour >= dayShiftStartHour && hour < dayShiftEndHour {
		return ShiftDay
	}
	return ShiftNight
}
