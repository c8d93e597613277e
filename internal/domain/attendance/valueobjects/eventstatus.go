package valueobjects

// EventStatus tags an audit row as an accepted or rejected punch attempt.
type EventStatus string

const (
	StatusOK      EventStatus = "OK"
	StatusBlocked EventStatus = "BLOCKED"
)

func (s EventStatus) String() string {
	return string(s)
}

func (s EventStatus) IsValid() bool {
	return s == StatusOK || s == StatusBlocked
}
