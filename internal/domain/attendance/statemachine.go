package attendance

import (
	"time"

	vo "timeclock/internal/domain/attendance/valueobjects"
)

// ClockState is the logical clock position derived from accepted events.
type ClockState string

const (
	StateOut     ClockState = "OUT"
	StateIn      ClockState = "IN"
	StateOnLunch ClockState = "ON_LUNCH"
)

// LunchAutoReturn is how long after LUNCH_START the worker is treated as
// back IN for read-time state reporting. No synthetic event is written;
// the next real transition is simply evaluated against the corrected state.
const LunchAutoReturn = 30 * time.Minute

func (s ClockState) String() string {
	return string(s)
}

// clockTransitions is the full transition table. A punch type requested
// from any state not listed for it is invalid.
var clockTransitions = map[ClockState]map[vo.PunchType]ClockState{
	StateOut: {
		vo.PunchClockIn: StateIn,
	},
	StateIn: {
		vo.PunchLunchStart: StateOnLunch,
		vo.PunchClockOut:   StateOut,
	},
	StateOnLunch: {
		vo.PunchLunchEnd: StateIn,
	},
}

// NextState folds one accepted punch over a state. ok is false when the
// transition is illegal from the given state.
func NextState(state ClockState, punch vo.PunchType) (ClockState, bool) {
	next, ok := clockTransitions[state][punch]
	return next, ok
}

// ReplayState derives the clock state by folding the transition table over
// accepted events in timestamp order. Blocked events must never be passed
// in; callers load OK rows only. The lazy lunch rule is applied between
// events: a stretch ON_LUNCH longer than LunchAutoReturn counts as IN by
// the time the next event arrives, matching how the gate evaluated that
// event when it was accepted. Events that would still be illegal
// transitions are skipped, so a corrupted tail cannot wedge the machine.
func ReplayState(events []*Event) ClockState {
	state := StateOut
	var lunchStartedAt time.Time
	for _, e := range events {
		if !e.Accepted() {
			continue
		}
		if state == StateOnLunch && e.ServerTimestamp.Sub(lunchStartedAt) >= LunchAutoReturn {
			state = StateIn
		}
		if next, ok := NextState(state, e.Type); ok {
			state = next
			if e.Type == vo.PunchLunchStart {
				lunchStartedAt = e.ServerTimestamp
			}
		}
	}
	return state
}

// EffectiveState applies the lazy lunch rule against the current instant on
// top of replay: ON_LUNCH is reported as IN once LunchAutoReturn has
// elapsed since the LUNCH_START that opened it. No synthetic event is ever
// written for this.
func EffectiveState(events []*Event, now time.Time) ClockState {
	state := ReplayState(events)
	if state != StateOnLunch {
		return state
	}
	if started, ok := lastLunchStart(events); ok && now.Sub(started) >= LunchAutoReturn {
		return StateIn
	}
	return state
}

// ValidateTransition checks whether the requested punch is legal given the
// accepted-event history, honoring the lazy lunch auto-return.
func ValidateTransition(events []*Event, punch vo.PunchType, now time.Time) bool {
	state := EffectiveState(events, now)
	_, ok := NextState(state, punch)
	return ok
}

func lastLunchStart(events []*Event) (time.Time, bool) {
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		if e.Accepted() && e.Type == vo.PunchLunchStart {
			return e.ServerTimestamp, true
		}
	}
	return time.Time{}, false
}
