package attendance

import (
	"time"

	vo "timeclock/internal/domain/attendance/valueobjects"
)

const (
	// DaysPerWeek is the fixed day-row count of a timecard.
	DaysPerWeek = 7

	// DefaultLunchDeduction is the flat unpaid lunch removed once per day
	// that has any completed work, never per segment.
	DefaultLunchDeduction = 30 * time.Minute

	// WindowSlack widens the event query on each side of the week so
	// shifts that straddle midnight are captured.
	WindowSlack = 12 * time.Hour
)

// Segment is a reconstructed CLOCK_IN to CLOCK_OUT pair representing one
// worked stretch. Lunch events never split a segment.
type Segment struct {
	ClockInAt  time.Time
	ClockOutAt time.Time
	Duration   time.Duration
	Shift      vo.ShiftType
	Methods    []vo.VerificationMethod
	Signed     bool
}

// DayRow is one calendar day of the weekly timecard.
type DayRow struct {
	Date    time.Time // business-timezone midnight, as UTC instant
	Worked  bool
	Shift   vo.ShiftType // valid only when Worked
	FirstIn *time.Time
	LastOut *time.Time
	Hours   float64
	Methods []vo.VerificationMethod // consecutive duplicates collapsed
	Signed  *bool                   // nil when no work that day
}

// Timesheet is the weekly reconstruction output: exactly seven day rows
// plus the summed total. This 8-row shape is a hard contract for the
// downstream renderers and must never vary.
type Timesheet struct {
	WeekStart  time.Time
	Days       [DaysPerWeek]DayRow
	TotalHours float64
}

// PairSegments walks accepted events in server-timestamp order and pairs
// each CLOCK_IN with the next CLOCK_OUT, ignoring intervening lunch events.
// An unterminated CLOCK_IN is dropped: it belongs to a shift still in
// progress and reconstructs once the shift completes. The engine is pure
// and read-only, so it tolerates a still-growing event log.
func PairSegments(events []*Event, loc *time.Location) []Segment {
	var segments []Segment
	var open *Event
	var methods []vo.VerificationMethod

	for _, e := range events {
		if !e.Accepted() {
			continue
		}
		switch e.Type {
		case vo.PunchClockIn:
			open = e
			methods = []vo.VerificationMethod{e.VerificationMethod}
		case vo.PunchLunchStart, vo.PunchLunchEnd:
			if open != nil {
				methods = append(methods, e.VerificationMethod)
			}
		case vo.PunchClockOut:
			if open == nil {
				continue
			}
			methods = append(methods, e.VerificationMethod)
			segments = append(segments, Segment{
				ClockInAt:  open.ServerTimestamp,
				ClockOutAt: e.ServerTimestamp,
				Duration:   e.ServerTimestamp.Sub(open.ServerTimestamp),
				Shift:      vo.ClassifyShift(open.ServerTimestamp, loc),
				Methods:    collapseMethods(methods),
				Signed:     e.Signed(),
			})
			open = nil
			methods = nil
		}
	}
	return segments
}

// collapseMethods removes consecutive duplicates, preserving order.
func collapseMethods(methods []vo.VerificationMethod) []vo.VerificationMethod {
	var out []vo.VerificationMethod
	for _, m := range methods {
		if len(out) == 0 || out[len(out)-1] != m {
			out = append(out, m)
		}
	}
	return out
}

// BuildTimesheet reconstructs the weekly timecard from accepted events in
// the widened query window. weekStart must be the business-timezone
// midnight (as a UTC instant) of the week's first day. Segments are
// bucketed by the business-timezone calendar day of their clock-in, so a
// night shift out at 02:30 is attributed to its clock-in day.
func BuildTimesheet(events []*Event, weekStart time.Time, loc *time.Location, lunch time.Duration) *Timesheet {
	if lunch <= 0 {
		lunch = DefaultLunchDeduction
	}

	sheet := &Timesheet{WeekStart: weekStart}

	dayIndex := make(map[string]int, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		biz := weekStart.In(loc)
		day := time.Date(biz.Year(), biz.Month(), biz.Day()+i, 0, 0, 0, 0, loc)
		sheet.Days[i].Date = day.UTC()
		dayIndex[day.Format("2006-01-02")] = i
	}

	type bucket struct {
		segments []Segment
		total    time.Duration
	}
	buckets := make(map[int]*bucket)

	for _, seg := range PairSegments(events, loc) {
		key := seg.ClockInAt.In(loc).Format("2006-01-02")
		i, ok := dayIndex[key]
		if !ok {
			// Captured by the widened window but belongs to an adjacent week.
			continue
		}
		b := buckets[i]
		if b == nil {
			b = &bucket{}
			buckets[i] = b
		}
		b.segments = append(b.segments, seg)
		b.total += seg.Duration
	}

	for i := 0; i < DaysPerWeek; i++ {
		b := buckets[i]
		if b == nil || len(b.segments) == 0 {
			continue
		}
		row := &sheet.Days[i]
		row.Worked = true
		row.Shift = b.segments[0].Shift

		var methods []vo.VerificationMethod
		signed := false
		for _, seg := range b.segments {
			in := seg.ClockInAt
			out := seg.ClockOutAt
			if row.FirstIn == nil || in.Before(*row.FirstIn) {
				row.FirstIn = &in
			}
			if row.LastOut == nil || out.After(*row.LastOut) {
				row.LastOut = &out
			}
			methods = append(methods, seg.Methods...)
			if seg.Signed {
				signed = true
			}
		}
		row.Methods = collapseMethods(methods)
		row.Signed = &signed

		worked := b.total - lunch
		if worked < 0 {
			worked = 0
		}
		row.Hours = worked.Hours()
		sheet.TotalHours += row.Hours
	}

	return sheet
}

// VerifiedVia renders the day's verification-method label: a single label
// when one distinct method appears, or an ordered "A → B" transition label
// when the worker switched channels during the day.
func (r *DayRow) VerifiedVia() string {
	if !r.Worked || len(r.Methods) == 0 {
		return "—"
	}
	label := r.Methods[0].Label()
	for _, m := range r.Methods[1:] {
		label += " → " + m.Label()
	}
	return label
}
