package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "timeclock/internal/domain/attendance/valueobjects"
)

func acceptedEvent(t *testing.T, punch vo.PunchType, at time.Time, method vo.VerificationMethod) *Event {
	t.Helper()
	e, err := NewAcceptedEvent(EventAttrs{
		ID:                 "evt_" + at.Format("0102150405") + string(punch[0]),
		UserID:             "u1",
		SiteID:             "site1",
		Type:               punch,
		ServerTimestamp:    at,
		VerificationMethod: method,
	})
	require.NoError(t, err)
	return e
}

// Monday 2026-03-02, business timezone UTC for determinism.
var weekStart = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestPairSegments(t *testing.T) {
	day := weekStart

	events := []*Event{
		acceptedEvent(t, vo.PunchClockIn, day.Add(8*time.Hour), vo.MethodWifi),
		acceptedEvent(t, vo.PunchLunchStart, day.Add(12*time.Hour), vo.MethodWifi),
		acceptedEvent(t, vo.PunchLunchEnd, day.Add(12*time.Hour+30*time.Minute), vo.MethodWifi),
		acceptedEvent(t, vo.PunchClockOut, day.Add(16*time.Hour+30*time.Minute), vo.MethodWifi),
		// Second shift left open - dropped from reconstruction.
		acceptedEvent(t, vo.PunchClockIn, day.Add(20*time.Hour), vo.MethodLocation),
	}

	segments := PairSegments(events, time.UTC)
	require.Len(t, segments, 1)

	seg := segments[0]
	assert.Equal(t, day.Add(8*time.Hour), seg.ClockInAt)
	assert.Equal(t, day.Add(16*time.Hour+30*time.Minute), seg.ClockOutAt)
	assert.Equal(t, 8*time.Hour+30*time.Minute, seg.Duration)
	assert.Equal(t, vo.ShiftDay, seg.Shift)
	// Lunch events share the clock-in method, so collapsing yields one entry.
	assert.Equal(t, []vo.VerificationMethod{vo.MethodWifi}, seg.Methods)
}

func TestPairSegments_OrphanClockOutIgnored(t *testing.T) {
	events := []*Event{
		acceptedEvent(t, vo.PunchClockOut, weekStart.Add(6*time.Hour), vo.MethodWifi),
	}
	assert.Empty(t, PairSegments(events, time.UTC))
}

func TestBuildTimesheet_SingleDayShift(t *testing.T) {
	day := weekStart
	events := []*Event{
		acceptedEvent(t, vo.PunchClockIn, day.Add(8*time.Hour), vo.MethodWifi),
		acceptedEvent(t, vo.PunchClockOut, day.Add(16*time.Hour+30*time.Minute), vo.MethodWifi),
	}

	sheet := BuildTimesheet(events, weekStart, time.UTC, DefaultLunchDeduction)

	row := sheet.Days[0]
	assert.True(t, row.Worked)
	assert.Equal(t, vo.ShiftDay, row.Shift)
	assert.InDelta(t, 8.0, row.Hours, 1e-9)
	assert.Equal(t, "Wi-Fi", row.VerifiedVia())
	require.NotNil(t, row.Signed)
	assert.False(t, *row.Signed)

	for i := 1; i < DaysPerWeek; i++ {
		assert.False(t, sheet.Days[i].Worked)
		assert.Zero(t, sheet.Days[i].Hours)
		assert.Nil(t, sheet.Days[i].Signed)
		assert.Equal(t, "—", sheet.Days[i].VerifiedVia())
	}
	assert.InDelta(t, 8.0, sheet.TotalHours, 1e-9)
}

func TestBuildTimesheet_NightShiftAttributedToClockInDay(t *testing.T) {
	day := weekStart
	events := []*Event{
		acceptedEvent(t, vo.PunchClockIn, day.Add(18*time.Hour), vo.MethodLocation),
		acceptedEvent(t, vo.PunchClockOut, day.Add(26*time.Hour+30*time.Minute), vo.MethodLocation),
	}

	sheet := BuildTimesheet(events, weekStart, time.UTC, DefaultLunchDeduction)

	row := sheet.Days[0]
	assert.True(t, row.Worked)
	assert.Equal(t, vo.ShiftNight, row.Shift)
	assert.InDelta(t, 8.0, row.Hours, 1e-9)

	// Nothing lands on Tuesday even though the clock-out fell there.
	assert.False(t, sheet.Days[1].Worked)
}

func TestBuildTimesheet_LunchDeductedOncePerDay(t *testing.T) {
	day := weekStart
	// Two separate completed segments on one day: 4h and 4h.
	events := []*Event{
		acceptedEvent(t, vo.PunchClockIn, day.Add(8*time.Hour), vo.MethodWifi),
		acceptedEvent(t, vo.PunchClockOut, day.Add(12*time.Hour), vo.MethodWifi),
		acceptedEvent(t, vo.PunchClockIn, day.Add(13*time.Hour), vo.MethodLocation),
		acceptedEvent(t, vo.PunchClockOut, day.Add(17*time.Hour), vo.MethodLocation),
	}

	sheet := BuildTimesheet(events, weekStart, time.UTC, DefaultLunchDeduction)

	row := sheet.Days[0]
	// 8h worked minus a single 30-minute lunch, not one per segment.
	assert.InDelta(t, 7.5, row.Hours, 1e-9)
	assert.Equal(t, "Wi-Fi → GPS", row.VerifiedVia())

	in := day.Add(8 * time.Hour)
	out := day.Add(17 * time.Hour)
	assert.Equal(t, in, *row.FirstIn)
	assert.Equal(t, out, *row.LastOut)
}

func TestBuildTimesheet_ShortShiftNeverGoesNegative(t *testing.T) {
	day := weekStart
	events := []*Event{
		acceptedEvent(t, vo.PunchClockIn, day.Add(8*time.Hour), vo.MethodWifi),
		acceptedEvent(t, vo.PunchClockOut, day.Add(8*time.Hour+10*time.Minute), vo.MethodWifi),
	}

	sheet := BuildTimesheet(events, weekStart, time.UTC, DefaultLunchDeduction)
	assert.Zero(t, sheet.Days[0].Hours)
}

func TestBuildTimesheet_EightRowContract(t *testing.T) {
	sheet := BuildTimesheet(nil, weekStart, time.UTC, DefaultLunchDeduction)

	assert.Len(t, sheet.Days, DaysPerWeek)
	assert.Zero(t, sheet.TotalHours)
	for i, row := range sheet.Days {
		expected := weekStart.AddDate(0, 0, i)
		assert.Equal(t, expected, row.Date, "day %d", i)
	}
}

func TestBuildTimesheet_TotalsMatchDaySum(t *testing.T) {
	var events []*Event
	for i := 0; i < 5; i++ {
		day := weekStart.AddDate(0, 0, i)
		events = append(events,
			acceptedEvent(t, vo.PunchClockIn, day.Add(8*time.Hour), vo.MethodWifi),
			acceptedEvent(t, vo.PunchClockOut, day.Add(16*time.Hour+30*time.Minute), vo.MethodWifi),
		)
	}

	sheet := BuildTimesheet(events, weekStart, time.UTC, DefaultLunchDeduction)

	var sum float64
	for _, row := range sheet.Days {
		sum += row.Hours
	}
	assert.InDelta(t, sum, sheet.TotalHours, 1e-9)
	assert.InDelta(t, 40.0, sheet.TotalHours, 1e-9)
}

func TestBuildTimesheet_AdjacentWeekSegmentsExcluded(t *testing.T) {
	// Sunday before the week, captured by the widened query window.
	prior := weekStart.Add(-10 * time.Hour)
	events := []*Event{
		acceptedEvent(t, vo.PunchClockIn, prior, vo.MethodWifi),
		acceptedEvent(t, vo.PunchClockOut, prior.Add(8*time.Hour), vo.MethodWifi),
	}

	sheet := BuildTimesheet(events, weekStart, time.UTC, DefaultLunchDeduction)
	for _, row := range sheet.Days {
		assert.False(t, row.Worked)
	}
}
