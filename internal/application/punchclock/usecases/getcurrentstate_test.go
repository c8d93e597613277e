package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/domain/attendance"
	vo "timeclock/internal/domain/attendance/valueobjects"
)

func TestGetCurrentState_NoHistory(t *testing.T) {
	uc := NewGetCurrentStateUseCase(&mockEventRepository{}, testPolicy(), testLogger, fixedNow(testNow))

	resp, err := uc.Execute(context.Background(), "usr_1")
	require.NoError(t, err)

	assert.Equal(t, "OUT", resp.State)
	assert.Empty(t, resp.LastPunch)
	assert.Nil(t, resp.LastPunchAt)
}

func TestGetCurrentState_ClockedIn(t *testing.T) {
	inAt := testNow.Add(-2 * time.Hour)
	eventRepo := &mockEventRepository{
		ListAcceptedByUserSinceFunc: func(_ context.Context, _ string, since time.Time) ([]*attendance.Event, error) {
			assert.True(t, since.Equal(testNow.Add(-48*time.Hour)), "replay window follows policy")
			return []*attendance.Event{acceptedHistoryEvent(t, vo.PunchClockIn, inAt)}, nil
		},
	}
	uc := NewGetCurrentStateUseCase(eventRepo, testPolicy(), testLogger, fixedNow(testNow))

	resp, err := uc.Execute(context.Background(), "usr_1")
	require.NoError(t, err)

	assert.Equal(t, "IN", resp.State)
	assert.Equal(t, "CLOCK_IN", resp.LastPunch)
	require.NotNil(t, resp.LastPunchAt)
	assert.True(t, resp.LastPunchAt.Equal(inAt))
}

func TestGetCurrentState_LunchAutoReturn(t *testing.T) {
	eventRepo := &mockEventRepository{
		ListAcceptedByUserSinceFunc: func(_ context.Context, _ string, _ time.Time) ([]*attendance.Event, error) {
			return []*attendance.Event{
				acceptedHistoryEvent(t, vo.PunchClockIn, testNow.Add(-4*time.Hour)),
				acceptedHistoryEvent(t, vo.PunchLunchStart, testNow.Add(-45*time.Minute)),
			}, nil
		},
	}
	uc := NewGetCurrentStateUseCase(eventRepo, testPolicy(), testLogger, fixedNow(testNow))

	resp, err := uc.Execute(context.Background(), "usr_1")
	require.NoError(t, err)

	assert.Equal(t, "IN", resp.State, "lunch older than the auto-return window reads as IN")
	assert.Equal(t, "LUNCH_START", resp.LastPunch)
}

func TestGetCurrentState_OnLunch(t *testing.T) {
	eventRepo := &mockEventRepository{
		ListAcceptedByUserSinceFunc: func(_ context.Context, _ string, _ time.Time) ([]*attendance.Event, error) {
			return []*attendance.Event{
				acceptedHistoryEvent(t, vo.PunchClockIn, testNow.Add(-4*time.Hour)),
				acceptedHistoryEvent(t, vo.PunchLunchStart, testNow.Add(-10*time.Minute)),
			}, nil
		},
	}
	uc := NewGetCurrentStateUseCase(eventRepo, testPolicy(), testLogger, fixedNow(testNow))

	resp, err := uc.Execute(context.Background(), "usr_1")
	require.NoError(t, err)
	assert.Equal(t, "ON_LUNCH", resp.State)
}
