package usecases

import (
	"context"
	"fmt"
	"time"

	"timeclock/internal/application/punchclock/dto"
	"timeclock/internal/domain/attendance"
	"timeclock/internal/shared/logger"
)

// GetCurrentStateUseCase replays the recent accepted tail of the audit log
// to answer "is this user clocked in right now". State is never cached;
// the log is the only source of truth.
type GetCurrentStateUseCase struct {
	eventRepo attendance.Repository
	policy    ClockPolicy
	logger    logger.Interface
	now       func() time.Time
}

func NewGetCurrentStateUseCase(
	eventRepo attendance.Repository,
	policy ClockPolicy,
	logger logger.Interface,
	now func() time.Time,
) *GetCurrentStateUseCase {
	return &GetCurrentStateUseCase{
		eventRepo: eventRepo,
		policy:    policy,
		logger:    logger,
		now:       now,
	}
}

func (uc *GetCurrentStateUseCase) Execute(ctx context.Context, userID string) (*dto.CurrentStateResponse, error) {
	now := uc.now()
	events, err := uc.eventRepo.ListAcceptedByUserSince(ctx, userID, now.Add(-uc.policy.StateReplayWindow))
	if err != nil {
		uc.logger.Errorw("failed to load punch history", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to load punch history: %w", err)
	}

	response := &dto.CurrentStateResponse{
		State: attendance.EffectiveState(events, now).String(),
	}
	if len(events) > 0 {
		last := events[len(events)-1]
		response.LastPunch = last.Type.String()
		at := last.ServerTimestamp
		response.LastPunchAt = &at
	}
	return response, nil
}
