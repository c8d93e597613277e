package usecases

import (
	"context"
	"fmt"
	"time"

	"timeclock/internal/application/punchclock/dto"
	"timeclock/internal/domain/attendance"
	"timeclock/internal/shared/biztime"
	"timeclock/internal/shared/errors"
	"timeclock/internal/shared/logger"
	"timeclock/internal/shared/mapper"
)

// ListDriftExceptionsUseCase reports events whose client clock disagreed
// with the server by more than the flag threshold. Drift never blocks a
// punch, so this report is the only place the flag surfaces.
type ListDriftExceptionsUseCase struct {
	eventRepo attendance.Repository
	logger    logger.Interface
	now       func() time.Time
}

func NewListDriftExceptionsUseCase(
	eventRepo attendance.Repository,
	logger logger.Interface,
	now func() time.Time,
) *ListDriftExceptionsUseCase {
	return &ListDriftExceptionsUseCase{
		eventRepo: eventRepo,
		logger:    logger,
		now:       now,
	}
}

func (uc *ListDriftExceptionsUseCase) Execute(ctx context.Context, request dto.ListDriftExceptionsRequest) ([]*dto.PunchEventResponse, int64, error) {
	now := uc.now()
	from := biztime.StartOfDayUTC(now.AddDate(0, 0, -7))
	to := now

	var err error
	if request.From != "" {
		if from, err = biztime.ParseDateInBizTimezone(request.From); err != nil {
			return nil, 0, errors.NewValidationError("invalid from date", err.Error())
		}
	}
	if request.To != "" {
		parsed, err := biztime.ParseDateInBizTimezone(request.To)
		if err != nil {
			return nil, 0, errors.NewValidationError("invalid to date", err.Error())
		}
		to = biztime.AddDays(parsed, 1)
	}

	page := request.Page
	if page < 1 {
		page = 1
	}
	pageSize := request.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	events, total, err := uc.eventRepo.ListDriftFlagged(ctx, from, to, page, pageSize)
	if err != nil {
		uc.logger.Errorw("failed to list drift exceptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list drift exceptions: %w", err)
	}

	return mapper.MapSlicePtr(events, toEventResponse), total, nil
}
