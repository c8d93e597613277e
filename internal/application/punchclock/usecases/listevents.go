package usecases

import (
	"context"
	"fmt"

	"timeclock/internal/application/punchclock/dto"
	"timeclock/internal/domain/attendance"
	"timeclock/internal/shared/logger"
	"timeclock/internal/shared/mapper"
)

// ListEventsUseCase is the agency-facing audit listing, blocked rows
// included.
type ListEventsUseCase struct {
	eventRepo attendance.Repository
	logger    logger.Interface
}

func NewListEventsUseCase(eventRepo attendance.Repository, logger logger.Interface) *ListEventsUseCase {
	return &ListEventsUseCase{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (uc *ListEventsUseCase) Execute(ctx context.Context, request dto.ListEventsRequest) ([]*dto.PunchEventResponse, int64, error) {
	events, total, err := uc.eventRepo.List(ctx, attendance.EventFilter{
		UserID:   request.UserID,
		SiteID:   request.SiteID,
		Agency:   request.Agency,
		Page:     request.Page,
		PageSize: request.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list events", "error", err)
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}

	return mapper.MapSlicePtr(events, toEventResponse), total, nil
}
