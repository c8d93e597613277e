package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"timeclock/internal/application/punchclock/dto"
	"timeclock/internal/domain/attendance"
	"timeclock/internal/shared/biztime"
	"timeclock/internal/shared/errors"
	"timeclock/internal/shared/logger"
)

// GetWeeklyRowsUseCase reconstructs the weekly timecard from accepted
// events. The query window is widened by half a day on each side so shifts
// straddling midnight are captured; bucketing by clock-in day inside the
// engine keeps them attributed correctly.
type GetWeeklyRowsUseCase struct {
	eventRepo attendance.Repository
	policy    ClockPolicy
	logger    logger.Interface
	now       func() time.Time
}

func NewGetWeeklyRowsUseCase(
	eventRepo attendance.Repository,
	policy ClockPolicy,
	logger logger.Interface,
	now func() time.Time,
) *GetWeeklyRowsUseCase {
	return &GetWeeklyRowsUseCase{
		eventRepo: eventRepo,
		policy:    policy,
		logger:    logger,
		now:       now,
	}
}

func (uc *GetWeeklyRowsUseCase) Execute(ctx context.Context, request dto.GetWeeklyRowsRequest) (*dto.TimesheetResponse, error) {
	if request.UserID == "" {
		return nil, errors.NewValidationError("user id is required")
	}

	anchor := uc.now()
	if request.WeekOf != "" {
		parsed, err := biztime.ParseDateInBizTimezone(request.WeekOf)
		if err != nil {
			return nil, errors.NewValidationError("invalid week_of date", err.Error())
		}
		anchor = parsed
	}

	weekStart := biztime.StartOfWeekUTC(anchor, uc.policy.WeekStart)
	weekEnd := biztime.AddDays(weekStart, attendance.DaysPerWeek)

	events, err := uc.eventRepo.ListAcceptedInWindow(ctx,
		request.UserID,
		weekStart.Add(-attendance.WindowSlack),
		weekEnd.Add(attendance.WindowSlack),
		request.SiteID,
	)
	if err != nil {
		uc.logger.Errorw("failed to load weekly events", "user_id", request.UserID, "error", err)
		return nil, fmt.Errorf("failed to load weekly events: %w", err)
	}

	sheet := attendance.BuildTimesheet(events, weekStart, biztime.Location(), uc.policy.LunchDeduction)

	response := &dto.TimesheetResponse{
		WeekStart:  biztime.DateKey(sheet.WeekStart),
		Days:       make([]dto.DayRowResponse, 0, attendance.DaysPerWeek),
		TotalHours: roundHours(sheet.TotalHours),
	}
	for i := range sheet.Days {
		day := &sheet.Days[i]
		row := dto.DayRowResponse{
			Date:        biztime.DateKey(day.Date),
			Worked:      day.Worked,
			Hours:       roundHours(day.Hours),
			VerifiedVia: day.VerifiedVia(),
			FirstIn:     day.FirstIn,
			LastOut:     day.LastOut,
			Signed:      day.Signed,
		}
		if day.Worked {
			row.Shift = day.Shift.String()
		}
		response.Days = append(response.Days, row)
	}
	return response, nil
}

// roundHours fixes the wire representation at two decimals.
func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
