package usecases

import (
	"timeclock/internal/application/punchclock/dto"
	"timeclock/internal/domain/attendance"
)

func toEventResponse(e *attendance.Event) *dto.PunchEventResponse {
	if e == nil {
		return nil
	}
	return &dto.PunchEventResponse{
		ID:                 e.ID,
		UserID:             e.UserID,
		SiteID:             e.SiteID,
		Type:               e.Type.String(),
		Status:             e.Status.String(),
		Reason:             e.Reason.String(),
		ServerTimestamp:    e.ServerTimestamp,
		DriftMs:            e.DriftMs,
		DriftFlag:          e.DriftFlag,
		WifiStatus:         e.WifiStatus.String(),
		VerificationMethod: e.VerificationMethod.String(),
		InRange:            e.Geo.InRange,
		DistanceMeters:     e.Geo.DistanceMeters,
		SignedAt:           e.SignedAt,
	}
}
