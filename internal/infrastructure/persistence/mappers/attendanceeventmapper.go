package mappers

import (
	"timeclock/internal/domain/attendance"
	vo "timeclock/internal/domain/attendance/valueobjects"
	"timeclock/internal/infrastructure/persistence/models"
)

// AttendanceEventMapper handles the conversion between attendance events
// and persistence models.
type AttendanceEventMapper interface {
	// ToModel converts a domain entity to a persistence model.
	ToModel(entity *attendance.Event) *models.AttendanceEventModel

	// ToDomain converts a persistence model to a domain entity.
	ToDomain(model *models.AttendanceEventModel) *attendance.Event
}

// AttendanceEventMapperImpl is the concrete implementation of AttendanceEventMapper.
type AttendanceEventMapperImpl struct{}

// NewAttendanceEventMapper creates a new AttendanceEventMapper.
func NewAttendanceEventMapper() AttendanceEventMapper {
	return &AttendanceEventMapperImpl{}
}

// ToModel converts a domain entity to a persistence model. The idempotency
// scope is derived here: only accepted rows with a key occupy the unique
// slot.
func (m *AttendanceEventMapperImpl) ToModel(entity *attendance.Event) *models.AttendanceEventModel {
	if entity == nil {
		return nil
	}

	var scope *string
	if entity.Accepted() && entity.IdempotencyKey != "" {
		key := entity.IdempotencyKey
		scope = &key
	}

	return &models.AttendanceEventModel{
		ID:                      entity.ID,
		UserID:                  entity.UserID,
		SiteID:                  entity.SiteID,
		Agency:                  entity.Agency,
		Type:                    entity.Type.String(),
		Status:                  entity.Status.String(),
		Reason:                  entity.Reason.String(),
		ServerTimestamp:         entity.ServerTimestamp,
		ClientReportedTimestamp: entity.ClientReportedTimestamp,
		DriftMs:                 entity.DriftMs,
		DriftFlag:               entity.DriftFlag,
		GeoLat:                  entity.Geo.Lat,
		GeoLng:                  entity.Geo.Lng,
		GeoAccuracyMeters:       entity.Geo.AccuracyMeters,
		GeoDistanceMeters:       entity.Geo.DistanceMeters,
		GeoInRange:              entity.Geo.InRange,
		WifiStatus:              entity.WifiStatus.String(),
		VerificationMethod:      entity.VerificationMethod.String(),
		DeviceID:                entity.DeviceID,
		IdempotencyKey:          entity.IdempotencyKey,
		IdempotencyScope:        scope,
		IPAddress:               entity.IPAddress,
		PunchTokenID:            entity.PunchTokenID,
		SignedAt:                entity.SignedAt,
		SignatureImage:          entity.SignatureImage,
	}
}

// ToDomain converts a persistence model to a domain entity.
func (m *AttendanceEventMapperImpl) ToDomain(model *models.AttendanceEventModel) *attendance.Event {
	if model == nil {
		return nil
	}
	return &attendance.Event{
		ID:                      model.ID,
		UserID:                  model.UserID,
		SiteID:                  model.SiteID,
		Agency:                  model.Agency,
		Type:                    vo.PunchType(model.Type),
		Status:                  vo.EventStatus(model.Status),
		Reason:                  vo.BlockReason(model.Reason),
		ServerTimestamp:         model.ServerTimestamp,
		ClientReportedTimestamp: model.ClientReportedTimestamp,
		DriftMs:                 model.DriftMs,
		DriftFlag:               model.DriftFlag,
		Geo: attendance.GeoSnapshot{
			Lat:            model.GeoLat,
			Lng:            model.GeoLng,
			AccuracyMeters: model.GeoAccuracyMeters,
			DistanceMeters: model.GeoDistanceMeters,
			InRange:        model.GeoInRange,
		},
		WifiStatus:         vo.WifiStatus(model.WifiStatus),
		VerificationMethod: vo.VerificationMethod(model.VerificationMethod),
		DeviceID:           model.DeviceID,
		IdempotencyKey:     model.IdempotencyKey,
		IPAddress:          model.IPAddress,
		PunchTokenID:       model.PunchTokenID,
		SignedAt:           model.SignedAt,
		SignatureImage:     model.SignatureImage,
	}
}
