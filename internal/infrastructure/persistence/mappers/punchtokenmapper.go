package mappers

import (
	"timeclock/internal/domain/punchtoken"
	"timeclock/internal/infrastructure/persistence/models"
)

// PunchTokenMapper handles the conversion between punch tokens and
// persistence models.
type PunchTokenMapper interface {
	ToModel(entity *punchtoken.Token) *models.PunchTokenModel
	ToDomain(model *models.PunchTokenModel) *punchtoken.Token
}

type PunchTokenMapperImpl struct{}

// NewPunchTokenMapper creates a new PunchTokenMapper.
func NewPunchTokenMapper() PunchTokenMapper {
	return &PunchTokenMapperImpl{}
}

func (m *PunchTokenMapperImpl) ToModel(entity *punchtoken.Token) *models.PunchTokenModel {
	if entity == nil {
		return nil
	}
	return &models.PunchTokenModel{
		ID:            entity.ID,
		UserID:        entity.UserID,
		DeviceID:      entity.DeviceID,
		UserAgentHash: entity.UserAgentHash,
		TokenHash:     entity.TokenHash,
		IssuedAt:      entity.IssuedAt,
		ExpiresAt:     entity.ExpiresAt,
		RevokedAt:     entity.RevokedAt,
		LastSeenAt:    entity.LastSeenAt,
	}
}

func (m *PunchTokenMapperImpl) ToDomain(model *models.PunchTokenModel) *punchtoken.Token {
	if model == nil {
		return nil
	}
	return &punchtoken.Token{
		ID:            model.ID,
		UserID:        model.UserID,
		DeviceID:      model.DeviceID,
		UserAgentHash: model.UserAgentHash,
		TokenHash:     model.TokenHash,
		IssuedAt:      model.IssuedAt,
		ExpiresAt:     model.ExpiresAt,
		RevokedAt:     model.RevokedAt,
		LastSeenAt:    model.LastSeenAt,
	}
}
