package mappers

import (
	"timeclock/internal/domain/contractor"
	"timeclock/internal/infrastructure/persistence/models"
)

// ContractorProfileMapper handles the conversion between eligibility
// profiles and persistence models.
type ContractorProfileMapper interface {
	ToModel(entity *contractor.Profile) *models.ContractorProfileModel
	ToDomain(model *models.ContractorProfileModel) *contractor.Profile
}

type ContractorProfileMapperImpl struct{}

// NewContractorProfileMapper creates a new ContractorProfileMapper.
func NewContractorProfileMapper() ContractorProfileMapper {
	return &ContractorProfileMapperImpl{}
}

func (m *ContractorProfileMapperImpl) ToModel(entity *contractor.Profile) *models.ContractorProfileModel {
	if entity == nil {
		return nil
	}
	return &models.ContractorProfileModel{
		UserID:         entity.UserID,
		Agency:         entity.Agency,
		EmploymentType: entity.EmploymentType.String(),
		IsActive:       entity.IsActive,
	}
}

func (m *ContractorProfileMapperImpl) ToDomain(model *models.ContractorProfileModel) *contractor.Profile {
	if model == nil {
		return nil
	}
	return &contractor.Profile{
		UserID:         model.UserID,
		Agency:         model.Agency,
		EmploymentType: contractor.EmploymentType(model.EmploymentType),
		IsActive:       model.IsActive,
	}
}
