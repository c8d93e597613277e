package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"timeclock/internal/domain/contractor"
	"timeclock/internal/infrastructure/persistence/mappers"
	"timeclock/internal/infrastructure/persistence/models"
	"timeclock/internal/shared/db"
)

type ContractorProfileRepository struct {
	db     *gorm.DB
	mapper mappers.ContractorProfileMapper
}

func NewContractorProfileRepository(gdb *gorm.DB) contractor.Repository {
	return &ContractorProfileRepository{
		db:     gdb,
		mapper: mappers.NewContractorProfileMapper(),
	}
}

// FindByUserID returns nil without error when no profile exists; callers
// treat a missing profile as not eligible.
func (r *ContractorProfileRepository) FindByUserID(ctx context.Context, userID string) (*contractor.Profile, error) {
	var model models.ContractorProfileModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find contractor profile: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}
