package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"timeclock/internal/domain/punchtoken"
	"timeclock/internal/infrastructure/persistence/mappers"
	"timeclock/internal/infrastructure/persistence/models"
	"timeclock/internal/shared/db"
)

type PunchTokenRepository struct {
	db     *gorm.DB
	mapper mappers.PunchTokenMapper
}

func NewPunchTokenRepository(gdb *gorm.DB) punchtoken.Repository {
	return &PunchTokenRepository{
		db:     gdb,
		mapper: mappers.NewPunchTokenMapper(),
	}
}

func (r *PunchTokenRepository) Create(ctx context.Context, token *punchtoken.Token) error {
	model := r.mapper.ToModel(token)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create punch token: %w", err)
	}
	return nil
}

func (r *PunchTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*punchtoken.Token, error) {
	var model models.PunchTokenModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find punch token by hash: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *PunchTokenRepository) RevokeActive(ctx context.Context, userID, deviceID string, now time.Time) error {
	// Conditional on revoked_at IS NULL so concurrent issuance cannot leave
	// two live tokens for the pair.
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).Model(&models.PunchTokenModel{}).
		Where("user_id = ? AND device_id = ? AND revoked_at IS NULL", userID, deviceID).
		Update("revoked_at", now).Error
	if err != nil {
		return fmt.Errorf("failed to revoke active punch tokens: %w", err)
	}
	return nil
}

func (r *PunchTokenRepository) StampLastSeen(ctx context.Context, tokenID string, now time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).Model(&models.PunchTokenModel{}).
		Where("id = ?", tokenID).
		Update("last_seen_at", now).Error
	if err != nil {
		return fmt.Errorf("failed to stamp punch token last seen: %w", err)
	}
	return nil
}
