package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"timeclock/internal/domain/attendance"
	"timeclock/internal/infrastructure/persistence/mappers"
	"timeclock/internal/infrastructure/persistence/models"
	"timeclock/internal/shared/db"
	"timeclock/internal/shared/errors"
	"timeclock/internal/shared/query"
)

type AttendanceEventRepository struct {
	db     *gorm.DB
	mapper mappers.AttendanceEventMapper
}

func NewAttendanceEventRepository(gdb *gorm.DB) attendance.Repository {
	return &AttendanceEventRepository{
		db:     gdb,
		mapper: mappers.NewAttendanceEventMapper(),
	}
}

func (r *AttendanceEventRepository) Create(ctx context.Context, event *attendance.Event) error {
	model := r.mapper.ToModel(event)
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return attendance.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("failed to create attendance event: %w", err)
	}
	return nil
}

func (r *AttendanceEventRepository) FindByID(ctx context.Context, id string) (*attendance.Event, error) {
	var model models.AttendanceEventModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance event by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *AttendanceEventRepository) ListAcceptedByUserSince(ctx context.Context, userID string, since time.Time) ([]*attendance.Event, error) {
	var eventModels []models.AttendanceEventModel
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).
		Where("user_id = ? AND status = ? AND server_timestamp >= ?", userID, "OK", since).
		Order("server_timestamp ASC").
		Find(&eventModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted events by user: %w", err)
	}
	return r.toDomainSlice(eventModels), nil
}

func (r *AttendanceEventRepository) ListAcceptedInWindow(ctx context.Context, userID string, from, to time.Time, siteID string) ([]*attendance.Event, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.WithContext(ctx).
		Where("user_id = ? AND status = ? AND server_timestamp >= ? AND server_timestamp < ?", userID, "OK", from, to)
	if siteID != "" {
		q = q.Where("site_id = ?", siteID)
	}

	var eventModels []models.AttendanceEventModel
	if err := q.Order("server_timestamp ASC").Find(&eventModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list accepted events in window: %w", err)
	}
	return r.toDomainSlice(eventModels), nil
}

func (r *AttendanceEventRepository) HasAcceptedIdempotencyKey(ctx context.Context, key string, since time.Time) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).Model(&models.AttendanceEventModel{}).
		Where("idempotency_key = ? AND status = ? AND server_timestamp >= ?", key, "OK", since).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	return count > 0, nil
}

func (r *AttendanceEventRepository) ExpireIdempotencyScopes(ctx context.Context, before time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)
	err := tx.WithContext(ctx).Model(&models.AttendanceEventModel{}).
		Where("idempotency_scope IS NOT NULL AND server_timestamp < ?", before).
		Update("idempotency_scope", nil).Error
	if err != nil {
		return fmt.Errorf("failed to expire idempotency scopes: %w", err)
	}
	return nil
}

func (r *AttendanceEventRepository) AttachSignature(ctx context.Context, eventID, signatureImage string, signedAt time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.WithContext(ctx).Model(&models.AttendanceEventModel{}).
		Where("id = ? AND status = ? AND type = ? AND signed_at IS NULL", eventID, "OK", "CLOCK_OUT").
		Updates(map[string]interface{}{
			"signature_image": signatureImage,
			"signed_at":       signedAt,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to attach signature: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *AttendanceEventRepository) ListDriftFlagged(ctx context.Context, from, to time.Time, page, pageSize int) ([]*attendance.Event, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.WithContext(ctx).Model(&models.AttendanceEventModel{}).
		Where("drift_flag = ? AND server_timestamp >= ? AND server_timestamp < ?", true, from, to)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count drift-flagged events: %w", err)
	}

	pager := query.PageFilter{Page: page, PageSize: pageSize}
	var eventModels []models.AttendanceEventModel
	err := q.
		Order("server_timestamp DESC").
		Offset(pager.Offset()).
		Limit(pager.Limit()).
		Find(&eventModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list drift-flagged events: %w", err)
	}
	return r.toDomainSlice(eventModels), total, nil
}

func (r *AttendanceEventRepository) List(ctx context.Context, filter attendance.EventFilter) ([]*attendance.Event, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	q := tx.WithContext(ctx).Model(&models.AttendanceEventModel{})

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.SiteID != "" {
		q = q.Where("site_id = ?", filter.SiteID)
	}
	if filter.Agency != "" {
		q = q.Where("agency = ?", filter.Agency)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance events: %w", err)
	}

	pager := query.PageFilter{Page: filter.Page, PageSize: filter.PageSize}
	var eventModels []models.AttendanceEventModel
	err := q.
		Order("server_timestamp DESC").
		Offset(pager.Offset()).
		Limit(pager.Limit()).
		Find(&eventModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance events: %w", err)
	}
	return r.toDomainSlice(eventModels), total, nil
}

func (r *AttendanceEventRepository) toDomainSlice(eventModels []models.AttendanceEventModel) []*attendance.Event {
	events := make([]*attendance.Event, len(eventModels))
	for i := range eventModels {
		events[i] = r.mapper.ToDomain(&eventModels[i])
	}
	return events
}
