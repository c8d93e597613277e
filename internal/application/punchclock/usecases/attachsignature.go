package usecases

import (
	"context"
	"fmt"
	"time"

	"timeclock/internal/application/punchclock/dto"
	"timeclock/internal/domain/attendance"
	"timeclock/internal/shared/errors"
	"timeclock/internal/shared/logger"
)

// AttachSignatureUseCase binds a captured signature to an accepted
// CLOCK_OUT row. The pair is write-once; everything else on the row stays
// immutable.
type AttachSignatureUseCase struct {
	eventRepo attendance.Repository
	logger    logger.Interface
	now       func() time.Time
}

func NewAttachSignatureUseCase(
	eventRepo attendance.Repository,
	logger logger.Interface,
	now func() time.Time,
) *AttachSignatureUseCase {
	return &AttachSignatureUseCase{
		eventRepo: eventRepo,
		logger:    logger,
		now:       now,
	}
}

func (uc *AttachSignatureUseCase) Execute(ctx context.Context, request dto.AttachSignatureRequest) (*dto.AttachSignatureResponse, error) {
	if request.SignatureImage == "" {
		return nil, errors.NewValidationError("signature image is required")
	}

	event, err := uc.eventRepo.FindByID(ctx, request.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}
	if event == nil {
		return nil, errors.NewNotFoundError("event not found")
	}
	if event.UserID != request.UserID {
		return nil, errors.NewForbiddenError("event belongs to another user")
	}
	if !event.CanAttachSignature() {
		return nil, errors.NewConflictError("event is not signable")
	}

	signedAt := uc.now()
	rows, err := uc.eventRepo.AttachSignature(ctx, request.EventID, request.SignatureImage, signedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to attach signature: %w", err)
	}
	// The conditional update lost a race with another signer.
	if rows == 0 {
		return nil, errors.NewConflictError("event is already signed")
	}

	uc.logger.Infow("signature attached", "event_id", request.EventID, "user_id", request.UserID)

	return &dto.AttachSignatureResponse{
		EventID:  request.EventID,
		SignedAt: signedAt,
	}, nil
}
