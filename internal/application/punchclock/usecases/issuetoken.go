package usecases

import (
	"context"
	"fmt"
	"time"

	"timeclock/internal/application/punchclock/dto"
	"timeclock/internal/domain/contractor"
	"timeclock/internal/domain/punchtoken"
	"timeclock/internal/shared/errors"
	"timeclock/internal/shared/id"
	"timeclock/internal/shared/logger"
)

// IssueTokenUseCase mints a punch token for a (user, device) pair. Any
// previously active token for the pair is revoked first, so at most one
// token is live per device.
type IssueTokenUseCase struct {
	contractorRepo contractor.Repository
	tokenRepo      punchtoken.Repository
	crypto         TokenCrypto
	tokenTTL       time.Duration
	logger         logger.Interface
	now            func() time.Time
}

func NewIssueTokenUseCase(
	contractorRepo contractor.Repository,
	tokenRepo punchtoken.Repository,
	crypto TokenCrypto,
	tokenTTL time.Duration,
	logger logger.Interface,
	now func() time.Time,
) *IssueTokenUseCase {
	return &IssueTokenUseCase{
		contractorRepo: contractorRepo,
		tokenRepo:      tokenRepo,
		crypto:         crypto,
		tokenTTL:       tokenTTL,
		logger:         logger,
		now:            now,
	}
}

func (uc *IssueTokenUseCase) Execute(ctx context.Context, request dto.IssueTokenRequest) (*dto.IssueTokenResponse, error) {
	if request.DeviceID == "" {
		return nil, errors.NewValidationError("device id is required")
	}

	profile, err := uc.contractorRepo.FindByUserID(ctx, request.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load contractor profile", "user_id", request.UserID, "error", err)
		return nil, fmt.Errorf("failed to load contractor profile: %w", err)
	}
	if !profile.Eligible() {
		uc.logger.Warnw("token requested by ineligible user", "user_id", request.UserID)
		return nil, errors.NewForbiddenError("user is not eligible to clock in")
	}

	plain, hash, err := uc.crypto.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate punch token: %w", err)
	}

	tokenID, err := id.GenerateWithPrefix(id.PrefixPunchToken, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := uc.now()
	token, err := punchtoken.NewToken(
		tokenID,
		request.UserID,
		request.DeviceID,
		uc.crypto.HashUserAgent(request.UserAgent),
		hash,
		now,
		uc.tokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build punch token: %w", err)
	}

	if err := uc.tokenRepo.RevokeActive(ctx, request.UserID, request.DeviceID, now); err != nil {
		return nil, fmt.Errorf("failed to revoke previous tokens: %w", err)
	}
	if err := uc.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to save punch token: %w", err)
	}

	uc.logger.Infow("punch token issued",
		"user_id", request.UserID,
		"token_id", token.ID,
		"expires_at", token.ExpiresAt)

	return &dto.IssueTokenResponse{
		Token:     plain,
		ExpiresAt: token.ExpiresAt,
	}, nil
}
