package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"timeclock/internal/application/punchclock/dto"
	"timeclock/internal/domain/attendance"
	vo "timeclock/internal/domain/attendance/valueobjects"
	"timeclock/internal/domain/contractor"
	"timeclock/internal/domain/punchtoken"
	"timeclock/internal/infrastructure/ratelimit"
	"timeclock/internal/shared/errors"
	"timeclock/internal/shared/id"
	"timeclock/internal/shared/logger"
)

// SubmitPunchUseCase runs a punch attempt through the gate pipeline.
// Gate order is fixed: eligibility, verification, device binding, rate
// limiting, idempotency, token, sequencing. Every failure past eligibility
// writes exactly one BLOCKED audit row before returning, so the log records
// the attempt even when nothing is accepted.
type SubmitPunchUseCase struct {
	contractorRepo contractor.Repository
	eventRepo      attendance.Repository
	tokenRepo      punchtoken.Repository
	crypto         TokenCrypto
	verifier       PunchVerifier
	userLimiter    ratelimit.Limiter
	ipLimiter      ratelimit.Limiter
	policy         ClockPolicy
	logger         logger.Interface
	now            func() time.Time
}

func NewSubmitPunchUseCase(
	contractorRepo contractor.Repository,
	eventRepo attendance.Repository,
	tokenRepo punchtoken.Repository,
	crypto TokenCrypto,
	verifier PunchVerifier,
	userLimiter ratelimit.Limiter,
	ipLimiter ratelimit.Limiter,
	policy ClockPolicy,
	logger logger.Interface,
	now func() time.Time,
) *SubmitPunchUseCase {
	return &SubmitPunchUseCase{
		contractorRepo: contractorRepo,
		eventRepo:      eventRepo,
		tokenRepo:      tokenRepo,
		crypto:         crypto,
		verifier:       verifier,
		userLimiter:    userLimiter,
		ipLimiter:      ipLimiter,
		policy:         policy,
		logger:         logger,
		now:            now,
	}
}

func (uc *SubmitPunchUseCase) Execute(ctx context.Context, request dto.SubmitPunchRequest) (*dto.SubmitPunchResponse, error) {
	punchType := vo.PunchType(request.Type)
	if !punchType.IsValid() {
		return nil, errors.NewValidationError("invalid punch type", request.Type)
	}
	if request.UserID == "" {
		return nil, errors.NewValidationError("user id is required")
	}

	now := uc.now()

	// Eligibility is checked before anything is audited: an ineligible
	// caller has no place in the punch log.
	profile, err := uc.contractorRepo.FindByUserID(ctx, request.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load contractor profile", "user_id", request.UserID, "error", err)
		return nil, fmt.Errorf("failed to load contractor profile: %w", err)
	}
	if !profile.Eligible() {
		uc.logger.Warnw("punch by ineligible user", "user_id", request.UserID)
		return &dto.SubmitPunchResponse{
			Accepted: false,
			Reason:   vo.ReasonNotEligible.String(),
		}, nil
	}

	verdict := uc.verifier.Verify(request.UserID, request.ClientIP, coordinateFrom(request))

	eventID, err := id.GenerateWithPrefix(id.PrefixEvent, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate event id: %w", err)
	}

	attrs := attendance.EventAttrs{
		ID:                      eventID,
		UserID:                  request.UserID,
		SiteID:                  request.SiteID,
		Agency:                  request.Agency,
		Type:                    punchType,
		ServerTimestamp:         now,
		ClientReportedTimestamp: clientTimestampFrom(request),
		Geo:                     verdict.Geo,
		WifiStatus:              verdict.WifiStatus,
		VerificationMethod:      verdict.Method,
		DeviceID:                request.DeviceID,
		IdempotencyKey:          request.IdempotencyKey,
		IPAddress:               request.ClientIP,
		DriftFlagThreshold:      uc.policy.DriftFlagThreshold,
	}

	if !verdict.Passed {
		return uc.block(ctx, attrs, verdict.FailReason, 0)
	}

	if request.DeviceID == "" {
		return uc.block(ctx, attrs, vo.ReasonMissingDeviceID, 0)
	}

	limit, err := uc.checkRateLimits(ctx, request)
	if err != nil {
		return nil, err
	}
	if !limit.Allowed {
		retryAfter := int(math.Ceil(limit.RetryAfter.Seconds()))
		return uc.block(ctx, attrs, vo.ReasonRateLimited, retryAfter)
	}

	if request.IdempotencyKey == "" {
		return uc.block(ctx, attrs, vo.ReasonMissingIdempotencyKey, 0)
	}
	idemSince := now.Add(-uc.policy.IdempotencyWindow)
	if err := uc.eventRepo.ExpireIdempotencyScopes(ctx, idemSince); err != nil {
		return nil, fmt.Errorf("failed to expire idempotency scopes: %w", err)
	}
	reused, err := uc.eventRepo.HasAcceptedIdempotencyKey(ctx, request.IdempotencyKey, idemSince)
	if err != nil {
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	if reused {
		return uc.block(ctx, attrs, vo.ReasonReusedIdempotencyKey, 0)
	}

	token, err := uc.lookupToken(ctx, request, now)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return uc.block(ctx, attrs, vo.ReasonInvalidPunchToken, 0)
	}
	attrs.PunchTokenID = token.ID

	history, err := uc.eventRepo.ListAcceptedByUserSince(ctx, request.UserID, now.Add(-uc.policy.StateReplayWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to load punch history: %w", err)
	}
	if !attendance.ValidateTransition(history, punchType, now) {
		return uc.block(ctx, attrs, vo.ReasonInvalidState, 0)
	}

	event, err := attendance.NewAcceptedEvent(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to build event: %w", err)
	}
	if err := uc.eventRepo.Create(ctx, event); err != nil {
		// A concurrent retry with the same key won the insert race.
		if err == attendance.ErrDuplicateIdempotencyKey {
			return uc.blockWithFreshID(ctx, attrs, vo.ReasonReusedIdempotencyKey)
		}
		return nil, fmt.Errorf("failed to save event: %w", err)
	}

	if err := uc.tokenRepo.StampLastSeen(ctx, token.ID, now); err != nil {
		uc.logger.Warnw("failed to stamp token last seen", "token_id", token.ID, "error", err)
	}

	uc.logger.Infow("punch accepted",
		"event_id", event.ID,
		"user_id", event.UserID,
		"type", event.Type,
		"method", event.VerificationMethod,
		"drift_flag", event.DriftFlag)

	state := attendance.EffectiveState(append(history, event), now)

	return &dto.SubmitPunchResponse{
		Accepted: true,
		State:    state.String(),
		Event:    toEventResponse(event),
	}, nil
}

func (uc *SubmitPunchUseCase) checkRateLimits(ctx context.Context, request dto.SubmitPunchRequest) (ratelimit.Result, error) {
	userRes, err := uc.userLimiter.Hit(ctx, request.UserID)
	if err != nil {
		return ratelimit.Result{}, fmt.Errorf("failed to check user rate limit: %w", err)
	}
	if uc.ipLimiter == nil || request.ClientIP == "" {
		return userRes, nil
	}
	ipRes, err := uc.ipLimiter.Hit(ctx, request.ClientIP)
	if err != nil {
		return ratelimit.Result{}, fmt.Errorf("failed to check ip rate limit: %w", err)
	}
	return ratelimit.Merge(userRes, ipRes), nil
}

func (uc *SubmitPunchUseCase) lookupToken(ctx context.Context, request dto.SubmitPunchRequest, now time.Time) (*punchtoken.Token, error) {
	if request.PunchToken == "" {
		return nil, nil
	}
	token, err := uc.tokenRepo.FindByHash(ctx, uc.crypto.HashToken(request.PunchToken))
	if err != nil {
		return nil, fmt.Errorf("failed to look up punch token: %w", err)
	}
	if token == nil || !token.Usable(request.UserID, request.DeviceID, uc.crypto.HashUserAgent(request.UserAgent), now) {
		return nil, nil
	}
	return token, nil
}

// block writes the BLOCKED audit row and returns the rejection. An audit
// write failure is logged but never masks the rejection itself.
func (uc *SubmitPunchUseCase) block(ctx context.Context, attrs attendance.EventAttrs, reason vo.BlockReason, retryAfter int) (*dto.SubmitPunchResponse, error) {
	event, err := attendance.NewBlockedEvent(attrs, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to build blocked event: %w", err)
	}
	if err := uc.eventRepo.Create(ctx, event); err != nil {
		uc.logger.Errorw("failed to save blocked event",
			"user_id", attrs.UserID,
			"reason", reason,
			"error", err)
	}

	uc.logger.Infow("punch blocked",
		"event_id", event.ID,
		"user_id", event.UserID,
		"type", event.Type,
		"reason", reason)

	return &dto.SubmitPunchResponse{
		Accepted:          false,
		Reason:            reason.String(),
		RetryAfterSeconds: retryAfter,
		Event:             toEventResponse(event),
	}, nil
}

func (uc *SubmitPunchUseCase) blockWithFreshID(ctx context.Context, attrs attendance.EventAttrs, reason vo.BlockReason) (*dto.SubmitPunchResponse, error) {
	eventID, err := id.GenerateWithPrefix(id.PrefixEvent, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate event id: %w", err)
	}
	attrs.ID = eventID
	return uc.block(ctx, attrs, reason, 0)
}

func coordinateFrom(request dto.SubmitPunchRequest) *vo.Coordinate {
	if request.Lat == nil || request.Lng == nil {
		return nil
	}
	return &vo.Coordinate{
		Lat:            *request.Lat,
		Lng:            *request.Lng,
		AccuracyMeters: request.AccuracyMeters,
	}
}

func clientTimestampFrom(request dto.SubmitPunchRequest) *time.Time {
	if request.ClientTimestampMS == nil {
		return nil
	}
	t := time.UnixMilli(*request.ClientTimestampMS).UTC()
	return &t
}
