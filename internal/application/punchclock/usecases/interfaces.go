package usecases

import (
	"time"

	"timeclock/internal/application/punchclock/services"
	"timeclock/internal/domain/attendance"
	vo "timeclock/internal/domain/attendance/valueobjects"
	"timeclock/internal/shared/config"
)

// TokenCrypto generates punch tokens and the digests stored for them.
type TokenCrypto interface {
	Generate() (plainToken string, tokenHash string, err error)
	HashToken(plainToken string) string
	HashUserAgent(userAgent string) string
}

// PunchVerifier evaluates the presence channels for one attempt.
type PunchVerifier interface {
	Verify(userID, clientIP string, coord *vo.Coordinate) services.Verdict
}

// ClockPolicy carries the punch-policy durations resolved from config.
type ClockPolicy struct {
	TokenTTL           time.Duration
	LunchDeduction     time.Duration
	IdempotencyWindow  time.Duration
	StateReplayWindow  time.Duration
	DriftFlagThreshold time.Duration
	WeekStart          time.Weekday
}

// PolicyFromConfig resolves the configured hour/minute knobs into
// durations, falling back to the documented defaults for zero values.
func PolicyFromConfig(cfg config.ClockConfig, weekStart time.Weekday) ClockPolicy {
	p := ClockPolicy{
		TokenTTL:           time.Duration(cfg.TokenTTLHours) * time.Hour,
		LunchDeduction:     time.Duration(cfg.LunchMinutes) * time.Minute,
		IdempotencyWindow:  time.Duration(cfg.IdempotencyHours) * time.Hour,
		StateReplayWindow:  time.Duration(cfg.StateReplayHours) * time.Hour,
		DriftFlagThreshold: time.Duration(cfg.DriftFlagMinutes) * time.Minute,
		WeekStart:          weekStart,
	}
	if p.TokenTTL <= 0 {
		p.TokenTTL = 12 * time.Hour
	}
	if p.LunchDeduction <= 0 {
		p.LunchDeduction = 30 * time.Minute
	}
	if p.IdempotencyWindow <= 0 {
		p.IdempotencyWindow = 24 * time.Hour
	}
	if p.StateReplayWindow <= 0 {
		p.StateReplayWindow = 48 * time.Hour
	}
	if p.DriftFlagThreshold <= 0 {
		p.DriftFlagThreshold = attendance.DriftFlagThreshold
	}
	return p
}
