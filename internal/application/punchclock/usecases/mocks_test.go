package usecases

import (
	"context"
	"time"

	"timeclock/internal/application/punchclock/services"
	"timeclock/internal/domain/attendance"
	vo "timeclock/internal/domain/attendance/valueobjects"
	"timeclock/internal/domain/contractor"
	"timeclock/internal/domain/punchtoken"
	"timeclock/internal/infrastructure/ratelimit"
	"timeclock/internal/shared/logger"
)

var testLogger = logger.NewLogger()

type mockContractorRepository struct {
	FindByUserIDFunc func(ctx context.Context, userID string) (*contractor.Profile, error)
}

func (m *mockContractorRepository) FindByUserID(ctx context.Context, userID string) (*contractor.Profile, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return &contractor.Profile{
		UserID:         userID,
		Agency:         "acme-staffing",
		EmploymentType: contractor.EmploymentContractor,
		IsActive:       true,
	}, nil
}

type mockEventRepository struct {
	created []*attendance.Event

	CreateFunc                    func(ctx context.Context, event *attendance.Event) error
	FindByIDFunc                  func(ctx context.Context, id string) (*attendance.Event, error)
	ListAcceptedByUserSinceFunc   func(ctx context.Context, userID string, since time.Time) ([]*attendance.Event, error)
	ListAcceptedInWindowFunc      func(ctx context.Context, userID string, from, to time.Time, siteID string) ([]*attendance.Event, error)
	HasAcceptedIdempotencyKeyFunc func(ctx context.Context, key string, since time.Time) (bool, error)
	ExpireIdempotencyScopesFunc   func(ctx context.Context, before time.Time) error
	AttachSignatureFunc           func(ctx context.Context, eventID, signatureImage string, signedAt time.Time) (int64, error)
	ListDriftFlaggedFunc          func(ctx context.Context, from, to time.Time, page, pageSize int) ([]*attendance.Event, int64, error)
	ListFunc                      func(ctx context.Context, filter attendance.EventFilter) ([]*attendance.Event, int64, error)
}

func (m *mockEventRepository) Create(ctx context.Context, event *attendance.Event) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, event); err != nil {
			return err
		}
	}
	m.created = append(m.created, event)
	return nil
}

func (m *mockEventRepository) FindByID(ctx context.Context, id string) (*attendance.Event, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockEventRepository) ListAcceptedByUserSince(ctx context.Context, userID string, since time.Time) ([]*attendance.Event, error) {
	if m.ListAcceptedByUserSinceFunc != nil {
		return m.ListAcceptedByUserSinceFunc(ctx, userID, since)
	}
	return nil, nil
}

func (m *mockEventRepository) ListAcceptedInWindow(ctx context.Context, userID string, from, to time.Time, siteID string) ([]*attendance.Event, error) {
	if m.ListAcceptedInWindowFunc != nil {
		return m.ListAcceptedInWindowFunc(ctx, userID, from, to, siteID)
	}
	return nil, nil
}

func (m *mockEventRepository) HasAcceptedIdempotencyKey(ctx context.Context, key string, since time.Time) (bool, error) {
	if m.HasAcceptedIdempotencyKeyFunc != nil {
		return m.HasAcceptedIdempotencyKeyFunc(ctx, key, since)
	}
	return false, nil
}

func (m *mockEventRepository) ExpireIdempotencyScopes(ctx context.Context, before time.Time) error {
	if m.ExpireIdempotencyScopesFunc != nil {
		return m.ExpireIdempotencyScopesFunc(ctx, before)
	}
	return nil
}

func (m *mockEventRepository) AttachSignature(ctx context.Context, eventID, signatureImage string, signedAt time.Time) (int64, error) {
	if m.AttachSignatureFunc != nil {
		return m.AttachSignatureFunc(ctx, eventID, signatureImage, signedAt)
	}
	return 1, nil
}

func (m *mockEventRepository) ListDriftFlagged(ctx context.Context, from, to time.Time, page, pageSize int) ([]*attendance.Event, int64, error) {
	if m.ListDriftFlaggedFunc != nil {
		return m.ListDriftFlaggedFunc(ctx, from, to, page, pageSize)
	}
	return nil, 0, nil
}

func (m *mockEventRepository) List(ctx context.Context, filter attendance.EventFilter) ([]*attendance.Event, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

// lastCreated returns the most recent audit row written through the mock.
func (m *mockEventRepository) lastCreated() *attendance.Event {
	if len(m.created) == 0 {
		return nil
	}
	return m.created[len(m.created)-1]
}

type mockTokenRepository struct {
	CreateFunc        func(ctx context.Context, token *punchtoken.Token) error
	FindByHashFunc    func(ctx context.Context, tokenHash string) (*punchtoken.Token, error)
	RevokeActiveFunc  func(ctx context.Context, userID, deviceID string, now time.Time) error
	StampLastSeenFunc func(ctx context.Context, tokenID string, now time.Time) error
}

func (m *mockTokenRepository) Create(ctx context.Context, token *punchtoken.Token) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *mockTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*punchtoken.Token, error) {
	if m.FindByHashFunc != nil {
		return m.FindByHashFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *mockTokenRepository) RevokeActive(ctx context.Context, userID, deviceID string, now time.Time) error {
	if m.RevokeActiveFunc != nil {
		return m.RevokeActiveFunc(ctx, userID, deviceID, now)
	}
	return nil
}

func (m *mockTokenRepository) StampLastSeen(ctx context.Context, tokenID string, now time.Time) error {
	if m.StampLastSeenFunc != nil {
		return m.StampLastSeenFunc(ctx, tokenID, now)
	}
	return nil
}

type mockTokenCrypto struct {
	GenerateFunc func() (string, string, error)
}

func (m *mockTokenCrypto) Generate() (string, string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "pt_plain", "hash:pt_plain", nil
}

func (m *mockTokenCrypto) HashToken(plain string) string {
	return "hash:" + plain
}

func (m *mockTokenCrypto) HashUserAgent(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	return "ua:" + userAgent
}

type mockVerifier struct {
	VerifyFunc func(userID, clientIP string, coord *vo.Coordinate) services.Verdict
}

func (m *mockVerifier) Verify(userID, clientIP string, coord *vo.Coordinate) services.Verdict {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(userID, clientIP, coord)
	}
	return services.Verdict{
		Passed:     true,
		WifiStatus: vo.WifiPass,
		Method:     vo.MethodWifi,
	}
}

type mockLimiter struct {
	HitFunc func(ctx context.Context, key string) (ratelimit.Result, error)
}

func (m *mockLimiter) Hit(ctx context.Context, key string) (ratelimit.Result, error) {
	if m.HitFunc != nil {
		return m.HitFunc(ctx, key)
	}
	return ratelimit.Result{Allowed: true}, nil
}

func testPolicy() ClockPolicy {
	return ClockPolicy{
		TokenTTL:          12 * time.Hour,
		LunchDeduction:    30 * time.Minute,
		IdempotencyWindow: 24 * time.Hour,
		StateReplayWindow: 48 * time.Hour,
		WeekStart:         time.Monday,
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
