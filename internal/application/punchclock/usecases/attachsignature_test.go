package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/application/punchclock/dto"
	"timeclock/internal/domain/attendance"
	vo "timeclock/internal/domain/attendance/valueobjects"
	"timeclock/internal/shared/errors"
)

func signableEvent(t *testing.T) *attendance.Event {
	e, err := attendance.NewAcceptedEvent(attendance.EventAttrs{
		ID:              "evt_out",
		UserID:          "usr_1",
		Type:            vo.PunchClockOut,
		ServerTimestamp: testNow.Add(-time.Hour),
	})
	require.NoError(t, err)
	return e
}

func signRequest() dto.AttachSignatureRequest {
	return dto.AttachSignatureRequest{
		UserID:         "usr_1",
		EventID:        "evt_out",
		SignatureImage: "data:image/png;base64,abc",
	}
}

func TestAttachSignature_Success(t *testing.T) {
	var attachedID string
	eventRepo := &mockEventRepository{
		FindByIDFunc: func(_ context.Context, id string) (*attendance.Event, error) {
			return signableEvent(t), nil
		},
		AttachSignatureFunc: func(_ context.Context, eventID, image string, signedAt time.Time) (int64, error) {
			attachedID = eventID
			assert.Equal(t, "data:image/png;base64,abc", image)
			assert.True(t, signedAt.Equal(testNow))
			return 1, nil
		},
	}
	uc := NewAttachSignatureUseCase(eventRepo, testLogger, fixedNow(testNow))

	resp, err := uc.Execute(context.Background(), signRequest())
	require.NoError(t, err)

	assert.Equal(t, "evt_out", attachedID)
	assert.True(t, resp.SignedAt.Equal(testNow))
}

func TestAttachSignature_MissingImage(t *testing.T) {
	uc := NewAttachSignatureUseCase(&mockEventRepository{}, testLogger, fixedNow(testNow))

	req := signRequest()
	req.SignatureImage = ""
	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestAttachSignature_EventNotFound(t *testing.T) {
	uc := NewAttachSignatureUseCase(&mockEventRepository{}, testLogger, fixedNow(testNow))

	_, err := uc.Execute(context.Background(), signRequest())
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestAttachSignature_WrongUser(t *testing.T) {
	eventRepo := &mockEventRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*attendance.Event, error) {
			return signableEvent(t), nil
		},
	}
	uc := NewAttachSignatureUseCase(eventRepo, testLogger, fixedNow(testNow))

	req := signRequest()
	req.UserID = "usr_2"
	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)
}

func TestAttachSignature_NotAClockOut(t *testing.T) {
	eventRepo := &mockEventRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*attendance.Event, error) {
			return acceptedHistoryEvent(t, vo.PunchClockIn, testNow.Add(-time.Hour)), nil
		},
	}
	uc := NewAttachSignatureUseCase(eventRepo, testLogger, fixedNow(testNow))

	req := signRequest()
	req.EventID = "evt_hist_CLOCK_IN"
	req.UserID = "usr_1"
	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestAttachSignature_AlreadySigned(t *testing.T) {
	signed := signableEvent(t)
	at := testNow.Add(-30 * time.Minute)
	signed.SignedAt = &at
	signed.SignatureImage = "data:image/png;base64,first"

	eventRepo := &mockEventRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*attendance.Event, error) {
			return signed, nil
		},
	}
	uc := NewAttachSignatureUseCase(eventRepo, testLogger, fixedNow(testNow))

	_, err := uc.Execute(context.Background(), signRequest())
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestAttachSignature_LostRace(t *testing.T) {
	eventRepo := &mockEventRepository{
		FindByIDFunc: func(_ context.Context, _ string) (*attendance.Event, error) {
			return signableEvent(t), nil
		},
		AttachSignatureFunc: func(_ context.Context, _, _ string, _ time.Time) (int64, error) {
			return 0, nil
		},
	}
	uc := NewAttachSignatureUseCase(eventRepo, testLogger, fixedNow(testNow))

	_, err := uc.Execute(context.Background(), signRequest())
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}
