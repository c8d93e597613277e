package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock/internal/domain/punchtoken"
)

func newTestToken(t *testing.T, id, userID, deviceID, tokenHash string, now time.Time) *punchtoken.Token {
	tok, err := punchtoken.NewToken(id, userID, deviceID, "", tokenHash, now, punchtoken.DefaultTTL)
	require.NoError(t, err)
	return tok
}

func TestPunchTokenRepository_CreateAndFindByHash(t *testing.T) {
	repo := NewPunchTokenRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	tok := newTestToken(t, "pt_1", "usr_1", "dev-1", "hash-1", now)
	require.NoError(t, repo.Create(ctx, tok))

	found, err := repo.FindByHash(ctx, "hash-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "pt_1", found.ID)
	assert.Equal(t, "usr_1", found.UserID)
	assert.Equal(t, "dev-1", found.DeviceID)
	assert.True(t, found.ExpiresAt.Equal(now.Add(punchtoken.DefaultTTL)))
	assert.Nil(t, found.RevokedAt)
}

func TestPunchTokenRepository_FindByHash_Missing(t *testing.T) {
	repo := NewPunchTokenRepository(setupTestDB(t))

	found, err := repo.FindByHash(context.Background(), "no-such-hash")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPunchTokenRepository_RevokeActive(t *testing.T) {
	repo := NewPunchTokenRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newTestToken(t, "pt_1", "usr_1", "dev-1", "hash-1", now)))
	require.NoError(t, repo.Create(ctx, newTestToken(t, "pt_2", "usr_1", "dev-2", "hash-2", now)))
	require.NoError(t, repo.Create(ctx, newTestToken(t, "pt_3", "usr_2", "dev-1", "hash-3", now)))

	revokedAt := now.Add(time.Hour)
	require.NoError(t, repo.RevokeActive(ctx, "usr_1", "dev-1", revokedAt))

	found, err := repo.FindByHash(ctx, "hash-1")
	require.NoError(t, err)
	require.NotNil(t, found.RevokedAt)
	assert.True(t, found.RevokedAt.Equal(revokedAt))

	// Other device and other user are untouched.
	for _, hash := range []string{"hash-2", "hash-3"} {
		found, err = repo.FindByHash(ctx, hash)
		require.NoError(t, err)
		assert.Nil(t, found.RevokedAt)
	}

	// A second revocation round leaves the original timestamp.
	require.NoError(t, repo.RevokeActive(ctx, "usr_1", "dev-1", revokedAt.Add(time.Hour)))
	found, err = repo.FindByHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.True(t, found.RevokedAt.Equal(revokedAt))
}

func TestPunchTokenRepository_StampLastSeen(t *testing.T) {
	repo := NewPunchTokenRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newTestToken(t, "pt_1", "usr_1", "dev-1", "hash-1", now)))

	seenAt := now.Add(30 * time.Minute)
	require.NoError(t, repo.StampLastSeen(ctx, "pt_1", seenAt))

	found, err := repo.FindByHash(ctx, "hash-1")
	require.NoError(t, err)
	require.NotNil(t, found.LastSeenAt)
	assert.True(t, found.LastSeenAt.Equal(seenAt))
}
