package punchtoken

import (
	"context"
	"time"
)

// Repository persists punch tokens. Implementations must make RevokeActive a
// conditional update on current non-revoked state so that concurrent
// issuance for one (user, device) pair cannot leave two active tokens.
type Repository interface {
	Create(ctx context.Context, token *Token) error

	// FindByHash looks up a token by its stored hash. Returns nil without
	// error when no record matches.
	FindByHash(ctx context.Context, tokenHash string) (*Token, error)

	// RevokeActive marks any non-revoked token for the (user, device) pair
	// as revoked at the given instant.
	RevokeActive(ctx context.Context, userID, deviceID string, now time.Time) error

	// StampLastSeen records a successful use of the token.
	StampLastSeen(ctx context.Context, tokenID string, now time.Time) error
}
