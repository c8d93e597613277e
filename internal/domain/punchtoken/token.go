package punchtoken

import (
	"fmt"
	"time"
)

// DefaultTTL bounds the blast radius of a leaked token. Tokens are never
// renewed in place; expiry forces re-issuance.
const DefaultTTL = 12 * time.Hour

// Token is a short-lived, device-bound credential gating every clock action.
// The raw token value is never stored; only its one-way hash is.
type Token struct {
	ID            string
	UserID        string
	DeviceID      string
	UserAgentHash string
	TokenHash     string
	IssuedAt      time.Time
	ExpiresAt     time.Time
	RevokedAt     *time.Time
	LastSeenAt    *time.Time
}

// NewToken builds a token record for storage. tokenHash must be the one-way
// hash of the raw credential, never the credential itself.
func NewToken(id, userID, deviceID, userAgentHash, tokenHash string, now time.Time, ttl time.Duration) (*Token, error) {
	if id == "" {
		return nil, fmt.Errorf("token id is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if deviceID == "" {
		return nil, fmt.Errorf("device id is required")
	}
	if tokenHash == "" {
		return nil, fmt.Errorf("token hash is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Token{
		ID:            id,
		UserID:        userID,
		DeviceID:      deviceID,
		UserAgentHash: userAgentHash,
		TokenHash:     tokenHash,
		IssuedAt:      now,
		ExpiresAt:     now.Add(ttl),
	}, nil
}

// Active reports whether the token is neither revoked nor expired at the
// given instant.
func (t *Token) Active(now time.Time) bool {
	if t.RevokedAt != nil {
		return false
	}
	return now.Before(t.ExpiresAt)
}

// MatchesBinding verifies the token belongs to the presenting user and
// device. A token is valid only for the pair that requested it.
func (t *Token) MatchesBinding(userID, deviceID string) bool {
	return t.UserID == userID && t.DeviceID == deviceID
}

// MatchesUserAgent checks the stored user-agent hash against the presented
// one. A record issued without a hash accepts any agent; a stored hash must
// match exactly, otherwise the token is treated as stolen or copied.
func (t *Token) MatchesUserAgent(presentedHash string) bool {
	if t.UserAgentHash == "" {
		return true
	}
	return t.UserAgentHash == presentedHash
}

// Usable combines all validity checks for a presenting caller.
func (t *Token) Usable(userID, deviceID, userAgentHash string, now time.Time) bool {
	return t.Active(now) && t.MatchesBinding(userID, deviceID) && t.MatchesUserAgent(userAgentHash)
}
