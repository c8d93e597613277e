package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"timeclock/internal/shared/id"
)

const punchTokenEntropyBytes = 24

// PunchTokenService generates opaque punch tokens and the SHA-256 digests
// stored in their place. The plain token is shown to the client exactly
// once; lookups afterwards go through the digest.
type PunchTokenService struct{}

func NewPunchTokenService() *PunchTokenService {
	return &PunchTokenService{}
}

// Generate returns the plain token and its storage hash.
// Token format: pt_<base64url entropy>
func (s *PunchTokenService) Generate() (plainToken string, tokenHash string, err error) {
	entropy := make([]byte, punchTokenEntropyBytes)
	if _, err := rand.Read(entropy); err != nil {
		return "", "", fmt.Errorf("failed to generate token entropy: %w", err)
	}

	plainToken = fmt.Sprintf("%s_%s", id.PrefixPunchToken, base64.RawURLEncoding.EncodeToString(entropy))
	return plainToken, s.HashToken(plainToken), nil
}

// HashToken computes the hex SHA-256 digest used for storage and lookup.
func (s *PunchTokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return fmt.Sprintf("%x", hash)
}

// HashUserAgent digests a User-Agent string for soft binding. Empty input
// stays empty so an absent header is stored as such.
func (s *PunchTokenService) HashUserAgent(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(userAgent))
	return fmt.Sprintf("%x", hash)
}
