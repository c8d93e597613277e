package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"timeclock/internal/shared/biztime"
)

type Claims struct {
	UserID string `json:"user_id"`
	SiteID string `json:"site_id"`
	Agency string `json:"agency,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret     []byte
	expMinutes int
}

func NewJWTService(secret string, expMinutes int) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		expMinutes: expMinutes,
	}
}

func (s *JWTService) Generate(userID, siteID, agency, role string) (string, error) {
	now := biztime.NowUTC()

	claims := &Claims{
		UserID: userID,
		SiteID: siteID,
		Agency: agency,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
