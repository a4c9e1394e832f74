package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"prepvio_backend/internal/models"
)

// AdminSubject is the built-in administrator identity. Tokens carrying it
// resolve to a fixed profile without touching the store.
const AdminSubject = "admin"

// Token audiences. The audience decides which HTTP-only cookie the
// middleware reads the token from, replacing origin-header sniffing with
// an explicit deployment setting.
const (
	AudienceAdmin = "prepvio-admin"
	AudienceUser  = "prepvio-user"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

type Claims struct {
	UserID   string          `json:"uid"`
	Role     models.UserRole `json:"role"`
	Audience string          `json:"aud_app"`
	jwt.RegisteredClaims
}

// GenerateToken signs an access token for the given identity.
func GenerateToken(userID string, role models.UserRole, audience, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Role:     role,
		Audience: audience,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
