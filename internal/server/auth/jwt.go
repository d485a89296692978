// Package auth provides the credential primitives behind the protected API:
// JWT issuance/verification and bcrypt password hashing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"carvault/internal/common"
)

// Claims is the claim set carried by identity tokens: the standard
// registered claims plus the authenticated user's ID and username.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// TokenService issues and verifies signed, time-bound identity tokens.
// The signing key is process-wide configuration, loaded once at startup,
// and is never logged.
type TokenService struct {
	secretKey        []byte
	validityDuration time.Duration
}

func NewTokenService(secretKey string, validityDuration time.Duration) *TokenService {
	return &TokenService{
		secretKey:        []byte(secretKey),
		validityDuration: validityDuration,
	}
}

// Issue serializes the identity plus issued-at and expiry into a signed
// HS256 token string.
func (s *TokenService) Issue(userID, username string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validityDuration)),
		},
		UserID:   userID,
		Username: username,
	})

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorCrypto, err)
	}

	return tokenString, nil
}

// Verify parses the token string and returns its claims. Expired tokens fail
// with common.ErrTokenExpired; anything malformed, badly signed or not
// HMAC-signed fails with common.ErrInvalidToken. Both classifications are
// evaluated fresh on every call; tokens carry no server-side state.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
