package utils

import (
	goerrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"legalease-api/core/config"
	"legalease-api/core/errors"
)

// TokenClaims is the payload carried in every access token
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	Scope  string    `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed JWT for the given user and role
func GenerateToken(userID uuid.UUID, role string, scope string) (string, error) {
	cfg := config.Get()

	claims := &TokenClaims{
		UserID: userID,
		Role:   role,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.JWT.ExpiryHours) * time.Hour)),
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateAndParseToken verifies the signature and expiry, returning the claims
func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	cfg := config.Get()

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "unexpected signing method", nil)
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", err)
	}
	if !token.Valid {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", nil)
	}

	return claims, nil
}
