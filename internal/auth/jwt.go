// Package auth mints and validates the HS256 tokens issued to sessions
// created by the offline sign-in path.
//
// When the remote authority is reachable it issues the session token and
// this package is not involved — that token is opaque to the engine. When no
// authority is configured, the local credential store signs an equivalent
// token here so downstream token-presence checks behave identically on both
// paths.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/civicsense/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the claims embedded in each locally issued token.
type Claims struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
	jwt.RegisteredClaims
}

// tokenDuration is how long an offline session token stays valid. Long
// enough that a signed-in citizen survives a restart of the shell without
// re-authenticating.
const tokenDuration = 72 * time.Hour

// GenerateToken creates a signed HS256 token for the given account.
func GenerateToken(email string, role models.Role, secret string) (string, error) {
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a locally issued token and returns its claims. It
// rejects a missing or wrong signature, an expired token, and any signing
// algorithm other than HMAC (algorithm confusion attack prevention).
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
