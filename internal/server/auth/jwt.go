package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenLifetime is how long a session token stays valid.
const tokenLifetime = 24 * time.Hour

// ErrInvalidToken is returned for expired, malformed, or forged tokens.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates HS256 session tokens.
type TokenManager struct {
	secret []byte
}

// NewTokenManager creates a token manager over the signing secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue signs a token carrying the user identifier.
func (m *TokenManager) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("empty userID passed to Issue")
	}
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate checks the signature and expiry and returns the user identifier.
func (m *TokenManager) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
