package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"api/utils/apperr"
)

// TokenService mints and verifies the signed session tokens. The signing
// secret is injected at construction and never read from the environment
// inside logic.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Generate mints a token with the user id as subject.
func (s *TokenService) Generate(userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token and returns the user id it was minted for. Any
// malformed, expired or wrongly signed token fails with an unauthorized
// error.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthorized("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.Unauthorized("invalid or expired token")
	}
	if claims.Subject == "" {
		return "", apperr.Unauthorized("token has no subject")
	}
	return claims.Subject, nil
}
