package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const issuer = "campusmarket"

// TokenIssuer signs and verifies HS256 session tokens whose subject is the user id.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (i *TokenIssuer) Issue(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(i.expiry)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify returns the user id carried by a valid token.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid token")
	}
	if !claims.VerifyIssuer(issuer, true) {
		return "", fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	return claims.Subject, nil
}
