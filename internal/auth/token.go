// Package auth issues and verifies the HS256 session tokens the API accepts.
// Signing in is handled by the identity provider; this package only carries
// the session's email claim.
package auth

import (
	"errors"
	"fmt"
	"time"

	"go-pos/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
)

const ClaimEmail = "email"

// Issue signs a session token for email that expires after ttl.
func Issue(secret, email string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("signing secret is empty")
	}
	if email == "" {
		return "", errors.New("email is empty")
	}

	claims := jwt.MapClaims{
		ClaimEmail: email,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Email verifies the token and returns its email claim.
func Email(secret, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperror.ErrTokenExpired
		}
		return "", apperror.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperror.ErrInvalidToken
	}
	email, ok := claims[ClaimEmail].(string)
	if !ok || email == "" {
		return "", apperror.ErrInvalidToken
	}
	return email, nil
}
