// Package jwt issues and verifies the bearer tokens used by the API.
//
// Verification is stateless: there is no session store, so a token
// cannot be revoked before its natural expiry. Rotating the signing
// secret invalidates every previously issued token.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	appErr "github.com/gridwatch/gridboard/internal/pkg/errors"
)

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwtlib.RegisteredClaims
}

func GenerateToken(userID, username, email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry of a token. An expired
// token fails with errors.ErrTokenExpired; any other defect (bad
// signature, wrong algorithm, malformed structure) fails with
// errors.ErrTokenInvalid. Malformed input never panics.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenString, &Claims{}, func(token *jwtlib.Token) (interface{}, error) {
		if token.Method.Alg() != jwtlib.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, appErr.ErrTokenExpired
		}
		return nil, appErr.ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, appErr.ErrTokenInvalid
	}
	return claims, nil
}
