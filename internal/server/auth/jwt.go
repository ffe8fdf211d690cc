package auth

import (
	"time"

	"github.com/dmitrijs2005/accounts/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the set of identity facts embedded in a token: the account id and
// the login it was issued for, plus the registered expiry claim.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Login  string `json:"login"`
}

// GenerateToken issues a compact HS256-signed token carrying the given
// identity claims. The secret is supplied by the caller; this package keeps
// no state between calls.
func GenerateToken(userID, login string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
		Login:  login,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the token signature with secretKey and returns its
// claims. Every failure mode (bad signature, malformed structure, expired or
// unparsable claims) collapses into common.ErrInvalidToken so that callers
// cannot distinguish causes.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
