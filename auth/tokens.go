package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is how long an issued token remains usable. Tokens are
// stateless and cannot be revoked before they expire.
const TokenValidity = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims embeds the standard registered claims plus the owning user's ID.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// GenerateToken mints an HS256-signed bearer token for userID.
func GenerateToken(userID string, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyToken checks the signature and expiry of tokenString and returns
// the embedded user ID. Any failure is reported as ErrInvalidToken.
func VerifyToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
