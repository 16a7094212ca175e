// Package auth provides functionality for generating and parsing JSON Web
// Tokens (JWT) used to authenticate staff accounts, plus the HTTP middleware
// that enforces them and the role guards for admin-only routes.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// secretKey signs issued tokens. Overridden from config at startup.
var secretKey = []byte("supersecretkey")

// TokenExp defines the token expiration duration.
const TokenExp = time.Hour * 3

// SetSecret replaces the signing key. Called once during startup before any
// token is issued.
func SetSecret(secret string) {
	if secret != "" {
		secretKey = []byte(secret)
	}
}

// Claims carries the authenticated identity: the operating account's id,
// username, and type, alongside the standard registered claims.
type Claims struct {
	UserID   int32  `json:"userId"`
	Username string `json:"username"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// GenerateToken creates a new JWT for the given staff identity.
func GenerateToken(userID int32, username, userType string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExp)),
		},
		UserID:   userID,
		Username: username,
		UserType: userType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ParseToken validates the provided JWT token string and parses its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
