package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, access token içindeki claim'ler.
type TokenClaims struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	jwt.RegisteredClaims
}
