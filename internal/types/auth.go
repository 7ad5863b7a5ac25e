package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the identity payload embedded in every signed token.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
