package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nerdbug/user-service/config"
	"github.com/nerdbug/user-service/internal/types"
)

var _ TokenService = (*JWTTokenService)(nil)

// TokenService issues and verifies signed, time-limited identity tokens.
// Tokens are stateless and self-verifying; there is no revocation list, so
// a token stays valid until its expiry regardless of account state changes.
type TokenService interface {
	Issue(userID, email string) (string, error)
	Verify(tokenString string) (*types.Claims, error)
}

type JWTTokenService struct {
	secretKey []byte
	expiry    time.Duration
}

func NewJWTTokenService(cfg config.JWTConfig) *JWTTokenService {
	if cfg.SecretKey == "" {
		panic("JWT Secret Key cannot be empty")
	}
	return &JWTTokenService{
		secretKey: []byte(cfg.SecretKey),
		expiry:    cfg.Expiry,
	}
}

// Issue signs an HS256 token binding {id, email} with expiry = now + configured TTL.
func (s *JWTTokenService) Issue(userID, email string) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the embedded claims.
// Tokens signed with a different secret or a non-HMAC algorithm are rejected.
func (s *JWTTokenService) Verify(tokenString string) (*types.Claims, error) {
	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, types.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, types.ErrInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidToken, err)
		}
	}

	if !token.Valid {
		return nil, types.ErrInvalidToken
	}
	return claims, nil
}
