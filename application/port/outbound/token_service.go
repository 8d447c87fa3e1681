package outbound

import (
	"errors"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type AccessTokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// ResetTokenClaims identifies a single password-reset authorization. ID is
// the token's jti and is burned after a successful reset.
type ResetTokenClaims struct {
	ID        string
	Email     string
	ExpiresAt time.Time
}

type TokenService interface {
	GenerateAccessToken(claims AccessTokenClaims) (string, error)
	ValidateAccessToken(token string) (*AccessTokenClaims, error)
	GeneratePasswordResetToken(email string) (string, error)
	ValidatePasswordResetToken(token string) (*ResetTokenClaims, error)
}
