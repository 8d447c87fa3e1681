package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vobe/voicedesk/application/port/outbound"
)

// JWTService signs and validates the two token kinds this backend issues
// itself: bearer access tokens and single-use password-reset tokens. Both
// are HS256 over the same secret, distinguished by a "type" claim.
type JWTService struct {
	secret         []byte
	accessTokenTTL time.Duration
	resetTokenTTL  time.Duration
}

func NewJWTService(secret string, accessTokenTTL, resetTokenTTL time.Duration) *JWTService {
	return &JWTService{
		secret:         []byte(secret),
		accessTokenTTL: accessTokenTTL,
		resetTokenTTL:  resetTokenTTL,
	}
}

func (s *JWTService) GenerateAccessToken(claims outbound.AccessTokenClaims) (string, error) {
	now := time.Now()
	tokenClaims := jwt.MapClaims{
		"sub":   claims.UserID,
		"email": claims.Email,
		"exp":   now.Add(s.accessTokenTTL).Unix(),
		"iat":   now.Unix(),
		"type":  "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*outbound.AccessTokenClaims, error) {
	claims, err := s.parse(tokenString, "access")
	if err != nil {
		return nil, err
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, outbound.ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return &outbound.AccessTokenClaims{
		UserID: userID,
		Email:  email,
	}, nil
}

func (s *JWTService) GeneratePasswordResetToken(email string) (string, error) {
	now := time.Now()
	tokenClaims := jwt.MapClaims{
		"sub":  email,
		"jti":  uuid.New().String(),
		"exp":  now.Add(s.resetTokenTTL).Unix(),
		"nbf":  now.Unix(),
		"iat":  now.Unix(),
		"type": "reset",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign password reset token: %w", err)
	}

	return tokenString, nil
}

func (s *JWTService) ValidatePasswordResetToken(tokenString string) (*outbound.ResetTokenClaims, error) {
	claims, err := s.parse(tokenString, "reset")
	if err != nil {
		return nil, err
	}

	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return nil, outbound.ErrInvalidToken
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return nil, outbound.ErrInvalidToken
	}
	expUnix, ok := claims["exp"].(float64)
	if !ok {
		return nil, outbound.ErrInvalidToken
	}

	return &outbound.ResetTokenClaims{
		ID:        jti,
		Email:     email,
		ExpiresAt: time.Unix(int64(expUnix), 0),
	}, nil
}

func (s *JWTService) parse(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, s.handleValidationError(err)
	}
	if !token.Valid {
		return nil, outbound.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, outbound.ErrInvalidToken
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != wantType {
		return nil, outbound.ErrInvalidToken
	}

	return claims, nil
}

func (s *JWTService) handleValidationError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return outbound.ErrTokenExpired
	}
	return outbound.ErrInvalidToken
}
