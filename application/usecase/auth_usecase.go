package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vobe/voicedesk/application/port/inbound"
	"github.com/vobe/voicedesk/application/port/outbound"
	"github.com/vobe/voicedesk/domain/apperror"
	"github.com/vobe/voicedesk/domain/entity"
	"github.com/vobe/voicedesk/infrastructure/service/logger"
)

type AuthUseCase struct {
	userRepository   outbound.UserRepository
	tokenService     outbound.TokenService
	passwordService  outbound.PasswordService
	mailSender       outbound.MailSender
	identityStore    outbound.IdentityStore
	rateLimitService outbound.RateLimitService
	logger           logger.Logger
	accessTokenTTL   time.Duration
	ipAttempts       int
	ipWindow         time.Duration
	blockDuration    time.Duration
}

type AuthConfig struct {
	AccessTokenTTL time.Duration
	IPAttempts     int
	IPWindow       time.Duration
	BlockDuration  time.Duration
}

func NewAuthUseCase(
	userRepo outbound.UserRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	mailSender outbound.MailSender,
	identityStore outbound.IdentityStore,
	rateLimitService outbound.RateLimitService,
	log logger.Logger,
	cfg AuthConfig,
) inbound.AuthUseCase {
	return &AuthUseCase{
		userRepository:   userRepo,
		tokenService:     tokenService,
		passwordService:  passwordService,
		mailSender:       mailSender,
		identityStore:    identityStore,
		rateLimitService: rateLimitService,
		logger:           log,
		accessTokenTTL:   cfg.AccessTokenTTL,
		ipAttempts:       cfg.IPAttempts,
		ipWindow:         cfg.IPWindow,
		blockDuration:    cfg.BlockDuration,
	}
}

func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperror.ErrInvalidCredentials()
	}

	ipKey := fmt.Sprintf("ip:%s", req.ClientIP)
	if req.ClientIP != "" {
		blocked, err := uc.rateLimitService.IsBlocked(ctx, ipKey)
		if err != nil {
			uc.logger.Error(ctx, "failed to check IP block status", err, map[string]interface{}{
				"ip": req.ClientIP,
			})
		}
		if blocked {
			logger.LogSecurityEvent(ctx, uc.logger, "blocked_ip_login_attempt", "MEDIUM", map[string]interface{}{
				"ip":    req.ClientIP,
				"email": req.Email,
			})
			return nil, apperror.ErrRateLimited()
		}

		allowed, err := uc.rateLimitService.CheckLimit(ctx, ipKey, uc.ipAttempts, uc.ipWindow)
		if err != nil {
			uc.logger.Error(ctx, "failed to check rate limit", err, map[string]interface{}{
				"ip": req.ClientIP,
			})
		}
		if !allowed {
			uc.rateLimitService.Block(ctx, ipKey, uc.blockDuration, "login rate limit exceeded")
			return nil, apperror.ErrRateLimited()
		}
	}

	user, err := uc.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			uc.recordFailedAttempt(ctx, ipKey, req.ClientIP)
			logger.LogAuthEvent(ctx, uc.logger, "login_failed_user_not_found", "", req.ClientIP, false, map[string]interface{}{
				"email": req.Email,
			})
			return nil, apperror.ErrInvalidCredentials()
		}
		uc.logger.Error(ctx, "failed to find user", err, map[string]interface{}{
			"email": req.Email,
		})
		return nil, apperror.ErrInternal(err)
	}

	// A disabled account fails closed before the password is even checked.
	if !user.IsActive {
		logger.LogAuthEvent(ctx, uc.logger, "login_failed_inactive_user", user.ID, req.ClientIP, false, map[string]interface{}{
			"email": req.Email,
		})
		return nil, apperror.ErrInactiveAccount()
	}

	valid, err := uc.passwordService.VerifyPassword(req.Password, user.HashedPassword)
	if err != nil {
		uc.logger.Error(ctx, "password verification error", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, apperror.ErrInternal(err)
	}
	if !valid {
		uc.recordFailedAttempt(ctx, ipKey, req.ClientIP)
		logger.LogAuthEvent(ctx, uc.logger, "login_failed_invalid_password", user.ID, req.ClientIP, false, map[string]interface{}{
			"email": req.Email,
		})
		return nil, apperror.ErrInvalidCredentials()
	}

	accessToken, err := uc.tokenService.GenerateAccessToken(outbound.AccessTokenClaims{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		uc.logger.Error(ctx, "failed to generate access token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, apperror.ErrInternal(err)
	}

	logger.LogAuthEvent(ctx, uc.logger, "login_successful", user.ID, req.ClientIP, true, map[string]interface{}{
		"email": req.Email,
	})

	return &inbound.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int(uc.accessTokenTTL.Seconds()),
	}, nil
}

func (uc *AuthUseCase) VerifyToken(ctx context.Context, token string) (*entity.User, error) {
	claims, err := uc.tokenService.ValidateAccessToken(token)
	if err != nil {
		return nil, apperror.ErrUnauthenticated()
	}

	user, err := uc.userRepository.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			logger.LogSecurityEvent(ctx, uc.logger, "token_for_missing_user", "MEDIUM", map[string]interface{}{
				"user_id": claims.UserID,
			})
			return nil, apperror.ErrUnauthenticated()
		}
		uc.logger.Error(ctx, "failed to resolve token user", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return nil, apperror.ErrInternal(err)
	}

	return user, nil
}

func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := uc.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			logger.LogAuthEvent(ctx, uc.logger, "password_recovery_unknown_email", "", "", false, map[string]interface{}{
				"email": email,
			})
			return apperror.ErrUserNotFound()
		}
		uc.logger.Error(ctx, "failed to find user for password recovery", err, map[string]interface{}{
			"email": email,
		})
		return apperror.ErrInternal(err)
	}

	token, err := uc.tokenService.GeneratePasswordResetToken(user.Email)
	if err != nil {
		uc.logger.Error(ctx, "failed to generate password reset token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return apperror.ErrInternal(err)
	}

	// Delivery is best effort; the caller gets a success response as soon
	// as the token is issued.
	if err := uc.mailSender.SendPasswordReset(ctx, user.Email, token); err != nil {
		uc.logger.Error(ctx, "failed to hand off password reset mail", err, map[string]interface{}{
			"user_id": user.ID,
		})
	}

	logger.LogAuthEvent(ctx, uc.logger, "password_recovery_requested", user.ID, "", true, map[string]interface{}{
		"email": email,
	})
	return nil
}

func (uc *AuthUseCase) ResetPassword(ctx context.Context, req inbound.ResetPasswordRequest) error {
	claims, err := uc.tokenService.ValidatePasswordResetToken(req.Token)
	if err != nil {
		logger.LogSecurityEvent(ctx, uc.logger, "invalid_password_reset_token", "MEDIUM", map[string]interface{}{
			"error": err.Error(),
		})
		return apperror.ErrInvalidToken()
	}

	used, err := uc.identityStore.IsTokenUsed(ctx, claims.ID)
	if err != nil {
		uc.logger.Error(ctx, "failed to check reset token usage", err, map[string]interface{}{
			"token_id": claims.ID,
		})
		return apperror.ErrInternal(err)
	}
	if used {
		logger.LogSecurityEvent(ctx, uc.logger, "reused_password_reset_token", "HIGH", map[string]interface{}{
			"token_id": claims.ID,
			"email":    claims.Email,
		})
		return apperror.ErrInvalidToken()
	}

	user, err := uc.userRepository.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return apperror.ErrUserNotFound()
		}
		uc.logger.Error(ctx, "failed to find user for password reset", err, map[string]interface{}{
			"email": claims.Email,
		})
		return apperror.ErrInternal(err)
	}

	if !user.IsActive {
		return apperror.ErrInactiveAccount()
	}

	hashed, err := uc.passwordService.HashPassword(req.NewPassword)
	if err != nil {
		uc.logger.Error(ctx, "failed to hash new password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return apperror.ErrInternal(err)
	}

	if err := uc.userRepository.UpdatePassword(ctx, user.ID, hashed); err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			return apperror.ErrUserNotFound()
		}
		uc.logger.Error(ctx, "failed to update password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return apperror.ErrInternal(err)
	}

	// Burn the token only after the hash is replaced, for the remainder of
	// its lifetime. A burn failure is logged, not surfaced: the reset
	// already happened.
	if err := uc.identityStore.MarkTokenUsed(ctx, claims.ID, time.Until(claims.ExpiresAt)); err != nil {
		uc.logger.Error(ctx, "failed to mark reset token used", err, map[string]interface{}{
			"token_id": claims.ID,
		})
	}

	logger.LogAuthEvent(ctx, uc.logger, "password_reset_successful", user.ID, "", true, map[string]interface{}{
		"email": user.Email,
	})
	return nil
}

func (uc *AuthUseCase) recordFailedAttempt(ctx context.Context, ipKey, ip string) {
	if ip == "" {
		return
	}
	if err := uc.rateLimitService.Increment(ctx, ipKey, uc.ipWindow); err != nil {
		uc.logger.Error(ctx, "failed to record login attempt", err, map[string]interface{}{
			"ip": ip,
		})
	}
}
