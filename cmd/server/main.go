package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/lib/pq"

	"github.com/vobe/voicedesk/application/port/outbound"
	"github.com/vobe/voicedesk/application/usecase"
	"github.com/vobe/voicedesk/infrastructure/config"
	httpserver "github.com/vobe/voicedesk/infrastructure/http"
	"github.com/vobe/voicedesk/infrastructure/http/handler"
	"github.com/vobe/voicedesk/infrastructure/http/middleware"
	"github.com/vobe/voicedesk/infrastructure/persistence/postgres"
	jwtservice "github.com/vobe/voicedesk/infrastructure/service/jwt"
	"github.com/vobe/voicedesk/infrastructure/service/logger"
	"github.com/vobe/voicedesk/infrastructure/service/mailer"
	"github.com/vobe/voicedesk/infrastructure/service/password"
	"github.com/vobe/voicedesk/infrastructure/service/ratelimit"
	"github.com/vobe/voicedesk/infrastructure/service/session"
	"github.com/vobe/voicedesk/infrastructure/telephony"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "voicedesk",
	})
	structuredLogger.Info(ctx, "application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "database connection established", nil)

	// Redis backs the rate limiter and the call-session store; without it
	// both fall back to local implementations.
	var redisClient *redis.Client
	if opt, err := redis.ParseURL(cfg.RedisURL); err == nil {
		client := redis.NewClient(opt)
		redisCtx, cancelRedis := context.WithTimeout(ctx, 5*time.Second)
		if err := client.Ping(redisCtx).Err(); err != nil {
			structuredLogger.Warn(ctx, "redis unreachable, using in-process fallbacks", map[string]interface{}{
				"redis_url": cfg.RedisURL,
				"error":     err.Error(),
			})
		} else {
			redisClient = client
		}
		cancelRedis()
	} else {
		structuredLogger.Warn(ctx, "invalid redis URL, using in-process fallbacks", map[string]interface{}{
			"redis_url": cfg.RedisURL,
		})
	}

	var identityStore outbound.IdentityStore
	if redisClient != nil {
		identityStore = session.NewRedisStore(redisClient)
	} else {
		identityStore = session.NewMemoryStore()
	}

	rateLimitService := ratelimit.NewRateLimitService(redisClient, ratelimit.Config{
		Enabled:       cfg.RateLimitEnabled,
		IPAttempts:    cfg.RateLimitIPAttempts,
		IPWindow:      cfg.RateLimitIPWindow,
		BlockDuration: cfg.RateLimitBlockDuration,
	}, structuredLogger)

	userRepo := postgres.NewUserRepository(db)
	tokenService := jwtservice.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.ResetTokenTTL)
	passwordService := password.NewBcryptPasswordService(0)
	mailSender := mailer.NewMailSender(mailer.Config{
		Host:          cfg.SMTPHost,
		Port:          cfg.SMTPPort,
		User:          cfg.SMTPUser,
		Password:      cfg.SMTPPassword,
		From:          cfg.EmailsFrom,
		ResetLinkBase: cfg.ResetLinkBase,
	}, structuredLogger)

	authUseCase := usecase.NewAuthUseCase(
		userRepo,
		tokenService,
		passwordService,
		mailSender,
		identityStore,
		rateLimitService,
		structuredLogger,
		usecase.AuthConfig{
			AccessTokenTTL: cfg.AccessTokenTTL,
			IPAttempts:     cfg.RateLimitIPAttempts,
			IPWindow:       cfg.RateLimitIPWindow,
			BlockDuration:  cfg.RateLimitBlockDuration,
		},
	)

	authMw := middleware.NewAuthMiddleware(authUseCase)
	handlers := []httpserver.RouteRegistrar{
		handler.NewAuthHandler(authUseCase, authMw, structuredLogger),
	}

	if cfg.TelephonyEnabled() {
		grantIssuer := telephony.NewGrantTokenService(
			cfg.TwilioAccountSID,
			cfg.TwilioAPIKey,
			cfg.TwilioAPISecret,
			cfg.TwimlApplicationSID,
			cfg.TwilioChatServiceSID,
			time.Hour,
		)
		voiceUseCase := usecase.NewVoiceUseCase(grantIssuer, identityStore, structuredLogger, usecase.VoiceConfig{
			CallerID:           cfg.TwilioCallerID,
			PendingIdentityTTL: cfg.PendingIdentityTTL,
		})
		handlers = append(handlers, handler.NewCommunicationHandler(voiceUseCase, authMw, structuredLogger))
	} else {
		structuredLogger.Warn(ctx, "telephony not configured, communication endpoints disabled", nil)
	}

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:                 cfg.ServerHost,
		Port:                 cfg.ServerPort,
		CORSEnabled:          cfg.CORSEnabled,
		CORSAllowedOrigins:   cfg.CORSAllowedOrigins,
		CORSAllowCredentials: cfg.CORSAllowCredentials,
	}, structuredLogger, handlers...)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case sig := <-quit:
		structuredLogger.Info(ctx, "shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(ctx, 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}
	structuredLogger.Info(ctx, "application stopped", nil)
}
