package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string
	JWTSecret      string
	AccessTokenTTL time.Duration
	ResetTokenTTL  time.Duration

	ServerHost  string
	ServerPort  string
	Environment string

	RedisURL               string
	RateLimitEnabled       bool
	RateLimitIPAttempts    int
	RateLimitIPWindow      time.Duration
	RateLimitBlockDuration time.Duration

	LogLevel  string
	LogFormat string

	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPassword   string
	EmailsFrom     string
	ResetLinkBase  string

	// Telephony provider credentials. All required for the communication
	// endpoints except ChatServiceSID, which gates the chat grant.
	TwilioAccountSID     string
	TwilioAPIKey         string
	TwilioAPISecret      string
	TwimlApplicationSID  string
	TwilioChatServiceSID string
	TwilioCallerID       string

	// How long a registered caller identity stays routable.
	PendingIdentityTTL time.Duration

	CORSEnabled          bool
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
	ErrInvalidTokenTTL    = errors.New("invalid token TTL format")
	ErrIncompleteTelephony = errors.New("telephony configuration is incomplete: TWILIO_ACCOUNT_SID, TWILIO_API_KEY, TWILIO_API_SECRET, TWIML_APPLICATION_SID and TWILIO_CALLER_ID must all be set")
)

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),

		ServerHost:  getEnvOrDefault("SERVER_HOST", "localhost"),
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8080"),
		Environment: getEnvOrDefault("ENV", "development"),

		RedisURL:         getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		RateLimitEnabled: getEnvOrDefaultBool("RATE_LIMIT_ENABLED", true),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		EmailsFrom:    getEnvOrDefault("EMAILS_FROM_EMAIL", "noreply@voicedesk.local"),
		ResetLinkBase: getEnvOrDefault("RESET_LINK_BASE", "http://localhost:8080/reset-password"),

		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAPIKey:         os.Getenv("TWILIO_API_KEY"),
		TwilioAPISecret:      os.Getenv("TWILIO_API_SECRET"),
		TwimlApplicationSID:  os.Getenv("TWIML_APPLICATION_SID"),
		TwilioChatServiceSID: os.Getenv("TWILIO_CHAT_SERVICE_SID"),
		TwilioCallerID:       os.Getenv("TWILIO_CALLER_ID"),

		CORSEnabled:          getEnvOrDefaultBool("CORS_ENABLED", true),
		CORSAllowCredentials: getEnvOrDefaultBool("CORS_ALLOW_CREDENTIALS", true),
		CORSAllowedOrigins:   parseAllowedOrigins(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	accessTokenTTL, err := parseTTLSeconds(getEnvOrDefault("ACCESS_TOKEN_TTL", "691200"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.AccessTokenTTL = accessTokenTTL

	resetTokenTTL, err := parseTTLSeconds(getEnvOrDefault("RESET_TOKEN_TTL", "172800"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.ResetTokenTTL = resetTokenTTL

	pendingTTL, err := parseTTLSeconds(getEnvOrDefault("PENDING_IDENTITY_TTL", "3600"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.PendingIdentityTTL = pendingTTL

	cfg.RateLimitIPAttempts = getEnvOrDefaultInt("RATE_LIMIT_IP_ATTEMPTS", 5)

	ipWindow, err := parseTTLSeconds(getEnvOrDefault("RATE_LIMIT_IP_WINDOW", "900"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RateLimitIPWindow = ipWindow

	blockDuration, err := parseTTLSeconds(getEnvOrDefault("RATE_LIMIT_BLOCK_DURATION", "1800"))
	if err != nil {
		return nil, ErrInvalidTokenTTL
	}
	cfg.RateLimitBlockDuration = blockDuration

	// Telephony is optional as a whole, but a partial credential set is a
	// deployment mistake, not a disabled feature.
	if cfg.telephonyPartial() {
		return nil, ErrIncompleteTelephony
	}

	return cfg, nil
}

// TelephonyEnabled reports whether the communication endpoints can run.
func (c *Config) TelephonyEnabled() bool {
	return c.TwilioAccountSID != "" &&
		c.TwilioAPIKey != "" &&
		c.TwilioAPISecret != "" &&
		c.TwimlApplicationSID != "" &&
		c.TwilioCallerID != ""
}

func (c *Config) telephonyPartial() bool {
	any := c.TwilioAccountSID != "" ||
		c.TwilioAPIKey != "" ||
		c.TwilioAPISecret != "" ||
		c.TwimlApplicationSID != "" ||
		c.TwilioCallerID != ""
	return any && !c.TelephonyEnabled()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func parseTTLSeconds(value string) (time.Duration, error) {
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func parseAllowedOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
