package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Logger       LoggerConfig
	Discord      DiscordConfig
	Captcha      CaptchaConfig
	Verification VerificationConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	WebsiteDir            string
}

// DiscordConfig holds gateway credentials and guild identifiers.
type DiscordConfig struct {
	BotToken string
	ClientID string
	GuildID  string
	RoleID   string
}

// CaptchaConfig configures the reCAPTCHA oracle call.
type CaptchaConfig struct {
	Secret         string
	VerifyURL      string
	TimeoutSeconds int
}

// VerificationConfig defines token lifecycle parameters.
type VerificationConfig struct {
	WebBase              string
	TokenTTLMinutes      int
	SweepIntervalSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "verify-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			WebsiteDir:            getEnv("WEBSITE_DIR", "./website"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Discord: DiscordConfig{
			BotToken: os.Getenv("DISCORD_TOKEN"),
			ClientID: os.Getenv("DISCORD_CLIENT_ID"),
			GuildID:  os.Getenv("DISCORD_GUILD_ID"),
			RoleID:   os.Getenv("DISCORD_ROLE_ID"),
		},
		Captcha: CaptchaConfig{
			Secret:         os.Getenv("RECAPTCHA_SECRET"),
			VerifyURL:      getEnv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
			TimeoutSeconds: getEnvAsInt("RECAPTCHA_TIMEOUT_SECONDS", 10),
		},
		Verification: VerificationConfig{
			WebBase:              os.Getenv("WEB_BASE"),
			TokenTTLMinutes:      getEnvAsInt("VERIFY_TOKEN_TTL_MINUTES", 10),
			SweepIntervalSeconds: getEnvAsInt("VERIFY_SWEEP_INTERVAL_SECONDS", 60),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if cfg.Verification.WebBase == "" {
		cfg.Verification.WebBase = fmt.Sprintf("http://localhost:%s", cfg.App.Port)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the oracle call timeout duration.
func (c CaptchaConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TokenTTL returns the verification token lifetime.
func (v VerificationConfig) TokenTTL() time.Duration {
	if v.TokenTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(v.TokenTTLMinutes) * time.Minute
}

// SweepInterval returns the interval between expired-token sweeps.
func (v VerificationConfig) SweepInterval() time.Duration {
	if v.SweepIntervalSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(v.SweepIntervalSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
