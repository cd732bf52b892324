// Package config handles runtime configuration for the portal server,
// applying development defaults and overlaying DOCSGATE_* environment
// variables.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds runtime settings for the portal server.
//
// Fields:
//   - SessionSecret: HMAC secret for signing session tokens (HS256). The
//     default is insecure and must be overridden outside development.
//   - OTPTTL / SessionTTL: passcode and session token lifetimes.
//   - SMTPHost and friends: outbound mail settings. When SMTPHost is empty
//     mail delivery is suppressed and messages are logged instead.
//   - BoltPath: when set, collections persist in a bolt database file.
//   - DataDir: when set (and BoltPath is not), collections persist as JSON
//     files in this directory. With neither, storage is in-memory.
type Config struct {
	SessionSecret string
	OTPTTL        time.Duration
	SessionTTL    time.Duration
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	FromEmail     string
	AppName       string
	DataDir       string
	BoltPath      string
	LogLevel      slog.Level
}

// LoadDefaults populates Config with development defaults.
// NOTE: The session secret is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.SessionSecret = "dev-only-session-secret"
	c.OTPTTL = 5 * time.Minute
	c.SessionTTL = 168 * time.Hour
	c.SMTPPort = 587
	c.FromEmail = "noreply@docsgate.local"
	c.AppName = "DocsGate"
	c.LogLevel = slog.LevelInfo
}

// Load builds a Config by applying defaults and overlaying environment
// variables.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.parseEnv()
	return cfg
}

func (c *Config) parseEnv() {
	overlayString(&c.SessionSecret, "DOCSGATE_SECRET")
	overlayMinutes(&c.OTPTTL, "DOCSGATE_OTP_EXPIRY_MINUTES")
	overlayHours(&c.SessionTTL, "DOCSGATE_SESSION_TTL_HOURS")
	overlayString(&c.SMTPHost, "DOCSGATE_SMTP_HOST")
	overlayInt(&c.SMTPPort, "DOCSGATE_SMTP_PORT")
	overlayString(&c.SMTPUsername, "DOCSGATE_SMTP_USER")
	overlayString(&c.SMTPPassword, "DOCSGATE_SMTP_PASS")
	overlayString(&c.FromEmail, "DOCSGATE_FROM_EMAIL")
	overlayString(&c.AppName, "DOCSGATE_APP_NAME")
	overlayString(&c.DataDir, "DOCSGATE_DATA_DIR")
	overlayString(&c.BoltPath, "DOCSGATE_BOLT_PATH")

	if v := os.Getenv("DOCSGATE_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err == nil {
			c.LogLevel = level
		}
	}
}

func overlayString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overlayInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func overlayMinutes(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = time.Duration(n) * time.Minute
		}
	}
}

func overlayHours(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			*dst = time.Duration(n) * time.Hour
		}
	}
}
