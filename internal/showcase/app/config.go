package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	RootDomain string // Domain used in canonical links and mailed URLs (default: mocshare.com)

	DatabaseFile         string        // Path to SQLite database file (default: ./showcase.db)
	PepperFile           string        // Path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	SessionTTL           time.Duration // Login session lifetime (default: 2h)

	SendGridAPIKey string // Optional: SendGrid API key; empty means log-only mail delivery
	MailFrom       string // Sender address for transactional mail
	MailFromName   string // Sender display name for transactional mail
}

func LoadConfig() Config {
	cfg := Config{
		RootDomain:           getEnvOrDefault("SHOWCASE_ROOT_DOMAIN", "mocshare.com"),
		DatabaseFile:         getEnvOrDefault("SHOWCASE_DATABASE_FILE", "showcase.db"),
		PepperFile:           getEnvOrDefault("SHOWCASE_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		SessionTTL:           getEnvDurationOrDefault("SHOWCASE_SESSION_TTL", 2*time.Hour),
		SendGridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		MailFrom:             os.Getenv("MAIL_FROM"),
		MailFromName:         getEnvOrDefault("MAIL_FROM_NAME", "MOCShare"),
	}

	if cfg.MailFrom == "" {
		cfg.MailFrom = "registration@" + cfg.RootDomain
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
