package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer        string // Required: issuer claim for tokens
	JWTSecretFile string // Optional: path to the HS256 secret file (default: ./jwt.secret)

	DatabaseFile string // Optional: path to SQLite database file (default: ./careteam.db)

	AppOrigin     string        // Optional: public base URL for acceptance links (default: http://localhost:8080)
	InvitationTTL time.Duration // Optional: invitation token lifetime (default: 168h)

	SESRegion    string // Optional: AWS region for SES (default: us-east-1)
	SESFromEmail string // Optional: sender address; empty disables email delivery
	SESFromName  string // Optional: sender display name

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:        getEnvOrDefault("CARETEAM_ISSUER", "careteam"),
		JWTSecretFile: getEnvOrDefault("CARETEAM_JWT_SECRET_FILE", "jwt.secret"),
		DatabaseFile:  getEnvOrDefault("CARETEAM_DATABASE_FILE", "careteam.db"),
		AppOrigin:     getEnvOrDefault("CARETEAM_APP_ORIGIN", "http://localhost:8080"),
		InvitationTTL: getEnvDurationOrDefault("CARETEAM_INVITATION_TTL", 7*24*time.Hour),

		SESRegion:    getEnvOrDefault("SES_REGION", "us-east-1"),
		SESFromEmail: os.Getenv("SES_FROM_EMAIL"),
		SESFromName:  getEnvOrDefault("SES_FROM_NAME", "CareTeam"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
