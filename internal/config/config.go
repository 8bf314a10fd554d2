package config

import (
	"os"      // For environment variables
	"strings" // For normalising values
	"time"    // For durations

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // For log levels
)

// Config holds the application configuration
type Config struct {
	AppPort          string        // Boundary server port
	LedgerBaseURL    string        // Base URL of the remote ledger services
	LedgerTimeout    time.Duration // Transport timeout for remote calls
	LogLevel         logrus.Level  // Minimum log level
	IsProd           bool          // Is production environment
	SandboxPort      string        // Port of the local sandbox ledger
	SandboxJWTSecret string        // Signing secret of the sandbox ledger
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:          getEnv("APP_PORT", "8081"),
		LedgerBaseURL:    strings.TrimRight(getEnv("LEDGER_BASE_URL", "http://localhost:8080"), "/"),
		LedgerTimeout:    getDuration("LEDGER_TIMEOUT", 30*time.Second),
		LogLevel:         getLevel("LOG_LEVEL", logrus.InfoLevel),
		IsProd:           os.Getenv("IS_PROD") == "true",
		SandboxPort:      getEnv("SANDBOX_PORT", "8080"),
		SandboxJWTSecret: getEnv("SANDBOX_JWT_SECRET", "sandbox-secret"),
	}
}

// getEnv returns the variable or a fallback when unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses a Go duration, falling back on bad input
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "value": v}).Warn("invalid duration, using default")
		return fallback
	}
	return d
}

// getLevel parses a logrus level, falling back on bad input
func getLevel(key string, fallback logrus.Level) logrus.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	lvl, err := logrus.ParseLevel(v)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "value": v}).Warn("invalid log level, using default")
		return fallback
	}
	return lvl
}

// SetupLogger applies formatter and level the way the services expect
func (c *Config) SetupLogger() {
	if c.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetLevel(c.LogLevel)
}
