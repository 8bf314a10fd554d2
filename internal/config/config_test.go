package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "LEDGER_BASE_URL", "LEDGER_TIMEOUT", "LOG_LEVEL", "IS_PROD", "SANDBOX_PORT", "SANDBOX_JWT_SECRET"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, "8081", cfg.AppPort)
	assert.Equal(t, "http://localhost:8080", cfg.LedgerBaseURL)
	assert.Equal(t, 30*time.Second, cfg.LedgerTimeout)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.IsProd)
	assert.Equal(t, "8080", cfg.SandboxPort)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("LEDGER_BASE_URL", "http://ledger.local/")
	t.Setenv("LEDGER_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "http://ledger.local", cfg.LedgerBaseURL)
	assert.Equal(t, 5*time.Second, cfg.LedgerTimeout)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.True(t, cfg.IsProd)
}

func TestLoadConfigBadValuesFallBack(t *testing.T) {
	t.Setenv("LEDGER_TIMEOUT", "soon")
	t.Setenv("LOG_LEVEL", "loud")

	cfg := LoadConfig()

	assert.Equal(t, 30*time.Second, cfg.LedgerTimeout)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
}
