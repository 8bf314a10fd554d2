package main

import (
	"ewallet/internal/config"     // Configuration
	"ewallet/internal/ledgertest" // In-memory ledger services

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Seed balances
	"github.com/sirupsen/logrus"    // Logrus for structured logging
)

// Main runs an in-memory ledger with a few demo accounts, for local use
// against cmd/server.
func main() {
	cfg := config.LoadConfig() // Load configuration
	cfg.SetupLogger()          // Setup logger

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	l := ledgertest.New(cfg.SandboxJWTSecret)
	_, alice := l.Seed("alice", "password", "Alice", decimal.RequireFromString("100.00"))
	_, bob := l.Seed("bob", "password", "Bob", decimal.RequireFromString("25.00"))
	logrus.WithFields(logrus.Fields{
		"alice_wallet": alice,
		"bob_wallet":   bob,
	}).Info("demo accounts seeded")

	logrus.WithField("port", cfg.SandboxPort).Info("sandbox ledger running")
	if err := l.Router().Run(":" + cfg.SandboxPort); err != nil {
		logrus.Fatalf("sandbox stopped: %v", err)
	}
}
