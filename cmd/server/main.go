package main

import (
	"net/http" // Ledger transport

	"ewallet/internal/api"    // Boundary handlers
	"ewallet/internal/config" // Configuration
	"ewallet/internal/ledger" // Remote ledger client
	"ewallet/internal/wallet" // Client-side orchestrator

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to set up and run the wallet client server
func main() {
	cfg := config.LoadConfig() // Load configuration
	cfg.SetupLogger()          // Setup logger

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// One controller per process, talking to the configured ledger
	client := ledger.NewClient(cfg.LedgerBaseURL, &http.Client{Timeout: cfg.LedgerTimeout})
	ctrl := wallet.New(client)

	r := api.NewRouter(ctrl) // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":   cfg.AppPort,
		"ledger": cfg.LedgerBaseURL,
	}).Info("server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
