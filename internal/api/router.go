package api

import (
	"net/http" // HTTP status codes

	"ewallet/internal/middleware" // Busy guard and request logging
	"ewallet/internal/wallet"     // Orchestrator

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
)

// NewRouter wires every boundary route onto one controller
func NewRouter(ctrl *wallet.Controller) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/state", StateHandler(ctrl))

	// Session routes
	session := r.Group("/session")
	session.POST("/signup", middleware.BusyGuard(ctrl, wallet.OpAuth), SignupHandler(ctrl))
	session.POST("/login", middleware.BusyGuard(ctrl, wallet.OpAuth), LoginHandler(ctrl))
	session.DELETE("", LogoutHandler(ctrl))

	// Wallet routes
	walletGroup := r.Group("/wallet")
	walletGroup.PUT("/transfer/draft", TransferDraftHandler(ctrl))
	walletGroup.POST("/preview", middleware.BusyGuard(ctrl, wallet.OpLookup), PreviewHandler(ctrl))
	walletGroup.POST("/recharge", middleware.BusyGuard(ctrl, wallet.OpMutation), RechargeHandler(ctrl))
	walletGroup.POST("/transfer", middleware.BusyGuard(ctrl, wallet.OpMutation), TransferHandler(ctrl))
	walletGroup.POST("/reload", middleware.BusyGuard(ctrl, wallet.OpMutation), ReloadHandler(ctrl))
	return r
}
