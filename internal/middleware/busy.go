package middleware

import (
	"net/http" // HTTP status codes

	"ewallet/internal/domain" // Busy error
	"ewallet/internal/wallet" // Orchestrator

	"github.com/gin-gonic/gin" // Gin web framework
)

// BusyGuard rejects a submit while its operation class cannot start. This is
// the boundary's "disabled button": the controller rejects duplicates on its
// own, the guard just answers before any body is parsed.
func BusyGuard(ctrl *wallet.Controller, class wallet.OpClass) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ctrl.CanStart(class) {
			// Another call of a conflicting class is in flight
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"error": domain.ErrBusy,  // Same shape as a controller rejection
				"state": ctrl.Snapshot(), // Current state for re-render
			})
			return
		}
		c.Next() // Proceed to the handler
	}
}
