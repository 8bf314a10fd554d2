package api

import (
	"errors"   // Kind matching
	"net/http" // HTTP status codes

	"ewallet/internal/domain" // Error taxonomy
	"ewallet/internal/wallet" // Orchestrator

	"github.com/gin-gonic/gin" // Gin web framework
)

// StatusFor maps an operation error onto an HTTP status for the view layer
func StatusFor(err error) int {
	var e *domain.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindAuth:
		if e.Reason == domain.ReasonConflict {
			return http.StatusConflict
		}
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	case domain.KindBusy:
		return http.StatusConflict
	case domain.KindTransport:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// respond writes the snapshot, with the error when the operation failed
func respond(c *gin.Context, ctrl *wallet.Controller, err error) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"state": ctrl.Snapshot()})
		return
	}
	c.JSON(StatusFor(err), gin.H{
		"error": domain.AsError(err), // Failure, as surfaced
		"state": ctrl.Snapshot(),     // Current state for re-render
	})
}
