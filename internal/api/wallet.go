package api

import (
	"net/http" // HTTP status codes

	"ewallet/internal/domain" // Validation errors
	"ewallet/internal/wallet" // Orchestrator

	"github.com/gin-gonic/gin" // Gin web framework
)

// Amounts and wallet IDs travel as the text the user typed; the controller
// validates them.

// RechargeRequest is the recharge form submit
type RechargeRequest struct {
	Amount      string `json:"amount"`      // e.g. "50.00"
	Description string `json:"description"` // Optional
}

// TransferRequest is the transfer form submit
type TransferRequest struct {
	ToWalletID  string `json:"toWalletId"`  // Destination wallet
	Amount      string `json:"amount"`      // e.g. "30.00"
	Description string `json:"description"` // Optional
}

// PreviewRequest asks for the owner name of a destination wallet
type PreviewRequest struct {
	ToWalletID string `json:"toWalletId"` // Destination wallet
}

// bind decodes the JSON body, answering 400 on malformed input
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.Validation("Invalid request")})
		return false
	}
	return true
}

// RechargeHandler credits the session's wallet
func RechargeHandler(ctrl *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RechargeRequest
		if !bind(c, &req) {
			return
		}
		err := ctrl.Recharge(operationContext(c), req.Amount, req.Description)
		respond(c, ctrl, err)
	}
}

// TransferHandler sends funds to another wallet
func TransferHandler(ctrl *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransferRequest
		if !bind(c, &req) {
			return
		}
		err := ctrl.Transfer(operationContext(c), req.ToWalletID, req.Amount, req.Description)
		respond(c, ctrl, err)
	}
}

// PreviewHandler resolves the receiver name for a destination
func PreviewHandler(ctrl *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PreviewRequest
		if !bind(c, &req) {
			return
		}
		err := ctrl.Preview(operationContext(c), req.ToWalletID)
		respond(c, ctrl, err)
	}
}

// TransferDraftHandler stores the transfer form as the user types
func TransferDraftHandler(ctrl *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransferRequest
		if !bind(c, &req) {
			return
		}
		ctrl.SetTransferDraft(wallet.TransferDraft{
			ToWalletID:  req.ToWalletID,
			Amount:      req.Amount,
			Description: req.Description,
		})
		respond(c, ctrl, nil)
	}
}

// ReloadHandler refreshes the wallet and history on demand
func ReloadHandler(ctrl *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := ctrl.Reload(operationContext(c))
		respond(c, ctrl, err)
	}
}
