package api

import (
	"context" // Detached operation contexts

	"ewallet/internal/wallet" // Orchestrator

	"github.com/gin-gonic/gin" // Gin web framework
)

// SignupRequest is the signup form submit
type SignupRequest struct {
	Username string `json:"username"` // Empty fields are reported by the controller
	Email    string `json:"email"`    // Contact email
	Password string `json:"password"` // Never stored
}

// LoginRequest is the login form submit
type LoginRequest struct {
	Username string `json:"username"` // Username
	Password string `json:"password"` // Never stored
}

// operationContext keeps the request's values but not its cancellation:
// an operation that reached the ledger runs to completion even if the
// caller goes away.
func operationContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

// StateHandler returns the current snapshot
func StateHandler(ctrl *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, ctrl, nil)
	}
}

// SignupHandler creates an account and logs it in
func SignupHandler(ctrl *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if !bind(c, &req) {
			return
		}
		err := ctrl.Signup(operationContext(c), req.Username, req.Email, req.Password)
		respond(c, ctrl, err)
	}
}

// LoginHandler authenticates and loads the wallet
func LoginHandler(ctrl *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if !bind(c, &req) {
			return
		}
		err := ctrl.Login(operationContext(c), req.Username, req.Password)
		respond(c, ctrl, err)
	}
}

// LogoutHandler ends the session; it always succeeds
func LogoutHandler(ctrl *wallet.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctrl.Logout()
		respond(c, ctrl, nil)
	}
}
