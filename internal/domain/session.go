package domain

import (
	"time" // Token expiry

	"github.com/shopspring/decimal" // Money amounts
)

// Session is the authenticated identity returned by signup and login
type Session struct {
	UserID        int64           `json:"userId"`              // Remote user ID
	Username      string          `json:"username"`            // Login name
	Email         string          `json:"email"`               // Contact email
	WalletID      int64           `json:"walletId"`            // The session's own wallet
	WalletBalance decimal.Decimal `json:"walletBalance"`       // Balance reported at login, display only
	Token         string          `json:"token,omitempty"`     // Optional bearer token for wallet calls
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"` // Token expiry when the token carries one
}

// Phase is the Session Manager state
type Phase string

const (
	PhaseAnonymous      Phase = "anonymous"      // No session
	PhaseAuthenticating Phase = "authenticating" // Signup or login in flight
	PhaseAuthenticated  Phase = "authenticated"  // Session established
)

// SignupRequest is the payload for creating an account
type SignupRequest struct {
	Username string `json:"username"` // Desired username
	Email    string `json:"email"`    // Contact email
	Password string `json:"password"` // Plain password, never stored by the client
}

// LoginRequest is the payload for authenticating
type LoginRequest struct {
	Username string `json:"username"` // Username
	Password string `json:"password"` // Plain password, never stored by the client
}
