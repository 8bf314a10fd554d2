package wallet

import (
	"ewallet/internal/domain" // Error taxonomy

	"github.com/sirupsen/logrus" // Logging
)

// Status is the single-slot success/error surface. At most one slot is set.
type Status struct {
	Message string        `json:"message,omitempty"` // Success text
	Error   *domain.Error `json:"error,omitempty"`   // Failure, passed through as received
}

// Default messages used when a collaborator supplies none
const (
	msgSignupFailed   = "Error during signup"
	msgLoginFailed    = "Error during login"
	msgRefreshFailed  = "Error loading wallet data"
	msgPreviewFailed  = "Error loading receiver wallet"
	msgRechargeFailed = "Error during recharge"
	msgTransferFailed = "Error during transfer"

	msgSignupOK   = "Signup successful. Logged in!"
	msgLoginOK    = "Login successful."
	msgRechargeOK = "Recharge successful."
	msgTransferOK = "Transfer successful."

	msgLoginFirst     = "Please login first."
	msgRechargeAmount = "Please enter recharge amount."
	msgTransferFields = "Please fill destination wallet ID and amount."
)

// surfaceError normalises err and fills the default message when the
// collaborator gave none. err itself is not modified.
func surfaceError(err error, fallback string) *domain.Error {
	e := domain.AsError(err)
	if e.Message != "" {
		return e
	}
	cp := *e
	cp.Message = fallback
	return &cp
}

// failLocked writes the error slot; c.mu must be held
func (s *state) failLocked(e *domain.Error) {
	s.status = Status{Error: e}
}

// succeedLocked writes the success slot; c.mu must be held
func (s *state) succeedLocked(msg string) {
	s.status = Status{Message: msg}
}

// fail surfaces err for op unless the session changed since epoch
func (c *Controller) fail(epoch uint64, op string, err error, fallback string) *domain.Error {
	e := surfaceError(err, fallback)
	opsTotal.WithLabelValues(op, string(e.Kind)).Inc()
	logrus.WithFields(logrus.Fields{
		"operation": op,
		"kind":      e.Kind,
		"status":    e.Status,
		"error":     e.Message,
	}).Warn("operation failed")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.epoch != epoch {
		return e // Session ended meanwhile; nothing to show it on
	}
	c.st.failLocked(e)
	return e
}
