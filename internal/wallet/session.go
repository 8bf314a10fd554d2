package wallet

import (
	"context" // Request scoping
	"strings" // Input checks

	"ewallet/internal/domain" // Domain models and errors

	"github.com/sirupsen/logrus" // Logging
)

// Signup creates an account and logs it in. Empty fields are rejected before
// any network call. Submitting ends any current session.
func (c *Controller) Signup(ctx context.Context, username, email, password string) error {
	release, epoch, err := c.begin(OpAuth)
	if err != nil {
		return err // A session transition or submit is in flight
	}
	defer release() // Clear the busy flag on every exit path

	// Keep the form, never the password
	c.mu.Lock()
	c.st.drafts.Signup = SignupDraft{Username: username, Email: email}
	c.mu.Unlock()

	// Validate input before touching the current session
	if blank(username) || blank(email) || blank(password) {
		return c.fail(epoch, opSignup, domain.Validation("Username, email and password are required."), msgSignupFailed)
	}

	epoch = c.startAuthenticating() // Ends any current session
	sess, err := c.ledger.Signup(ctx, domain.SignupRequest{Username: username, Email: email, Password: password})
	if err != nil {
		// Back to anonymous with the server's message
		return c.authFailed(epoch, opSignup, err, msgSignupFailed)
	}
	if !c.establish(epoch, sess, msgSignupOK, func(s *state) { s.drafts.Signup = SignupDraft{} }) {
		return nil // Logged out while the call was in flight
	}
	countSuccess(opSignup)
	// Log successful signup
	logrus.WithFields(logrus.Fields{
		"user_id":   sess.UserID,   // New user ID
		"wallet_id": sess.WalletID, // New wallet ID
	}).Info("Signup successful")
	_ = c.refresh(ctx, epoch, sess) // Initial load of wallet and history
	return nil
}

// Login authenticates and loads the wallet. Submitting ends any current session.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	release, epoch, err := c.begin(OpAuth)
	if err != nil {
		return err // A session transition or submit is in flight
	}
	defer release() // Clear the busy flag on every exit path

	// Keep the username, never the password
	c.mu.Lock()
	c.st.drafts.Login = LoginDraft{Username: username}
	c.mu.Unlock()

	// Validate input before touching the current session
	if blank(username) || blank(password) {
		return c.fail(epoch, opLogin, domain.Validation("Username and password are required."), msgLoginFailed)
	}

	epoch = c.startAuthenticating() // Ends any current session
	sess, err := c.ledger.Login(ctx, domain.LoginRequest{Username: username, Password: password})
	if err != nil {
		// Back to anonymous with the server's message
		return c.authFailed(epoch, opLogin, err, msgLoginFailed)
	}
	if !c.establish(epoch, sess, msgLoginOK, func(s *state) { s.drafts.Login = LoginDraft{} }) {
		return nil // Logged out while the call was in flight
	}
	countSuccess(opLogin)
	// Log successful login
	logrus.WithFields(logrus.Fields{
		"user_id":   sess.UserID,   // Authenticated user
		"wallet_id": sess.WalletID, // The session's own wallet
	}).Info("Login successful")
	_ = c.refresh(ctx, epoch, sess) // Initial load of wallet and history
	return nil
}

// Logout clears the session, both caches, the preview and the status surface.
// It never fails and is safe to call repeatedly. Results of calls still in
// flight are discarded when they complete.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	hadSession := c.st.session != nil
	c.st.resetSessionScopedLocked()        // Session, caches, preview; bumps the epoch
	c.st.phase = domain.PhaseAnonymous     // Back to anonymous
	c.st.status = Status{}                 // Nothing left to report on
	c.st.drafts.Recharge = RechargeDraft{} // Forms belong to the old session
	c.st.drafts.Transfer = TransferDraft{}
	countSuccess(opLogout)
	logrus.WithField("had_session", hadSession).Info("Logout")
}

// startAuthenticating resets the session-scoped state and enters Authenticating
func (c *Controller) startAuthenticating() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.resetSessionScopedLocked()
	c.st.phase = domain.PhaseAuthenticating
	return c.st.epoch
}

// authFailed returns to Anonymous and surfaces err
func (c *Controller) authFailed(epoch uint64, op string, err error, fallback string) error {
	c.mu.Lock()
	if c.st.epoch == epoch {
		c.st.phase = domain.PhaseAnonymous
	}
	c.mu.Unlock()
	return c.fail(epoch, op, err, fallback)
}

// establish enters Authenticated with sess. It returns false when the attempt
// was superseded by a logout while the call was in flight.
func (c *Controller) establish(epoch uint64, sess *domain.Session, msg string, clearDraft func(*state)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.epoch != epoch {
		logrus.WithField("user_id", sess.UserID).Info("Discarding session established after logout")
		return false
	}
	cp := *sess
	c.st.session = &cp
	c.st.phase = domain.PhaseAuthenticated
	clearDraft(&c.st)
	c.st.succeedLocked(msg)
	return true
}

// blank reports an empty or whitespace-only input
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
