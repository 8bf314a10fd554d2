package wallet

import (
	"context" // Request scoping
	"strings" // Description defaults

	"ewallet/internal/domain" // Domain models and errors

	"github.com/sirupsen/logrus" // Logging
)

// Default descriptions sent when the user leaves the field empty
const (
	defaultRechargeDescription = "Recharge"
	defaultTransferDescription = "Transfer"
)

// Recharge credits the session's own wallet. The amount must be positive with
// at most two decimal places. On success the inputs are cleared and the
// caches are refreshed from the ledger; on failure the inputs are kept for a
// retry. A failed refresh after a successful recharge is surfaced but does not
// turn the recharge into an error.
func (c *Controller) Recharge(ctx context.Context, amount, description string) error {
	release, epoch, err := c.begin(OpMutation)
	if err != nil {
		return err // Another mutation is in flight
	}
	defer release() // Clear the busy flag on every exit path

	// Keep the inputs so a failed submit can be retried
	c.mu.Lock()
	c.st.drafts.Recharge = RechargeDraft{Amount: amount, Description: description}
	c.mu.Unlock()

	// Check preconditions before any network call
	sess, w, _ := c.sessionView()
	if sess == nil || w == nil {
		return c.fail(epoch, opRecharge, domain.Validation(msgLoginFirst), msgRechargeFailed)
	}
	if blank(amount) {
		return c.fail(epoch, opRecharge, domain.Validation(msgRechargeAmount), msgRechargeFailed)
	}
	value, err := domain.ParseAmount(amount)
	if err != nil {
		return c.fail(epoch, opRecharge, err, msgRechargeFailed)
	}

	req := domain.RechargeRequest{
		WalletID:    w.ID,                                               // Own wallet only
		Amount:      value,                                              // Validated amount
		Description: orDefault(description, defaultRechargeDescription), // Free text
	}
	// Credit the wallet
	if err := c.ledger.Recharge(ctx, sess.Token, req); err != nil {
		return c.fail(epoch, opRecharge, err, msgRechargeFailed)
	}

	// Clear the form unless the session ended meanwhile
	c.mu.Lock()
	if c.st.epoch == epoch {
		c.st.drafts.Recharge = RechargeDraft{}
		c.st.succeedLocked(msgRechargeOK)
	}
	c.mu.Unlock()
	countSuccess(opRecharge)
	// Log successful recharge
	logrus.WithFields(logrus.Fields{
		"wallet_id": req.WalletID,                                   // Credited wallet
		"amount":    req.Amount.StringFixed(domain.MinorUnitPlaces), // Recharge amount
		"type":      "recharge",                                     // Transaction type
	}).Info("Recharge transaction")

	_ = c.refresh(ctx, epoch, sess) // Re-fetch balance and history; failure is surfaced, not returned
	return nil
}

// Transfer moves funds from the session's own wallet to toWalletID. A prior
// Preview is not required and not trusted: the server validates the
// destination. Self-transfers are left to the server's policy. On success the
// amount and description are cleared while the destination and its preview
// stay, and the caches are refreshed.
func (c *Controller) Transfer(ctx context.Context, toWalletID, amount, description string) error {
	release, epoch, err := c.begin(OpMutation)
	if err != nil {
		return err // Another mutation is in flight
	}
	defer release() // Clear the busy flag on every exit path

	// Keep the inputs so a failed submit can be retried
	c.mu.Lock()
	c.st.setTransferDestinationLocked(toWalletID)
	c.st.drafts.Transfer.Amount = amount
	c.st.drafts.Transfer.Description = description
	c.mu.Unlock()

	// Check preconditions before any network call
	sess, w, _ := c.sessionView()
	if sess == nil || w == nil {
		return c.fail(epoch, opTransfer, domain.Validation(msgLoginFirst), msgTransferFailed)
	}
	if blank(toWalletID) || blank(amount) {
		return c.fail(epoch, opTransfer, domain.Validation(msgTransferFields), msgTransferFailed)
	}
	to, err := domain.ParseWalletID(toWalletID)
	if err != nil {
		return c.fail(epoch, opTransfer, err, msgTransferFailed)
	}
	value, err := domain.ParseAmount(amount)
	if err != nil {
		return c.fail(epoch, opTransfer, err, msgTransferFailed)
	}

	req := domain.TransferRequest{
		FromWalletID: w.ID,                                               // Always the session's own wallet
		ToWalletID:   to,                                                 // Validated by the ledger
		Amount:       value,                                              // Validated amount
		Description:  orDefault(description, defaultTransferDescription), // Free text
	}
	// Move the funds
	if err := c.ledger.Transfer(ctx, sess.Token, req); err != nil {
		return c.fail(epoch, opTransfer, err, msgTransferFailed)
	}

	// Clear amount and description; destination and preview stay
	c.mu.Lock()
	if c.st.epoch == epoch {
		c.st.drafts.Transfer.Amount = ""
		c.st.drafts.Transfer.Description = ""
		c.st.succeedLocked(msgTransferOK)
	}
	c.mu.Unlock()
	countSuccess(opTransfer)
	// Log successful transfer
	logrus.WithFields(logrus.Fields{
		"from_wallet_id": req.FromWalletID,                               // Sender wallet
		"to_wallet_id":   req.ToWalletID,                                 // Recipient wallet
		"amount":         req.Amount.StringFixed(domain.MinorUnitPlaces), // Transfer amount
		"type":           "transfer",                                     // Transaction type
	}).Info("Transfer transaction")

	_ = c.refresh(ctx, epoch, sess) // Re-fetch balance and history; failure is surfaced, not returned
	return nil
}

// orDefault returns fallback for an empty input
func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
