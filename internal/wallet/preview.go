package wallet

import (
	"context" // Request scoping

	"ewallet/internal/domain" // Domain models and errors

	"github.com/sirupsen/logrus" // Logging
)

// Preview resolves a destination wallet ID to its owner's name so the user can
// confirm a transfer target. The result is advisory: the transfer itself is
// validated by the server. The lookup goes through the wallet endpoint but only
// ever writes the preview slot, never the wallet or transaction caches. A
// failed lookup clears any previous preview.
func (c *Controller) Preview(ctx context.Context, destination string) error {
	release, epoch, err := c.begin(OpLookup)
	if err != nil {
		return err // A lookup or session transition is in flight
	}
	defer release() // Clear the busy flag on every exit path

	// The looked-up ID becomes the transfer destination
	c.mu.Lock()
	c.st.setTransferDestinationLocked(destination)
	c.mu.Unlock()

	id, err := domain.ParseWalletID(destination)
	if err != nil {
		// Never leave an old name next to an unresolved ID
		c.clearPreview(epoch)
		return c.fail(epoch, opPreview, err, msgPreviewFailed)
	}

	// Use the session token when there is one; the lookup itself needs no login
	sess, _, _ := c.sessionView()
	token := ""
	if sess != nil {
		token = sess.Token
	}
	w, err := c.ledger.GetWallet(ctx, token, id)
	if err != nil {
		// Unknown or unreachable wallet clears the preview
		c.clearPreview(epoch)
		return c.fail(epoch, opPreview, err, msgPreviewFailed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.epoch != epoch {
		return nil // Session ended meanwhile
	}
	if !previewMatches(id, c.st.drafts.Transfer.ToWalletID) {
		return nil // Destination edited during the lookup; the answer is for an old ID
	}
	p := domain.PreviewOf(*w) // Owner name only, never the balance
	c.st.preview = &p
	countSuccess(opPreview)
	logrus.WithField("wallet_id", id).Debug("Receiver resolved")
	return nil
}

// clearPreview drops the preview unless the session changed since epoch
func (c *Controller) clearPreview(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.epoch == epoch {
		c.st.preview = nil
	}
}
