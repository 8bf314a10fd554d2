package wallet

import (
	"context" // Request scoping

	"ewallet/internal/domain" // Domain models and errors

	"github.com/sirupsen/logrus" // Logging
	"golang.org/x/sync/errgroup" // Concurrent reads
)

// refresh reloads the wallet and its transactions for sess. The two reads are
// issued concurrently and are not a consistent snapshot of each other: a
// transaction landing between them can leave the balance and the list briefly
// out of step until the next refresh. If either read fails, the previous cache
// contents stay in place and the failure is surfaced.
func (c *Controller) refresh(ctx context.Context, epoch uint64, sess *domain.Session) error {
	var (
		w   *domain.Wallet
		txs []domain.Transaction
	)
	// Both reads run at once; the first failure cancels the other
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		w, err = c.ledger.GetWallet(gctx, sess.Token, sess.WalletID)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = c.ledger.GetTransactions(gctx, sess.Token, sess.WalletID)
		return err
	})
	err := g.Wait()

	if err != nil {
		// Keep the stale cache and flag the failed refresh
		e := surfaceError(err, msgRefreshFailed)
		c.mu.Lock()
		if c.st.epoch == epoch {
			c.st.refreshErr = e
		}
		c.mu.Unlock()
		return c.fail(epoch, opRefresh, e, msgRefreshFailed)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.epoch != epoch {
		return nil // Session ended meanwhile
	}
	c.st.wallet = w         // Authoritative balance
	c.st.transactions = txs // Ledger order, never re-sorted
	c.st.refreshErr = nil   // Clear the banner
	countSuccess(opRefresh)
	logrus.WithFields(logrus.Fields{
		"wallet_id":    w.ID,               // Refreshed wallet
		"balance":      w.Balance.String(), // Current balance
		"transactions": len(txs),           // History length
	}).Debug("Wallet refreshed")
	return nil
}

// Reload refreshes the caches on demand, e.g. to reconcile a read skew. It
// shares the mutation busy flag so cache writes stay ordered.
func (c *Controller) Reload(ctx context.Context) error {
	release, epoch, err := c.begin(OpMutation)
	if err != nil {
		return err // A mutation is in flight
	}
	defer release() // Clear the busy flag on every exit path

	// Nothing to reload without a session
	sess, _, _ := c.sessionView()
	if sess == nil {
		return c.fail(epoch, opReload, domain.Validation(msgLoginFirst), msgRefreshFailed)
	}
	if err := c.refresh(ctx, epoch, sess); err != nil {
		return err
	}
	countSuccess(opReload)
	return nil
}
