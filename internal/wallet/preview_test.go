package wallet

import (
	"context"
	"strconv"
	"testing"

	"ewallet/internal/domain"
	"ewallet/internal/ledgertest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func TestPreviewResolvesOwner(t *testing.T) {
	f := setup(t)
	f.l.SetWalletID(7)
	f.l.AddWallet("Alice", decimal.RequireFromString("12.00"))
	f.login(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Recharge(ctx, "10", ""))
	before := f.ctrl.Snapshot()
	require.Len(t, before.Transactions, 1)

	require.NoError(t, f.ctrl.Preview(ctx, "7"))

	snap := f.ctrl.Snapshot()
	require.NotNil(t, snap.Preview)
	assert.Equal(t, domain.ReceiverPreview{WalletID: 7, OwnerName: "Alice"}, *snap.Preview)
	assert.Equal(t, before.Wallet, snap.Wallet, "own wallet cache untouched")
	assert.Equal(t, "110.00", snap.Wallet.Balance.StringFixed(2))
	assert.Equal(t, before.Transactions, snap.Transactions)

	err := f.ctrl.Preview(ctx, "999999")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	snap = f.ctrl.Snapshot()
	assert.Equal(t, before.Wallet, snap.Wallet)
	assert.Equal(t, before.Transactions, snap.Transactions)
	assert.Nil(t, snap.Preview)
	assert.Equal(t, "Wallet not found", snap.Status.Error.Message)
	assert.Equal(t, "999999", snap.Drafts.Transfer.ToWalletID)
}

func TestPreviewInvalidIDClearsPreview(t *testing.T) {
	f := setup(t)
	bob := f.l.AddWallet("Bob", decimal.Zero)
	f.login(t)
	ctx := context.Background()
	require.NoError(t, f.ctrl.Preview(ctx, formatID(bob)))

	err := f.ctrl.Preview(ctx, "abc")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Nil(t, f.ctrl.Snapshot().Preview)
}

func TestPreviewDroppedWhenDestinationChanges(t *testing.T) {
	f := setup(t)
	bob := f.l.AddWallet("Bob", decimal.Zero)
	f.login(t)
	require.NoError(t, f.ctrl.Preview(context.Background(), formatID(bob)))

	f.ctrl.SetTransferDraft(TransferDraft{ToWalletID: formatID(bob), Amount: "5"})
	assert.NotNil(t, f.ctrl.Snapshot().Preview, "same destination keeps the preview")

	f.ctrl.SetTransferDraft(TransferDraft{ToWalletID: formatID(bob + 1), Amount: "5"})
	snap := f.ctrl.Snapshot()
	assert.Nil(t, snap.Preview)
	assert.Equal(t, TransferDraft{ToWalletID: formatID(bob + 1), Amount: "5"}, snap.Drafts.Transfer)
}

func TestPreviewDiscardedWhenDestinationEditedMidLookup(t *testing.T) {
	f := setup(t)
	bob := f.l.AddWallet("Bob", decimal.Zero)
	f.login(t)
	gate := f.l.Gate(ledgertest.CallWallet)
	done := make(chan error, 1)
	go func() { done <- f.ctrl.Preview(context.Background(), formatID(bob)) }()
	waitEntered(t, gate)

	f.ctrl.SetTransferDraft(TransferDraft{ToWalletID: "42"})
	gate.Release()

	require.NoError(t, <-done)
	assert.Nil(t, f.ctrl.Snapshot().Preview)
}

func TestPreviewWithoutSession(t *testing.T) {
	f := setup(t, ledgertest.WithoutTokens())

	require.NoError(t, f.ctrl.Preview(context.Background(), formatID(f.walletID)))

	snap := f.ctrl.Snapshot()
	require.NotNil(t, snap.Preview)
	assert.Equal(t, "Alice", snap.Preview.OwnerName)
	assert.False(t, snap.WalletLoaded)
}
