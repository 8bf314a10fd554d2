package domain

import "github.com/shopspring/decimal" // Money amounts

// Wallet is the authoritative wallet of the active session
type Wallet struct {
	ID        int64           `json:"id"`        // Wallet ID
	OwnerName string          `json:"ownerName"` // Display name of the owner
	Balance   decimal.Decimal `json:"balance"`   // Balance as reported by the ledger
}

// ReceiverPreview is an advisory lookup of a transfer destination.
// It is fetched through the wallet endpoint but never stored as a Wallet.
type ReceiverPreview struct {
	WalletID  int64  `json:"walletId"`  // Looked-up wallet ID
	OwnerName string `json:"ownerName"` // Owner display name at lookup time
}

// PreviewOf converts a fetched wallet into a preview, dropping the balance
func PreviewOf(w Wallet) ReceiverPreview {
	return ReceiverPreview{WalletID: w.ID, OwnerName: w.OwnerName}
}

// RechargeRequest is a validated recharge submission
type RechargeRequest struct {
	WalletID    int64           // Wallet to credit
	Amount      decimal.Decimal // Positive, at most two decimal places
	Description string          // Free text, defaults to "Recharge"
}

// TransferRequest is a validated transfer submission
type TransferRequest struct {
	FromWalletID int64           // The session's own wallet
	ToWalletID   int64           // Destination wallet, validated by the server
	Amount       decimal.Decimal // Positive, at most two decimal places
	Description  string          // Free text, defaults to "Transfer"
}
