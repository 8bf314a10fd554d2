package wallet

import "ewallet/internal/domain" // Wallet ID parsing

// Drafts are the form inputs the controller keeps between submits.
// Passwords are never kept.
type Drafts struct {
	Login    LoginDraft    `json:"login"`
	Signup   SignupDraft   `json:"signup"`
	Recharge RechargeDraft `json:"recharge"`
	Transfer TransferDraft `json:"transfer"`
}

// LoginDraft is the login form
type LoginDraft struct {
	Username string `json:"username"`
}

// SignupDraft is the signup form
type SignupDraft struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RechargeDraft is the recharge form
type RechargeDraft struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// TransferDraft is the transfer form; ToWalletID also feeds the receiver lookup
type TransferDraft struct {
	ToWalletID  string `json:"toWalletId"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// SetTransferDraft replaces the transfer form. Pointing it at a different
// destination drops the preview so a resolved name is never shown next to an
// unresolved ID.
func (c *Controller) SetTransferDraft(d TransferDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.setTransferDestinationLocked(d.ToWalletID)
	c.st.drafts.Transfer = d
}

// SetRechargeDraft replaces the recharge form
func (c *Controller) SetRechargeDraft(d RechargeDraft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.st.drafts.Recharge = d
}

// setTransferDestinationLocked updates the destination, dropping a preview
// that no longer matches; c.mu must be held
func (s *state) setTransferDestinationLocked(raw string) {
	if s.preview != nil && !previewMatches(s.preview.WalletID, raw) {
		s.preview = nil
	}
	s.drafts.Transfer.ToWalletID = raw
}

// previewMatches reports whether raw names the same wallet as id
func previewMatches(id int64, raw string) bool {
	parsed, err := domain.ParseWalletID(raw)
	return err == nil && parsed == id
}
