// Package wallet is the client-side orchestrator of the e-wallet: it owns the
// session, the cached wallet and transaction list, the receiver preview, the
// form drafts and the status surface, and it coordinates every call to the
// remote ledger services.
//
// All state lives in one Controller. Views read it through Snapshot and change
// it only through the Controller's operations. Remote calls are made without
// holding the state lock; results are applied afterwards and dropped when the
// session they belong to has ended in the meantime.
package wallet

import (
	"context" // Request scoping
	"sync"    // State lock

	"ewallet/internal/domain" // Domain models and errors
)

// Ledger is the remote boundary the controller depends on
type Ledger interface {
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.Session, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error)
	GetWallet(ctx context.Context, token string, walletID int64) (*domain.Wallet, error)
	GetTransactions(ctx context.Context, token string, walletID int64) ([]domain.Transaction, error)
	Recharge(ctx context.Context, token string, req domain.RechargeRequest) error
	Transfer(ctx context.Context, token string, req domain.TransferRequest) error
}

// state is the whole application state; guarded by Controller.mu
type state struct {
	phase        domain.Phase
	session      *domain.Session
	wallet       *domain.Wallet
	transactions []domain.Transaction
	refreshErr   *domain.Error // Last failed refresh, nil after a good one
	preview      *domain.ReceiverPreview
	drafts       Drafts
	status       Status
	busy         [opClassCount]bool
	epoch        uint64 // Bumped whenever the session-scoped state is reset
}

// Controller owns the application state and runs every operation
type Controller struct {
	ledger Ledger
	mu     sync.Mutex
	st     state
}

// New returns an anonymous controller
func New(ledger Ledger) *Controller {
	return &Controller{
		ledger: ledger,
		st:     state{phase: domain.PhaseAnonymous, transactions: []domain.Transaction{}},
	}
}

// Snapshot is a detached copy of the state for views
type Snapshot struct {
	Phase        domain.Phase            `json:"phase"`
	Session      *domain.Session         `json:"session,omitempty"`
	Wallet       *domain.Wallet          `json:"wallet,omitempty"`
	WalletLoaded bool                    `json:"walletLoaded"`           // False means "render loading"
	RefreshError *domain.Error           `json:"refreshError,omitempty"` // Set means "render last value plus banner"
	Transactions []domain.Transaction    `json:"transactions"`
	Preview      *domain.ReceiverPreview `json:"preview,omitempty"`
	Drafts       Drafts                  `json:"drafts"`
	Status       Status                  `json:"status"`
	Busy         BusyFlags               `json:"busy"`
}

// Snapshot copies the current state. The session token is never exposed.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := &c.st
	snap := Snapshot{
		Phase:        s.phase,
		WalletLoaded: s.wallet != nil,
		RefreshError: s.refreshErr,
		Transactions: append([]domain.Transaction{}, s.transactions...),
		Drafts:       s.drafts,
		Status:       s.status,
		Busy:         s.busyFlags(),
	}
	if s.session != nil {
		sess := *s.session
		sess.Token = ""
		snap.Session = &sess
	}
	if s.wallet != nil {
		w := *s.wallet
		snap.Wallet = &w
	}
	if s.preview != nil {
		p := *s.preview
		snap.Preview = &p
	}
	return snap
}

// Phase reports the Session Manager state
func (c *Controller) Phase() domain.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.phase
}

// resetSessionScopedLocked drops session, caches and preview; c.mu must be held
func (s *state) resetSessionScopedLocked() {
	s.session = nil
	s.wallet = nil
	s.transactions = []domain.Transaction{}
	s.refreshErr = nil
	s.preview = nil
	s.epoch++
}

// sessionView returns the token and own wallet for a follow-up call
func (c *Controller) sessionView() (sess *domain.Session, wallet *domain.Wallet, epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.st.session != nil {
		cp := *c.st.session
		sess = &cp
	}
	if c.st.wallet != nil {
		cp := *c.st.wallet
		wallet = &cp
	}
	return sess, wallet, c.st.epoch
}
