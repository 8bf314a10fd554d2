// Package ledgertest is an in-memory stand-in for the remote auth, wallet and
// transaction services. It serves the same HTTP contracts as the real ledger
// so clients can be exercised end to end, and it lets tests inject failures,
// block calls mid-flight and count requests. It keeps no persistent state.
package ledgertest

import (
	"fmt"     // Reference formatting
	"strings" // Username normalisation
	"sync"    // Guards all state
	"time"    // Transaction timestamps

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Money amounts
)

// Call names understood by FailNext, DropNext, Gate and Calls
const (
	CallSignup       = "signup"
	CallLogin        = "login"
	CallWallet       = "get_wallet"
	CallTransactions = "get_transactions"
	CallRecharge     = "recharge"
	CallTransfer     = "transfer"
)

// Transaction types written by the double
const (
	TypeRecharge    = "RECHARGE"
	TypeTransferIn  = "TRANSFER_IN"
	TypeTransferOut = "TRANSFER_OUT"
)

// localDateTime is the zone-less layout the double uses for createdAt
const localDateTime = "2006-01-02T15:04:05.000000"

type user struct {
	ID       int64
	Username string
	Email    string
	Hash     []byte // bcrypt hash
	WalletID int64
}

type wallet struct {
	ID        int64
	OwnerName string
	Balance   decimal.Decimal
}

type entry struct {
	ID           int64
	Type         string
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Description  string
	Reference    string
	CreatedAt    time.Time
}

type failure struct {
	status int    // HTTP status, or 0 to drop the connection
	body   string // Raw body
}

// Gate holds calls of one kind until Release is called
type Gate struct {
	entered chan struct{} // Receives once per blocked call
	release chan struct{} // Closed by Release
	once    sync.Once
}

// Entered is signalled each time a call reaches the gate
func (g *Gate) Entered() <-chan struct{} { return g.entered }

// Release lets every held and future call through
func (g *Gate) Release() { g.once.Do(func() { close(g.release) }) }

// Ledger is the in-memory double
type Ledger struct {
	mu           sync.Mutex
	secret       string               // HS256 secret for session tokens
	requireToken bool                 // Wallet routes demand a bearer token
	users        map[string]*user     // By lower-case username
	wallets      map[int64]*wallet    // By wallet ID
	entries      map[int64][]entry    // By wallet ID, newest first
	failures     map[string][]failure // Queued per call
	gates        map[string]*Gate     // Active gate per call
	calls        map[string]int       // Request count per call
	idemKeys     map[string][]string  // Idempotency keys seen per call
	nextUser     int64
	nextWallet   int64
	nextEntry    int64
	now          func() time.Time
}

// Option configures a Ledger
type Option func(*Ledger)

// WithoutTokens serves wallet routes without bearer authentication
func WithoutTokens() Option {
	return func(l *Ledger) { l.requireToken = false }
}

// New builds an empty ledger signing tokens with secret
func New(secret string, opts ...Option) *Ledger {
	l := &Ledger{
		secret:       secret,
		requireToken: true,
		users:        make(map[string]*user),
		wallets:      make(map[int64]*wallet),
		entries:      make(map[int64][]entry),
		failures:     make(map[string][]failure),
		gates:        make(map[string]*Gate),
		calls:        make(map[string]int),
		idemKeys:     make(map[string][]string),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Router returns the gin engine serving the remote contracts
func (l *Ledger) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	auth := r.Group("/api/auth")
	auth.POST("/signup", l.intercept(CallSignup), l.signupHandler)
	auth.POST("/login", l.intercept(CallLogin), l.loginHandler)

	wallets := r.Group("/api/wallets")
	if l.requireToken {
		wallets.Use(l.bearerAuth())
	}
	wallets.POST("/transfer", l.intercept(CallTransfer), l.transferHandler)
	wallets.GET("/:id", l.intercept(CallWallet), l.walletHandler)
	wallets.GET("/:id/transactions", l.intercept(CallTransactions), l.transactionsHandler)
	wallets.POST("/:id/recharge", l.intercept(CallRecharge), l.rechargeHandler)
	return r
}

// Seed registers a user with a wallet holding balance and returns both IDs
func (l *Ledger) Seed(username, password, ownerName string, balance decimal.Decimal) (userID, walletID int64) {
	hash := mustHash(password)
	l.mu.Lock()
	defer l.mu.Unlock()
	u := l.createUserLocked(username, username+"@example.com", hash, ownerName)
	l.wallets[u.WalletID].Balance = balance
	return u.ID, u.WalletID
}

// AddWallet registers a bare wallet with no login, e.g. a transfer target
func (l *Ledger) AddWallet(ownerName string, balance decimal.Decimal) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextWallet++
	l.wallets[l.nextWallet] = &wallet{ID: l.nextWallet, OwnerName: ownerName, Balance: balance}
	return l.nextWallet
}

// SetWalletID forces the next wallet ID, so tests can reproduce fixed IDs
func (l *Ledger) SetWalletID(next int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextWallet = next - 1
}

// Balance reports the ledger-side balance of a wallet
func (l *Ledger) Balance(walletID int64) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	if w, ok := l.wallets[walletID]; ok {
		return w.Balance
	}
	return decimal.Zero
}

// FailNext makes the next request of call answer with status and body
func (l *Ledger) FailNext(call string, status int, body string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[call] = append(l.failures[call], failure{status: status, body: body})
}

// DropNext makes the next request of call lose its connection
func (l *Ledger) DropNext(call string) {
	l.FailNext(call, 0, "")
}

// Gate blocks requests of call until the returned gate is released
func (l *Ledger) Gate(call string) *Gate {
	g := &Gate{entered: make(chan struct{}, 16), release: make(chan struct{})}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gates[call] = g
	return g
}

// Calls reports how many requests of call were received
func (l *Ledger) Calls(call string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[call]
}

// IdempotencyKeys returns the keys seen for call, in arrival order
func (l *Ledger) IdempotencyKeys(call string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.idemKeys[call]...)
}

// createUserLocked adds a user and its wallet; l.mu must be held
func (l *Ledger) createUserLocked(username, email string, hash []byte, ownerName string) *user {
	l.nextUser++
	l.nextWallet++
	u := &user{
		ID:       l.nextUser,
		Username: strings.ToLower(username),
		Email:    email,
		Hash:     hash,
		WalletID: l.nextWallet,
	}
	l.users[u.Username] = u
	l.wallets[u.WalletID] = &wallet{ID: u.WalletID, OwnerName: ownerName, Balance: decimal.Zero}
	return u
}

// appendEntryLocked records a ledger entry newest first; l.mu must be held
func (l *Ledger) appendEntryLocked(walletID int64, typ string, amount decimal.Decimal, description, prefix string) {
	l.nextEntry++
	e := entry{
		ID:           l.nextEntry,
		Type:         typ,
		Amount:       amount,
		BalanceAfter: l.wallets[walletID].Balance,
		Description:  description,
		Reference:    fmt.Sprintf("%s-%06d", prefix, l.nextEntry),
		CreatedAt:    l.now().UTC(),
	}
	l.entries[walletID] = append([]entry{e}, l.entries[walletID]...)
}
