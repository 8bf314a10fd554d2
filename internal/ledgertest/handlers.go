package ledgertest

import (
	"encoding/json" // Numeric money fields
	"net/http"      // HTTP status codes
	"strconv"       // Path parameters
	"strings"       // Username normalisation
	"time"          // Token lifetime

	"ewallet/internal/utils" // JWT helpers

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Money amounts
	"golang.org/x/crypto/bcrypt"    // Password hashing
)

// sessionTTL is the lifetime of issued tokens
const sessionTTL = 24 * time.Hour

// signupRequest is the signup payload
type signupRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// loginRequest is the login payload
type loginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// rechargeRequest is the recharge payload
type rechargeRequest struct {
	Amount      decimal.Decimal `json:"amount"`      // Credit amount
	Description string          `json:"description"` // Free text
}

// transferRequest is the transfer payload
type transferRequest struct {
	FromWalletID int64           `json:"fromWalletId"` // Source wallet
	ToWalletID   int64           `json:"toWalletId"`   // Destination wallet
	Amount       decimal.Decimal `json:"amount"`       // Transfer amount
	Description  string          `json:"description"`  // Free text
}

// money renders an amount as a JSON number with two decimals
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// sessionPayload builds the body returned by signup and login
func (l *Ledger) sessionPayload(u *user) (gin.H, error) {
	token, err := utils.GenerateJWT(u.ID, u.WalletID, l.secret, sessionTTL)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"userId":        u.ID,
		"username":      u.Username,
		"email":         u.Email,
		"walletId":      u.WalletID,
		"walletBalance": money(l.wallets[u.WalletID].Balance),
		"token":         token,
	}, nil
}

// signupHandler registers a user and logs them in
func (l *Ledger) signupHandler(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Username, email and password are required")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to hash password")
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.users[strings.ToLower(req.Username)]; exists {
		c.String(http.StatusConflict, "Username already exists")
		return
	}
	u := l.createUserLocked(req.Username, req.Email, hash, req.Username)
	body, err := l.sessionPayload(u)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to generate token")
		return
	}
	c.JSON(http.StatusCreated, body)
}

// loginHandler checks credentials and returns the session
func (l *Ledger) loginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request")
		return
	}
	l.mu.Lock()
	u, ok := l.users[strings.ToLower(req.Username)]
	l.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(u.Hash, []byte(req.Password)) != nil {
		c.String(http.StatusUnauthorized, "Invalid credentials")
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	body, err := l.sessionPayload(u)
	if err != nil {
		c.String(http.StatusInternalServerError, "Failed to generate token")
		return
	}
	c.JSON(http.StatusOK, body)
}

// walletHandler returns any wallet's public details
func (l *Ledger) walletHandler(c *gin.Context) {
	id, ok := walletParam(c)
	if !ok {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	w, exists := l.wallets[id]
	if !exists {
		c.String(http.StatusNotFound, "Wallet not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": w.ID, "ownerName": w.OwnerName, "balance": money(w.Balance)})
}

// transactionsHandler lists a wallet's entries newest first
func (l *Ledger) transactionsHandler(c *gin.Context) {
	id, ok := walletParam(c)
	if !ok {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.wallets[id]; !exists {
		c.String(http.StatusNotFound, "Wallet not found")
		return
	}
	list := make([]gin.H, 0, len(l.entries[id]))
	for _, e := range l.entries[id] {
		list = append(list, gin.H{
			"id":           e.ID,
			"type":         e.Type,
			"amount":       money(e.Amount),
			"balanceAfter": money(e.BalanceAfter),
			"description":  e.Description,
			"reference":    e.Reference,
			"createdAt":    e.CreatedAt.Format(localDateTime),
		})
	}
	c.JSON(http.StatusOK, list)
}

// rechargeHandler credits a wallet
func (l *Ledger) rechargeHandler(c *gin.Context) {
	id, ok := walletParam(c)
	if !ok {
		return
	}
	var req rechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Amount.IsPositive() {
		c.String(http.StatusBadRequest, "Invalid amount")
		return
	}
	if !l.ownsWallet(c, id) {
		c.String(http.StatusForbidden, "Not your wallet")
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	w, exists := l.wallets[id]
	if !exists {
		c.String(http.StatusNotFound, "Wallet not found")
		return
	}
	w.Balance = w.Balance.Add(req.Amount)
	l.appendEntryLocked(id, TypeRecharge, req.Amount, req.Description, "RCH")
	c.JSON(http.StatusOK, gin.H{"message": "Recharge successful"})
}

// transferHandler moves funds between two wallets
func (l *Ledger) transferHandler(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Amount.IsPositive() {
		c.String(http.StatusBadRequest, "Invalid amount")
		return
	}
	if !l.ownsWallet(c, req.FromWalletID) {
		c.String(http.StatusForbidden, "Not your wallet")
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	from, ok := l.wallets[req.FromWalletID]
	if !ok {
		c.String(http.StatusNotFound, "Source wallet not found")
		return
	}
	to, ok := l.wallets[req.ToWalletID]
	if !ok {
		c.String(http.StatusNotFound, "Destination wallet not found")
		return
	}
	if req.FromWalletID == req.ToWalletID {
		c.String(http.StatusBadRequest, "Cannot transfer to the same wallet")
		return
	}
	if from.Balance.LessThan(req.Amount) {
		c.String(http.StatusBadRequest, "Insufficient funds")
		return
	}
	from.Balance = from.Balance.Sub(req.Amount)
	to.Balance = to.Balance.Add(req.Amount)
	l.appendEntryLocked(from.ID, TypeTransferOut, req.Amount, req.Description, "TRF")
	l.appendEntryLocked(to.ID, TypeTransferIn, req.Amount, req.Description, "TRF")
	c.JSON(http.StatusOK, gin.H{"message": "Transfer successful"})
}

// walletParam parses :id, answering 400 on garbage
func walletParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid wallet ID")
		return 0, false
	}
	return id, true
}

// mustHash hashes seed passwords
func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return hash
}
