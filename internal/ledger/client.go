package ledger

import (
	"bytes"         // Request bodies
	"context"       // Request scoping
	"encoding/json" // Wire format
	"errors"        // Context error checks
	"fmt"           // Path building
	"io"            // Body reading
	"net/http"      // Transport
	"strings"       // Body inspection
	"time"          // Latency

	"ewallet/internal/domain" // Domain models and errors
	"ewallet/internal/utils"  // Token helpers

	"github.com/google/uuid"                                  // Idempotency keys
	"github.com/prometheus/client_golang/prometheus"          // Metrics
	"github.com/prometheus/client_golang/prometheus/promauto" // Metric registration
	"github.com/sirupsen/logrus"                              // Logging
)

// Remote call names, used as metric labels and log fields
const (
	CallSignup       = "signup"
	CallLogin        = "login"
	CallWallet       = "get_wallet"
	CallTransactions = "get_transactions"
	CallRecharge     = "recharge"
	CallTransfer     = "transfer"
)

// IdempotencyHeader carries one fresh key per submit attempt
const IdempotencyHeader = "Idempotency-Key"

// MaxResponseBytes caps how much of a ledger response is read
const MaxResponseBytes = 8 << 20

var remoteLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "ewallet_ledger_request_duration_seconds",
	Help:    "Latency of calls to the remote ledger services",
	Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
}, []string{"call", "outcome"})

// Client talks to the remote auth, wallet and transaction services
type Client struct {
	baseURL string       // e.g. http://localhost:8080
	http    *http.Client // Underlying transport
}

// NewClient builds a client; a nil httpClient gets a 30 second default
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Signup creates an account and returns the new session
func (c *Client) Signup(ctx context.Context, req domain.SignupRequest) (*domain.Session, error) {
	var s domain.Session
	if err := c.do(ctx, CallSignup, http.MethodPost, "/api/auth/signup", "", req, &s, false); err != nil {
		return nil, err
	}
	decorateSession(&s)
	return &s, nil
}

// Login authenticates and returns the session
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.Session, error) {
	var s domain.Session
	if err := c.do(ctx, CallLogin, http.MethodPost, "/api/auth/login", "", req, &s, false); err != nil {
		return nil, err
	}
	decorateSession(&s)
	return &s, nil
}

// GetWallet reads wallet details for any wallet ID
func (c *Client) GetWallet(ctx context.Context, token string, walletID int64) (*domain.Wallet, error) {
	var w domain.Wallet
	path := fmt.Sprintf("/api/wallets/%d", walletID)
	if err := c.do(ctx, CallWallet, http.MethodGet, path, token, nil, &w, false); err != nil {
		return nil, err
	}
	return &w, nil
}

// GetTransactions reads the wallet's transactions in ledger order
func (c *Client) GetTransactions(ctx context.Context, token string, walletID int64) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	path := fmt.Sprintf("/api/wallets/%d/transactions", walletID)
	if err := c.do(ctx, CallTransactions, http.MethodGet, path, token, nil, &txs, false); err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []domain.Transaction{} // Normalise JSON null
	}
	return txs, nil
}

// rechargeBody is the wire shape of a recharge
type rechargeBody struct {
	Amount      json.Number `json:"amount"`      // Numeric, two decimals
	Description string      `json:"description"` // Free text
}

// Recharge credits the wallet; the ack body is ignored
func (c *Client) Recharge(ctx context.Context, token string, req domain.RechargeRequest) error {
	body := rechargeBody{
		Amount:      json.Number(req.Amount.StringFixed(domain.MinorUnitPlaces)),
		Description: req.Description,
	}
	path := fmt.Sprintf("/api/wallets/%d/recharge", req.WalletID)
	return c.do(ctx, CallRecharge, http.MethodPost, path, token, body, nil, true)
}

// transferBody is the wire shape of a transfer
type transferBody struct {
	FromWalletID int64       `json:"fromWalletId"` // Source wallet
	ToWalletID   int64       `json:"toWalletId"`   // Destination wallet
	Amount       json.Number `json:"amount"`       // Numeric, two decimals
	Description  string      `json:"description"`  // Free text
}

// Transfer moves funds; the ack body is ignored
func (c *Client) Transfer(ctx context.Context, token string, req domain.TransferRequest) error {
	body := transferBody{
		FromWalletID: req.FromWalletID,
		ToWalletID:   req.ToWalletID,
		Amount:       json.Number(req.Amount.StringFixed(domain.MinorUnitPlaces)),
		Description:  req.Description,
	}
	return c.do(ctx, CallTransfer, http.MethodPost, "/api/wallets/transfer", token, body, nil, true)
}

// do performs one round-trip and maps failures into *domain.Error
func (c *Client) do(ctx context.Context, call, method, path, token string, in, out any, mutating bool) error {
	start := time.Now()
	outcome := "ok"
	defer func() {
		remoteLatency.WithLabelValues(call, outcome).Observe(time.Since(start).Seconds())
	}()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			outcome = "encode_error"
			return &domain.Error{Kind: domain.KindServer, Message: err.Error(), Err: err}
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		outcome = "encode_error"
		return &domain.Error{Kind: domain.KindServer, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if mutating {
		req.Header.Set(IdempotencyHeader, uuid.NewString()) // One key per attempt
	}

	resp, err := c.http.Do(req)
	if err != nil {
		outcome = "transport_error"
		if errors.Is(err, context.Canceled) {
			outcome = "canceled"
		}
		logrus.WithFields(logrus.Fields{"call": call, "path": path, "error": err.Error()}).Warn("ledger call failed")
		return domain.Transport(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		outcome = "transport_error"
		return domain.Transport(err)
	}
	if len(raw) > MaxResponseBytes {
		outcome = "too_large"
		logrus.WithFields(logrus.Fields{"call": call, "path": path}).Warn("ledger response too large")
		return &domain.Error{
			Kind:    domain.KindServer,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("ledger response exceeds %d bytes", MaxResponseBytes),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = fmt.Sprintf("http_%d", resp.StatusCode)
		e := classify(call, resp.StatusCode, raw)
		logrus.WithFields(logrus.Fields{
			"call":   call,
			"path":   path,
			"status": resp.StatusCode,
			"kind":   e.Kind,
		}).Info("ledger call rejected")
		return e
	}

	if out == nil {
		return nil // Ack only
	}
	if err := json.Unmarshal(raw, out); err != nil {
		outcome = "decode_error"
		return &domain.Error{
			Kind:    domain.KindServer,
			Status:  resp.StatusCode,
			Message: "unexpected response from ledger: " + err.Error(),
			Err:     err,
		}
	}
	return nil
}

// classify maps a non-2xx response onto the error taxonomy. The message is the
// body text as sent; it is only inspected to recognise insufficient funds.
func classify(call string, status int, raw []byte) *domain.Error {
	e := &domain.Error{Status: status, Message: strings.TrimSpace(string(raw))}
	if json.Valid(raw) {
		e.Payload = append(json.RawMessage(nil), raw...)
	}
	isAuthCall := call == CallSignup || call == CallLogin
	switch {
	case isAuthCall && (status == http.StatusUnauthorized || status == http.StatusForbidden):
		e.Kind, e.Reason = domain.KindAuth, domain.ReasonInvalidCredentials
	case isAuthCall && status == http.StatusConflict:
		e.Kind, e.Reason = domain.KindAuth, domain.ReasonConflict
	case call == CallLogin && status == http.StatusBadRequest:
		e.Kind, e.Reason = domain.KindAuth, domain.ReasonInvalidCredentials
	case status == http.StatusNotFound:
		e.Kind = domain.KindNotFound
	case status == http.StatusPaymentRequired:
		e.Kind = domain.KindInsufficientFunds
	case status >= 400 && status < 500 && strings.Contains(strings.ToLower(e.Message), "insufficient"):
		e.Kind = domain.KindInsufficientFunds
	case call == CallSignup && status >= 400 && status < 500:
		e.Kind = domain.KindAuth
	default:
		e.Kind = domain.KindServer
	}
	return e
}

// decorateSession fills ExpiresAt from the token when one is present
func decorateSession(s *domain.Session) {
	if s.Token == "" {
		return
	}
	exp, err := utils.TokenExpiry(s.Token)
	if err != nil {
		logrus.WithField("user_id", s.UserID).Debug("session token has no readable expiry")
		return
	}
	s.ExpiresAt = &exp
}
