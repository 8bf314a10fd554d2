package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"ewallet/internal/domain"
	"ewallet/internal/ledger"
	"ewallet/internal/ledgertest"
	"ewallet/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	Error *domain.Error   `json:"error"`
	State wallet.Snapshot `json:"state"`
}

// setupRouter serves the boundary over a controller backed by an in-memory
// ledger where alice holds 100.00
func setupRouter(t *testing.T) (*gin.Engine, *ledgertest.Ledger, *wallet.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	l := ledgertest.New("secret")
	l.Seed("alice", "pw", "Alice", decimal.RequireFromString("100.00"))
	srv := httptest.NewServer(l.Router())
	t.Cleanup(srv.Close)
	ctrl := wallet.New(ledger.NewClient(srv.URL, &http.Client{Timeout: 5 * time.Second}))
	return NewRouter(ctrl), l, ctrl
}

func call(t *testing.T, r *gin.Engine, method, path string, body any) (int, response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func loginAlice(t *testing.T, r *gin.Engine) {
	t.Helper()
	code, _ := call(t, r, http.MethodPost, "/session/login", LoginRequest{Username: "alice", Password: "pw"})
	require.Equal(t, http.StatusOK, code)
}

func TestHealthCheck(t *testing.T) {
	r, _, _ := setupRouter(t)
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	r, _, _ := setupRouter(t)
	loginAlice(t, r)
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ewallet_operations_total")
	assert.Contains(t, w.Body.String(), "ewallet_ledger_request_duration_seconds")
}

func TestStateStartsAnonymous(t *testing.T) {
	r, _, _ := setupRouter(t)

	code, resp := call(t, r, http.MethodGet, "/state", nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, resp.Error)
	assert.Equal(t, domain.PhaseAnonymous, resp.State.Phase)
}

func TestLoginRoutes(t *testing.T) {
	r, _, _ := setupRouter(t)

	code, resp := call(t, r, http.MethodPost, "/session/login", LoginRequest{Username: "alice", Password: "bad"})
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, domain.KindAuth, resp.Error.Kind)
	assert.Equal(t, "Invalid credentials", resp.Error.Message)

	code, resp = call(t, r, http.MethodPost, "/session/login", LoginRequest{Username: "alice", Password: "pw"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.PhaseAuthenticated, resp.State.Phase)
	assert.Equal(t, "100.00", resp.State.Wallet.Balance.StringFixed(2))
	assert.Empty(t, resp.State.Session.Token)

	code, resp = call(t, r, http.MethodDelete, "/session", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.PhaseAnonymous, resp.State.Phase)
}

func TestSignupConflictIs409(t *testing.T) {
	r, _, _ := setupRouter(t)

	code, resp := call(t, r, http.MethodPost, "/session/signup", SignupRequest{Username: "alice", Email: "a@example.com", Password: "pw"})

	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, domain.ReasonConflict, resp.Error.Reason)
}

func TestMalformedBody(t *testing.T) {
	r, _, _ := setupRouter(t)
	req, _ := http.NewRequest(http.MethodPost, "/wallet/recharge", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":{"kind":"validation","message":"Invalid request"}}`, w.Body.String())
}

func TestWalletRoutes(t *testing.T) {
	r, l, _ := setupRouter(t)
	bob := l.AddWallet("Bob", decimal.Zero)
	loginAlice(t, r)
	bobID := strconv.FormatInt(bob, 10)

	code, resp := call(t, r, http.MethodPost, "/wallet/recharge", RechargeRequest{Amount: "0.001"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, domain.KindValidation, resp.Error.Kind)

	code, resp = call(t, r, http.MethodPost, "/wallet/recharge", RechargeRequest{Amount: "50.00"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "150.00", resp.State.Wallet.Balance.StringFixed(2))
	assert.Len(t, resp.State.Transactions, 1)

	code, resp = call(t, r, http.MethodPut, "/wallet/transfer/draft", TransferRequest{ToWalletID: bobID, Amount: "20"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "20", resp.State.Drafts.Transfer.Amount)

	code, resp = call(t, r, http.MethodPost, "/wallet/preview", PreviewRequest{ToWalletID: bobID})
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.State.Preview)
	assert.Equal(t, "Bob", resp.State.Preview.OwnerName)

	code, resp = call(t, r, http.MethodPost, "/wallet/transfer", TransferRequest{ToWalletID: "999999", Amount: "10"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, domain.KindNotFound, resp.Error.Kind)

	code, resp = call(t, r, http.MethodPost, "/wallet/transfer", TransferRequest{ToWalletID: bobID, Amount: "500"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, domain.KindInsufficientFunds, resp.Error.Kind)

	code, resp = call(t, r, http.MethodPost, "/wallet/transfer", TransferRequest{ToWalletID: bobID, Amount: "20"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "130.00", resp.State.Wallet.Balance.StringFixed(2))

	code, resp = call(t, r, http.MethodPost, "/wallet/reload", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.State.Transactions, 2)
}

func TestBusySubmitIs409(t *testing.T) {
	r, l, ctrl := setupRouter(t)
	loginAlice(t, r)
	gate := l.Gate(ledgertest.CallRecharge)
	done := make(chan int, 1)
	go func() {
		req, _ := http.NewRequest(http.MethodPost, "/wallet/recharge", bytes.NewBufferString(`{"amount":"5"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		done <- w.Code
	}()
	select {
	case <-gate.Entered():
	case <-time.After(5 * time.Second):
		t.Fatal("recharge never reached the ledger")
	}

	code, resp := call(t, r, http.MethodPost, "/wallet/transfer", TransferRequest{ToWalletID: "1", Amount: "5"})
	assert.Equal(t, http.StatusConflict, code)
	assert.ErrorIs(t, resp.Error, domain.ErrBusy)
	assert.True(t, resp.State.Busy.Mutation)

	// The controller rejects duplicates on its own too
	err := ctrl.Recharge(context.Background(), "5", "")
	assert.ErrorIs(t, err, domain.ErrBusy)
	assert.Equal(t, http.StatusConflict, StatusFor(err))

	gate.Release()
	assert.Equal(t, http.StatusOK, <-done)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.Validation("x"), http.StatusBadRequest},
		{&domain.Error{Kind: domain.KindAuth, Reason: domain.ReasonInvalidCredentials}, http.StatusUnauthorized},
		{&domain.Error{Kind: domain.KindAuth, Reason: domain.ReasonConflict}, http.StatusConflict},
		{&domain.Error{Kind: domain.KindNotFound}, http.StatusNotFound},
		{&domain.Error{Kind: domain.KindInsufficientFunds}, http.StatusUnprocessableEntity},
		{&domain.Error{Kind: domain.KindServer}, http.StatusBadGateway},
		{domain.Transport(errors.New("timeout")), http.StatusGatewayTimeout},
		{domain.ErrBusy, http.StatusConflict},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}
