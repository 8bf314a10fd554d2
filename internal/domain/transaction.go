package domain

import (
	"bytes"   // JSON token inspection
	"strconv" // Unquoting JSON strings
	"time"    // Timestamps

	"github.com/shopspring/decimal" // Money amounts
)

// TransactionType is owned by the ledger; the client never validates it
type TransactionType string

const (
	TxRecharge    TransactionType = "RECHARGE"     // Credit to own wallet
	TxTransferIn  TransactionType = "TRANSFER_IN"  // Incoming transfer
	TxTransferOut TransactionType = "TRANSFER_OUT" // Outgoing transfer
)

// Transaction Model, immutable once returned by the ledger
type Transaction struct {
	ID           int64           `json:"id"`           // Ledger transaction ID
	Type         TransactionType `json:"type"`         // Transaction type
	Amount       decimal.Decimal `json:"amount"`       // Transaction amount
	BalanceAfter decimal.Decimal `json:"balanceAfter"` // Wallet balance after this entry
	Description  string          `json:"description"`  // Free text
	Reference    string          `json:"reference"`    // Ledger reference
	CreatedAt    Timestamp       `json:"createdAt"`    // Creation time
}

// Timestamp accepts RFC 3339 as well as zone-less ISO-8601 timestamps, which
// some ledgers emit for local date-times. Zone-less values are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON parses a JSON string or null
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

// MarshalJSON writes RFC 3339
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.UTC().Format(time.RFC3339Nano))), nil
}
