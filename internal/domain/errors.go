package domain

import (
	"encoding/json" // Raw error payloads
	"errors"        // errors.As
	"fmt"           // Error formatting
)

// Kind classifies every error the orchestrator can surface
type Kind string

const (
	KindValidation        Kind = "validation"         // Client-detected, never reaches the server
	KindAuth              Kind = "auth"               // Signup or login rejected
	KindNotFound          Kind = "not_found"          // Unknown wallet ID
	KindInsufficientFunds Kind = "insufficient_funds" // Server-reported
	KindServer            Kind = "server"             // 5xx, unexpected 4xx or unexpected shape
	KindTransport         Kind = "transport"          // No response from the remote service
	KindBusy              Kind = "busy"               // Duplicate submit while in flight
)

// AuthReason refines KindAuth
type AuthReason string

const (
	ReasonInvalidCredentials AuthReason = "invalid_credentials" // Login rejected
	ReasonConflict           AuthReason = "conflict"            // Signup rejected, user exists
)

// Error is the single error type produced by the ledger client and the orchestrator
type Error struct {
	Kind    Kind            `json:"kind"`              // Taxonomy class
	Reason  AuthReason      `json:"reason,omitempty"`  // Set for KindAuth only
	Status  int             `json:"status,omitempty"`  // HTTP status of the remote response, 0 if none
	Message string          `json:"message"`           // Verbatim server text or client message
	Payload json.RawMessage `json:"payload,omitempty"` // Raw server body when it was JSON
	Err     error           `json:"-"`                 // Underlying cause, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause
func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind, and on Reason when the target sets one
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Sentinels for errors.Is
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrAuth               = &Error{Kind: KindAuth}
	ErrInvalidCredentials = &Error{Kind: KindAuth, Reason: ReasonInvalidCredentials}
	ErrConflict           = &Error{Kind: KindAuth, Reason: ReasonConflict}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInsufficientFunds  = &Error{Kind: KindInsufficientFunds}
	ErrServer             = &Error{Kind: KindServer}
	ErrTransport          = &Error{Kind: KindTransport}
	ErrBusy               = &Error{Kind: KindBusy, Message: "operation already in progress"}
)

// Validation builds a client-side validation error
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Transport wraps a network failure
func Transport(err error) *Error {
	return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
}

// AsError normalises any error into *Error, classifying unknown errors as KindServer
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindServer, Message: err.Error(), Err: err}
}
