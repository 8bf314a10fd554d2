package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKindAndReason(t *testing.T) {
	conflict := &Error{Kind: KindAuth, Reason: ReasonConflict, Status: 409, Message: "Username already exists"}

	assert.ErrorIs(t, conflict, ErrAuth)
	assert.ErrorIs(t, conflict, ErrConflict)
	assert.NotErrorIs(t, conflict, ErrInvalidCredentials)
	assert.NotErrorIs(t, conflict, ErrNotFound)

	wrapped := fmt.Errorf("signup: %w", conflict)
	assert.ErrorIs(t, wrapped, ErrConflict)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "not_found (404): Wallet not found",
		(&Error{Kind: KindNotFound, Status: 404, Message: "Wallet not found"}).Error())
	assert.Equal(t, "validation: Amount is required.", Validation("Amount is required.").Error())
}

func TestAsError(t *testing.T) {
	assert.Nil(t, AsError(nil))

	nf := &Error{Kind: KindNotFound}
	assert.Same(t, nf, AsError(fmt.Errorf("wrap: %w", nf)))

	plain := errors.New("boom")
	e := AsError(plain)
	assert.Equal(t, KindServer, e.Kind)
	assert.Equal(t, "boom", e.Message)
	assert.ErrorIs(t, e, plain)
}

func TestTransportKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	e := Transport(cause)
	assert.ErrorIs(t, e, ErrTransport)
	assert.ErrorIs(t, e, cause)
	assert.Equal(t, "connection refused", e.Message)
}
