package domain

import (
	"regexp"  // Plain decimal notation
	"strconv" // Wallet ID parsing
	"strings" // Input trimming

	"github.com/shopspring/decimal" // Money amounts
)

// MinorUnitPlaces is the currency precision accepted from user input
const MinorUnitPlaces = 2

// MaxAmountDigits caps the integer part of a user-entered amount
const MaxAmountDigits = 15

// plainDecimal is an optionally signed decimal without exponent notation
var plainDecimal = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount validates a user-entered amount: present, plain decimal notation,
// positive, at most MaxAmountDigits integer digits and no more than
// MinorUnitPlaces decimal places.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw) // Ignore surrounding blanks
	if raw == "" {
		return decimal.Zero, Validation("Amount is required.")
	}
	// Exponents ("1e30000000") would expand to huge strings on the wire
	if !plainDecimal.MatchString(raw) {
		return decimal.Zero, Validation("Amount must be a number.")
	}
	intPart, fracPart, _ := strings.Cut(strings.TrimLeft(raw, "+-"), ".")
	if len(strings.TrimLeft(intPart, "0")) > MaxAmountDigits {
		return decimal.Zero, Validation("Amount is too large.")
	}
	if len(strings.TrimRight(fracPart, "0")) > MinorUnitPlaces {
		return decimal.Zero, Validation("Amount can have at most 2 decimal places.")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, Validation("Amount must be a number.")
	}
	if !amount.IsPositive() {
		return decimal.Zero, Validation("Amount must be greater than zero.")
	}
	// Trailing zeros beyond the precision are harmless ("1.500")
	return amount.Truncate(MinorUnitPlaces), nil
}

// ParseWalletID validates a user-entered wallet ID
func ParseWalletID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, Validation("Wallet ID is required.")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Validation("Wallet ID must be a positive integer.")
	}
	return id, nil
}
