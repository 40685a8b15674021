package domain

import (
	"fmt"
	"unicode/utf8"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places money is stored with.
const AmountScale = 2

// MaxAmount is the largest value a NUMERIC(15,2) column can hold.
var MaxAmount = decimal.RequireFromString("9999999999999.99")

// ValidateAmount checks that amount is a positive money value with at most two decimals.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("%w: amount must have at most %d decimal places", apperrors.ErrInvalidAmount, AmountScale)
	}
	if amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: amount exceeds %s", apperrors.ErrInvalidAmount, MaxAmount.StringFixed(AmountScale))
	}
	return nil
}

// MaxDescriptionLength is the longest description, in characters, a ledger entry can carry.
const MaxDescriptionLength = 255

// ValidateDescription checks that a description fits its column.
func ValidateDescription(description string) error {
	if n := utf8.RuneCountInString(description); n > MaxDescriptionLength {
		return fmt.Errorf("%w: description has %d characters, at most %d allowed", apperrors.ErrValidation, n, MaxDescriptionLength)
	}
	return nil
}
