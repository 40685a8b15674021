package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountType is the product type of a bank account.
type AccountType string

const (
	Checking   AccountType = "Checking"
	Savings    AccountType = "Savings"
	Investment AccountType = "Investment"
)

// AccountTypes lists every supported account type.
var AccountTypes = []AccountType{Checking, Savings, Investment}

// IsValid reports whether t is one of the supported account types.
func (t AccountType) IsValid() bool {
	for _, at := range AccountTypes {
		if t == at {
			return true
		}
	}
	return false
}

// ParseAccountType matches s case-insensitively against the supported account types.
func ParseAccountType(s string) (AccountType, error) {
	for _, at := range AccountTypes {
		if strings.EqualFold(s, string(at)) {
			return at, nil
		}
	}
	return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, s)
}

// Account is a customer's bank account. A user holds at most one account per type.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	AccountNumber string          `json:"accountNumber"` // 10 digit customer facing number
	UserID        string          `json:"userID"`        // Owner
	AccountType   AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"` // Never negative
	AuditFields
}

// IsOwnedBy reports whether userID owns the account.
func (a Account) IsOwnedBy(userID string) bool {
	return a.UserID == userID
}

// CanDebit reports whether amount can be taken from the account without overdrawing it.
func (a Account) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// CanCredit reports whether amount can be added to the account without exceeding MaxAmount.
func (a Account) CanCredit(amount decimal.Decimal) bool {
	return a.Balance.Add(amount).LessThanOrEqual(MaxAmount)
}

// Payee is the public view of an account shown to someone about to pay into it.
type Payee struct {
	AccountNumber string
	AccountType   AccountType
	Name          string // Owner's display name
}
