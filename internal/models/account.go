package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors the account_type check constraint.
type AccountType string

const (
	Checking   AccountType = "Checking"
	Savings    AccountType = "Savings"
	Investment AccountType = "Investment"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID     string          `db:"account_id"`
	AccountNumber string          `db:"account_number"` // Unique, 10 digits
	UserID        string          `db:"user_id"`
	AccountType   AccountType     `db:"account_type"` // Unique together with user_id
	Balance       decimal.Decimal `db:"balance"`      // CHECK (balance >= 0)
	AuditFields
}
