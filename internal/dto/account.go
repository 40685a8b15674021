package dto

import (
	"time"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to open an additional account.
type CreateAccountRequest struct {
	AccountType string `json:"accountType" binding:"required,account_type"`
}

// MoneyRequest is the body of deposit and withdrawal calls.
type MoneyRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,money"`
	Description string          `json:"description" binding:"max=255"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	AccountNumber string             `json:"accountNumber"`
	AccountType   domain.AccountType `json:"accountType"`
	Balance       string             `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// PayeeResponse is the public view of an account used by "pay me" links.
type PayeeResponse struct {
	AccountNumber string             `json:"accountNumber"`
	AccountType   domain.AccountType `json:"accountType"`
	Name          string             `json:"name"`
}

// ListAccountsResponse wraps the accounts of the logged-in user.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountNumber: acc.AccountNumber,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance.StringFixed(domain.AmountScale),
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to ListAccountsResponse
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}

// ToPayeeResponse converts a domain.Payee to PayeeResponse DTO
func ToPayeeResponse(p *domain.Payee) PayeeResponse {
	return PayeeResponse{
		AccountNumber: p.AccountNumber,
		AccountType:   p.AccountType,
		Name:          p.Name,
	}
}
