package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	"github.com/SscSPs/quantum_bank/internal/repositories/memory"
	"github.com/SscSPs/quantum_bank/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixtureTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// seedCustomer stores a user with a Checking account holding balance.
func seedCustomer(t *testing.T, store *memory.Store, username, email, balance string) (domain.User, domain.Account) {
	t.Helper()

	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		Name:         fmt.Sprintf("%s name", username),
		PasswordHash: "x",
		AuditFields:  domain.AuditFields{CreatedAt: fixtureTime, LastUpdatedAt: fixtureTime},
	}
	account := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: utils.NewAccountNumber(),
		UserID:        user.UserID,
		AccountType:   domain.Checking,
		Balance:       decimal.RequireFromString(balance),
		AuditFields:   domain.AuditFields{CreatedAt: fixtureTime, LastUpdatedAt: fixtureTime},
	}
	require.NoError(t, store.SaveUserWithAccount(context.Background(), user, account))
	return user, account
}

func balanceOf(t *testing.T, store *memory.Store, accountID string) decimal.Decimal {
	t.Helper()
	acc, err := store.FindAccountByID(context.Background(), accountID)
	require.NoError(t, err)
	return acc.Balance
}
