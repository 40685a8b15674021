package domain_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/SscSPs/quantum_bank/internal/core/domain"
	"github.com/SscSPs/quantum_bank/internal/utils/chainhash"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

func sampleTransaction() domain.Transaction {
	return domain.Transaction{
		TransactionID:     "3f1c2b9e-8a4d-4c1e-9b7a-2d5e6f708192",
		SenderAccountID:   "a1b2c3d4-0000-4000-8000-000000000001",
		ReceiverAccountID: stringPtr("a1b2c3d4-0000-4000-8000-000000000002"),
		Amount:            decimal.NewFromInt(100),
		TransactionType:   domain.Transfer,
		Description:       stringPtr("Rent"),
		Timestamp:         time.Date(2024, 3, 1, 12, 30, 45, 123456000, time.UTC),
		Status:            domain.StatusCompleted,
	}
}

func TestTransaction_Seal(t *testing.T) {
	txn := sampleTransaction()
	txn.Seal(chainhash.GenesisHash)

	assert.Equal(t, chainhash.GenesisHash, txn.PreviousBlockHash)
	assert.Equal(t, chainhash.CurrentVersion, txn.HashVersion)
	assert.Equal(t, "561f39754e54be81b2a4a58f7d6e442d3d00a91499e6e9237dd19467db92c47b", txn.Hash)

	recomputed, err := txn.ComputeHash()
	require.NoError(t, err)
	assert.Equal(t, txn.Hash, recomputed)
}

func TestTransaction_MetadataIsNotHashed(t *testing.T) {
	a := sampleTransaction()
	a.Seal(chainhash.GenesisHash)

	b := sampleTransaction()
	b.Metadata = map[string]any{"channel": "mobile"}
	b.Seal(chainhash.GenesisHash)

	assert.Equal(t, a.Hash, b.Hash)
}

func TestTransaction_ComputeHashUnknownVersion(t *testing.T) {
	txn := sampleTransaction()
	txn.Seal(chainhash.GenesisHash)
	txn.HashVersion = 99

	_, err := txn.ComputeHash()
	assert.True(t, errors.Is(err, chainhash.ErrUnsupportedVersion))
}

func TestTransaction_Involves(t *testing.T) {
	txn := sampleTransaction()
	assert.True(t, txn.Involves("a1b2c3d4-0000-4000-8000-000000000001"))
	assert.True(t, txn.Involves("a1b2c3d4-0000-4000-8000-000000000002"))
	assert.False(t, txn.Involves("someone-else"))

	txn.ReceiverAccountID = nil
	assert.False(t, txn.Involves("a1b2c3d4-0000-4000-8000-000000000002"))
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{name: "whole amount", amount: "100", wantErr: false},
		{name: "two decimals", amount: "0.01", wantErr: false},
		{name: "trailing zeros beyond scale", amount: "5.100", wantErr: false},
		{name: "maximum", amount: "9999999999999.99", wantErr: false},
		{name: "zero", amount: "0", wantErr: true},
		{name: "negative", amount: "-10", wantErr: true},
		{name: "three decimals", amount: "1.005", wantErr: true},
		{name: "too large", amount: "10000000000000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateAmount(decimal.RequireFromString(tt.amount))
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLedgerTip_NextTimestamp(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 1500, time.UTC)

	genesis := domain.GenesisTip()
	assert.Equal(t, now.Truncate(time.Microsecond), genesis.NextTimestamp(now))

	ahead := domain.LedgerTip{LastTimestamp: now.Add(time.Second)}
	assert.Equal(t, now.Add(time.Second).Add(time.Microsecond), ahead.NextTimestamp(now))

	same := domain.LedgerTip{LastTimestamp: now.Truncate(time.Microsecond)}
	assert.True(t, same.NextTimestamp(now).After(same.LastTimestamp))
}

func TestLedgerTip_Advance(t *testing.T) {
	txn := sampleTransaction()
	txn.Seal(chainhash.GenesisHash)

	tip := domain.GenesisTip().Advance(txn, txn.Timestamp)
	assert.Equal(t, txn.Hash, tip.LastHash)
	assert.Equal(t, int64(1), tip.EntryCount)
	assert.Equal(t, txn.Timestamp, tip.LastTimestamp)
}

func TestParseAccountType(t *testing.T) {
	at, err := domain.ParseAccountType("savings")
	require.NoError(t, err)
	assert.Equal(t, domain.Savings, at)

	_, err = domain.ParseAccountType("crypto")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.True(t, domain.Investment.IsValid())
	assert.False(t, domain.AccountType("ASSET").IsValid())
}

func TestAccount_CanCredit(t *testing.T) {
	acc := domain.Account{Balance: domain.MaxAmount.Sub(decimal.RequireFromString("1.00"))}
	assert.True(t, acc.CanCredit(decimal.RequireFromString("1.00")))
	assert.False(t, acc.CanCredit(decimal.RequireFromString("1.01")))
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, domain.ValidateDescription(""))
	assert.NoError(t, domain.ValidateDescription(strings.Repeat("ü", domain.MaxDescriptionLength)))
	assert.ErrorIs(t, domain.ValidateDescription(strings.Repeat("a", domain.MaxDescriptionLength+1)), apperrors.ErrValidation)
}

func TestAccount_CanDebit(t *testing.T) {
	acc := domain.Account{Balance: decimal.RequireFromString("50.00")}
	assert.True(t, acc.CanDebit(decimal.RequireFromString("50")))
	assert.False(t, acc.CanDebit(decimal.RequireFromString("50.01")))
}
