package chainhash_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/quantum_bank/internal/utils/chainhash"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func baseFields(t *testing.T) chainhash.Fields {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, "2024-03-01T12:30:45.123456Z")
	require.NoError(t, err)
	return chainhash.Fields{
		TransactionID:     "3f1c2b9e-8a4d-4c1e-9b7a-2d5e6f708192",
		SenderAccountID:   "a1b2c3d4-0000-4000-8000-000000000001",
		ReceiverAccountID: ptr("a1b2c3d4-0000-4000-8000-000000000002"),
		Amount:            decimal.RequireFromString("100"),
		TransactionType:   "Transfer",
		Description:       ptr("Rent"),
		Timestamp:         ts,
		PreviousBlockHash: chainhash.GenesisHash,
		Status:            "Completed",
	}
}

func TestCanonical_GoldenVectors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *chainhash.Fields)
		canonical string
		hash      string
	}{
		{
			name:      "transfer with description",
			mutate:    func(f *chainhash.Fields) {},
			canonical: `{"amount": "100.00", "description": "Rent", "previous_block_hash": "0000000000000000000000000000000000000000000000000000000000000000", "receiver_account_id": "a1b2c3d4-0000-4000-8000-000000000002", "sender_account_id": "a1b2c3d4-0000-4000-8000-000000000001", "status": "Completed", "timestamp": "2024-03-01T12:30:45.123456+00:00", "transaction_id": "3f1c2b9e-8a4d-4c1e-9b7a-2d5e6f708192", "transaction_type": "Transfer"}`,
			hash:      "561f39754e54be81b2a4a58f7d6e442d3d00a91499e6e9237dd19467db92c47b",
		},
		{
			name: "withdrawal without receiver or description on a whole second",
			mutate: func(f *chainhash.Fields) {
				f.ReceiverAccountID = nil
				f.Description = nil
				f.TransactionType = "Withdrawal"
				f.Amount = decimal.RequireFromString("50.5")
				f.Timestamp = time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
			},
			canonical: `{"amount": "50.50", "description": null, "previous_block_hash": "0000000000000000000000000000000000000000000000000000000000000000", "receiver_account_id": null, "sender_account_id": "a1b2c3d4-0000-4000-8000-000000000001", "status": "Completed", "timestamp": "2024-03-01T12:30:45+00:00", "transaction_id": "3f1c2b9e-8a4d-4c1e-9b7a-2d5e6f708192", "transaction_type": "Withdrawal"}`,
			hash:      "1547e6e3db5fb062f888a70954825ed616e715315a9acddccf2cd37971712671",
		},
		{
			name: "description needing escapes",
			mutate: func(f *chainhash.Fields) {
				f.Description = ptr("Café \"déjà\"\n\ttab\\ \U0001F600 \x7f\x01")
			},
			canonical: `{"amount": "100.00", "description": "Caf\u00e9 \"d\u00e9j\u00e0\"\n\ttab\\ \ud83d\ude00 \u007f\u0001", "previous_block_hash": "0000000000000000000000000000000000000000000000000000000000000000", "receiver_account_id": "a1b2c3d4-0000-4000-8000-000000000002", "sender_account_id": "a1b2c3d4-0000-4000-8000-000000000001", "status": "Completed", "timestamp": "2024-03-01T12:30:45.123456+00:00", "transaction_id": "3f1c2b9e-8a4d-4c1e-9b7a-2d5e6f708192", "transaction_type": "Transfer"}`,
			hash:      "2e4186d5cca899ec3874f39a5fb5075be0c7d980d41924df69f73ddfeb184241",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := baseFields(t)
			tt.mutate(&f)
			assert.Equal(t, tt.canonical, string(chainhash.Canonical(f)))
			assert.Equal(t, tt.hash, chainhash.Sum(f))
		})
	}
}

func TestSum_Deterministic(t *testing.T) {
	f := baseFields(t)
	first := chainhash.Sum(f)
	second := chainhash.Sum(f)
	assert.Equal(t, first, second)
	assert.True(t, chainhash.IsHash(first))
}

func TestSum_ChangesWithEveryHashedField(t *testing.T) {
	base := chainhash.Sum(baseFields(t))

	mutations := map[string]func(f *chainhash.Fields){
		"amount":      func(f *chainhash.Fields) { f.Amount = decimal.RequireFromString("100.01") },
		"description": func(f *chainhash.Fields) { f.Description = ptr("rent") },
		"previous":    func(f *chainhash.Fields) { f.PreviousBlockHash = strings.Repeat("1", 64) },
		"receiver":    func(f *chainhash.Fields) { f.ReceiverAccountID = nil },
		"sender":      func(f *chainhash.Fields) { f.SenderAccountID = "other" },
		"status":      func(f *chainhash.Fields) { f.Status = "Reversed" },
		"timestamp":   func(f *chainhash.Fields) { f.Timestamp = f.Timestamp.Add(time.Microsecond) },
		"id":          func(f *chainhash.Fields) { f.TransactionID = "x" },
		"type":        func(f *chainhash.Fields) { f.TransactionType = "Deposit" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			f := baseFields(t)
			mutate(&f)
			assert.NotEqual(t, base, chainhash.Sum(f))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, "2024-03-01T10:30:45.000001+00:00",
		chainhash.FormatTimestamp(time.Date(2024, 3, 1, 12, 30, 45, 1500, loc)))
	assert.Equal(t, "2024-03-01T10:30:45+00:00",
		chainhash.FormatTimestamp(time.Date(2024, 3, 1, 12, 30, 45, 999, loc)))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.10", chainhash.FormatAmount(decimal.RequireFromString("0.1")))
	assert.Equal(t, "1000.00", chainhash.FormatAmount(decimal.NewFromInt(1000)))
}

func TestSumVersion(t *testing.T) {
	f := baseFields(t)
	got, err := chainhash.SumVersion(1, f)
	require.NoError(t, err)
	assert.Equal(t, chainhash.Sum(f), got)

	_, err = chainhash.SumVersion(2, f)
	assert.ErrorIs(t, err, chainhash.ErrUnsupportedVersion)
}

func TestIsHash(t *testing.T) {
	assert.True(t, chainhash.IsHash(chainhash.GenesisHash))
	assert.False(t, chainhash.IsHash("abc"))
	assert.False(t, chainhash.IsHash(strings.Repeat("G", 64)))
	assert.False(t, chainhash.IsHash(strings.Repeat("A", 64)))
}
