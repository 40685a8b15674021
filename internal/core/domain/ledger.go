package domain

import (
	"time"

	"github.com/SscSPs/quantum_bank/internal/utils/chainhash"
)

// LedgerTip is the head of the hash chain. It is locked and advanced together with every append.
type LedgerTip struct {
	LastHash      string    `json:"lastHash"`
	EntryCount    int64     `json:"entryCount"`
	LastTimestamp time.Time `json:"lastTimestamp"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GenesisTip is the tip of an empty ledger.
func GenesisTip() LedgerTip {
	return LedgerTip{LastHash: chainhash.GenesisHash}
}

// NextTimestamp returns the timestamp for the next entry: now at microsecond precision,
// bumped past the current head so entries stay strictly ordered.
func (t LedgerTip) NextTimestamp(now time.Time) time.Time {
	ts := now.UTC().Truncate(time.Microsecond)
	if !t.LastTimestamp.IsZero() && !ts.After(t.LastTimestamp) {
		ts = t.LastTimestamp.UTC().Add(time.Microsecond)
	}
	return ts
}

// Advance returns the tip after txn has been appended.
func (t LedgerTip) Advance(txn Transaction, now time.Time) LedgerTip {
	return LedgerTip{
		LastHash:      txn.Hash,
		EntryCount:    t.EntryCount + 1,
		LastTimestamp: txn.Timestamp,
		UpdatedAt:     now,
	}
}

// Reasons reported in a ChainViolation.
const (
	ViolationBrokenLink         = "previous hash does not match the preceding entry"
	ViolationHashMismatch       = "stored hash does not match recomputed hash"
	ViolationUnsupportedVersion = "unsupported hash version"
)

// ChainViolation names the first entry at which verification failed.
type ChainViolation struct {
	TransactionID string `json:"transactionID"`
	Position      int64  `json:"position"` // 1-based index along the chain
	Reason        string `json:"reason"`
}

// LedgerVerification is the outcome of a full chain walk.
type LedgerVerification struct {
	Valid          bool            `json:"valid"`
	EntriesChecked int64           `json:"entriesChecked"`
	LastHash       string          `json:"lastHash"`
	CheckedAt      time.Time       `json:"checkedAt"`
	Violation      *ChainViolation `json:"violation,omitempty"`
	TipMatches     bool            `json:"tipMatches"`
}
