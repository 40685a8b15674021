package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerUnitOfWork is the set of operations that run inside one atomic unit.
// Either everything done through it becomes visible on commit, or nothing does.
type LedgerUnitOfWork interface {
	// LockAccounts locks the given accounts in ascending id order and returns
	// their locked snapshot. Returns ErrNotFound if any of them does not exist.
	LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// AdjustBalance adds delta to a locked account's balance. Returns
	// ErrInsufficientFunds when the result would be negative.
	AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (*domain.Account, error)

	// LockLedgerTip locks the chain head. Every writer takes this lock, so appends are serialized.
	LockLedgerTip(ctx context.Context) (*domain.LedgerTip, error)

	// AppendTransaction inserts a sealed ledger entry.
	AppendTransaction(ctx context.Context, txn domain.Transaction) error

	// AdvanceLedgerTip moves the chain head to tip.
	AdvanceLedgerTip(ctx context.Context, tip domain.LedgerTip) error
}

// UnitOfWorkRunner executes fn atomically. A nil return commits, any error rolls back.
type UnitOfWorkRunner interface {
	WithinUnitOfWork(ctx context.Context, fn func(ctx context.Context, uow LedgerUnitOfWork) error) error
}
