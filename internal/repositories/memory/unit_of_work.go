package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portsrepo "github.com/SscSPs/quantum_bank/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// unitOfWork stages changes while the store lock is held; they are applied only on commit.
type unitOfWork struct {
	s        *Store
	locked   map[string]domain.Account
	tip      *domain.LedgerTip
	newTip   *domain.LedgerTip
	appended []domain.Transaction
}

var _ portsrepo.LedgerUnitOfWork = (*unitOfWork)(nil)

// WithinUnitOfWork runs fn with exclusive access to the store.
func (s *Store) WithinUnitOfWork(ctx context.Context, fn func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uow := &unitOfWork{s: s, locked: make(map[string]domain.Account)}
	if err := fn(ctx, uow); err != nil {
		return err
	}
	uow.commit()
	return nil
}

func (u *unitOfWork) LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	result := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		acc, ok := u.locked[id]
		if !ok {
			acc, ok = u.s.accounts[id]
			if !ok {
				return nil, fmt.Errorf("%w: could not find or lock account %s", apperrors.ErrNotFound, id)
			}
			u.locked[id] = acc
		}
		result[id] = acc
	}
	return result, nil
}

func (u *unitOfWork) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (*domain.Account, error) {
	acc, ok := u.locked[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s adjusted without a lock", apperrors.ErrInternal, accountID)
	}
	newBalance := acc.Balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, accountID)
	}
	if newBalance.GreaterThan(domain.MaxAmount) {
		return nil, fmt.Errorf("%w: balance of account %s would overflow", apperrors.ErrValidation, accountID)
	}
	acc.Balance = newBalance
	acc.LastUpdatedAt = now
	u.locked[accountID] = acc
	return &acc, nil
}

func (u *unitOfWork) LockLedgerTip(ctx context.Context) (*domain.LedgerTip, error) {
	if u.newTip != nil {
		tip := *u.newTip
		return &tip, nil
	}
	if u.tip == nil {
		tip := u.s.tip
		u.tip = &tip
	}
	tip := *u.tip
	return &tip, nil
}

func (u *unitOfWork) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	if u.tip == nil {
		return fmt.Errorf("%w: ledger append without holding the tip", apperrors.ErrInternal)
	}
	if _, exists := u.s.txIndex[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
	}
	if _, exists := u.s.hashes[txn.Hash]; exists {
		return fmt.Errorf("%w: transaction hash %s already exists", apperrors.ErrDuplicate, txn.Hash)
	}
	for _, staged := range u.appended {
		if staged.TransactionID == txn.TransactionID || staged.Hash == txn.Hash {
			return fmt.Errorf("%w: transaction %s staged twice", apperrors.ErrDuplicate, txn.TransactionID)
		}
	}
	u.appended = append(u.appended, cloneTransaction(txn))
	return nil
}

func (u *unitOfWork) AdvanceLedgerTip(ctx context.Context, tip domain.LedgerTip) error {
	if u.tip == nil {
		return fmt.Errorf("%w: ledger tip advanced without a lock", apperrors.ErrInternal)
	}
	u.newTip = &tip
	return nil
}

func (u *unitOfWork) commit() {
	for id, acc := range u.locked {
		u.s.accounts[id] = acc
	}
	for _, txn := range u.appended {
		u.s.txIndex[txn.TransactionID] = len(u.s.transactions)
		u.s.hashes[txn.Hash] = struct{}{}
		u.s.transactions = append(u.s.transactions, txn)
	}
	if u.newTip != nil {
		u.s.tip = *u.newTip
	}
}
