package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/SscSPs/quantum_bank/internal/core/domain"
	"github.com/SscSPs/quantum_bank/internal/utils/pagination"
)

// FindTransactionByID retrieves a ledger entry by ID.
func (s *Store) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.txIndex[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	txn := cloneTransaction(s.transactions[idx])
	return &txn, nil
}

// ListTransactionsByAccountID lists an account's entries, newest first.
func (s *Store) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	s.mu.RLock()
	matching := []domain.Transaction{}
	for _, txn := range s.transactions {
		if !txn.Involves(accountID) {
			continue
		}
		if cursor != nil && !cursor.Before(txn.Timestamp, txn.TransactionID) {
			continue
		}
		matching = append(matching, cloneTransaction(txn))
	}
	s.mu.RUnlock()

	sort.Slice(matching, func(i, j int) bool {
		if matching[i].Timestamp.Equal(matching[j].Timestamp) {
			return matching[i].TransactionID > matching[j].TransactionID
		}
		return matching[i].Timestamp.After(matching[j].Timestamp)
	})

	if len(matching) <= limit {
		return matching, nil, nil
	}
	page := matching[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(pagination.Cursor{Timestamp: last.Timestamp, ID: last.TransactionID})
	return page, &token, nil
}

// StreamCompletedTransactions calls fn for each Completed entry in timestamp order.
// fn runs on a snapshot, without the store lock held.
func (s *Store) StreamCompletedTransactions(ctx context.Context, fn func(domain.Transaction) error) error {
	s.mu.RLock()
	snapshot := make([]domain.Transaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		if txn.Status == domain.StatusCompleted {
			snapshot = append(snapshot, cloneTransaction(txn))
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Timestamp.Before(snapshot[j].Timestamp)
	})

	for _, txn := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(txn); err != nil {
			return err
		}
	}
	return nil
}

// GetLedgerTip returns the committed chain head.
func (s *Store) GetLedgerTip(ctx context.Context) (*domain.LedgerTip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tip := s.tip
	return &tip, nil
}
