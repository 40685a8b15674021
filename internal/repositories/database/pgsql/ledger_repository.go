package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portsrepo "github.com/SscSPs/quantum_bank/internal/core/ports/repositories"
	"github.com/SscSPs/quantum_bank/internal/models"
	"github.com/SscSPs/quantum_bank/internal/utils/mapping"
	"github.com/SscSPs/quantum_bank/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, sender_account_id, receiver_account_id, amount, transaction_type,
	description, "timestamp", status, hash, previous_block_hash, hash_version, metadata, created_at`

const ledgerTipColumns = `last_hash, entry_count, last_timestamp, updated_at`

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.SenderAccountID,
		&m.ReceiverAccountID,
		&m.Amount,
		&m.TransactionType,
		&m.Description,
		&m.Timestamp,
		&m.Status,
		&m.Hash,
		&m.PreviousBlockHash,
		&m.HashVersion,
		&m.Metadata,
		&m.CreatedAt,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func scanLedgerTip(row pgx.Row) (domain.LedgerTip, error) {
	var m models.LedgerTip
	if err := row.Scan(&m.LastHash, &m.EntryCount, &m.LastTimestamp, &m.UpdatedAt); err != nil {
		return domain.LedgerTip{}, err
	}
	return mapping.ToDomainLedgerTip(m), nil
}

// FindTransactionByID retrieves a ledger entry by ID.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find transaction %s", transactionID))
	}
	return &txn, nil
}

// ListTransactionsByAccountID lists an account's entries, newest first, using keyset pagination.
func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	var cursorTime *time.Time
	var cursorID *string
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursorTime = &cursor.Timestamp
		cursorID = &cursor.ID
	}

	// fetch one extra row to learn whether another page exists
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (sender_account_id = $1 OR receiver_account_id = $1)
		  AND ($2::timestamptz IS NULL OR ("timestamp", transaction_id) < ($2, $3::uuid))
		ORDER BY "timestamp" DESC, transaction_id DESC
		LIMIT $4;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, cursorTime, cursorID, limit+1)
	if err != nil {
		return nil, nil, mapError(err, "failed to list transactions")
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, mapError(err, "failed to scan transaction")
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapError(err, "failed to iterate transactions")
	}

	if len(txns) <= limit {
		return txns, nil, nil
	}
	txns = txns[:limit]
	last := txns[len(txns)-1]
	token := pagination.EncodeToken(pagination.Cursor{Timestamp: last.Timestamp, ID: last.TransactionID})
	return txns, &token, nil
}

// StreamCompletedTransactions walks Completed entries in chain order without loading them all at once.
func (r *PgxLedgerRepository) StreamCompletedTransactions(ctx context.Context, fn func(domain.Transaction) error) error {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = $1
		ORDER BY "timestamp" ASC, transaction_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.StatusCompleted))
	if err != nil {
		return mapError(err, "failed to stream ledger")
	}
	defer rows.Close()

	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return mapError(err, "failed to scan ledger entry")
		}
		if err := fn(txn); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return mapError(err, "failed to stream ledger")
	}
	return nil
}

// GetLedgerTip returns the committed chain head.
func (r *PgxLedgerRepository) GetLedgerTip(ctx context.Context) (*domain.LedgerTip, error) {
	query := `SELECT ` + ledgerTipColumns + ` FROM ledger_tip WHERE id = 1;`
	tip, err := scanLedgerTip(r.Pool.QueryRow(ctx, query))
	if err != nil {
		return nil, mapError(err, "failed to read ledger tip")
	}
	return &tip, nil
}
