package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portsrepo "github.com/SscSPs/quantum_bank/internal/core/ports/repositories"
	"github.com/SscSPs/quantum_bank/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxUnitOfWork runs postings inside a single database transaction.
type PgxUnitOfWork struct {
	BaseRepository
	lockTimeout time.Duration
}

func newPgxUnitOfWork(pool *pgxpool.Pool, lockTimeout time.Duration) *PgxUnitOfWork {
	return &PgxUnitOfWork{BaseRepository: BaseRepository{Pool: pool}, lockTimeout: lockTimeout}
}

var _ portsrepo.UnitOfWorkRunner = (*PgxUnitOfWork)(nil)

// WithinUnitOfWork begins a transaction, bounds lock waits and commits only if fn succeeds.
func (r *PgxUnitOfWork) WithinUnitOfWork(ctx context.Context, fn func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.rollbackOnFailure(ctx, tx, &err)

	if r.lockTimeout > 0 {
		// SET cannot take bind parameters
		if _, err = tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
			return mapError(err, "failed to set lock timeout")
		}
	}

	if err = fn(ctx, &pgxLedgerUnitOfWork{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

type pgxLedgerUnitOfWork struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerUnitOfWork = (*pgxLedgerUnitOfWork)(nil)

func (u *pgxLedgerUnitOfWork) LockAccounts(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		WHERE a.account_id = ANY($1::uuid[])
		ORDER BY a.account_id
		FOR UPDATE;
	`
	rows, err := u.tx.Query(ctx, query, ids)
	if err != nil {
		return nil, mapError(err, "failed to lock accounts")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, mapError(err, "failed to lock accounts")
	}

	locked := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		locked[acc.AccountID] = acc
	}
	for _, id := range ids {
		if _, ok := locked[id]; !ok {
			return nil, fmt.Errorf("%w: could not find or lock account %s", apperrors.ErrNotFound, id)
		}
	}
	return locked, nil
}

func (u *pgxLedgerUnitOfWork) AdjustBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) (*domain.Account, error) {
	query := `
		UPDATE accounts a
		SET balance = a.balance + $2, last_updated_at = $3
		WHERE a.account_id = $1
		RETURNING ` + accountColumns + `;
	`
	acc, err := scanAccount(u.tx.QueryRow(ctx, query, accountID, delta, now))
	if err != nil {
		// the balance >= 0 check constraint surfaces as ErrInsufficientFunds
		return nil, mapError(err, fmt.Sprintf("failed to adjust balance of account %s", accountID))
	}
	return &acc, nil
}

func (u *pgxLedgerUnitOfWork) LockLedgerTip(ctx context.Context) (*domain.LedgerTip, error) {
	query := `SELECT ` + ledgerTipColumns + ` FROM ledger_tip WHERE id = 1 FOR UPDATE;`
	tip, err := scanLedgerTip(u.tx.QueryRow(ctx, query))
	if err != nil {
		return nil, mapError(err, "failed to lock ledger tip")
	}
	return &tip, nil
}

func (u *pgxLedgerUnitOfWork) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := u.tx.Exec(ctx, query,
		m.TransactionID,
		m.SenderAccountID,
		m.ReceiverAccountID,
		m.Amount,
		m.TransactionType,
		m.Description,
		m.Timestamp,
		m.Status,
		m.Hash,
		m.PreviousBlockHash,
		m.HashVersion,
		m.Metadata,
		m.CreatedAt,
	)
	return mapError(err, fmt.Sprintf("failed to append transaction %s", m.TransactionID))
}

func (u *pgxLedgerUnitOfWork) AdvanceLedgerTip(ctx context.Context, tip domain.LedgerTip) error {
	m := mapping.ToModelLedgerTip(tip)
	query := `
		UPDATE ledger_tip
		SET last_hash = $1, entry_count = $2, last_timestamp = $3, updated_at = $4
		WHERE id = 1;
	`
	tag, err := u.tx.Exec(ctx, query, m.LastHash, m.EntryCount, m.LastTimestamp, m.UpdatedAt)
	if err != nil {
		return mapError(err, "failed to advance ledger tip")
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("%w: ledger tip row is missing", apperrors.ErrInternal)
	}
	return nil
}
