package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portsrepo "github.com/SscSPs/quantum_bank/internal/core/ports/repositories"
	"github.com/SscSPs/quantum_bank/internal/models"
	"github.com/SscSPs/quantum_bank/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `a.account_id, a.account_number, a.user_id, a.account_type, a.balance,
	a.created_at, a.created_by, a.last_updated_at, a.last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.UserID,
		&m.AccountType,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

// insertAccount is shared with user registration, which inserts inside its own transaction.
func insertAccount(ctx context.Context, q querier, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, account_number, user_id, account_type, balance,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := q.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.UserID,
		m.AccountType,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("failed to save account %s", m.AccountID))
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return insertAccount(ctx, r.Pool, account)
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("failed to find account %s", accountID))
	}
	return &acc, nil
}

// FindAccountByNumber retrieves an account by its customer facing number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.account_number = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		return nil, mapError(err, "failed to find account by number")
	}
	return &acc, nil
}

// FindAccountByOwnerIdentity resolves an account number, an email or a username,
// in that order. Email and username resolve to the owner's oldest account.
func (r *PgxAccountRepository) FindAccountByOwnerIdentity(ctx context.Context, identifier string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		JOIN users u ON u.user_id = a.user_id
		WHERE a.account_number = $1
		   OR lower(u.email) = lower($1)
		   OR u.username = $1
		ORDER BY
			CASE
				WHEN a.account_number = $1 THEN 0
				WHEN lower(u.email) = lower($1) THEN 1
				ELSE 2
			END,
			a.created_at, a.account_id
		LIMIT 1;
	`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, identifier))
	if err != nil {
		return nil, mapError(err, "failed to resolve recipient")
	}
	return &acc, nil
}

// ListAccountsByUserID lists a user's accounts, oldest first.
func (r *PgxAccountRepository) ListAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.user_id = $1 ORDER BY a.created_at, a.account_id;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "failed to list accounts")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, mapError(err, "failed to scan accounts")
	}
	return accounts, nil
}
