package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/quantum_bank/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository port to the pool.
// lockTimeout bounds how long a posting waits for row locks.
func NewRepositoryProvider(dbPool *pgxpool.Pool, lockTimeout time.Duration) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
		LedgerRepo:  newPgxLedgerRepository(dbPool),
		UnitOfWork:  newPgxUnitOfWork(dbPool, lockTimeout),
	}
}
