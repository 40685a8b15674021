package repositories

import (
	"context"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by its exact 10 digit account number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountByOwnerIdentity resolves an account number, email or username, in that
	// priority, to an account. For email and username the owner's oldest account is returned.
	FindAccountByOwnerIdentity(ctx context.Context, identifier string) (*domain.Account, error)

	// ListAccountsByUserID retrieves all accounts owned by a user, oldest first.
	ListAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns ErrDuplicate when the owner already
	// holds an account of the same type.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
