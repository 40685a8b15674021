package services_test

import (
	"context"
	"sync/atomic"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portsrepo "github.com/SscSPs/quantum_bank/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) FindAccountByOwnerIdentity(ctx context.Context, identifier string) (*domain.Account, error) {
	args := m.Called(ctx, identifier)
	var acc *domain.Account
	if args.Get(0) != nil {
		acc = args.Get(0).(*domain.Account)
	}
	return acc, args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account) error {
	args := m.Called(ctx, user, account)
	return args.Error(0)
}

// --- Mock LedgerRepository ---
// Entries is what StreamCompletedTransactions walks; StreamErr, if set, is returned after the walk.
type MockLedgerRepository struct {
	mock.Mock
	Entries   []domain.Transaction
	StreamErr error
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return txns, next, args.Error(2)
}

func (m *MockLedgerRepository) StreamCompletedTransactions(ctx context.Context, fn func(domain.Transaction) error) error {
	for _, txn := range m.Entries {
		if err := fn(txn); err != nil {
			return err
		}
	}
	return m.StreamErr
}

func (m *MockLedgerRepository) GetLedgerTip(ctx context.Context) (*domain.LedgerTip, error) {
	args := m.Called(ctx)
	var tip *domain.LedgerTip
	if args.Get(0) != nil {
		tip = args.Get(0).(*domain.LedgerTip)
	}
	return tip, args.Error(1)
}

// flakyUnitOfWork fails the first failures units of work with err before delegating to next.
type flakyUnitOfWork struct {
	next     portsrepo.UnitOfWorkRunner
	err      error
	failures int32
	calls    atomic.Int32
}

func (f *flakyUnitOfWork) WithinUnitOfWork(ctx context.Context, fn func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error) error {
	if f.calls.Add(1) <= f.failures {
		return f.err
	}
	return f.next.WithinUnitOfWork(ctx, fn)
}
