package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portsrepo "github.com/SscSPs/quantum_bank/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/quantum_bank/internal/core/ports/services"
	"github.com/SscSPs/quantum_bank/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountNumberAttempts bounds retries when a freshly drawn account number collides.
const accountNumberAttempts = 3

type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	userRepo    portsrepo.UserReader
	poster      *ledgerPoster
	now         func() time.Time
}

// NewAccountService creates the account service. Deposits and withdrawals go
// through the same posting engine as transfers.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, userRepo portsrepo.UserReader, uow portsrepo.UnitOfWorkRunner, opts ...PosterOption) portssvc.AccountSvcFacade {
	poster := newLedgerPoster(uow, opts...)
	return &accountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		poster:      poster,
		now:         poster.now,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, accountType domain.AccountType) (*domain.Account, error) {
	if !accountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}

	existing, err := s.accountRepo.ListAccountsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts before creation", slog.String("user_id", userID))
		return nil, err
	}
	for _, acc := range existing {
		if acc.AccountType == accountType {
			return nil, fmt.Errorf("%w: user already has a %s account", apperrors.ErrDuplicate, accountType)
		}
	}

	now := s.now()
	for attempt := 1; ; attempt++ {
		account := domain.Account{
			AccountID:     uuid.NewString(),
			AccountNumber: utils.NewAccountNumber(),
			UserID:        userID,
			AccountType:   accountType,
			Balance:       decimal.Zero,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		err := s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("account_type", string(accountType)))
			return &account, nil
		}
		// a duplicate here is either a lost race on (user, type) or an account number collision
		if !errors.Is(err, apperrors.ErrDuplicate) || attempt >= accountNumberAttempts {
			if !errors.Is(err, apperrors.ErrDuplicate) {
				s.LogError(ctx, err, "Failed to save account", slog.String("user_id", userID))
			}
			return nil, err
		}
	}
}

func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by number")
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetOwnedAccount(ctx context.Context, userID string, accountNumber string) (*domain.Account, error) {
	account, err := s.GetAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if !account.IsOwnedBy(userID) {
		s.LogWarn(ctx, "User attempted to use an account they do not own", slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrForbidden, accountNumber)
	}
	return account, nil
}

func (s *accountService) ListAccountsForUser(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) GetPayee(ctx context.Context, accountNumber string) (*domain.Payee, error) {
	account, err := s.GetAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	owner, err := s.userRepo.FindUserByID(ctx, account.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payee owner", slog.String("account_id", account.AccountID))
		return nil, err
	}
	return &domain.Payee{
		AccountNumber: account.AccountNumber,
		AccountType:   account.AccountType,
		Name:          owner.Name,
	}, nil
}

func (s *accountService) Deposit(ctx context.Context, userID string, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	account, err := s.GetOwnedAccount(ctx, userID, accountNumber)
	if err != nil {
		return nil, err
	}

	accountID := account.AccountID
	txn, err := s.poster.post(ctx, posting{
		txType:            domain.Deposit,
		creditAccountID:   accountID,
		senderAccountID:   accountID,
		receiverAccountID: &accountID,
		amount:            amount,
		description:       description,
	})
	if err != nil {
		s.LogError(ctx, err, "Deposit failed", slog.String("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Deposit completed", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", accountID))
	return txn, nil
}

func (s *accountService) Withdraw(ctx context.Context, userID string, accountNumber string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	account, err := s.GetOwnedAccount(ctx, userID, accountNumber)
	if err != nil {
		return nil, err
	}

	txn, err := s.poster.post(ctx, posting{
		txType:          domain.Withdrawal,
		debitAccountID:  account.AccountID,
		senderAccountID: account.AccountID,
		amount:          amount,
		description:     description,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.LogError(ctx, err, "Withdrawal failed", slog.String("account_id", account.AccountID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Withdrawal completed", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", account.AccountID))
	return txn, nil
}
