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
	"github.com/SscSPs/quantum_bank/internal/utils/chainhash"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// errStopWalk ends a chain walk early once a violation has been recorded.
var errStopWalk = errors.New("stop chain walk")

type ledgerService struct {
	BaseService
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountReader
	now         func() time.Time
}

// NewLedgerService creates the ledger read and verification service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		now:         time.Now,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// VerifyLedger recomputes every Completed entry's hash and checks each link
// against the hash of the entry before it, starting from the genesis hash.
func (s *ledgerService) VerifyLedger(ctx context.Context) (*domain.LedgerVerification, error) {
	result := &domain.LedgerVerification{
		Valid:    true,
		LastHash: chainhash.GenesisHash,
	}

	expectedPrev := chainhash.GenesisHash
	err := s.ledgerRepo.StreamCompletedTransactions(ctx, func(txn domain.Transaction) error {
		result.EntriesChecked++

		if txn.PreviousBlockHash != expectedPrev {
			result.Violation = s.violation(txn, result.EntriesChecked, domain.ViolationBrokenLink)
			return errStopWalk
		}

		recomputed, err := txn.ComputeHash()
		if err != nil {
			if errors.Is(err, chainhash.ErrUnsupportedVersion) {
				result.Violation = s.violation(txn, result.EntriesChecked, domain.ViolationUnsupportedVersion)
				return errStopWalk
			}
			return err
		}
		if recomputed != txn.Hash {
			result.Violation = s.violation(txn, result.EntriesChecked, domain.ViolationHashMismatch)
			return errStopWalk
		}

		expectedPrev = txn.Hash
		result.LastHash = txn.Hash
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		s.LogError(ctx, err, "Failed to read ledger for verification")
		return nil, fmt.Errorf("failed to verify ledger: %w", err)
	}
	result.CheckedAt = s.now().UTC()

	if result.Violation != nil {
		result.Valid = false
		s.LogError(ctx, apperrors.ErrChainIntegrityViolation, "Ledger verification failed",
			slog.String("transaction_id", result.Violation.TransactionID),
			slog.Int64("position", result.Violation.Position),
			slog.String("reason", result.Violation.Reason))
		return result, nil
	}

	tip, err := s.ledgerRepo.GetLedgerTip(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read ledger tip during verification")
		return nil, fmt.Errorf("failed to verify ledger: %w", err)
	}
	result.TipMatches = tip.LastHash == result.LastHash && tip.EntryCount == result.EntriesChecked
	if !result.TipMatches {
		s.LogWarn(ctx, "Ledger tip does not match the verified chain",
			slog.String("tip_hash", tip.LastHash),
			slog.Int64("tip_entry_count", tip.EntryCount),
			slog.String("chain_hash", result.LastHash),
			slog.Int64("chain_entry_count", result.EntriesChecked))
	}

	s.LogDebug(ctx, "Ledger verified", slog.Int64("entries_checked", result.EntriesChecked))
	return result, nil
}

func (s *ledgerService) violation(txn domain.Transaction, position int64, reason string) *domain.ChainViolation {
	return &domain.ChainViolation{
		TransactionID: txn.TransactionID,
		Position:      position,
		Reason:        reason,
	}
}

func (s *ledgerService) GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	if _, err := uuid.Parse(transactionID); err != nil {
		return nil, fmt.Errorf("%w: transaction %q", apperrors.ErrNotFound, transactionID)
	}
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccountsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for transaction access check", slog.String("user_id", userID))
		return nil, err
	}
	for _, acc := range accounts {
		if txn.Involves(acc.AccountID) {
			return txn, nil
		}
	}

	s.LogWarn(ctx, "User requested a transaction that does not involve their accounts", slog.String("transaction_id", transactionID))
	return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrForbidden, transactionID)
}

func (s *ledgerService) ListAccountTransactions(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	txns, next, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, accountID, limit, nextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		}
		return nil, nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	return txns, next, nil
}

func (s *ledgerService) GetLedgerTip(ctx context.Context) (*domain.LedgerTip, error) {
	tip, err := s.ledgerRepo.GetLedgerTip(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to get ledger tip")
		return nil, err
	}
	return tip, nil
}
