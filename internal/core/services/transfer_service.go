package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portsrepo "github.com/SscSPs/quantum_bank/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/quantum_bank/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type transferService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	poster      *ledgerPoster
}

// NewTransferService creates the transfer engine.
func NewTransferService(accountRepo portsrepo.AccountReader, uow portsrepo.UnitOfWorkRunner, opts ...PosterOption) portssvc.TransferSvc {
	return &transferService{
		accountRepo: accountRepo,
		poster:      newLedgerPoster(uow, opts...),
	}
}

var _ portssvc.TransferSvc = (*transferService)(nil)

// Transfer moves amount from fromAccountID to the account resolved from recipientIdentifier.
func (s *transferService) Transfer(ctx context.Context, fromAccountID string, recipientIdentifier string, amount decimal.Decimal, note string) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	identifier := strings.TrimSpace(recipientIdentifier)
	if identifier == "" {
		return nil, fmt.Errorf("%w: empty identifier", apperrors.ErrRecipientNotFound)
	}
	recipient, err := s.accountRepo.FindAccountByOwnerIdentity(ctx, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrRecipientNotFound, identifier)
		}
		s.LogError(ctx, err, "Failed to resolve transfer recipient")
		return nil, err
	}

	if recipient.AccountID == fromAccountID {
		return nil, apperrors.ErrSameAccount
	}

	receiverID := recipient.AccountID
	txn, err := s.poster.post(ctx, posting{
		txType:            domain.Transfer,
		debitAccountID:    fromAccountID,
		creditAccountID:   recipient.AccountID,
		senderAccountID:   fromAccountID,
		receiverAccountID: &receiverID,
		amount:            amount,
		description:       note,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientFunds) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Transfer failed",
				slog.String("from_account_id", fromAccountID),
				slog.String("to_account_id", recipient.AccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("from_account_id", fromAccountID),
		slog.String("to_account_id", recipient.AccountID),
		slog.String("amount", txn.Amount.StringFixed(domain.AmountScale)))
	return txn, nil
}
