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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// posting describes one money movement. An empty debit or credit account means
// the other side is outside the bank (deposit or withdrawal).
type posting struct {
	txType            domain.TransactionType
	debitAccountID    string
	creditAccountID   string
	senderAccountID   string
	receiverAccountID *string
	amount            decimal.Decimal
	description       string
	metadata          map[string]any
}

// ledgerPoster applies a posting's balance changes and appends its ledger entry in one unit of work.
type ledgerPoster struct {
	BaseService
	uow          portsrepo.UnitOfWorkRunner
	maxAttempts  int
	retryBackoff time.Duration
	now          func() time.Time
	newID        func() string
}

// PosterOption configures the ledger poster.
type PosterOption func(*ledgerPoster)

// WithMaxAttempts bounds how often a posting is attempted when it hits a concurrency conflict.
func WithMaxAttempts(n int) PosterOption {
	return func(p *ledgerPoster) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithRetryBackoff sets the base delay between attempts; attempt n waits n times this.
func WithRetryBackoff(d time.Duration) PosterOption {
	return func(p *ledgerPoster) {
		p.retryBackoff = d
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) PosterOption {
	return func(p *ledgerPoster) {
		p.now = now
	}
}

// WithIDGenerator overrides the transaction id generator.
func WithIDGenerator(newID func() string) PosterOption {
	return func(p *ledgerPoster) {
		p.newID = newID
	}
}

func newLedgerPoster(uow portsrepo.UnitOfWorkRunner, opts ...PosterOption) *ledgerPoster {
	p := &ledgerPoster{
		uow:          uow,
		maxAttempts:  3,
		retryBackoff: 50 * time.Millisecond,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// post runs the posting, retrying the whole unit of work on concurrency conflicts.
func (p *ledgerPoster) post(ctx context.Context, pst posting) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(pst.amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(pst.description); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		txn, err := p.postOnce(ctx, pst)
		if err == nil {
			return txn, nil
		}
		if !errors.Is(err, apperrors.ErrConcurrencyConflict) {
			return nil, err
		}
		lastErr = err
		p.LogWarn(ctx, "Posting hit a concurrency conflict",
			slog.String("transaction_type", string(pst.txType)),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", p.maxAttempts),
			slog.String("error", err.Error()))

		if attempt < p.maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.retryBackoff * time.Duration(attempt)):
			}
		}
	}
	return nil, fmt.Errorf("posting failed after %d attempts: %w", p.maxAttempts, lastErr)
}

func (p *ledgerPoster) postOnce(ctx context.Context, pst posting) (*domain.Transaction, error) {
	var posted domain.Transaction

	err := p.uow.WithinUnitOfWork(ctx, func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error {
		ids := make([]string, 0, 2)
		if pst.debitAccountID != "" {
			ids = append(ids, pst.debitAccountID)
		}
		if pst.creditAccountID != "" && pst.creditAccountID != pst.debitAccountID {
			ids = append(ids, pst.creditAccountID)
		}

		locked, err := uow.LockAccounts(ctx, ids)
		if err != nil {
			return err
		}

		now := p.now()
		if pst.debitAccountID != "" {
			// decide on the locked snapshot, never on an earlier read
			if !locked[pst.debitAccountID].CanDebit(pst.amount) {
				return fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, pst.debitAccountID)
			}
			if _, err := uow.AdjustBalance(ctx, pst.debitAccountID, pst.amount.Neg(), now); err != nil {
				return err
			}
		}
		if pst.creditAccountID != "" {
			if !locked[pst.creditAccountID].CanCredit(pst.amount) {
				return fmt.Errorf("%w: balance of account %s would exceed %s", apperrors.ErrInvalidAmount, pst.creditAccountID, domain.MaxAmount.StringFixed(domain.AmountScale))
			}
			if _, err := uow.AdjustBalance(ctx, pst.creditAccountID, pst.amount, now); err != nil {
				return err
			}
		}

		tip, err := uow.LockLedgerTip(ctx)
		if err != nil {
			return err
		}

		txn := domain.Transaction{
			TransactionID:     p.newID(),
			SenderAccountID:   pst.senderAccountID,
			ReceiverAccountID: pst.receiverAccountID,
			Amount:            pst.amount,
			TransactionType:   pst.txType,
			Description:       optionalString(pst.description),
			Timestamp:         tip.NextTimestamp(now),
			Status:            domain.StatusCompleted,
			Metadata:          pst.metadata,
			CreatedAt:         now,
		}
		txn.Seal(tip.LastHash)

		if err := uow.AppendTransaction(ctx, txn); err != nil {
			return err
		}
		if err := uow.AdvanceLedgerTip(ctx, tip.Advance(txn, now)); err != nil {
			return err
		}

		posted = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &posted, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
