package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portsrepo "github.com/SscSPs/quantum_bank/internal/core/ports/repositories"
	"github.com/SscSPs/quantum_bank/internal/utils/chainhash"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newUser(username, email string) domain.User {
	return domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		Name:         username,
		PasswordHash: "x",
		AuditFields:  domain.AuditFields{CreatedAt: t0, LastUpdatedAt: t0},
	}
}

func newAccount(userID, number string, accountType domain.AccountType, balance string, createdAt time.Time) domain.Account {
	return domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: number,
		UserID:        userID,
		AccountType:   accountType,
		Balance:       decimal.RequireFromString(balance),
		AuditFields:   domain.AuditFields{CreatedAt: createdAt, LastUpdatedAt: createdAt},
	}
}

func seed(t *testing.T, s *Store, username, email, number, balance string) (domain.User, domain.Account) {
	t.Helper()
	u := newUser(username, email)
	a := newAccount(u.UserID, number, domain.Checking, balance, t0)
	require.NoError(t, s.SaveUserWithAccount(context.Background(), u, a))
	return u, a
}

// appendEntry posts a sealed transfer directly through a unit of work.
func appendEntry(t *testing.T, s *Store, from, to string, amount string) domain.Transaction {
	t.Helper()
	var out domain.Transaction
	err := s.WithinUnitOfWork(context.Background(), func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error {
		if _, err := uow.LockAccounts(ctx, []string{from, to}); err != nil {
			return err
		}
		amt := decimal.RequireFromString(amount)
		if _, err := uow.AdjustBalance(ctx, from, amt.Neg(), t0); err != nil {
			return err
		}
		if _, err := uow.AdjustBalance(ctx, to, amt, t0); err != nil {
			return err
		}
		tip, err := uow.LockLedgerTip(ctx)
		if err != nil {
			return err
		}
		receiver := to
		out = domain.Transaction{
			TransactionID:     uuid.NewString(),
			SenderAccountID:   from,
			ReceiverAccountID: &receiver,
			Amount:            amt,
			TransactionType:   domain.Transfer,
			Timestamp:         tip.NextTimestamp(t0),
			Status:            domain.StatusCompleted,
		}
		out.Seal(tip.LastHash)
		if err := uow.AppendTransaction(ctx, out); err != nil {
			return err
		}
		return uow.AdvanceLedgerTip(ctx, tip.Advance(out, t0))
	})
	require.NoError(t, err)
	return out
}

func TestSaveUserWithAccount_Uniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	alice, _ := seed(t, s, "alice", "Alice@Example.com", "1000000001", "0")

	err := s.SaveUserWithAccount(ctx, newUser("alice", "other@example.com"), newAccount(uuid.NewString(), "1000000002", domain.Checking, "0", t0))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate, "username")

	err = s.SaveUserWithAccount(ctx, newUser("alice2", "alice@example.COM"), newAccount(uuid.NewString(), "1000000003", domain.Checking, "0", t0))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate, "email is case-insensitive")

	bob := newUser("bob", "bob@example.com")
	err = s.SaveUserWithAccount(ctx, bob, newAccount(bob.UserID, "1000000001", domain.Checking, "0", t0))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate, "account number")

	_, err = s.FindUserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "failed insert leaves nothing behind")

	err = s.SaveAccount(ctx, newAccount(alice.UserID, "1000000004", domain.Checking, "0", t0))
	assert.ErrorIs(t, err, apperrors.ErrDuplicate, "one account per type")

	require.NoError(t, s.SaveAccount(ctx, newAccount(alice.UserID, "1000000005", domain.Savings, "0", t0)))

	err = s.SaveAccount(ctx, newAccount(uuid.NewString(), "1000000006", domain.Savings, "0", t0))
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "owner must exist")
}

func TestFindAccountByOwnerIdentity(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	alice, aliceChecking := seed(t, s, "alice", "alice@example.com", "1000000001", "0")
	require.NoError(t, s.SaveAccount(ctx, newAccount(alice.UserID, "1000000002", domain.Savings, "0", t0.Add(time.Hour))))

	// a user whose username is another customer's email
	_, carolAcc := seed(t, s, "bob@example.com", "carol@example.com", "1000000003", "0")
	_, bobAcc := seed(t, s, "bob", "bob@example.com", "1000000004", "0")

	tests := []struct {
		name       string
		identifier string
		want       string
	}{
		{name: "account number", identifier: "1000000002", want: "1000000002"},
		{name: "email picks oldest account", identifier: "alice@example.com", want: aliceChecking.AccountNumber},
		{name: "email case-insensitive", identifier: "ALICE@example.com", want: aliceChecking.AccountNumber},
		{name: "username", identifier: "alice", want: aliceChecking.AccountNumber},
		{name: "email wins over username", identifier: "bob@example.com", want: bobAcc.AccountNumber},
		{name: "email of a user with an email-like username", identifier: "carol@example.com", want: carolAcc.AccountNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := s.FindAccountByOwnerIdentity(ctx, tt.identifier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, acc.AccountNumber)
		})
	}

	_, err := s.FindAccountByOwnerIdentity(ctx, "ALICE")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "usernames are case-sensitive")
}

func TestUnitOfWork_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, a := seed(t, s, "alice", "alice@example.com", "1000000001", "100")
	_, b := seed(t, s, "bob", "bob@example.com", "1000000002", "0")

	boom := errors.New("boom")
	err := s.WithinUnitOfWork(ctx, func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error {
		_, err := uow.LockAccounts(ctx, []string{a.AccountID, b.AccountID})
		require.NoError(t, err)
		_, err = uow.AdjustBalance(ctx, a.AccountID, decimal.NewFromInt(-40), t0)
		require.NoError(t, err)
		_, err = uow.AdjustBalance(ctx, b.AccountID, decimal.NewFromInt(40), t0)
		require.NoError(t, err)
		tip, err := uow.LockLedgerTip(ctx)
		require.NoError(t, err)
		require.NoError(t, uow.AdvanceLedgerTip(ctx, domain.LedgerTip{LastHash: "x", EntryCount: tip.EntryCount + 1}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.FindAccountByID(ctx, a.AccountID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(100)))

	tip, err := s.GetLedgerTip(ctx)
	require.NoError(t, err)
	assert.Equal(t, chainhash.GenesisHash, tip.LastHash)
	assert.Equal(t, int64(0), tip.EntryCount)
}

func TestUnitOfWork_Guards(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, a := seed(t, s, "alice", "alice@example.com", "1000000001", "10")

	err := s.WithinUnitOfWork(ctx, func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error {
		_, err := uow.AdjustBalance(ctx, a.AccountID, decimal.NewFromInt(1), t0)
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrInternal, "adjust without lock")

	err = s.WithinUnitOfWork(ctx, func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error {
		return uow.AppendTransaction(ctx, domain.Transaction{TransactionID: uuid.NewString(), Hash: "h"})
	})
	assert.ErrorIs(t, err, apperrors.ErrInternal, "append without tip")

	err = s.WithinUnitOfWork(ctx, func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error {
		_, err := uow.LockAccounts(ctx, []string{a.AccountID, uuid.NewString()})
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "lock unknown account")

	err = s.WithinUnitOfWork(ctx, func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error {
		if _, err := uow.LockAccounts(ctx, []string{a.AccountID}); err != nil {
			return err
		}
		_, err := uow.AdjustBalance(ctx, a.AccountID, decimal.RequireFromString("-10.01"), t0)
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	err = s.WithinUnitOfWork(ctx, func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error {
		if _, err := uow.LockAccounts(ctx, []string{a.AccountID}); err != nil {
			return err
		}
		_, err := uow.AdjustBalance(ctx, a.AccountID, domain.MaxAmount, t0)
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "balance above NUMERIC(15,2)")

	ctxCancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = s.WithinUnitOfWork(ctxCancelled, func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error {
		t.Fatal("must not run with a cancelled context")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLedger_AppendStreamAndList(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, a := seed(t, s, "alice", "alice@example.com", "1000000001", "100")
	_, b := seed(t, s, "bob", "bob@example.com", "1000000002", "100")

	first := appendEntry(t, s, a.AccountID, b.AccountID, "10")
	second := appendEntry(t, s, b.AccountID, a.AccountID, "5")
	third := appendEntry(t, s, a.AccountID, b.AccountID, "1")

	assert.Equal(t, chainhash.GenesisHash, first.PreviousBlockHash)
	assert.Equal(t, first.Hash, second.PreviousBlockHash)
	assert.True(t, second.Timestamp.After(first.Timestamp), "entries get strictly increasing timestamps")

	var streamed []string
	require.NoError(t, s.StreamCompletedTransactions(ctx, func(txn domain.Transaction) error {
		streamed = append(streamed, txn.TransactionID)
		return nil
	}))
	assert.Equal(t, []string{first.TransactionID, second.TransactionID, third.TransactionID}, streamed)

	tip, err := s.GetLedgerTip(ctx)
	require.NoError(t, err)
	assert.Equal(t, third.Hash, tip.LastHash)
	assert.Equal(t, int64(3), tip.EntryCount)

	page, next, err := s.ListTransactionsByAccountID(ctx, a.AccountID, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, third.TransactionID, page[0].TransactionID)
	assert.Equal(t, second.TransactionID, page[1].TransactionID)
	require.NotNil(t, next)

	page, next, err = s.ListTransactionsByAccountID(ctx, a.AccountID, 2, next)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.TransactionID, page[0].TransactionID)
	assert.Nil(t, next)

	bad := "!!"
	_, _, err = s.ListTransactionsByAccountID(ctx, a.AccountID, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	got, err := s.FindTransactionByID(ctx, second.TransactionID)
	require.NoError(t, err)
	got.Metadata = map[string]any{"mutated": true}
	again, err := s.FindTransactionByID(ctx, second.TransactionID)
	require.NoError(t, err)
	assert.Nil(t, again.Metadata, "reads return copies")

	_, err = s.FindTransactionByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLedger_DuplicateAppendRejected(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, a := seed(t, s, "alice", "alice@example.com", "1000000001", "100")
	_, b := seed(t, s, "bob", "bob@example.com", "1000000002", "100")
	existing := appendEntry(t, s, a.AccountID, b.AccountID, "10")

	err := s.WithinUnitOfWork(ctx, func(ctx context.Context, uow portsrepo.LedgerUnitOfWork) error {
		if _, err := uow.LockLedgerTip(ctx); err != nil {
			return err
		}
		return uow.AppendTransaction(ctx, existing)
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}
