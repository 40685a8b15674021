package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portssvc "github.com/SscSPs/quantum_bank/internal/core/ports/services"
	"github.com/SscSPs/quantum_bank/internal/core/services"
	"github.com/SscSPs/quantum_bank/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	store   *memory.Store
	service portssvc.AccountSvcFacade
	userID  string
	account domain.Account
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.store = memory.NewStore()
	suite.service = services.NewAccountService(suite.store, suite.store, suite.store)
	user, account := seedCustomer(suite.T(), suite.store, "alice", "alice@example.com", "1000.00")
	suite.userID = user.UserID
	suite.account = account
}

func (suite *AccountServiceTestSuite) TestCreateAccount() {
	ctx := context.Background()

	savings, err := suite.service.CreateAccount(ctx, suite.userID, domain.Savings)
	suite.Require().NoError(err)
	suite.Equal(domain.Savings, savings.AccountType)
	suite.True(savings.Balance.IsZero())
	suite.Len(savings.AccountNumber, 10)

	_, err = suite.service.CreateAccount(ctx, suite.userID, domain.Savings)
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.service.CreateAccount(ctx, suite.userID, domain.AccountType("Crypto"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	accounts, err := suite.service.ListAccountsForUser(ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Len(accounts, 2)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RetriesNumberCollision() {
	ctx := context.Background()
	accountRepo := new(MockAccountRepository)
	accountRepo.On("ListAccountsByUserID", ctx, "user-1").Return([]domain.Account{}, nil).Once()
	accountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()
	accountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()
	service := services.NewAccountService(accountRepo, new(MockUserRepository), suite.store)

	acc, err := service.CreateAccount(ctx, "user-1", domain.Investment)

	suite.Require().NoError(err)
	suite.Equal(domain.Investment, acc.AccountType)
	accountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOwnedAccount() {
	ctx := context.Background()

	acc, err := suite.service.GetOwnedAccount(ctx, suite.userID, suite.account.AccountNumber)
	suite.Require().NoError(err)
	suite.Equal(suite.account.AccountID, acc.AccountID)

	_, err = suite.service.GetOwnedAccount(ctx, uuid.NewString(), suite.account.AccountNumber)
	suite.ErrorIs(err, apperrors.ErrForbidden)

	_, err = suite.service.GetOwnedAccount(ctx, suite.userID, "0000000000")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetPayee() {
	payee, err := suite.service.GetPayee(context.Background(), suite.account.AccountNumber)

	suite.Require().NoError(err)
	suite.Equal("alice name", payee.Name)
	suite.Equal(domain.Checking, payee.AccountType)
	suite.Equal(suite.account.AccountNumber, payee.AccountNumber)
}

func (suite *AccountServiceTestSuite) TestDepositAndWithdraw() {
	ctx := context.Background()

	deposit, err := suite.service.Deposit(ctx, suite.userID, suite.account.AccountNumber, decimal.RequireFromString("250.75"), "paycheck")
	suite.Require().NoError(err)
	suite.Equal(domain.Deposit, deposit.TransactionType)
	suite.Equal(suite.account.AccountID, deposit.SenderAccountID)
	suite.Require().NotNil(deposit.ReceiverAccountID)
	suite.Equal(suite.account.AccountID, *deposit.ReceiverAccountID)

	withdrawal, err := suite.service.Withdraw(ctx, suite.userID, suite.account.AccountNumber, decimal.RequireFromString("50.75"), "")
	suite.Require().NoError(err)
	suite.Equal(domain.Withdrawal, withdrawal.TransactionType)
	suite.Nil(withdrawal.ReceiverAccountID)
	suite.Equal(deposit.Hash, withdrawal.PreviousBlockHash)

	suite.True(decimal.RequireFromString("1200").Equal(balanceOf(suite.T(), suite.store, suite.account.AccountID)))

	_, err = suite.service.Withdraw(ctx, suite.userID, suite.account.AccountNumber, decimal.RequireFromString("1200.01"), "")
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.True(decimal.RequireFromString("1200").Equal(balanceOf(suite.T(), suite.store, suite.account.AccountID)))
}

func (suite *AccountServiceTestSuite) TestDeposit_BalanceCeiling() {
	ctx := context.Background()
	_, err := suite.service.Deposit(ctx, suite.userID, suite.account.AccountNumber, domain.MaxAmount.Sub(decimal.NewFromInt(1000)), "")
	suite.Require().NoError(err)
	suite.True(domain.MaxAmount.Equal(balanceOf(suite.T(), suite.store, suite.account.AccountID)))

	txn, err := suite.service.Deposit(ctx, suite.userID, suite.account.AccountNumber, decimal.RequireFromString("0.01"), "")

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.True(domain.MaxAmount.Equal(balanceOf(suite.T(), suite.store, suite.account.AccountID)))

	tip, err := suite.store.GetLedgerTip(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), tip.EntryCount)
}

func (suite *AccountServiceTestSuite) TestDeposit_DescriptionTooLong() {
	_, err := suite.service.Deposit(context.Background(), suite.userID, suite.account.AccountNumber, decimal.NewFromInt(5), strings.Repeat("x", domain.MaxDescriptionLength+1))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.True(decimal.RequireFromString("1000").Equal(balanceOf(suite.T(), suite.store, suite.account.AccountID)))
}

func (suite *AccountServiceTestSuite) TestDeposit_RequiresOwnership() {
	_, err := suite.service.Deposit(context.Background(), uuid.NewString(), suite.account.AccountNumber, decimal.NewFromInt(5), "")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.True(decimal.RequireFromString("1000").Equal(balanceOf(suite.T(), suite.store, suite.account.AccountID)))
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
