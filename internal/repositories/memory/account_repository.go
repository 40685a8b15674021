package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/SscSPs/quantum_bank/internal/core/domain"
)

// FindAccountByID retrieves an account by its ID.
func (s *Store) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

// FindAccountByNumber retrieves an account by its account number.
func (s *Store) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if acc, ok := s.findByNumberLocked(accountNumber); ok {
		return &acc, nil
	}
	return nil, apperrors.ErrNotFound
}

// FindAccountByOwnerIdentity resolves an account number, then an email, then a username.
func (s *Store) FindAccountByOwnerIdentity(ctx context.Context, identifier string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if acc, ok := s.findByNumberLocked(identifier); ok {
		return &acc, nil
	}

	var owner *domain.User
	for _, u := range s.users {
		if strings.EqualFold(u.Email, identifier) {
			u := u
			owner = &u
			break
		}
	}
	if owner == nil {
		for _, u := range s.users {
			if u.Username == identifier {
				u := u
				owner = &u
				break
			}
		}
	}
	if owner == nil {
		return nil, apperrors.ErrNotFound
	}

	owned := s.accountsOfLocked(owner.UserID)
	if len(owned) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &owned[0], nil
}

// ListAccountsByUserID retrieves all accounts of a user, oldest first.
func (s *Store) ListAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountsOfLocked(userID), nil
}

// SaveAccount inserts a new account.
func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[account.UserID]; !ok {
		return fmt.Errorf("%w: owner %s does not exist", apperrors.ErrNotFound, account.UserID)
	}
	if err := s.checkAccountUniqueLocked(account); err != nil {
		return err
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) findByNumberLocked(accountNumber string) (domain.Account, bool) {
	for _, acc := range s.accounts {
		if acc.AccountNumber == accountNumber {
			return acc, true
		}
	}
	return domain.Account{}, false
}

func (s *Store) accountsOfLocked(userID string) []domain.Account {
	owned := []domain.Account{}
	for _, acc := range s.accounts {
		if acc.UserID == userID {
			owned = append(owned, acc)
		}
	}
	sortAccountsByAge(owned)
	return owned
}

func (s *Store) checkAccountUniqueLocked(account domain.Account) error {
	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	for _, acc := range s.accounts {
		if acc.AccountNumber == account.AccountNumber {
			return fmt.Errorf("%w: account number %s already exists", apperrors.ErrDuplicate, account.AccountNumber)
		}
		if acc.UserID == account.UserID && acc.AccountType == account.AccountType {
			return fmt.Errorf("%w: user already has a %s account", apperrors.ErrDuplicate, account.AccountType)
		}
	}
	return nil
}
