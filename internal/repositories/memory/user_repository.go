package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/SscSPs/quantum_bank/internal/core/domain"
)

// FindUserByID retrieves a user by ID.
func (s *Store) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

// FindUserByUsername retrieves a user by username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// SaveUserWithAccount inserts a user and their first account together.
func (s *Store) SaveUserWithAccount(ctx context.Context, user domain.User, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.UserID == user.UserID || u.Username == user.Username {
			return fmt.Errorf("%w: username %s is taken", apperrors.ErrDuplicate, user.Username)
		}
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, user.Email)
		}
	}
	if err := s.checkAccountUniqueLocked(account); err != nil {
		return err
	}

	s.users[user.UserID] = user
	s.accounts[account.AccountID] = account
	return nil
}
