// Package memory is an in-process implementation of the repository ports.
// A single store-wide mutex serializes units of work, which gives the same
// guarantees the Postgres row locks give: balance changes and ledger appends
// become visible together or not at all.
package memory

import (
	"sort"
	"sync"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	portsrepo "github.com/SscSPs/quantum_bank/internal/core/ports/repositories"
)

// Store holds users, accounts and the ledger in memory.
type Store struct {
	mu           sync.RWMutex
	users        map[string]domain.User
	accounts     map[string]domain.Account
	transactions []domain.Transaction // chain order
	txIndex      map[string]int
	hashes       map[string]struct{}
	tip          domain.LedgerTip
}

// NewStore creates an empty store with a genesis ledger tip.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		accounts: make(map[string]domain.Account),
		txIndex:  make(map[string]int),
		hashes:   make(map[string]struct{}),
		tip:      domain.GenesisTip(),
	}
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade    = (*Store)(nil)
	_ portsrepo.LedgerRepositoryFacade  = (*Store)(nil)
	_ portsrepo.UnitOfWorkRunner        = (*Store)(nil)
)

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: s,
		UserRepo:    s,
		LedgerRepo:  s,
		UnitOfWork:  s,
	}
}

func cloneTransaction(t domain.Transaction) domain.Transaction {
	if t.ReceiverAccountID != nil {
		r := *t.ReceiverAccountID
		t.ReceiverAccountID = &r
	}
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	if t.Metadata != nil {
		m := make(map[string]any, len(t.Metadata))
		for k, v := range t.Metadata {
			m[k] = v
		}
		t.Metadata = m
	}
	return t
}

// sortAccountsByAge orders accounts oldest first, breaking ties by id.
func sortAccountsByAge(accounts []domain.Account) {
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].AccountID < accounts[j].AccountID
		}
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
}
