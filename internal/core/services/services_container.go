package services

import (
	portsrepo "github.com/SscSPs/quantum_bank/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/quantum_bank/internal/core/ports/services"
	"github.com/SscSPs/quantum_bank/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	posterOpts := []PosterOption{
		WithMaxAttempts(cfg.TransferMaxRetries),
		WithRetryBackoff(cfg.TransferRetryBackoff),
	}

	return &portssvc.ServiceContainer{
		User:     NewUserService(repos.UserRepo),
		Account:  NewAccountService(repos.AccountRepo, repos.UserRepo, repos.UnitOfWork, posterOpts...),
		Transfer: NewTransferService(repos.AccountRepo, repos.UnitOfWork, posterOpts...),
		Ledger:   NewLedgerService(repos.LedgerRepo, repos.AccountRepo),
	}
}
