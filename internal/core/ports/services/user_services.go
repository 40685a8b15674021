package services

import (
	"context"

	"github.com/SscSPs/quantum_bank/internal/core/domain"
	"github.com/SscSPs/quantum_bank/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// Register creates a user together with a default Checking account.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, *domain.Account, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// Authenticate checks a username and password, returning ErrUnauthorized on mismatch.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
