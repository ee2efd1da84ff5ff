package services

import (
	"context"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	"github.com/SscSPs/bizbooks_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves one of the owner's accounts.
	GetAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the owner's chart of accounts ordered by code.
	ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, ownerID string, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
