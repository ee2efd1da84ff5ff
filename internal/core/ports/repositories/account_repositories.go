package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the owner's accounts among accountIDs, keyed by id.
	// Ids that do not exist or belong to someone else are absent from the map.
	FindAccountsByIDs(ctx context.Context, ownerID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByOwner retrieves the owner's whole chart of accounts, active or not.
	ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
