package repositories

import (
	"context"
	"time"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
)

// AccountReader defines read operations for accounting accounts
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.AccountingAccount, error)

	// FindAccountByCode retrieves an account by its user-facing ledger code.
	FindAccountByCode(ctx context.Context, code string) (*domain.AccountingAccount, error)

	// FindAccountByContainer retrieves the account linked to the given
	// container, or ErrNotFound when the container is unlinked.
	FindAccountByContainer(ctx context.Context, ref domain.ContainerRef) (*domain.AccountingAccount, error)

	// ListAccounts retrieves accounts with offset pagination.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AccountingAccount, error)
}

// AccountWriter defines write operations for accounting accounts
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.AccountingAccount) error

	// LinkContainer sets the account's operational container link.
	LinkContainer(ctx context.Context, accountID string, ref domain.ContainerRef, userID string, now time.Time) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
