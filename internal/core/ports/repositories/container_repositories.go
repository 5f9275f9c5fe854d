package repositories

import (
	"context"
	"time"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
)

// ContainerReader defines read operations for drawers and bank accounts
type ContainerReader interface {
	// FindDrawerByID retrieves a specific cash drawer by its unique identifier.
	FindDrawerByID(ctx context.Context, drawerID string) (*domain.CashDrawer, error)

	// FindBankAccountByID retrieves a specific bank account by its unique identifier.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// FindContainer retrieves the kind-agnostic view of a container, including
	// the linked accounting account id when one exists.
	FindContainer(ctx context.Context, ref domain.ContainerRef) (*domain.Container, error)

	// ListDrawers retrieves cash drawers with offset pagination.
	ListDrawers(ctx context.Context, limit int, offset int) ([]domain.CashDrawer, error)

	// ListBankAccounts retrieves bank accounts with offset pagination.
	ListBankAccounts(ctx context.Context, limit int, offset int) ([]domain.BankAccount, error)

	// ListContainers retrieves the kind-agnostic view of every container.
	ListContainers(ctx context.Context) ([]domain.Container, error)
}

// ContainerWriter defines write operations for drawers and bank accounts
type ContainerWriter interface {
	// SaveDrawer persists a new cash drawer.
	SaveDrawer(ctx context.Context, drawer domain.CashDrawer) error

	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// DeactivateContainer marks a container inactive. Containers are never deleted.
	DeactivateContainer(ctx context.Context, ref domain.ContainerRef, userID string, now time.Time) error
}

// ContainerRepositoryFacade combines all container-related repository interfaces
type ContainerRepositoryFacade interface {
	ContainerReader
	ContainerWriter
}
