package services

import (
	"context"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/Dadminete/caja-ledger/internal/dto"
)

// RegistrySvcFacade defines the account, container and category registry.
type RegistrySvcFacade interface {
	// CreateDrawer registers a new cash drawer.
	CreateDrawer(ctx context.Context, req dto.CreateDrawerRequest, creatorUserID string) (*domain.CashDrawer, error)

	// GetDrawerByID retrieves a specific cash drawer.
	GetDrawerByID(ctx context.Context, drawerID string) (*domain.CashDrawer, error)

	// ListDrawers retrieves cash drawers with offset pagination.
	ListDrawers(ctx context.Context, limit int, offset int) ([]domain.CashDrawer, error)

	// CreateBankAccount registers a new bank account.
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error)

	// GetBankAccountByID retrieves a specific bank account.
	GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves bank accounts with offset pagination.
	ListBankAccounts(ctx context.Context, limit int, offset int) ([]domain.BankAccount, error)

	// CreateAccount registers a new accounting account, optionally linked to
	// an existing container.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.AccountingAccount, error)

	// GetAccountByID retrieves a specific accounting account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.AccountingAccount, error)

	// ListAccounts retrieves accounting accounts with offset pagination.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AccountingAccount, error)

	// LinkContainer links an accounting account to its operational container.
	LinkContainer(ctx context.Context, accountID string, ref domain.ContainerRef, userID string) (*domain.AccountingAccount, error)

	// DeactivateContainer soft-deactivates a drawer or bank account.
	DeactivateContainer(ctx context.Context, ref domain.ContainerRef, userID string) error

	// DeactivateAccount soft-deactivates an accounting account.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error

	// CreateCategory registers a new movement category.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)

	// ListCategories retrieves all movement categories.
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
