package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dadminete/caja-ledger/internal/apperrors"
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portsrepo "github.com/Dadminete/caja-ledger/internal/core/ports/repositories"
	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
	"github.com/Dadminete/caja-ledger/internal/dto"
	"github.com/Dadminete/caja-ledger/internal/middleware"
)

var (
	ErrAccountNotFound   = errors.New("accounting account not found")
	ErrAccountCodeTaken  = errors.New("accounting account code already in use")
	ErrContainerLinked   = errors.New("container is already linked to an accounting account")
	ErrReservedCategory  = errors.New("category name is reserved")
	ErrDuplicateCategory = errors.New("category already exists")
)

// reservedCategoryNames cannot be taken by user-created categories; the
// transfer category among them is seeded by migration.
var reservedCategoryNames = []string{"traspasos"}

// registryService manages the registry of accounting accounts, their
// operational containers (drawers and bank accounts) and movement categories.
type registryService struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	containerRepo portsrepo.ContainerRepositoryFacade
	categoryRepo  portsrepo.CategoryRepositoryFacade
}

// NewRegistryService creates a new registry service.
func NewRegistryService(accountRepo portsrepo.AccountRepositoryFacade, containerRepo portsrepo.ContainerRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.RegistrySvcFacade {
	return &registryService{
		accountRepo:   accountRepo,
		containerRepo: containerRepo,
		categoryRepo:  categoryRepo,
	}
}

var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

// CreateDrawer registers a new cash drawer.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) CreateDrawer(ctx context.Context, req dto.CreateDrawerRequest, creatorUserID string) (*domain.CashDrawer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	drawer := domain.CashDrawer{
		DrawerID:       uuid.NewString(),
		Name:           req.Name,
		Location:       req.Location,
		OpeningBalance: req.OpeningBalance,
		Balance:        req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.containerRepo.SaveDrawer(ctx, drawer); err != nil {
		logger.Error("Failed to save drawer", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save drawer: %w", err)
	}

	logger.Info("Drawer created", slog.String("drawer_id", drawer.DrawerID), slog.String("name", drawer.Name))
	return &drawer, nil
}

// GetDrawerByID retrieves a specific cash drawer.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) GetDrawerByID(ctx context.Context, drawerID string) (*domain.CashDrawer, error) {
	drawer, err := s.containerRepo.FindDrawerByID(ctx, drawerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find drawer %s: %w", drawerID, err)
	}
	return drawer, nil
}

// ListDrawers retrieves cash drawers with offset pagination.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) ListDrawers(ctx context.Context, limit int, offset int) ([]domain.CashDrawer, error) {
	if limit <= 0 {
		limit = 20 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	drawers, err := s.containerRepo.ListDrawers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list drawers: %w", err)
	}
	return drawers, nil
}

// CreateBankAccount registers a new bank account.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, creatorUserID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		Name:           req.Name,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		OpeningBalance: req.OpeningBalance,
		Balance:        req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.containerRepo.SaveBankAccount(ctx, account); err != nil {
		logger.Error("Failed to save bank account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	logger.Info("Bank account created", slog.String("bank_account_id", account.BankAccountID), slog.String("name", account.Name))
	return &account, nil
}

// GetBankAccountByID retrieves a specific bank account.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.containerRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}
	return account, nil
}

// ListBankAccounts retrieves bank accounts with offset pagination.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) ListBankAccounts(ctx context.Context, limit int, offset int) ([]domain.BankAccount, error) {
	if limit <= 0 {
		limit = 20 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.containerRepo.ListBankAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

// CreateAccount registers a new accounting account.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.AccountingAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountCodeTaken, req.Code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	var containerRef *domain.ContainerRef
	if req.Container != nil {
		ref := req.Container.ToDomain()
		if err := s.checkLinkable(ctx, ref); err != nil {
			return nil, err
		}
		containerRef = &ref
	}

	now := time.Now().UTC()
	account := domain.AccountingAccount{
		AccountID:      uuid.NewString(),
		Code:           req.Code,
		Name:           req.Name,
		AccountType:    req.AccountType,
		CurrencyCode:   strings.ToUpper(req.CurrencyCode),
		OpeningBalance: req.OpeningBalance,
		Balance:        req.OpeningBalance,
		Container:      containerRef,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrAccountCodeTaken, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a specific accounting account.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) GetAccountByID(ctx context.Context, accountID string) (*domain.AccountingAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves accounting accounts with offset pagination.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AccountingAccount, error) {
	if limit <= 0 {
		limit = 20 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// checkLinkable verifies the container exists and is not already linked.
func (s *registryService) checkLinkable(ctx context.Context, ref domain.ContainerRef) error {
	if _, err := s.containerRepo.FindContainer(ctx, ref); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s %s", ErrContainerNotFound, ref.Type, ref.ID)
		}
		return fmt.Errorf("failed to fetch container: %w", err)
	}

	if existing, err := s.accountRepo.FindAccountByContainer(ctx, ref); err == nil {
		return fmt.Errorf("%w: account %s", ErrContainerLinked, existing.AccountID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check container link: %w", err)
	}
	return nil
}

// LinkContainer links an accounting account to its operational container.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) LinkContainer(ctx context.Context, accountID string, ref domain.ContainerRef, userID string) (*domain.AccountingAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if account.Container != nil && account.Container.Equal(ref) {
		// Linking the same container again is a no-op.
		return account, nil
	}

	if err := s.checkLinkable(ctx, ref); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.accountRepo.LinkContainer(ctx, accountID, ref, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s %s", ErrContainerLinked, ref.Type, ref.ID)
		}
		logger.Error("Failed to link container", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to link container: %w", err)
	}

	account.Container = &ref
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	logger.Info("Container linked",
		slog.String("account_id", accountID),
		slog.String("container_type", string(ref.Type)),
		slog.String("container_id", ref.ID),
	)
	return account, nil
}

// DeactivateContainer soft-deactivates a drawer or bank account.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) DeactivateContainer(ctx context.Context, ref domain.ContainerRef, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	container, err := s.containerRepo.FindContainer(ctx, ref)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s %s", ErrContainerNotFound, ref.Type, ref.ID)
		}
		return fmt.Errorf("failed to fetch container: %w", err)
	}
	if !container.IsActive {
		// Deactivating twice is a no-op.
		return nil
	}

	if err := s.containerRepo.DeactivateContainer(ctx, ref, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate container", slog.String("error", err.Error()), slog.String("container_id", ref.ID))
		return fmt.Errorf("failed to deactivate container: %w", err)
	}

	logger.Info("Container deactivated", slog.String("container_type", string(ref.Type)), slog.String("container_id", ref.ID))
	return nil
}

// DeactivateAccount soft-deactivates an accounting account.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
		}
		return fmt.Errorf("failed to fetch account: %w", err)
	}
	if !account.IsActive {
		return nil
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// CreateCategory registers a new movement category.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, reserved := range reservedCategoryNames {
		if strings.EqualFold(strings.TrimSpace(req.Name), reserved) {
			return nil, fmt.Errorf("%w: %s", ErrReservedCategory, req.Name)
		}
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCategory, req.Name)
		}
		logger.Error("Failed to save category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("name", category.Name))
	return &category, nil
}

// ListCategories retrieves all movement categories.
// Implements portssvc.RegistrySvcFacade
func (s *registryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
