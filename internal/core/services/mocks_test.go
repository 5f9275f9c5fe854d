package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portsrepo "github.com/Dadminete/caja-ledger/internal/core/ports/repositories"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryBySourceActionID(ctx context.Context, sourceActionID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, sourceActionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByContainer(ctx context.Context, ref domain.ContainerRef, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, ref, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) ComputeBalance(ctx context.Context, ref domain.ContainerRef, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ref, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer, outEntry domain.JournalEntry, inEntry domain.JournalEntry) error {
	args := m.Called(ctx, transfer, outEntry, inEntry)
	return args.Error(0)
}

func (m *MockJournalRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockJournalRepository) FindTransferByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockJournalRepository) ListTransfers(ctx context.Context, limit int, nextToken *string) ([]domain.Transfer, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transfer), returnedNextToken, args.Error(2)
}

// --- Mock ContainerRepository ---
type MockContainerRepository struct {
	mock.Mock
}

var _ portsrepo.ContainerRepositoryFacade = (*MockContainerRepository)(nil)

func (m *MockContainerRepository) FindDrawerByID(ctx context.Context, drawerID string) (*domain.CashDrawer, error) {
	args := m.Called(ctx, drawerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashDrawer), args.Error(1)
}

func (m *MockContainerRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockContainerRepository) FindContainer(ctx context.Context, ref domain.ContainerRef) (*domain.Container, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Container), args.Error(1)
}

func (m *MockContainerRepository) ListDrawers(ctx context.Context, limit int, offset int) ([]domain.CashDrawer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashDrawer), args.Error(1)
}

func (m *MockContainerRepository) ListBankAccounts(ctx context.Context, limit int, offset int) ([]domain.BankAccount, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockContainerRepository) ListContainers(ctx context.Context) ([]domain.Container, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Container), args.Error(1)
}

func (m *MockContainerRepository) SaveDrawer(ctx context.Context, drawer domain.CashDrawer) error {
	args := m.Called(ctx, drawer)
	return args.Error(0)
}

func (m *MockContainerRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockContainerRepository) DeactivateContainer(ctx context.Context, ref domain.ContainerRef, userID string, now time.Time) error {
	args := m.Called(ctx, ref, userID, now)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.AccountingAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.AccountingAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByContainer(ctx context.Context, ref domain.ContainerRef) (*domain.AccountingAccount, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingAccount), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.AccountingAccount, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingAccount), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.AccountingAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) LinkContainer(ctx context.Context, accountID string, ref domain.ContainerRef, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, ref, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock SessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

var _ portsrepo.SessionRepositoryFacade = (*MockSessionRepository)(nil)

func (m *MockSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.DrawerSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DrawerSession), args.Error(1)
}

func (m *MockSessionRepository) FindOpenSessionByDrawer(ctx context.Context, drawerID string) (*domain.DrawerSession, error) {
	args := m.Called(ctx, drawerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DrawerSession), args.Error(1)
}

func (m *MockSessionRepository) ListSessionsByDrawer(ctx context.Context, drawerID string, limit int, nextToken *string) ([]domain.DrawerSession, *string, error) {
	args := m.Called(ctx, drawerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.DrawerSession), returnedNextToken, args.Error(2)
}

func (m *MockSessionRepository) OpenSession(ctx context.Context, session domain.DrawerSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) CloseSession(ctx context.Context, drawerID string, closingCount decimal.Decimal, closedBy string, now time.Time) (*domain.DrawerSession, *domain.SessionTotals, error) {
	args := m.Called(ctx, drawerID, closingCount, closedBy, now)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.DrawerSession), args.Get(1).(*domain.SessionTotals), args.Error(2)
}

// --- Mock ReconciliationRepository ---
type MockReconciliationRepository struct {
	mock.Mock
}

var _ portsrepo.ReconciliationRepository = (*MockReconciliationRepository)(nil)

func (m *MockReconciliationRepository) RepairBalance(ctx context.Context, ref domain.ContainerRef, repairedBy string, now time.Time) (*domain.BalanceRepair, error) {
	args := m.Called(ctx, ref, repairedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceRepair), args.Error(1)
}

func (m *MockReconciliationRepository) FindOrphans(ctx context.Context) ([]domain.OrphanRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrphanRef), args.Error(1)
}

func (m *MockReconciliationRepository) ListRepairs(ctx context.Context, ref *domain.ContainerRef, limit int) ([]domain.BalanceRepair, error) {
	args := m.Called(ctx, ref, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceRepair), args.Error(1)
}

// Helper functions
func stringPtr(s string) *string {
	return &s
}
