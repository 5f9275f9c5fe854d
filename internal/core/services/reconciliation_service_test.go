package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Dadminete/caja-ledger/internal/apperrors"
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
	"github.com/Dadminete/caja-ledger/internal/core/services"
)

// --- Test Suite Setup ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockContainerRepo *MockContainerRepository
	mockReconRepo     *MockReconciliationRepository
	service           portssvc.ReconciliationSvcFacade
	drawer            domain.Container
	userID            string
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockContainerRepo = new(MockContainerRepository)
	suite.mockReconRepo = new(MockReconciliationRepository)
	suite.service = services.NewReconciliationService(suite.mockJournalRepo, suite.mockContainerRepo, suite.mockReconRepo)

	suite.userID = uuid.NewString()
	accountID := uuid.NewString()
	suite.drawer = domain.Container{
		Ref:       domain.ContainerRef{Type: domain.ContainerDrawer, ID: uuid.NewString()},
		Name:      "Caja Principal",
		Balance:   decimal.NewFromInt(120),
		IsActive:  true,
		AccountID: &accountID,
	}
}

// --- Test Cases ---

func (suite *ReconciliationServiceTestSuite) TestReconcile_Drift() {
	ctx := context.Background()

	suite.mockContainerRepo.On("FindContainer", ctx, suite.drawer.Ref).Return(&suite.drawer, nil).Once()
	suite.mockJournalRepo.On("ComputeBalance", ctx, suite.drawer.Ref, (*time.Time)(nil)).Return(decimal.NewFromInt(100), nil).Once()

	report, err := suite.service.Reconcile(ctx, suite.drawer.Ref)

	suite.Require().NoError(err)
	suite.True(report.Cached.Equal(decimal.NewFromInt(120)))
	suite.True(report.Computed.Equal(decimal.NewFromInt(100)))
	suite.True(report.Drift.Equal(decimal.NewFromInt(20)))
	suite.True(report.HasDrift())
	suite.False(report.Unlinked)

	suite.mockContainerRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_NoDrift() {
	ctx := context.Background()

	suite.mockContainerRepo.On("FindContainer", ctx, suite.drawer.Ref).Return(&suite.drawer, nil).Once()
	suite.mockJournalRepo.On("ComputeBalance", ctx, suite.drawer.Ref, (*time.Time)(nil)).Return(decimal.NewFromInt(120), nil).Once()

	report, err := suite.service.Reconcile(ctx, suite.drawer.Ref)

	suite.Require().NoError(err)
	suite.False(report.HasDrift())
	suite.True(report.Drift.IsZero())
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_Unlinked() {
	ctx := context.Background()
	unlinked := suite.drawer
	unlinked.AccountID = nil

	suite.mockContainerRepo.On("FindContainer", ctx, suite.drawer.Ref).Return(&unlinked, nil).Once()
	suite.mockJournalRepo.On("ComputeBalance", ctx, suite.drawer.Ref, (*time.Time)(nil)).Return(decimal.NewFromInt(120), nil).Once()

	report, err := suite.service.Reconcile(ctx, suite.drawer.Ref)

	suite.Require().NoError(err)
	suite.True(report.Unlinked)
}

func (suite *ReconciliationServiceTestSuite) TestReconcile_ContainerNotFound() {
	ctx := context.Background()

	suite.mockContainerRepo.On("FindContainer", ctx, suite.drawer.Ref).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Reconcile(ctx, suite.drawer.Ref)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrContainerNotFound)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAll() {
	ctx := context.Background()
	bank := domain.Container{
		Ref:     domain.ContainerRef{Type: domain.ContainerBank, ID: uuid.NewString()},
		Name:    "Cuenta BBVA",
		Balance: decimal.NewFromInt(5000),
	}

	suite.mockContainerRepo.On("ListContainers", ctx).Return([]domain.Container{suite.drawer, bank}, nil).Once()
	suite.mockContainerRepo.On("FindContainer", ctx, suite.drawer.Ref).Return(&suite.drawer, nil).Once()
	suite.mockContainerRepo.On("FindContainer", ctx, bank.Ref).Return(&bank, nil).Once()
	suite.mockJournalRepo.On("ComputeBalance", ctx, suite.drawer.Ref, (*time.Time)(nil)).Return(decimal.NewFromInt(100), nil).Once()
	suite.mockJournalRepo.On("ComputeBalance", ctx, bank.Ref, (*time.Time)(nil)).Return(decimal.NewFromInt(5000), nil).Once()

	reports, err := suite.service.ReconcileAll(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(reports, 2)
	suite.True(reports[0].HasDrift())
	suite.False(reports[1].HasDrift())
}

func (suite *ReconciliationServiceTestSuite) TestRepair_Success() {
	ctx := context.Background()
	repair := &domain.BalanceRepair{
		RepairID:   uuid.NewString(),
		Container:  suite.drawer.Ref,
		OldBalance: decimal.NewFromInt(120),
		NewBalance: decimal.NewFromInt(100),
		RepairedBy: suite.userID,
	}

	suite.mockContainerRepo.On("FindContainer", ctx, suite.drawer.Ref).Return(&suite.drawer, nil).Once()
	suite.mockReconRepo.On("RepairBalance", ctx, suite.drawer.Ref, suite.userID, mock.AnythingOfType("time.Time")).Return(repair, nil).Once()

	got, err := suite.service.Repair(ctx, suite.drawer.Ref, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(repair.RepairID, got.RepairID)
	suite.True(got.OldBalance.Equal(decimal.NewFromInt(120)))
	suite.True(got.NewBalance.Equal(decimal.NewFromInt(100)))

	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestRepair_ContainerNotFound() {
	ctx := context.Background()

	suite.mockContainerRepo.On("FindContainer", ctx, suite.drawer.Ref).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Repair(ctx, suite.drawer.Ref, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrContainerNotFound)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "RepairBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestFindOrphanEntries() {
	ctx := context.Background()
	entryID := uuid.NewString()
	orphans := []domain.OrphanRef{
		{Kind: domain.OrphanEntryContainer, EntryID: &entryID, Detail: "entry references missing drawer"},
	}

	suite.mockReconRepo.On("FindOrphans", ctx).Return(orphans, nil).Once()

	got, err := suite.service.FindOrphanEntries(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(domain.OrphanEntryContainer, got[0].Kind)
}

func (suite *ReconciliationServiceTestSuite) TestListRepairs_DefaultLimit() {
	ctx := context.Background()

	suite.mockReconRepo.On("ListRepairs", ctx, (*domain.ContainerRef)(nil), 50).Return([]domain.BalanceRepair{}, nil).Once()

	repairs, err := suite.service.ListRepairs(ctx, nil, 0)

	suite.Require().NoError(err)
	suite.Empty(repairs)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestReconciliationService(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
