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
	"github.com/Dadminete/caja-ledger/internal/dto"
)

// --- Test Suite Setup ---
type TransferServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockContainerRepo *MockContainerRepository
	service           portssvc.TransferSvcFacade
	source            domain.Container
	destination       domain.Container
	userID            string
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockContainerRepo = new(MockContainerRepository)
	suite.service = services.NewTransferService(suite.mockJournalRepo, suite.mockContainerRepo)

	suite.userID = uuid.NewString()
	suite.source = domain.Container{
		Ref:      domain.ContainerRef{Type: domain.ContainerDrawer, ID: uuid.NewString()},
		Name:     "Caja Principal",
		Balance:  decimal.NewFromInt(1000),
		IsActive: true,
	}
	suite.destination = domain.Container{
		Ref:      domain.ContainerRef{Type: domain.ContainerBank, ID: uuid.NewString()},
		Name:     "Cuenta BBVA",
		Balance:  decimal.NewFromInt(5000),
		IsActive: true,
	}
}

func (suite *TransferServiceTestSuite) validRequest() dto.ExecuteTransferRequest {
	return dto.ExecuteTransferRequest{
		Source:      dto.ContainerRefRequest{Type: suite.source.Ref.Type, ID: suite.source.Ref.ID},
		Destination: dto.ContainerRefRequest{Type: suite.destination.Ref.Type, ID: suite.destination.Ref.ID},
		Amount:      decimal.NewFromInt(300),
		Concept:     "Deposito diario",
	}
}

// --- Test Cases ---

func (suite *TransferServiceTestSuite) TestExecuteTransfer_Success() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockContainerRepo.On("FindContainer", ctx, suite.source.Ref).Return(&suite.source, nil).Once()
	suite.mockContainerRepo.On("FindContainer", ctx, suite.destination.Ref).Return(&suite.destination, nil).Once()

	var savedTransfer domain.Transfer
	var savedOut, savedIn domain.JournalEntry
	suite.mockJournalRepo.On("SaveTransfer", ctx, mock.AnythingOfType("domain.Transfer"), mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			savedTransfer = args.Get(1).(domain.Transfer)
			savedOut = args.Get(2).(domain.JournalEntry)
			savedIn = args.Get(3).(domain.JournalEntry)
		}).
		Return(nil).Once()

	transfer, err := suite.service.ExecuteTransfer(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(transfer)
	suite.NotEmpty(transfer.TransferID)
	suite.Equal(suite.source.Ref, transfer.Source)
	suite.Equal(suite.destination.Ref, transfer.Destination)
	suite.Equal(suite.userID, transfer.AuthorizedBy)

	// Both legs carry the same amount under the reserved transfer category
	// and reference the transfer that produced them.
	suite.Equal(domain.EntryExpense, savedOut.EntryType)
	suite.Equal(domain.EntryIncome, savedIn.EntryType)
	suite.True(savedOut.Amount.Equal(req.Amount))
	suite.True(savedIn.Amount.Equal(req.Amount))
	suite.Equal(domain.TransferCategoryID, savedOut.CategoryID)
	suite.Equal(domain.TransferCategoryID, savedIn.CategoryID)
	suite.Equal(suite.source.Ref, savedOut.Container)
	suite.Equal(suite.destination.Ref, savedIn.Container)
	suite.Require().NotNil(savedOut.TransferID)
	suite.Require().NotNil(savedIn.TransferID)
	suite.Equal(savedTransfer.TransferID, *savedOut.TransferID)
	suite.Equal(savedTransfer.TransferID, *savedIn.TransferID)
	suite.Equal(savedTransfer.OutEntryID, savedOut.EntryID)
	suite.Equal(savedTransfer.InEntryID, savedIn.EntryID)

	suite.mockContainerRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestExecuteTransfer_NonPositiveAmount() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Amount = decimal.NewFromInt(-10)

	_, err := suite.service.ExecuteTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestExecuteTransfer_SameContainer() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Destination = req.Source

	_, err := suite.service.ExecuteTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSameContainer)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestExecuteTransfer_Replay() {
	ctx := context.Background()
	key := uuid.NewString()
	req := suite.validRequest()
	req.IdempotencyKey = &key

	original := &domain.Transfer{
		TransferID:     uuid.NewString(),
		Source:         suite.source.Ref,
		Destination:    suite.destination.Ref,
		Amount:         req.Amount,
		IdempotencyKey: &key,
	}
	suite.mockJournalRepo.On("FindTransferByIdempotencyKey", ctx, key).Return(original, nil).Once()

	transfer, err := suite.service.ExecuteTransfer(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(original.TransferID, transfer.TransferID)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockContainerRepo.AssertNotCalled(suite.T(), "FindContainer", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestExecuteTransfer_SourceNotFound() {
	ctx := context.Background()
	req := suite.validRequest()

	suite.mockContainerRepo.On("FindContainer", ctx, suite.source.Ref).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ExecuteTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrContainerNotFound)
}

func (suite *TransferServiceTestSuite) TestExecuteTransfer_DestinationInactive() {
	ctx := context.Background()
	req := suite.validRequest()
	inactive := suite.destination
	inactive.IsActive = false

	suite.mockContainerRepo.On("FindContainer", ctx, suite.source.Ref).Return(&suite.source, nil).Once()
	suite.mockContainerRepo.On("FindContainer", ctx, suite.destination.Ref).Return(&inactive, nil).Once()

	_, err := suite.service.ExecuteTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrContainerInactive)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestExecuteTransfer_InsufficientBalance() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Amount = decimal.NewFromInt(2000)
	req.EnforceSufficient = true

	suite.mockContainerRepo.On("FindContainer", ctx, suite.source.Ref).Return(&suite.source, nil).Once()
	suite.mockContainerRepo.On("FindContainer", ctx, suite.destination.Ref).Return(&suite.destination, nil).Once()
	suite.mockJournalRepo.On("ComputeBalance", ctx, suite.source.Ref, (*time.Time)(nil)).Return(decimal.NewFromInt(1000), nil).Once()

	_, err := suite.service.ExecuteTransfer(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientBalance)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestExecuteTransfer_NoEnforcementAllowsOverdraft() {
	ctx := context.Background()
	req := suite.validRequest()
	req.Amount = decimal.NewFromInt(2000) // more than the source holds

	suite.mockContainerRepo.On("FindContainer", ctx, suite.source.Ref).Return(&suite.source, nil).Once()
	suite.mockContainerRepo.On("FindContainer", ctx, suite.destination.Ref).Return(&suite.destination, nil).Once()
	suite.mockJournalRepo.On("SaveTransfer", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.ExecuteTransfer(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ComputeBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestExecuteTransfer_ReplayRace() {
	ctx := context.Background()
	key := uuid.NewString()
	req := suite.validRequest()
	req.IdempotencyKey = &key

	original := &domain.Transfer{TransferID: uuid.NewString(), IdempotencyKey: &key}
	suite.mockJournalRepo.On("FindTransferByIdempotencyKey", ctx, key).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockContainerRepo.On("FindContainer", ctx, suite.source.Ref).Return(&suite.source, nil).Once()
	suite.mockContainerRepo.On("FindContainer", ctx, suite.destination.Ref).Return(&suite.destination, nil).Once()
	suite.mockJournalRepo.On("SaveTransfer", ctx, mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	suite.mockJournalRepo.On("FindTransferByIdempotencyKey", ctx, key).Return(original, nil).Once()

	transfer, err := suite.service.ExecuteTransfer(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(original.TransferID, transfer.TransferID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestListTransfers_DefaultLimit() {
	ctx := context.Background()
	transfers := []domain.Transfer{{TransferID: uuid.NewString()}}

	suite.mockJournalRepo.On("ListTransfers", ctx, 20, (*string)(nil)).Return(transfers, nil, nil).Once()

	resp, err := suite.service.ListTransfers(ctx, dto.ListTransfersParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Transfers, 1)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransferService(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
