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
type SessionServiceTestSuite struct {
	suite.Suite
	mockSessionRepo   *MockSessionRepository
	mockContainerRepo *MockContainerRepository
	service           portssvc.SessionSvcFacade
	drawer            domain.CashDrawer
	userID            string
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.mockSessionRepo = new(MockSessionRepository)
	suite.mockContainerRepo = new(MockContainerRepository)
	suite.service = services.NewSessionService(suite.mockSessionRepo, suite.mockContainerRepo)

	suite.userID = uuid.NewString()
	suite.drawer = domain.CashDrawer{
		DrawerID:       uuid.NewString(),
		Name:           "Caja Principal",
		OpeningBalance: decimal.NewFromInt(500),
		Balance:        decimal.NewFromInt(500),
		IsActive:       true,
	}
}

// --- Test Cases ---

func (suite *SessionServiceTestSuite) TestOpenSession_Success() {
	ctx := context.Background()
	req := dto.OpenSessionRequest{OpeningCount: decimal.NewFromInt(500)}

	suite.mockContainerRepo.On("FindDrawerByID", ctx, suite.drawer.DrawerID).Return(&suite.drawer, nil).Once()
	suite.mockSessionRepo.On("OpenSession", ctx, mock.AnythingOfType("domain.DrawerSession")).Return(nil).Once()

	session, err := suite.service.OpenSession(ctx, suite.drawer.DrawerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(session)
	suite.NotEmpty(session.SessionID)
	suite.Equal(suite.drawer.DrawerID, session.DrawerID)
	suite.Equal(domain.SessionOpen, session.Status)
	suite.Equal(suite.userID, session.OpenedBy)
	suite.True(session.OpeningCount.Equal(req.OpeningCount))
	suite.Nil(session.ClosedAt)

	suite.mockContainerRepo.AssertExpectations(suite.T())
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestOpenSession_NegativeCount() {
	ctx := context.Background()
	req := dto.OpenSessionRequest{OpeningCount: decimal.NewFromInt(-1)}

	_, err := suite.service.OpenSession(ctx, suite.drawer.DrawerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "OpenSession", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestOpenSession_DrawerNotFound() {
	ctx := context.Background()
	req := dto.OpenSessionRequest{OpeningCount: decimal.NewFromInt(500)}

	suite.mockContainerRepo.On("FindDrawerByID", ctx, suite.drawer.DrawerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.OpenSession(ctx, suite.drawer.DrawerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDrawerNotFound)
}

func (suite *SessionServiceTestSuite) TestOpenSession_DrawerInactive() {
	ctx := context.Background()
	req := dto.OpenSessionRequest{OpeningCount: decimal.NewFromInt(500)}
	inactive := suite.drawer
	inactive.IsActive = false

	suite.mockContainerRepo.On("FindDrawerByID", ctx, suite.drawer.DrawerID).Return(&inactive, nil).Once()

	_, err := suite.service.OpenSession(ctx, suite.drawer.DrawerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDrawerInactive)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "OpenSession", mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestOpenSession_AlreadyOpen() {
	ctx := context.Background()
	req := dto.OpenSessionRequest{OpeningCount: decimal.NewFromInt(500)}

	suite.mockContainerRepo.On("FindDrawerByID", ctx, suite.drawer.DrawerID).Return(&suite.drawer, nil).Once()
	suite.mockSessionRepo.On("OpenSession", ctx, mock.AnythingOfType("domain.DrawerSession")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.OpenSession(ctx, suite.drawer.DrawerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSessionAlreadyOpen)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestCloseSession_Success() {
	ctx := context.Background()
	req := dto.CloseSessionRequest{ClosingCount: decimal.NewFromInt(1800)}

	closedAt := time.Now().UTC()
	closedBy := suite.userID
	closingCount := decimal.NewFromInt(1800)
	expected := decimal.NewFromInt(1800)
	variance := decimal.Zero
	closed := &domain.DrawerSession{
		SessionID:       uuid.NewString(),
		DrawerID:        suite.drawer.DrawerID,
		Status:          domain.SessionClosed,
		OpenedBy:        suite.userID,
		OpeningCount:    decimal.NewFromInt(500),
		ClosedAt:        &closedAt,
		ClosedBy:        &closedBy,
		ClosingCount:    &closingCount,
		ExpectedClosing: &expected,
		Variance:        &variance,
	}
	totals := &domain.SessionTotals{
		Income:     decimal.NewFromInt(1500),
		Expense:    decimal.NewFromInt(200),
		EntryCount: 3,
	}

	suite.mockContainerRepo.On("FindDrawerByID", ctx, suite.drawer.DrawerID).Return(&suite.drawer, nil).Once()
	suite.mockSessionRepo.On("CloseSession", ctx, suite.drawer.DrawerID, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(closed, totals, nil).Once()

	session, gotTotals, err := suite.service.CloseSession(ctx, suite.drawer.DrawerID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SessionClosed, session.Status)
	suite.True(gotTotals.Income.Equal(totals.Income))
	suite.True(gotTotals.Expense.Equal(totals.Expense))
	suite.Equal(3, gotTotals.EntryCount)

	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestCloseSession_NoOpenSession() {
	ctx := context.Background()
	req := dto.CloseSessionRequest{ClosingCount: decimal.NewFromInt(100)}

	suite.mockContainerRepo.On("FindDrawerByID", ctx, suite.drawer.DrawerID).Return(&suite.drawer, nil).Once()
	suite.mockSessionRepo.On("CloseSession", ctx, suite.drawer.DrawerID, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(nil, nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.CloseSession(ctx, suite.drawer.DrawerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoOpenSession)
}

func (suite *SessionServiceTestSuite) TestCloseSession_DrawerNotFound() {
	ctx := context.Background()
	req := dto.CloseSessionRequest{ClosingCount: decimal.NewFromInt(100)}

	suite.mockContainerRepo.On("FindDrawerByID", ctx, suite.drawer.DrawerID).Return(nil, apperrors.ErrNotFound).Once()

	_, _, err := suite.service.CloseSession(ctx, suite.drawer.DrawerID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDrawerNotFound)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "CloseSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SessionServiceTestSuite) TestGetOpenSession_None() {
	ctx := context.Background()

	suite.mockSessionRepo.On("FindOpenSessionByDrawer", ctx, suite.drawer.DrawerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetOpenSession(ctx, suite.drawer.DrawerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoOpenSession)
}

func (suite *SessionServiceTestSuite) TestGetSessionHistory_DefaultLimit() {
	ctx := context.Background()
	sessions := []domain.DrawerSession{
		{SessionID: uuid.NewString(), DrawerID: suite.drawer.DrawerID, Status: domain.SessionClosed},
	}

	suite.mockSessionRepo.On("ListSessionsByDrawer", ctx, suite.drawer.DrawerID, 20, (*string)(nil)).Return(sessions, nil, nil).Once()

	resp, err := suite.service.GetSessionHistory(ctx, suite.drawer.DrawerID, dto.ListSessionsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Sessions, 1)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestSessionService(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
