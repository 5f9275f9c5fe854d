package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
	"github.com/Dadminete/caja-ledger/internal/core/services"
	"github.com/Dadminete/caja-ledger/internal/dto"
	"github.com/Dadminete/caja-ledger/internal/middleware"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) PostEntry(ctx context.Context, req dto.PostEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ComputeBalance(ctx context.Context, ref domain.ContainerRef, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ref, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, ref domain.ContainerRef, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, ref, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	userID             string
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterCustomValidations())

	suite.router = gin.New()
	suite.mockJournalService = new(MockJournalService)
	suite.userID = uuid.NewString()

	v1 := suite.router.Group("/api/v1", middleware.RequireUserID())
	registerEntryRoutes(v1, suite.mockJournalService)
}

func (suite *EntryHandlerTestSuite) postJSON(url string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, suite.userID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestPostEntry_Success() {
	drawerID := uuid.NewString()
	reqBody := dto.PostEntryRequest{
		DrawerID:    &drawerID,
		EntryType:   domain.EntryIncome,
		Amount:      decimal.NewFromInt(100),
		CategoryID:  uuid.NewString(),
		Date:        time.Now().UTC(),
		Description: "Venta mostrador",
	}
	created := &domain.JournalEntry{
		EntryID:   uuid.NewString(),
		Container: domain.ContainerRef{Type: domain.ContainerDrawer, ID: drawerID},
		EntryType: domain.EntryIncome,
		Amount:    decimal.NewFromInt(100),
		CreatedBy: suite.userID,
	}

	suite.mockJournalService.On("PostEntry", mock.Anything, mock.AnythingOfType("dto.PostEntryRequest"), suite.userID).Return(created, nil).Once()

	w := suite.postJSON("/api/v1/entries", reqBody)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.EntryID, resp.EntryID)
	suite.Equal(created.Container, resp.Container)

	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_MissingUserHeader() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestPostEntry_NonPositiveAmountRejectedByBinding() {
	drawerID := uuid.NewString()
	reqBody := dto.PostEntryRequest{
		DrawerID:    &drawerID,
		EntryType:   domain.EntryIncome,
		Amount:      decimal.Zero,
		CategoryID:  uuid.NewString(),
		Date:        time.Now().UTC(),
		Description: "Venta mostrador",
	}

	w := suite.postJSON("/api/v1/entries", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestPostEntry_ContainerNotFound() {
	drawerID := uuid.NewString()
	reqBody := dto.PostEntryRequest{
		DrawerID:    &drawerID,
		EntryType:   domain.EntryExpense,
		Amount:      decimal.NewFromInt(50),
		CategoryID:  uuid.NewString(),
		Date:        time.Now().UTC(),
		Description: "Compra material",
	}

	suite.mockJournalService.On("PostEntry", mock.Anything, mock.AnythingOfType("dto.PostEntryRequest"), suite.userID).
		Return(nil, fmt.Errorf("%w: DRAWER %s", services.ErrContainerNotFound, drawerID)).Once()

	w := suite.postJSON("/api/v1/entries", reqBody)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestPostEntry_ContainerInactive() {
	drawerID := uuid.NewString()
	reqBody := dto.PostEntryRequest{
		DrawerID:    &drawerID,
		EntryType:   domain.EntryIncome,
		Amount:      decimal.NewFromInt(50),
		CategoryID:  uuid.NewString(),
		Date:        time.Now().UTC(),
		Description: "Venta",
	}

	suite.mockJournalService.On("PostEntry", mock.Anything, mock.AnythingOfType("dto.PostEntryRequest"), suite.userID).
		Return(nil, fmt.Errorf("%w: DRAWER %s", services.ErrContainerInactive, drawerID)).Once()

	w := suite.postJSON("/api/v1/entries", reqBody)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *EntryHandlerTestSuite) TestGetBalance_Success() {
	ref := domain.ContainerRef{Type: domain.ContainerDrawer, ID: uuid.NewString()}

	suite.mockJournalService.On("ComputeBalance", mock.Anything, ref, (*time.Time)(nil)).Return(decimal.NewFromInt(1800), nil).Once()

	url := fmt.Sprintf("/api/v1/balance?containerType=DRAWER&containerID=%s", ref.ID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set(middleware.UserIDHeader, suite.userID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(ref, resp.Container)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(1800)))

	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetBalance_BadContainerType() {
	url := "/api/v1/balance?containerType=WALLET&containerID=" + uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set(middleware.UserIDHeader, suite.userID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "ComputeBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestListEntries_PassesParams() {
	ref := domain.ContainerRef{Type: domain.ContainerBank, ID: uuid.NewString()}
	expected := &dto.ListEntriesResponse{
		Entries: []dto.EntryResponse{{EntryID: uuid.NewString(), Container: ref}},
	}

	suite.mockJournalService.On("ListEntries", mock.Anything, ref, mock.MatchedBy(func(p dto.ListEntriesParams) bool {
		return p.Limit == 10 && p.NextToken == nil
	})).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/entries?containerType=BANK_ACCOUNT&containerID=%s&limit=10", ref.ID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set(middleware.UserIDHeader, suite.userID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)

	suite.mockJournalService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
