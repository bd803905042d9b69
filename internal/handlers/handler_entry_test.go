package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aurumworks/bullion_ledger_app/internal/apperrors"
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	portssvc "github.com/aurumworks/bullion_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/bullion_ledger_app/internal/core/services"
	"github.com/aurumworks/bullion_ledger_app/internal/dto"
	"github.com/aurumworks/bullion_ledger_app/internal/handlers"
	"github.com/aurumworks/bullion_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.Entry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}
func (m *MockEntryService) GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}
func (m *MockEntryService) GetEntryRegistry(ctx context.Context, entryID string) ([]domain.RegistryRow, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegistryRow), args.Error(1)
}
func (m *MockEntryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}
func (m *MockEntryService) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, status, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}
func (m *MockEntryService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	args := m.Called(ctx, entryID, userID)
	return args.Error(0)
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

// --- Mock PDCService ---
type MockPDCService struct {
	mock.Mock
}

func (m *MockPDCService) ClearPDC(ctx context.Context, entryID string, cashItemID string, userID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, cashItemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}
func (m *MockPDCService) BouncePDC(ctx context.Context, entryID string, cashItemID string, userID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, cashItemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}
func (m *MockPDCService) CancelPDC(ctx context.Context, entryID string, cashItemID string, userID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, cashItemID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

var _ portssvc.PDCSvcFacade = (*MockPDCService)(nil)

// --- Mock MaturityService ---
type MockMaturityService struct {
	mock.Mock
}

func (m *MockMaturityService) ProcessMaturedPDCs(ctx context.Context, triggeredBy string) (*domain.MaturityResult, error) {
	args := m.Called(ctx, triggeredBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MaturityResult), args.Error(1)
}

var _ portssvc.MaturitySvcFacade = (*MockMaturityService)(nil)

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockEntryService    *MockEntryService
	mockPDCService      *MockPDCService
	mockMaturityService *MockMaturityService
	actorID             string
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.actorID = uuid.NewString()

	suite.mockEntryService = new(MockEntryService)
	suite.mockPDCService = new(MockPDCService)
	suite.mockMaturityService = new(MockMaturityService)

	container := &portssvc.ServiceContainer{
		Entry:    suite.mockEntryService,
		PDC:      suite.mockPDCService,
		Maturity: suite.mockMaturityService,
	}
	handlers.RegisterRoutes(suite.router, &config.Config{}, container)
}

// serve builds the request with the actor header and runs it through the router.
func (suite *EntryHandlerTestSuite) serve(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-ID", suite.actorID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestCreateEntry_Success() {
	req := dto.CreateEntryRequest{
		EntryType:   domain.CashReceipt,
		Status:      domain.Approved,
		PartyID:     uuid.NewString(),
		VoucherCode: "CR-1001",
		VoucherDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CashItems: []dto.CreateCashItemRequest{
			{
				CurrencyCode:  "AED",
				Amount:        decimal.NewFromInt(250),
				CashType:      domain.CashTypeBank,
				BankAccountID: uuid.NewString(),
			},
		},
	}

	expected := &domain.Entry{
		EntryID:     uuid.NewString(),
		EntryType:   domain.CashReceipt,
		Status:      domain.Approved,
		PartyID:     req.PartyID,
		VoucherCode: req.VoucherCode,
		VoucherDate: req.VoucherDate,
		CashItems: []domain.CashItem{
			{
				CashItemID:    uuid.NewString(),
				CurrencyCode:  "AED",
				Amount:        decimal.NewFromInt(250),
				CashType:      domain.CashTypeBank,
				BankAccountID: req.CashItems[0].BankAccountID,
			},
		},
	}

	suite.mockEntryService.On("CreateEntry",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateEntryRequest) bool {
			return r.VoucherCode == req.VoucherCode && len(r.CashItems) == 1
		}),
		suite.actorID,
	).Return(expected, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/entries", req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.EntryID, resp.EntryID)
	suite.Equal(expected.VoucherCode, resp.VoucherCode)
	suite.True(resp.TotalAmount.Equal(decimal.NewFromInt(250)))
	suite.True(resp.TotalWeight.IsZero())

	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_MissingActorHeader() {
	body := dto.CreateEntryRequest{
		EntryType:   domain.CashReceipt,
		PartyID:     uuid.NewString(),
		VoucherCode: "CR-1002",
		VoucherDate: time.Now(),
		CashItems: []dto.CreateCashItemRequest{
			{CurrencyCode: "AED", Amount: decimal.NewFromInt(10), CashType: domain.CashTypeCash, BankAccountID: uuid.NewString()},
		},
	}
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_VoucherCodeTaken() {
	req := dto.CreateEntryRequest{
		EntryType:   domain.CashReceipt,
		PartyID:     uuid.NewString(),
		VoucherCode: "CR-1001",
		VoucherDate: time.Now(),
		CashItems: []dto.CreateCashItemRequest{
			{CurrencyCode: "AED", Amount: decimal.NewFromInt(10), CashType: domain.CashTypeCash, BankAccountID: uuid.NewString()},
		},
	}

	suite.mockEntryService.On("CreateEntry", mock.Anything, mock.Anything, suite.actorID).
		Return(nil, services.ErrVoucherCodeTaken).Once()

	w := suite.serve(http.MethodPost, "/api/v1/entries", req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	entryID := uuid.NewString()
	suite.mockEntryService.On("GetEntryByID", mock.Anything, entryID).
		Return(nil, apperrors.NewNotFoundError("entry not found")).Once()

	w := suite.serve(http.MethodGet, "/api/v1/entries/"+entryID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestUpdateEntryStatus_ChequeNotDue() {
	entryID := uuid.NewString()
	body := dto.UpdateEntryStatusRequest{Status: domain.Approved}

	suite.mockEntryService.On("UpdateEntryStatus", mock.Anything, entryID, domain.Approved, suite.actorID).
		Return(nil, services.ErrChequeNotDue).Once()

	w := suite.serve(http.MethodPatch, fmt.Sprintf("/api/v1/entries/%s/status", entryID), body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestDeleteEntry_Success() {
	entryID := uuid.NewString()
	suite.mockEntryService.On("DeleteEntry", mock.Anything, entryID, suite.actorID).
		Return(nil).Once()

	w := suite.serve(http.MethodDelete, "/api/v1/entries/"+entryID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetEntryRegistry_Success() {
	entryID := uuid.NewString()
	rows := []domain.RegistryRow{
		{
			RegistryID:    uuid.NewString(),
			TransactionID: 42,
			LedgerType:    domain.LedgerPartyCashBalance,
			Debit:         decimal.NewFromInt(100),
			Reference:     "CR-1001",
		},
	}

	suite.mockEntryService.On("GetEntryRegistry", mock.Anything, entryID).
		Return(rows, nil).Once()

	w := suite.serve(http.MethodGet, fmt.Sprintf("/api/v1/entries/%s/registry", entryID), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.RegistryRowResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
	suite.Equal(rows[0].RegistryID, resp[0].RegistryID)

	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestClearPDC_Success() {
	entryID := uuid.NewString()
	cashItemID := uuid.NewString()
	expected := &domain.Entry{EntryID: entryID, VoucherCode: "CR-2001"}

	suite.mockPDCService.On("ClearPDC", mock.Anything, entryID, cashItemID, suite.actorID).
		Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/entries/%s/cash-items/%s/clear", entryID, cashItemID)
	w := suite.serve(http.MethodPost, url, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockPDCService.AssertExpectations(suite.T())
	suite.mockEntryService.AssertNotCalled(suite.T(), "UpdateEntry")
}

func (suite *EntryHandlerTestSuite) TestBouncePDC_NotPending() {
	entryID := uuid.NewString()
	cashItemID := uuid.NewString()

	suite.mockPDCService.On("BouncePDC", mock.Anything, entryID, cashItemID, suite.actorID).
		Return(nil, services.ErrPDCNotPending).Once()

	url := fmt.Sprintf("/api/v1/entries/%s/cash-items/%s/bounce", entryID, cashItemID)
	w := suite.serve(http.MethodPost, url, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockPDCService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestProcessMatured_Success() {
	result := &domain.MaturityResult{Processed: 3, Skipped: 1}

	suite.mockMaturityService.On("ProcessMaturedPDCs", mock.Anything, suite.actorID).
		Return(result, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/pdc/process-matured", nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.MaturityResultResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.Processed)
	suite.Equal(1, resp.Skipped)

	suite.mockMaturityService.AssertExpectations(suite.T())
}

func TestEntryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
