package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/aurumworks/bullion_ledger_app/internal/apperrors"
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	portssvc "github.com/aurumworks/bullion_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/bullion_ledger_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PDCServiceTestSuite struct {
	suite.Suite
	mockEntryRepo    *MockEntryRepository
	mockRegistryRepo *MockRegistryRepository
	mockPDCRepo      *MockPDCRepository
	service          portssvc.PDCSvcFacade
	entryID          string
	cashItemID       string
	partyID          string
	bankAccountID    string
	pdcAccountID     string
	userID           string
	entry            *domain.Entry
	schedule         *domain.PDCSchedule
}

func (suite *PDCServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockRegistryRepo = new(MockRegistryRepository)
	suite.mockPDCRepo = new(MockPDCRepository)
	suite.service = services.NewPDCService(suite.mockEntryRepo, suite.mockRegistryRepo, suite.mockPDCRepo)

	suite.entryID = uuid.NewString()
	suite.cashItemID = uuid.NewString()
	suite.partyID = uuid.NewString()
	suite.bankAccountID = uuid.NewString()
	suite.pdcAccountID = uuid.NewString()
	suite.userID = uuid.NewString()

	chequeDate := time.Now().UTC().AddDate(0, 0, -2)
	maturity := chequeDate.AddDate(0, 0, 2)
	suite.entry = &domain.Entry{
		EntryID:     suite.entryID,
		EntryType:   domain.CurrencyReceipt,
		Status:      domain.Approved,
		PartyID:     suite.partyID,
		VoucherCode: "FX-4001",
		VoucherDate: chequeDate,
		CashItems: []domain.CashItem{
			{
				CashItemID:    suite.cashItemID,
				CurrencyCode:  "USD",
				Amount:        decimal.NewFromInt(1000),
				CashType:      domain.CashTypeCheque,
				BankAccountID: suite.bankAccountID,
				ChequeDate:    &chequeDate,
				IsPDC:         true,
				PDCStatus:     domain.PDCPending,
				MaturityDate:  &maturity,
				PDCAccountID:  suite.pdcAccountID,
			},
		},
	}
	suite.schedule = &domain.PDCSchedule{
		ScheduleID:    uuid.NewString(),
		EntryID:       suite.entryID,
		VoucherCode:   "FX-4001",
		CashItemID:    suite.cashItemID,
		PartyID:       suite.partyID,
		CurrencyCode:  "USD",
		Amount:        decimal.NewFromInt(1000),
		Direction:     domain.PDCReceipt,
		ChequeDate:    chequeDate,
		MaturityDate:  maturity,
		PDCAccountID:  suite.pdcAccountID,
		BankAccountID: suite.bankAccountID,
		Status:        domain.PDCPending,
	}
}

func (suite *PDCServiceTestSuite) expectResolution() *domain.Posting {
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, suite.entryID).Return(suite.entry, nil).Once()
	suite.mockPDCRepo.On("FindScheduleByCashItem", mock.Anything, suite.entryID, suite.cashItemID).Return(suite.schedule, nil).Once()
	suite.mockRegistryRepo.On("NextTransactionID", mock.Anything).Return(int64(9001), nil).Once()

	captured := &domain.Posting{}
	suite.mockRegistryRepo.On("ApplyPosting", mock.Anything, mock.AnythingOfType("domain.Posting")).
		Run(func(args mock.Arguments) {
			*captured = args.Get(1).(domain.Posting)
		}).Return(nil).Once()
	return captured
}

func (suite *PDCServiceTestSuite) TestClearPDC_MovesHoldToBank() {
	ctx := context.Background()
	captured := suite.expectResolution()

	entry, err := suite.service.ClearPDC(ctx, suite.entryID, suite.cashItemID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PDCCleared, entry.CashItems[0].PDCStatus)

	pdcDelta, ok := adjustmentFor(captured.CashAdjustments, suite.pdcAccountID)
	suite.True(ok)
	suite.True(pdcDelta.Equal(decimal.NewFromInt(1000)))
	bankDelta, ok := adjustmentFor(captured.CashAdjustments, suite.bankAccountID)
	suite.True(ok)
	suite.True(bankDelta.Equal(decimal.NewFromInt(-1000)))
	_, partyTouched := adjustmentFor(captured.CashAdjustments, suite.partyID)
	suite.False(partyTouched)

	maturityRows := rowsOfType(captured.Rows, domain.LedgerPDCMaturity)
	suite.Require().Len(maturityRows, 2)
	for _, row := range maturityRows {
		suite.Equal("FX-4001", row.Reference)
		suite.Equal(suite.cashItemID, row.CashItemID)
		suite.Equal(int64(9001), row.TransactionID)
	}

	suite.Require().Len(captured.ScheduleStatusUpdates, 1)
	suite.Equal(domain.PDCCleared, captured.ScheduleStatusUpdates[0].Status)
	suite.Equal(suite.userID, captured.ScheduleStatusUpdates[0].ActorID)
	suite.Require().Len(captured.CashItemPDCUpdates, 1)
	suite.Equal(domain.PDCCleared, captured.CashItemPDCUpdates[0].Status)

	suite.mockRegistryRepo.AssertExpectations(suite.T())
}

func (suite *PDCServiceTestSuite) TestClearPDC_LostResolutionRace() {
	ctx := context.Background()
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, suite.entryID).Return(suite.entry, nil).Once()
	suite.mockPDCRepo.On("FindScheduleByCashItem", mock.Anything, suite.entryID, suite.cashItemID).Return(suite.schedule, nil).Once()
	suite.mockRegistryRepo.On("NextTransactionID", mock.Anything).Return(int64(9001), nil).Once()

	// The schedule left PENDING between our read and the guarded status
	// transition; the posting rolled back whole.
	conflict := apperrors.NewAppError(409, "PDC schedule "+suite.schedule.ScheduleID+" is no longer pending", apperrors.ErrConflict)
	suite.mockRegistryRepo.On("ApplyPosting", mock.Anything, mock.AnythingOfType("domain.Posting")).Return(conflict).Once()

	_, err := suite.service.ClearPDC(ctx, suite.entryID, suite.cashItemID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPDCNotPending)
	suite.mockRegistryRepo.AssertExpectations(suite.T())
}

func (suite *PDCServiceTestSuite) TestBouncePDC_ReversesHoldAndParty() {
	ctx := context.Background()
	captured := suite.expectResolution()

	entry, err := suite.service.BouncePDC(ctx, suite.entryID, suite.cashItemID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PDCBounced, entry.CashItems[0].PDCStatus)

	partyDelta, ok := adjustmentFor(captured.CashAdjustments, suite.partyID)
	suite.True(ok)
	suite.True(partyDelta.Equal(decimal.NewFromInt(-1000)))
	pdcDelta, ok := adjustmentFor(captured.CashAdjustments, suite.pdcAccountID)
	suite.True(ok)
	suite.True(pdcDelta.Equal(decimal.NewFromInt(1000)))
	_, bankTouched := adjustmentFor(captured.CashAdjustments, suite.bankAccountID)
	suite.False(bankTouched)

	suite.Empty(rowsOfType(captured.Rows, domain.LedgerPDCMaturity))
	suite.Require().Len(captured.ScheduleStatusUpdates, 1)
	suite.Equal(domain.PDCBounced, captured.ScheduleStatusUpdates[0].Status)
}

func (suite *PDCServiceTestSuite) TestCancelPDC_SameReversalDistinctStatus() {
	ctx := context.Background()
	captured := suite.expectResolution()

	entry, err := suite.service.CancelPDC(ctx, suite.entryID, suite.cashItemID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PDCCancelled, entry.CashItems[0].PDCStatus)

	partyDelta, ok := adjustmentFor(captured.CashAdjustments, suite.partyID)
	suite.True(ok)
	suite.True(partyDelta.Equal(decimal.NewFromInt(-1000)))
	suite.Require().Len(captured.ScheduleStatusUpdates, 1)
	suite.Equal(domain.PDCCancelled, captured.ScheduleStatusUpdates[0].Status)
}

func (suite *PDCServiceTestSuite) TestClearPDC_IssueDirection_FlipsDeltas() {
	ctx := context.Background()
	suite.entry.EntryType = domain.CurrencyPayment
	suite.schedule.Direction = domain.PDCIssue
	captured := suite.expectResolution()

	_, err := suite.service.ClearPDC(ctx, suite.entryID, suite.cashItemID, suite.userID)

	suite.Require().NoError(err)
	pdcDelta, ok := adjustmentFor(captured.CashAdjustments, suite.pdcAccountID)
	suite.True(ok)
	suite.True(pdcDelta.Equal(decimal.NewFromInt(-1000)))
	bankDelta, ok := adjustmentFor(captured.CashAdjustments, suite.bankAccountID)
	suite.True(ok)
	suite.True(bankDelta.Equal(decimal.NewFromInt(1000)))
}

func (suite *PDCServiceTestSuite) TestClearPDC_NotPending() {
	ctx := context.Background()
	suite.entry.CashItems[0].PDCStatus = domain.PDCCleared
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, suite.entryID).Return(suite.entry, nil).Once()

	_, err := suite.service.ClearPDC(ctx, suite.entryID, suite.cashItemID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrPDCNotPending)
	suite.mockRegistryRepo.AssertNotCalled(suite.T(), "ApplyPosting", mock.Anything, mock.Anything)
}

func (suite *PDCServiceTestSuite) TestBouncePDC_NotAPDCLine() {
	ctx := context.Background()
	suite.entry.CashItems[0].IsPDC = false
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, suite.entryID).Return(suite.entry, nil).Once()

	_, err := suite.service.BouncePDC(ctx, suite.entryID, suite.cashItemID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPDC)
}

func (suite *PDCServiceTestSuite) TestCancelPDC_LineMissing() {
	ctx := context.Background()
	suite.mockEntryRepo.On("FindEntryByID", mock.Anything, suite.entryID).Return(suite.entry, nil).Once()

	_, err := suite.service.CancelPDC(ctx, suite.entryID, uuid.NewString(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCashItemNotFound)
}

func TestPDCServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PDCServiceTestSuite))
}
