package services_test

import (
	"context"
	"errors"
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

type MaturityServiceTestSuite struct {
	suite.Suite
	mockEntryRepo    *MockEntryRepository
	mockRegistryRepo *MockRegistryRepository
	mockPDCRepo      *MockPDCRepository
	service          portssvc.MaturitySvcFacade
	triggeredBy      string
}

func (suite *MaturityServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockRegistryRepo = new(MockRegistryRepository)
	suite.mockPDCRepo = new(MockPDCRepository)
	suite.service = services.NewMaturityService(suite.mockEntryRepo, suite.mockRegistryRepo, suite.mockPDCRepo)
	suite.triggeredBy = "scheduler"
}

// dueSchedule builds one pending schedule and the approved entry holding
// its still-pending cash line.
func (suite *MaturityServiceTestSuite) dueSchedule(voucherCode string) (domain.PDCSchedule, *domain.Entry) {
	entryID := uuid.NewString()
	cashItemID := uuid.NewString()
	chequeDate := time.Now().UTC().AddDate(0, 0, -5)
	maturity := chequeDate.AddDate(0, 0, 3)

	schedule := domain.PDCSchedule{
		ScheduleID:    uuid.NewString(),
		EntryID:       entryID,
		VoucherCode:   voucherCode,
		CashItemID:    cashItemID,
		PartyID:       uuid.NewString(),
		CurrencyCode:  "USD",
		Amount:        decimal.NewFromInt(700),
		Direction:     domain.PDCReceipt,
		ChequeDate:    chequeDate,
		MaturityDate:  maturity,
		PDCAccountID:  uuid.NewString(),
		BankAccountID: uuid.NewString(),
		Status:        domain.PDCPending,
	}
	entry := &domain.Entry{
		EntryID:     entryID,
		EntryType:   domain.CurrencyReceipt,
		Status:      domain.Approved,
		PartyID:     schedule.PartyID,
		VoucherCode: voucherCode,
		CashItems: []domain.CashItem{
			{
				CashItemID:   cashItemID,
				CurrencyCode: "USD",
				Amount:       decimal.NewFromInt(700),
				CashType:     domain.CashTypeCheque,
				IsPDC:        true,
				PDCStatus:    domain.PDCPending,
				PDCAccountID: schedule.PDCAccountID,
			},
		},
	}
	return schedule, entry
}

func (suite *MaturityServiceTestSuite) TestProcessMatured_ClearsDueSchedule() {
	ctx := context.Background()
	schedule, entry := suite.dueSchedule("FX-5001")

	suite.mockPDCRepo.On("FindPendingDue", ctx, mock.AnythingOfType("time.Time")).Return([]domain.PDCSchedule{schedule}, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, schedule.EntryID).Return(entry, nil).Once()
	suite.mockRegistryRepo.On("HasMaturityRow", ctx, "FX-5001", schedule.CashItemID).Return(false, nil).Once()
	suite.mockRegistryRepo.On("NextTransactionID", ctx).Return(int64(9101), nil).Once()

	var captured domain.Posting
	suite.mockRegistryRepo.On("ApplyPosting", ctx, mock.AnythingOfType("domain.Posting")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(domain.Posting)
		}).Return(nil).Once()

	result, err := suite.service.ProcessMaturedPDCs(ctx, suite.triggeredBy)

	suite.Require().NoError(err)
	suite.Equal(1, result.Processed)
	suite.Equal(0, result.Skipped)
	suite.Empty(result.Errors)

	suite.Require().Len(rowsOfType(captured.Rows, domain.LedgerPDCMaturity), 2)
	pdcDelta, ok := adjustmentFor(captured.CashAdjustments, schedule.PDCAccountID)
	suite.True(ok)
	suite.True(pdcDelta.Equal(decimal.NewFromInt(700)))
	bankDelta, ok := adjustmentFor(captured.CashAdjustments, schedule.BankAccountID)
	suite.True(ok)
	suite.True(bankDelta.Equal(decimal.NewFromInt(-700)))
	suite.Require().Len(captured.ScheduleStatusUpdates, 1)
	suite.Equal(domain.PDCCleared, captured.ScheduleStatusUpdates[0].Status)
	suite.Equal(suite.triggeredBy, captured.ScheduleStatusUpdates[0].ActorID)
	suite.Require().Len(captured.CashItemPDCUpdates, 1)
	suite.Equal(schedule.CashItemID, captured.CashItemPDCUpdates[0].CashItemID)

	suite.mockRegistryRepo.AssertExpectations(suite.T())
}

func (suite *MaturityServiceTestSuite) TestProcessMatured_LostResolutionRaceCountsAsSkipped() {
	ctx := context.Background()
	schedule, entry := suite.dueSchedule("FX-5007")

	suite.mockPDCRepo.On("FindPendingDue", ctx, mock.AnythingOfType("time.Time")).Return([]domain.PDCSchedule{schedule}, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, schedule.EntryID).Return(entry, nil).Once()
	suite.mockRegistryRepo.On("HasMaturityRow", ctx, "FX-5007", schedule.CashItemID).Return(false, nil).Once()
	suite.mockRegistryRepo.On("NextTransactionID", ctx).Return(int64(9103), nil).Once()

	// Another resolution won the guarded status transition; the posting
	// rolled back whole and nothing was applied.
	conflict := apperrors.NewAppError(409, "PDC schedule "+schedule.ScheduleID+" is no longer pending", apperrors.ErrConflict)
	suite.mockRegistryRepo.On("ApplyPosting", ctx, mock.AnythingOfType("domain.Posting")).Return(conflict).Once()

	result, err := suite.service.ProcessMaturedPDCs(ctx, suite.triggeredBy)

	suite.Require().NoError(err)
	suite.Equal(0, result.Processed)
	suite.Equal(1, result.Skipped)
	suite.Empty(result.Errors)

	suite.mockRegistryRepo.AssertExpectations(suite.T())
}

func (suite *MaturityServiceTestSuite) TestProcessMatured_SkipsUnapprovedEntry() {
	ctx := context.Background()
	schedule, entry := suite.dueSchedule("FX-5002")
	entry.Status = domain.Draft

	suite.mockPDCRepo.On("FindPendingDue", ctx, mock.AnythingOfType("time.Time")).Return([]domain.PDCSchedule{schedule}, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, schedule.EntryID).Return(entry, nil).Once()

	result, err := suite.service.ProcessMaturedPDCs(ctx, suite.triggeredBy)

	suite.Require().NoError(err)
	suite.Equal(0, result.Processed)
	suite.Equal(1, result.Skipped)
	suite.mockRegistryRepo.AssertNotCalled(suite.T(), "ApplyPosting", mock.Anything, mock.Anything)
}

func (suite *MaturityServiceTestSuite) TestProcessMatured_SkipsResolvedLine() {
	ctx := context.Background()
	schedule, entry := suite.dueSchedule("FX-5003")
	entry.CashItems[0].PDCStatus = domain.PDCBounced

	suite.mockPDCRepo.On("FindPendingDue", ctx, mock.AnythingOfType("time.Time")).Return([]domain.PDCSchedule{schedule}, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, schedule.EntryID).Return(entry, nil).Once()

	result, err := suite.service.ProcessMaturedPDCs(ctx, suite.triggeredBy)

	suite.Require().NoError(err)
	suite.Equal(1, result.Skipped)
	suite.mockRegistryRepo.AssertNotCalled(suite.T(), "ApplyPosting", mock.Anything, mock.Anything)
}

func (suite *MaturityServiceTestSuite) TestProcessMatured_AlreadyMatured_Reconciles() {
	ctx := context.Background()
	schedule, entry := suite.dueSchedule("FX-5004")

	suite.mockPDCRepo.On("FindPendingDue", ctx, mock.AnythingOfType("time.Time")).Return([]domain.PDCSchedule{schedule}, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, schedule.EntryID).Return(entry, nil).Once()
	suite.mockRegistryRepo.On("HasMaturityRow", ctx, "FX-5004", schedule.CashItemID).Return(true, nil).Once()

	var captured domain.Posting
	suite.mockRegistryRepo.On("ApplyPosting", ctx, mock.AnythingOfType("domain.Posting")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(domain.Posting)
		}).Return(nil).Once()

	result, err := suite.service.ProcessMaturedPDCs(ctx, suite.triggeredBy)

	suite.Require().NoError(err)
	suite.Equal(0, result.Processed)
	suite.Equal(1, result.Skipped)

	// No money moves twice; only the dangling bookkeeping is closed.
	suite.Empty(captured.Rows)
	suite.Empty(captured.CashAdjustments)
	suite.Require().Len(captured.ScheduleStatusUpdates, 1)
	suite.Equal(domain.PDCCleared, captured.ScheduleStatusUpdates[0].Status)
	suite.mockRegistryRepo.AssertNotCalled(suite.T(), "NextTransactionID", mock.Anything)
}

func (suite *MaturityServiceTestSuite) TestProcessMatured_CollectsFailuresAndContinues() {
	ctx := context.Background()
	failing, failingEntry := suite.dueSchedule("FX-5005")
	passing, passingEntry := suite.dueSchedule("FX-5006")

	suite.mockPDCRepo.On("FindPendingDue", ctx, mock.AnythingOfType("time.Time")).Return([]domain.PDCSchedule{failing, passing}, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, failing.EntryID).Return(failingEntry, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, passing.EntryID).Return(passingEntry, nil).Once()
	suite.mockRegistryRepo.On("HasMaturityRow", ctx, "FX-5005", failing.CashItemID).Return(false, nil).Once()
	suite.mockRegistryRepo.On("HasMaturityRow", ctx, "FX-5006", passing.CashItemID).Return(false, nil).Once()
	suite.mockRegistryRepo.On("NextTransactionID", ctx).Return(int64(9102), nil).Twice()

	postErr := errors.New("deadlock detected")
	matchVoucher := func(code string) interface{} {
		return mock.MatchedBy(func(p domain.Posting) bool {
			return len(p.Rows) > 0 && p.Rows[0].Reference == code
		})
	}
	suite.mockRegistryRepo.On("ApplyPosting", ctx, matchVoucher("FX-5005")).Return(postErr).Once()
	suite.mockRegistryRepo.On("ApplyPosting", ctx, matchVoucher("FX-5006")).Return(nil).Once()

	result, err := suite.service.ProcessMaturedPDCs(ctx, suite.triggeredBy)

	suite.Require().NoError(err)
	suite.Equal(1, result.Processed)
	suite.Equal(0, result.Skipped)
	suite.Require().Len(result.Errors, 1)
	suite.Contains(result.Errors[0], failing.ScheduleID)

	suite.mockRegistryRepo.AssertExpectations(suite.T())
}

func (suite *MaturityServiceTestSuite) TestProcessMatured_NothingDue() {
	ctx := context.Background()
	suite.mockPDCRepo.On("FindPendingDue", ctx, mock.AnythingOfType("time.Time")).Return([]domain.PDCSchedule{}, nil).Once()

	result, err := suite.service.ProcessMaturedPDCs(ctx, suite.triggeredBy)

	suite.Require().NoError(err)
	suite.Equal(0, result.Processed)
	suite.Equal(0, result.Skipped)
	suite.Empty(result.Errors)
}

func TestMaturityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MaturityServiceTestSuite))
}
