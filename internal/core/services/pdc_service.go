package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aurumworks/bullion_ledger_app/internal/apperrors"
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	portsrepo "github.com/aurumworks/bullion_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/aurumworks/bullion_ledger_app/internal/core/ports/services"
	"github.com/aurumworks/bullion_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrCashItemNotFound = errors.New("cash line not found on entry")
	ErrNotPDC           = errors.New("cash line is not a post-dated cheque")
	ErrPDCNotPending    = errors.New("post-dated cheque is no longer pending")
)

// pdcService resolves individual post-dated cheque lines. Every operation
// targets one cash line by its stable id and is valid only while the line
// is pending.
type pdcService struct {
	entryRepo    portsrepo.EntryRepositoryFacade
	registryRepo portsrepo.RegistryRepositoryFacade
	pdcRepo      portsrepo.PDCRepositoryFacade
}

// NewPDCService creates a new PDCService.
func NewPDCService(
	entryRepo portsrepo.EntryRepositoryFacade,
	registryRepo portsrepo.RegistryRepositoryFacade,
	pdcRepo portsrepo.PDCRepositoryFacade,
) portssvc.PDCSvcFacade {
	return &pdcService{
		entryRepo:    entryRepo,
		registryRepo: registryRepo,
		pdcRepo:      pdcRepo,
	}
}

var _ portssvc.PDCSvcFacade = (*pdcService)(nil)

// ClearPDC settles a pending cheque: the held amount moves from the PDC
// account to the bank account and the line reaches CLEARED.
func (s *pdcService) ClearPDC(ctx context.Context, entryID string, cashItemID string, userID string) (*domain.Entry, error) {
	return s.resolve(ctx, entryID, cashItemID, userID, domain.PDCCleared)
}

// BouncePDC rejects a pending cheque: the PDC hold and the original party
// effect are both reversed and the line reaches BOUNCED.
func (s *pdcService) BouncePDC(ctx context.Context, entryID string, cashItemID string, userID string) (*domain.Entry, error) {
	return s.resolve(ctx, entryID, cashItemID, userID, domain.PDCBounced)
}

// CancelPDC withdraws a pending cheque before maturity. Balance effects
// match a bounce; only the terminal status differs.
func (s *pdcService) CancelPDC(ctx context.Context, entryID string, cashItemID string, userID string) (*domain.Entry, error) {
	return s.resolve(ctx, entryID, cashItemID, userID, domain.PDCCancelled)
}

// resolve carries the shared lifecycle transition: locate the pending
// line, build the terminal posting, apply it, and return the entry with
// the line's new state.
func (s *pdcService) resolve(ctx context.Context, entryID string, cashItemID string, userID string, target domain.PDCStatus) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	line := entry.CashItemByID(cashItemID)
	if line == nil {
		return nil, fmt.Errorf("%w: %s", ErrCashItemNotFound, cashItemID)
	}
	if !line.IsPDC {
		return nil, fmt.Errorf("%w: %s", ErrNotPDC, cashItemID)
	}
	if line.PDCStatus != domain.PDCPending {
		return nil, fmt.Errorf("%w: %s is %s", ErrPDCNotPending, cashItemID, line.PDCStatus)
	}

	schedule, err := s.pdcRepo.FindScheduleByCashItem(ctx, entryID, cashItemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no schedule for cash line %s", apperrors.ErrConflict, cashItemID)
		}
		return nil, fmt.Errorf("failed to load PDC schedule for line %s: %w", cashItemID, err)
	}

	txnID, err := s.registryRepo.NextTransactionID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate transaction id: %w", err)
	}

	now := time.Now().UTC()
	var posting domain.Posting
	if target == domain.PDCCleared {
		posting = buildPDCClearPosting(schedule, txnID, now, userID)
	} else {
		posting = buildPDCReversalPosting(schedule, txnID, now, userID)
	}
	posting.ScheduleStatusUpdates = append(posting.ScheduleStatusUpdates, domain.ScheduleStatusUpdate{
		ScheduleID: schedule.ScheduleID,
		Status:     target,
		ActorID:    userID,
	})
	posting.CashItemPDCUpdates = append(posting.CashItemPDCUpdates, domain.CashItemPDCUpdate{
		EntryID:    entryID,
		CashItemID: cashItemID,
		Status:     target,
		IsPDC:      true,
	})

	if err := s.registryRepo.ApplyPosting(ctx, posting); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// The schedule left PENDING between our read and the posting's
			// guarded transition; nothing was applied.
			return nil, fmt.Errorf("%w: %s", ErrPDCNotPending, cashItemID)
		}
		logger.Error("Failed to apply PDC posting", slog.String("error", err.Error()), slog.String("cash_item_id", cashItemID), slog.String("target_status", string(target)))
		return nil, fmt.Errorf("failed to apply PDC posting: %w", err)
	}

	line.PDCStatus = target
	line.MaturityDate = nil
	if target == domain.PDCCleared {
		m := schedule.MaturityDate
		line.MaturityDate = &m
	}
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	logger.Info("PDC resolved", slog.String("entry_id", entryID), slog.String("cash_item_id", cashItemID), slog.String("status", string(target)))
	return entry, nil
}

// buildPDCClearPosting moves the held amount off the PDC account and onto
// the bank account, leaving the party untouched. The rows carry the
// PDC_MATURITY type and the cash line id; their presence is what makes a
// later sweep of the same line a no-op.
func buildPDCClearPosting(schedule *domain.PDCSchedule, txnID int64, now time.Time, userID string) domain.Posting {
	isReceipt := schedule.Direction == domain.PDCReceipt
	partyDelta := schedule.Amount
	if !isReceipt {
		partyDelta = schedule.Amount.Neg()
	}

	pdcRow := newScheduleRow(schedule, txnID, domain.LedgerPDCMaturity, now, userID)
	pdcRow.AccountID = schedule.PDCAccountID
	bankRow := newScheduleRow(schedule, txnID, domain.LedgerPDCMaturity, now, userID)
	bankRow.AccountID = schedule.BankAccountID
	if isReceipt {
		pdcRow.Debit = schedule.Amount
		bankRow.Credit = schedule.Amount
	} else {
		pdcRow.Credit = schedule.Amount
		bankRow.Debit = schedule.Amount
	}

	return domain.Posting{
		Rows: []domain.RegistryRow{pdcRow, bankRow},
		CashAdjustments: []domain.CashAdjustment{
			{AccountID: schedule.PDCAccountID, CurrencyCode: schedule.CurrencyCode, Delta: partyDelta},
			{AccountID: schedule.BankAccountID, CurrencyCode: schedule.CurrencyCode, Delta: partyDelta.Neg()},
		},
	}
}

// buildPDCReversalPosting undoes a pending cheque entirely: the PDC hold
// and the party's balance effect are both reversed. Used for bounce and
// cancel, which differ only in the terminal status carried by the
// schedule update.
func buildPDCReversalPosting(schedule *domain.PDCSchedule, txnID int64, now time.Time, userID string) domain.Posting {
	isReceipt := schedule.Direction == domain.PDCReceipt
	partyDelta := schedule.Amount
	if !isReceipt {
		partyDelta = schedule.Amount.Neg()
	}

	partyRow := newScheduleRow(schedule, txnID, domain.LedgerPartyCashBalance, now, userID)
	partyRow.AccountID = schedule.PartyID
	pdcRow := newScheduleRow(schedule, txnID, domain.LedgerPDCEntry, now, userID)
	pdcRow.AccountID = schedule.PDCAccountID
	if isReceipt {
		// Original posting debited the party and credited the PDC account.
		partyRow.Credit = schedule.Amount
		pdcRow.Debit = schedule.Amount
	} else {
		partyRow.Debit = schedule.Amount
		pdcRow.Credit = schedule.Amount
	}

	return domain.Posting{
		Rows: []domain.RegistryRow{partyRow, pdcRow},
		CashAdjustments: []domain.CashAdjustment{
			{AccountID: schedule.PartyID, CurrencyCode: schedule.CurrencyCode, Delta: partyDelta.Neg()},
			{AccountID: schedule.PDCAccountID, CurrencyCode: schedule.CurrencyCode, Delta: partyDelta},
		},
	}
}

// newScheduleRow stamps the fields every row of a PDC resolution shares.
func newScheduleRow(schedule *domain.PDCSchedule, txnID int64, ledgerType domain.LedgerType, now time.Time, userID string) domain.RegistryRow {
	return domain.RegistryRow{
		RegistryID:      uuid.NewString(),
		TransactionID:   txnID,
		LedgerType:      ledgerType,
		Debit:           decimal.Zero,
		Credit:          decimal.Zero,
		GoldDebit:       decimal.Zero,
		GoldCredit:      decimal.Zero,
		PartyID:         schedule.PartyID,
		CurrencyCode:    schedule.CurrencyCode,
		CashItemID:      schedule.CashItemID,
		Reference:       schedule.VoucherCode,
		TransactionDate: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}
