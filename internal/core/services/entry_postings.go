package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aurumworks/bullion_ledger_app/internal/apperrors"
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/aurumworks/bullion_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// dispatch routes an approved entry to its type handler and returns the
// posting unit for it. The switch is exhaustive over the six entry types;
// a new type is a compile-and-review exercise, not a silently missing key.
func (s *entryService) dispatch(ctx context.Context, entry *domain.Entry, now time.Time, userID string) (domain.Posting, []domain.InventoryMovement, error) {
	txnID, err := s.registryRepo.NextTransactionID(ctx)
	if err != nil {
		return domain.Posting{}, nil, fmt.Errorf("failed to allocate transaction id: %w", err)
	}

	switch entry.EntryType {
	case domain.MetalReceipt, domain.MetalPayment:
		return s.buildMetalPosting(ctx, entry, txnID, now, userID)
	case domain.CashReceipt, domain.CashPayment, domain.CurrencyReceipt, domain.CurrencyPayment:
		posting, err := s.buildCashPosting(ctx, entry, txnID, now, userID)
		return posting, nil, err
	default:
		return domain.Posting{}, nil, fmt.Errorf("%w: %q", ErrEntryTypeInvalid, entry.EntryType)
	}
}

// buildMetalPosting produces the posting for a metal receipt/payment: per
// stock item, the party gold balance moves by the pure weight, and three
// registry rows share the voucher's transaction id — a stock-level row, a
// gold-asset row, and a party-gold-balance row.
func (s *entryService) buildMetalPosting(ctx context.Context, entry *domain.Entry, txnID int64, now time.Time, userID string) (domain.Posting, []domain.InventoryMovement, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, entry.PartyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Posting{}, nil, fmt.Errorf("%w: %s", ErrPartyNotFound, entry.PartyID)
		}
		return domain.Posting{}, nil, fmt.Errorf("failed to load party %s: %w", entry.PartyID, err)
	}

	isReceipt := entry.EntryType.IsReceipt()
	var posting domain.Posting
	var movements []domain.InventoryMovement

	for _, item := range entry.StockItems {
		delta := item.PureWeight
		if !isReceipt {
			delta = delta.Neg()
		}
		posting.GoldAdjustments = append(posting.GoldAdjustments, domain.GoldAdjustment{
			AccountID:  entry.PartyID,
			DeltaGrams: delta,
		})

		stockRow := s.newRow(entry, txnID, domain.LedgerStockBalance, now, userID)
		stockRow.AccountID = item.StockID
		stockRow.MetalID = item.MetalID
		goldRow := s.newRow(entry, txnID, domain.LedgerGoldAsset, now, userID)
		goldRow.MetalID = item.MetalID
		partyRow := s.newRow(entry, txnID, domain.LedgerPartyGoldBalance, now, userID)
		partyRow.AccountID = entry.PartyID
		partyRow.MetalID = item.MetalID

		if isReceipt {
			stockRow.GoldDebit = item.PureWeight
			goldRow.GoldCredit = item.PureWeight
			partyRow.GoldDebit = item.PureWeight
		} else {
			stockRow.GoldCredit = item.PureWeight
			goldRow.GoldDebit = item.PureWeight
			partyRow.GoldCredit = item.PureWeight
		}
		posting.Rows = append(posting.Rows, stockRow, goldRow, partyRow)

		movements = append(movements, domain.InventoryMovement{
			StockID:     item.StockID,
			MetalID:     item.MetalID,
			GrossWeight: item.GrossWeight,
			Purity:      item.Purity,
			Pieces:      item.Pieces,
			VoucherCode: entry.VoucherCode,
		})
	}

	return posting, movements, nil
}

// buildCashPosting produces the posting for a cash/currency receipt or
// payment. It resolves the opposite account per line, realizes FX gain or
// loss, and routes future-dated cheques on currency entries through the
// bank's PDC account with a maturity schedule. The cash lines are mutated
// in place with the computed FX and PDC fields.
func (s *entryService) buildCashPosting(ctx context.Context, entry *domain.Entry, txnID int64, now time.Time, userID string) (domain.Posting, error) {
	isReceipt := entry.EntryType.IsReceipt()
	isPayment := !isReceipt

	accountIDs := []string{entry.PartyID}
	for _, c := range entry.CashItems {
		accountIDs = append(accountIDs, c.OppositeAccountID())
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return domain.Posting{}, fmt.Errorf("failed to load accounts for voucher %s: %w", entry.VoucherCode, err)
	}
	if _, ok := accounts[entry.PartyID]; !ok {
		return domain.Posting{}, fmt.Errorf("%w: %s", ErrPartyNotFound, entry.PartyID)
	}

	var posting domain.Posting
	today := dateOnly(now)

	for i := range entry.CashItems {
		line := &entry.CashItems[i]

		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, line.CurrencyCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return domain.Posting{}, fmt.Errorf("%w: %s", ErrCurrencyUnknown, line.CurrencyCode)
			}
			return domain.Posting{}, fmt.Errorf("failed to resolve currency %s: %w", line.CurrencyCode, err)
		}

		oppositeID := line.OppositeAccountID()
		opposite, ok := accounts[oppositeID]
		if !ok {
			return domain.Posting{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, oppositeID)
		}

		// FX is realized once per line from the rates captured on it.
		if line.FxRate.IsPositive() && line.FxBaseRate.IsPositive() {
			line.FxGain, line.FxLoss = accounting.ComputeFX(line.Amount, line.FxRate, line.FxBaseRate, isPayment)
		}

		oppositeType := domain.LedgerBullionEntry
		isFutureCheque := line.CashType == domain.CashTypeCheque &&
			line.ChequeDate != nil && dateOnly(*line.ChequeDate).After(today)

		if isFutureCheque {
			if !entry.EntryType.IsCurrency() {
				return domain.Posting{}, fmt.Errorf("%w", ErrChequeNotDue)
			}
			schedule, err := s.routePDC(entry, line, i, opposite, now, userID)
			if err != nil {
				return domain.Posting{}, err
			}
			posting.NewSchedules = append(posting.NewSchedules, schedule)
			oppositeID = line.PDCAccountID
			oppositeType = domain.LedgerPDCEntry
		}

		amount := line.Amount
		partyDelta := amount
		if isPayment {
			partyDelta = amount.Neg()
		}
		posting.CashAdjustments = append(posting.CashAdjustments,
			domain.CashAdjustment{AccountID: entry.PartyID, CurrencyCode: line.CurrencyCode, Delta: partyDelta},
			domain.CashAdjustment{AccountID: oppositeID, CurrencyCode: line.CurrencyCode, Delta: partyDelta.Neg()},
		)

		partyRow := s.newRow(entry, txnID, domain.LedgerPartyCashBalance, now, userID)
		partyRow.AccountID = entry.PartyID
		partyRow.CurrencyCode = line.CurrencyCode
		oppositeRow := s.newRow(entry, txnID, oppositeType, now, userID)
		oppositeRow.AccountID = oppositeID
		oppositeRow.CurrencyCode = line.CurrencyCode
		if oppositeType == domain.LedgerPDCEntry {
			oppositeRow.CashItemID = line.CashItemID
		}
		if isReceipt {
			partyRow.Debit = amount
			oppositeRow.Credit = amount
		} else {
			partyRow.Credit = amount
			oppositeRow.Debit = amount
		}
		posting.Rows = append(posting.Rows, partyRow, oppositeRow)

		if !line.FxGain.IsZero() || !line.FxLoss.IsZero() {
			fxRow := s.newRow(entry, txnID, domain.LedgerFXExchange, now, userID)
			fxRow.AccountID = entry.PartyID
			fxRow.CurrencyCode = line.CurrencyCode
			fxRow.Credit = line.FxGain
			fxRow.Debit = line.FxLoss
			posting.Rows = append(posting.Rows, fxRow)
		}
		if line.VATAmount.IsPositive() {
			vatRow := s.newRow(entry, txnID, domain.LedgerVATEntry, now, userID)
			vatRow.CurrencyCode = line.CurrencyCode
			if isReceipt {
				vatRow.Credit = line.VATAmount
			} else {
				vatRow.Debit = line.VATAmount
			}
			posting.Rows = append(posting.Rows, vatRow)
		}
		if isPayment && line.CashType == domain.CashTypeCard && line.CardCharge.IsPositive() {
			chargeRow := s.newRow(entry, txnID, domain.LedgerCardCharge, now, userID)
			chargeRow.AccountID = oppositeID
			chargeRow.CurrencyCode = line.CurrencyCode
			chargeRow.Debit = line.CardCharge
			posting.Rows = append(posting.Rows, chargeRow)
		}
	}

	return posting, nil
}

// routePDC marks the line as a pending post-dated cheque against the
// bank's configured PDC account and builds its maturity schedule.
func (s *entryService) routePDC(entry *domain.Entry, line *domain.CashItem, lineIndex int, bank domain.Account, now time.Time, userID string) (domain.PDCSchedule, error) {
	if bank.BankDetail == nil {
		return domain.PDCSchedule{}, fmt.Errorf("%w: bank %s", ErrBankPDCConfig, bank.AccountID)
	}

	isReceipt := entry.EntryType.IsReceipt()
	direction := domain.PDCIssue
	pdcAccountID := bank.BankDetail.PDCIssueAccountID
	maturityDays := bank.BankDetail.MaturityDays
	if isReceipt {
		direction = domain.PDCReceipt
		pdcAccountID = bank.BankDetail.PDCReceiptAccountID
		maturityDays = bank.BankDetail.PDCReceiptMaturityDays
	}
	if pdcAccountID == "" || maturityDays <= 0 {
		return domain.PDCSchedule{}, fmt.Errorf("%w: bank %s, direction %s", ErrBankPDCConfig, bank.AccountID, direction)
	}

	chequeDay := dateOnly(*line.ChequeDate)
	maturity := chequeDay.AddDate(0, 0, maturityDays)

	line.IsPDC = true
	line.PDCStatus = domain.PDCPending
	line.MaturityDate = &maturity
	line.PDCAccountID = pdcAccountID

	return domain.PDCSchedule{
		ScheduleID:    uuid.NewString(),
		EntryID:       entry.EntryID,
		VoucherCode:   entry.VoucherCode,
		CashItemID:    line.CashItemID,
		CashItemIndex: lineIndex,
		PartyID:       entry.PartyID,
		CurrencyCode:  line.CurrencyCode,
		Amount:        line.Amount,
		Direction:     direction,
		ChequeDate:    chequeDay,
		MaturityDate:  maturity,
		PDCAccountID:  pdcAccountID,
		BankAccountID: bank.AccountID,
		Status:        domain.PDCPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

// buildReversalPosting is the cleanup path of edit, demotion and delete:
// it removes every ledger row tagged with the voucher code and composes
// the inverse balance effects. Cheque lines that routed through a PDC
// account reverse against that account (pending: with schedule
// cancellation; cleared: against the bank the money moved to); bounced
// and cancelled lines have no surviving effect. Direct cheques reverse
// like any other cash line.
func (s *entryService) buildReversalPosting(ctx context.Context, entry *domain.Entry, userID string) (domain.Posting, error) {
	posting := domain.Posting{
		DeleteRowsByReference: []string{entry.VoucherCode},
	}
	isReceipt := entry.EntryType.IsReceipt()

	if entry.EntryType.IsMetal() {
		for _, item := range entry.StockItems {
			delta := item.PureWeight.Neg()
			if !isReceipt {
				delta = item.PureWeight
			}
			posting.GoldAdjustments = append(posting.GoldAdjustments, domain.GoldAdjustment{
				AccountID:  entry.PartyID,
				DeltaGrams: delta,
			})
		}
		return posting, nil
	}

	for _, line := range entry.CashItems {
		partyDelta := line.Amount.Neg()
		if !isReceipt {
			partyDelta = line.Amount
		}

		if line.IsPDC {
			switch line.PDCStatus {
			case domain.PDCPending:
				posting.CashAdjustments = append(posting.CashAdjustments,
					domain.CashAdjustment{AccountID: entry.PartyID, CurrencyCode: line.CurrencyCode, Delta: partyDelta},
					domain.CashAdjustment{AccountID: line.PDCAccountID, CurrencyCode: line.CurrencyCode, Delta: partyDelta.Neg()},
				)
				schedule, err := s.pdcRepo.FindScheduleByCashItem(ctx, entry.EntryID, line.CashItemID)
				if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
					return domain.Posting{}, fmt.Errorf("failed to load PDC schedule for line %s: %w", line.CashItemID, err)
				}
				if schedule != nil {
					posting.ScheduleStatusUpdates = append(posting.ScheduleStatusUpdates, domain.ScheduleStatusUpdate{
						ScheduleID: schedule.ScheduleID,
						Status:     domain.PDCCancelled,
						ActorID:    userID,
					})
				}
			case domain.PDCCleared:
				// The held amount moved on to the bank at maturity.
				posting.CashAdjustments = append(posting.CashAdjustments,
					domain.CashAdjustment{AccountID: entry.PartyID, CurrencyCode: line.CurrencyCode, Delta: partyDelta},
					domain.CashAdjustment{AccountID: line.BankAccountID, CurrencyCode: line.CurrencyCode, Delta: partyDelta.Neg()},
				)
			case domain.PDCBounced, domain.PDCCancelled:
				// Already fully reversed when it resolved.
			}
			continue
		}

		posting.CashAdjustments = append(posting.CashAdjustments,
			domain.CashAdjustment{AccountID: entry.PartyID, CurrencyCode: line.CurrencyCode, Delta: partyDelta},
			domain.CashAdjustment{AccountID: line.OppositeAccountID(), CurrencyCode: line.CurrencyCode, Delta: partyDelta.Neg()},
		)
	}

	return posting, nil
}

// newRow stamps the fields every registry row of this voucher shares.
func (s *entryService) newRow(entry *domain.Entry, txnID int64, ledgerType domain.LedgerType, now time.Time, userID string) domain.RegistryRow {
	return domain.RegistryRow{
		RegistryID:      uuid.NewString(),
		TransactionID:   txnID,
		LedgerType:      ledgerType,
		Debit:           decimal.Zero,
		Credit:          decimal.Zero,
		GoldDebit:       decimal.Zero,
		GoldCredit:      decimal.Zero,
		PartyID:         entry.PartyID,
		Reference:       entry.VoucherCode,
		TransactionDate: entry.VoucherDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
