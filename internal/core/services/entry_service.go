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
	"github.com/aurumworks/bullion_ledger_app/internal/dto"
	"github.com/aurumworks/bullion_ledger_app/internal/middleware"
	"github.com/aurumworks/bullion_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrEntryTypeInvalid    = errors.New("entry type is not one of the recognized voucher types")
	ErrEntryLinesInvalid   = errors.New("entry must carry exactly one of stock items or cash items, matching its type")
	ErrPartyNotFound       = errors.New("party account not found")
	ErrOppositeAccount     = errors.New("cash line is missing its bank or transfer account")
	ErrBankPDCConfig       = errors.New("bank has no PDC account or maturity offset configured for this direction")
	ErrChequeNotDue        = errors.New("cheque dated in the future cannot be approved on this entry type")
	ErrVoucherCodeTaken    = errors.New("voucher code is already in use")
	ErrCurrencyUnknown     = errors.New("currency is not configured")
	ErrEntryAlreadyInState = errors.New("entry is already in the requested status")
)

// entryService is the voucher orchestrator: it validates entry requests,
// dispatches to the type handler, and coordinates the registry, balances,
// PDC schedules and the inventory collaborator.
type entryService struct {
	entryRepo     portsrepo.EntryRepositoryFacade
	registryRepo  portsrepo.RegistryRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	currencyRepo  portsrepo.CurrencyRepositoryFacade
	pdcRepo       portsrepo.PDCRepositoryFacade
	inventoryRepo portsrepo.InventoryRecorder
}

// NewEntryService creates a new EntryService.
func NewEntryService(
	entryRepo portsrepo.EntryRepositoryFacade,
	registryRepo portsrepo.RegistryRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	pdcRepo portsrepo.PDCRepositoryFacade,
	inventoryRepo portsrepo.InventoryRecorder,
) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:     entryRepo,
		registryRepo:  registryRepo,
		accountRepo:   accountRepo,
		currencyRepo:  currencyRepo,
		pdcRepo:       pdcRepo,
		inventoryRepo: inventoryRepo,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// CreateEntry validates and persists a new voucher. An entry created as
// approved is dispatched to its type handler and posted atomically with it.
func (s *entryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EntryType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrEntryTypeInvalid, req.EntryType)
	}

	status := req.Status
	if status == "" {
		status = domain.Draft
	}
	if status != domain.Draft && status != domain.Approved {
		return nil, fmt.Errorf("%w: status %q", apperrors.ErrValidation, req.Status)
	}

	// Voucher codes are the reversal key and must be unique.
	if existing, err := s.entryRepo.FindEntryByVoucherCode(ctx, req.VoucherCode); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check voucher code %s: %w", req.VoucherCode, err)
	} else if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrVoucherCodeTaken, req.VoucherCode)
	}

	now := time.Now().UTC()
	entry := domain.Entry{
		EntryID:     uuid.NewString(),
		EntryType:   req.EntryType,
		Status:      status,
		PartyID:     req.PartyID,
		VoucherCode: req.VoucherCode,
		VoucherDate: req.VoucherDate,
		Narration:   req.Narration,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.buildLines(&entry, req.StockItems, req.CashItems); err != nil {
		return nil, err
	}

	var posting *domain.Posting
	var movements []domain.InventoryMovement
	if entry.Status == domain.Approved {
		p, m, err := s.dispatch(ctx, &entry, now, creatorUserID)
		if err != nil {
			return nil, err
		}
		posting = &p
		movements = m
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, posting); err != nil {
		logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("voucher_code", entry.VoucherCode))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.recordInventory(ctx, movements, !entry.EntryType.IsReceipt(), creatorUserID)

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID), slog.String("entry_type", string(entry.EntryType)), slog.String("status", string(entry.Status)))
	return &entry, nil
}

// GetEntryByID retrieves a specific entry with its lines.
func (s *entryService) GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// GetEntryRegistry retrieves the ledger rows posted under the entry's
// voucher code.
func (s *entryService) GetEntryRegistry(ctx context.Context, entryID string) ([]domain.RegistryRow, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	rows, err := s.registryRepo.FindRowsByReference(ctx, entry.VoucherCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry rows for voucher %s: %w", entry.VoucherCode, err)
	}
	return rows, nil
}

// UpdateEntry edits a voucher. An approved entry has its old effects
// reversed before the new fields apply; the combined reversal and
// reposting land in one posting unit.
func (s *entryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EntryType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrEntryTypeInvalid, req.EntryType)
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	wasApproved := entry.Status == domain.Approved
	now := time.Now().UTC()

	var posting domain.Posting
	reverseInventory := false
	if wasApproved {
		reversal, err := s.buildReversalPosting(ctx, entry, userID)
		if err != nil {
			return nil, err
		}
		posting.Merge(reversal)
		reverseInventory = entry.EntryType.IsMetal()
	}

	updated := *entry
	updated.EntryType = req.EntryType
	updated.VoucherDate = req.VoucherDate
	updated.Narration = req.Narration
	updated.StockItems = nil
	updated.CashItems = nil
	if err := s.buildLines(&updated, req.StockItems, req.CashItems); err != nil {
		return nil, err
	}
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	// An edit that leaves a future-dated cheque on an entry with no PDC
	// route cannot stay approved.
	if wasApproved && s.hasUnroutableFutureCheque(&updated, now) {
		updated.Status = domain.Draft
	}

	var movements []domain.InventoryMovement
	if wasApproved && updated.Status == domain.Approved {
		repost, m, err := s.dispatch(ctx, &updated, now, userID)
		if err != nil {
			return nil, err
		}
		posting.Merge(repost)
		movements = m
	}

	var postingPtr *domain.Posting
	if !posting.IsEmpty() {
		postingPtr = &posting
	}
	if err := s.entryRepo.UpdateEntry(ctx, updated, postingPtr); err != nil {
		logger.Error("Failed to update entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	if reverseInventory {
		if err := s.inventoryRepo.ReverseMovementsByVoucher(ctx, entry.VoucherCode, userID); err != nil {
			logger.Warn("Failed to reverse inventory movements", slog.String("voucher_code", entry.VoucherCode), slog.String("error", err.Error()))
		}
	}
	s.recordInventory(ctx, movements, !updated.EntryType.IsReceipt(), userID)

	logger.Info("Entry updated", slog.String("entry_id", entryID), slog.String("status", string(updated.Status)))
	return &updated, nil
}

// UpdateEntryStatus transitions between draft and approved. Approval
// dispatches the type handler; demotion to draft reverses all effects.
func (s *entryService) UpdateEntryStatus(ctx context.Context, entryID string, status domain.EntryStatus, userID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if status != domain.Draft && status != domain.Approved {
		return nil, fmt.Errorf("%w: status %q", apperrors.ErrValidation, status)
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.Status == status {
		return nil, fmt.Errorf("%w: %s", ErrEntryAlreadyInState, status)
	}

	now := time.Now().UTC()
	updated := *entry
	updated.Status = status
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	var posting domain.Posting
	var movements []domain.InventoryMovement
	reverseInventory := false

	switch status {
	case domain.Approved:
		if s.hasUnroutableFutureCheque(&updated, now) {
			return nil, fmt.Errorf("%w", ErrChequeNotDue)
		}
		posting, movements, err = s.dispatch(ctx, &updated, now, userID)
		if err != nil {
			return nil, err
		}
	case domain.Draft:
		posting, err = s.buildReversalPosting(ctx, entry, userID)
		if err != nil {
			return nil, err
		}
		reverseInventory = entry.EntryType.IsMetal()
		clearPDCFields(&updated)
	}

	var postingPtr *domain.Posting
	if !posting.IsEmpty() {
		postingPtr = &posting
	}
	if err := s.entryRepo.UpdateEntry(ctx, updated, postingPtr); err != nil {
		logger.Error("Failed to update entry status", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update entry status: %w", err)
	}

	if reverseInventory {
		if err := s.inventoryRepo.ReverseMovementsByVoucher(ctx, entry.VoucherCode, userID); err != nil {
			logger.Warn("Failed to reverse inventory movements", slog.String("voucher_code", entry.VoucherCode), slog.String("error", err.Error()))
		}
	}
	s.recordInventory(ctx, movements, !updated.EntryType.IsReceipt(), userID)

	logger.Info("Entry status updated", slog.String("entry_id", entryID), slog.String("status", string(status)))
	return &updated, nil
}

// DeleteEntry reverses an approved voucher's effects, then removes the
// voucher and its ledger rows.
func (s *entryService) DeleteEntry(ctx context.Context, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	var posting domain.Posting
	reverseInventory := false
	if entry.Status == domain.Approved {
		posting, err = s.buildReversalPosting(ctx, entry, userID)
		if err != nil {
			return err
		}
		reverseInventory = entry.EntryType.IsMetal()
	} else {
		// A draft voucher has no effects, but any rows ever tagged with
		// its code must not survive it.
		posting.DeleteRowsByReference = []string{entry.VoucherCode}
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID, &posting); err != nil {
		logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if reverseInventory {
		if err := s.inventoryRepo.ReverseMovementsByVoucher(ctx, entry.VoucherCode, userID); err != nil {
			logger.Warn("Failed to reverse inventory movements", slog.String("voucher_code", entry.VoucherCode), slog.String("error", err.Error()))
		}
	}

	logger.Info("Entry deleted", slog.String("entry_id", entryID), slog.String("voucher_code", entry.VoucherCode))
	return nil
}

// buildLines validates and materializes the request lines onto the entry.
// Exactly one of stock/cash must be populated, consistent with the type.
func (s *entryService) buildLines(entry *domain.Entry, stockReqs []dto.CreateStockItemRequest, cashReqs []dto.CreateCashItemRequest) error {
	hasStock := len(stockReqs) > 0
	hasCash := len(cashReqs) > 0
	if hasStock == hasCash {
		return fmt.Errorf("%w", ErrEntryLinesInvalid)
	}
	if entry.EntryType.IsMetal() != hasStock {
		return fmt.Errorf("%w: %s entries take %s lines", ErrEntryLinesInvalid, entry.EntryType, lineKind(entry.EntryType))
	}

	for _, sr := range stockReqs {
		if sr.GrossWeight.LessThanOrEqual(decimal.Zero) || sr.Purity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: gross weight and purity must be positive for stock %s", apperrors.ErrValidation, sr.StockID)
		}
		entry.StockItems = append(entry.StockItems, domain.StockItem{
			StockItemID: uuid.NewString(),
			StockID:     sr.StockID,
			MetalID:     sr.MetalID,
			GrossWeight: sr.GrossWeight,
			Purity:      sr.Purity,
			PureWeight:  accounting.PureWeight(sr.GrossWeight, sr.Purity),
			Pieces:      sr.Pieces,
		})
	}

	for i, cr := range cashReqs {
		if cr.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: cash amount must be positive on line %d", apperrors.ErrValidation, i)
		}
		if !cr.CashType.IsValid() {
			return fmt.Errorf("%w: cash type %q on line %d", apperrors.ErrValidation, cr.CashType, i)
		}
		switch cr.CashType {
		case domain.CashTypeTransfer:
			if cr.TransferAccountID == "" {
				return fmt.Errorf("%w: transfer line %d", ErrOppositeAccount, i)
			}
		default:
			if cr.BankAccountID == "" {
				return fmt.Errorf("%w: %s line %d", ErrOppositeAccount, cr.CashType, i)
			}
		}
		if cr.CashType == domain.CashTypeCheque && cr.ChequeDate == nil {
			return fmt.Errorf("%w: cheque line %d has no cheque date", apperrors.ErrValidation, i)
		}
		entry.CashItems = append(entry.CashItems, domain.CashItem{
			CashItemID:        uuid.NewString(),
			CurrencyCode:      cr.CurrencyCode,
			Amount:            cr.Amount,
			CashType:          cr.CashType,
			BankAccountID:     cr.BankAccountID,
			TransferAccountID: cr.TransferAccountID,
			ChequeNumber:      cr.ChequeNumber,
			ChequeDate:        cr.ChequeDate,
			VATAmount:         cr.VATAmount,
			CardCharge:        cr.CardCharge,
			FxRate:            cr.FxRate,
			FxBaseRate:        cr.FxBaseRate,
		})
	}
	return nil
}

// hasUnroutableFutureCheque reports whether the entry carries a cheque
// dated after today on a type with no PDC route. Currency entries route
// future cheques through the PDC account instead.
func (s *entryService) hasUnroutableFutureCheque(entry *domain.Entry, now time.Time) bool {
	if entry.EntryType.IsCurrency() || entry.EntryType.IsMetal() {
		return false
	}
	for _, c := range entry.CashItems {
		if c.CashType == domain.CashTypeCheque && c.ChequeDate != nil && dateOnly(*c.ChequeDate).After(dateOnly(now)) {
			return true
		}
	}
	return false
}

// recordInventory notifies the inventory collaborator of metal movements.
// Inventory is keyed by voucher code and reconciled from it; a failed
// notification must not unwind a committed posting.
func (s *entryService) recordInventory(ctx context.Context, movements []domain.InventoryMovement, isOutgoing bool, actorID string) {
	logger := middleware.GetLoggerFromCtx(ctx)
	for _, m := range movements {
		if err := s.inventoryRepo.RecordMovement(ctx, m, isOutgoing, actorID); err != nil {
			logger.Warn("Failed to record inventory movement", slog.String("voucher_code", m.VoucherCode), slog.String("stock_id", m.StockID), slog.String("error", err.Error()))
		}
	}
}

func lineKind(t domain.EntryType) string {
	if t.IsMetal() {
		return "stock"
	}
	return "cash"
}

func clearPDCFields(entry *domain.Entry) {
	for i := range entry.CashItems {
		entry.CashItems[i].IsPDC = false
		entry.CashItems[i].PDCStatus = ""
		entry.CashItems[i].MaturityDate = nil
		entry.CashItems[i].PDCAccountID = ""
		entry.CashItems[i].FxGain = decimal.Zero
		entry.CashItems[i].FxLoss = decimal.Zero
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
