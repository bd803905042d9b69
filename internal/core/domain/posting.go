package domain

import "github.com/shopspring/decimal"

// CashAdjustment is one per-currency balance delta for an account.
type CashAdjustment struct {
	AccountID    string
	CurrencyCode string
	Delta        decimal.Decimal
}

// GoldAdjustment is one gold-weight balance delta for an account.
type GoldAdjustment struct {
	AccountID  string
	DeltaGrams decimal.Decimal
}

// ScheduleStatusUpdate moves a PDC schedule from PENDING to a terminal
// status. Application fails the whole posting when the schedule is no
// longer pending, so two concurrent resolutions cannot both commit.
type ScheduleStatusUpdate struct {
	ScheduleID string
	Status     PDCStatus
	ActorID    string
}

// CashItemPDCUpdate mutates the PDC bookkeeping fields of one cash line.
type CashItemPDCUpdate struct {
	EntryID    string
	CashItemID string
	Status     PDCStatus
	IsPDC      bool
}

// Posting is the all-or-nothing unit of one voucher operation: every
// registry row appended, every balance adjusted and every schedule written
// or resolved together, or none of them. Repositories apply a Posting
// inside a single database transaction.
type Posting struct {
	Rows                  []RegistryRow
	CashAdjustments       []CashAdjustment
	GoldAdjustments       []GoldAdjustment
	NewSchedules          []PDCSchedule
	ScheduleStatusUpdates []ScheduleStatusUpdate
	CashItemPDCUpdates    []CashItemPDCUpdate
	// DeleteRowsByReference removes every registry row tagged with these
	// voucher codes before the new rows are appended. Used by reversal.
	DeleteRowsByReference []string
}

// IsEmpty reports whether applying the posting would change nothing.
func (p *Posting) IsEmpty() bool {
	return len(p.Rows) == 0 &&
		len(p.CashAdjustments) == 0 &&
		len(p.GoldAdjustments) == 0 &&
		len(p.NewSchedules) == 0 &&
		len(p.ScheduleStatusUpdates) == 0 &&
		len(p.CashItemPDCUpdates) == 0 &&
		len(p.DeleteRowsByReference) == 0
}

// Merge appends the effects of other onto p.
func (p *Posting) Merge(other Posting) {
	p.Rows = append(p.Rows, other.Rows...)
	p.CashAdjustments = append(p.CashAdjustments, other.CashAdjustments...)
	p.GoldAdjustments = append(p.GoldAdjustments, other.GoldAdjustments...)
	p.NewSchedules = append(p.NewSchedules, other.NewSchedules...)
	p.ScheduleStatusUpdates = append(p.ScheduleStatusUpdates, other.ScheduleStatusUpdates...)
	p.CashItemPDCUpdates = append(p.CashItemPDCUpdates, other.CashItemPDCUpdates...)
	p.DeleteRowsByReference = append(p.DeleteRowsByReference, other.DeleteRowsByReference...)
}

// InventoryMovement is the physical stock movement reported to the
// inventory collaborator for every metal line, tagged with the voucher
// code for later reversal.
type InventoryMovement struct {
	StockID     string
	MetalID     string
	GrossWeight decimal.Decimal
	Purity      decimal.Decimal
	Pieces      int
	VoucherCode string
}
