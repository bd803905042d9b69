package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType identifies which of the six recognized voucher types an entry is.
type EntryType string

const (
	MetalReceipt    EntryType = "METAL_RECEIPT"
	MetalPayment    EntryType = "METAL_PAYMENT"
	CashReceipt     EntryType = "CASH_RECEIPT"
	CashPayment     EntryType = "CASH_PAYMENT"
	CurrencyReceipt EntryType = "CURRENCY_RECEIPT"
	CurrencyPayment EntryType = "CURRENCY_PAYMENT"
)

// IsValid reports whether t is one of the six recognized entry types.
func (t EntryType) IsValid() bool {
	switch t {
	case MetalReceipt, MetalPayment, CashReceipt, CashPayment, CurrencyReceipt, CurrencyPayment:
		return true
	}
	return false
}

// IsMetal reports whether the entry moves metal weight rather than money.
func (t EntryType) IsMetal() bool {
	return t == MetalReceipt || t == MetalPayment
}

// IsCurrency reports whether the entry is a foreign-currency voucher,
// the only kind eligible for post-dated cheque routing.
func (t EntryType) IsCurrency() bool {
	return t == CurrencyReceipt || t == CurrencyPayment
}

// IsReceipt reports whether the entry increases the party's position.
func (t EntryType) IsReceipt() bool {
	return t == MetalReceipt || t == CashReceipt || t == CurrencyReceipt
}

// EntryStatus indicates the lifecycle state of an entry.
// Ledger and balance effects exist only while the entry is approved.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Approved EntryStatus = "APPROVED"
)

// CashType identifies the settlement instrument of a cash line.
type CashType string

const (
	CashTypeCash     CashType = "CASH"
	CashTypeBank     CashType = "BANK"
	CashTypeCheque   CashType = "CHEQUE"
	CashTypeCard     CashType = "CARD"
	CashTypeTransfer CashType = "TRANSFER"
)

// IsValid reports whether c is a recognized cash type.
func (c CashType) IsValid() bool {
	switch c {
	case CashTypeCash, CashTypeBank, CashTypeCheque, CashTypeCard, CashTypeTransfer:
		return true
	}
	return false
}

// StockItem is one metal line on a metal receipt/payment entry.
type StockItem struct {
	StockItemID string          `json:"stockItemID"` // Primary Key (UUID)
	StockID     string          `json:"stockID"`     // FK -> stock master
	MetalID     string          `json:"metalID"`     // FK -> metals
	GrossWeight decimal.Decimal `json:"grossWeight"` // grams
	Purity      decimal.Decimal `json:"purity"`      // e.g. 0.916
	PureWeight  decimal.Decimal `json:"pureWeight"`  // grossWeight * purity
	Pieces      int             `json:"pieces"`
}

// CashItem is one money line on a cash/currency receipt/payment entry.
// CashItemID is the stable addressing key for PDC operations; positional
// indexes are recorded on schedules for audit only.
type CashItem struct {
	CashItemID        string          `json:"cashItemID"` // Primary Key (UUID)
	CurrencyCode      string          `json:"currencyCode"`
	Amount            decimal.Decimal `json:"amount"`
	CashType          CashType        `json:"cashType"`
	BankAccountID     string          `json:"bankAccountID"`     // bank/cheque/card lines
	TransferAccountID string          `json:"transferAccountID"` // transfer lines
	ChequeNumber      string          `json:"chequeNumber"`
	ChequeDate        *time.Time      `json:"chequeDate"`
	VATAmount         decimal.Decimal `json:"vatAmount"`
	CardCharge        decimal.Decimal `json:"cardCharge"`
	FxRate            decimal.Decimal `json:"fxRate"`     // rate used in the transaction
	FxBaseRate        decimal.Decimal `json:"fxBaseRate"` // reference/market rate
	FxGain            decimal.Decimal `json:"fxGain"`
	FxLoss            decimal.Decimal `json:"fxLoss"`
	IsPDC             bool            `json:"isPDC"`
	PDCStatus         PDCStatus       `json:"pdcStatus"`
	MaturityDate      *time.Time      `json:"maturityPostingDate"`
	PDCAccountID      string          `json:"pdcAccountID"`
}

// OppositeAccountID is the non-party side of the line: the transfer
// account for transfer lines, the bank (or till) account otherwise.
func (c *CashItem) OppositeAccountID() string {
	if c.CashType == CashTypeTransfer {
		return c.TransferAccountID
	}
	return c.BankAccountID
}

// Entry is one user-submitted voucher: either a metal movement or a money
// movement, never both. It owns its stock/cash lines.
type Entry struct {
	EntryID     string      `json:"entryID"` // Primary Key (UUID)
	EntryType   EntryType   `json:"entryType"`
	Status      EntryStatus `json:"status"`
	PartyID     string      `json:"partyID"`     // owning account
	VoucherCode string      `json:"voucherCode"` // unique human reference; reversal key
	VoucherDate time.Time   `json:"voucherDate"`
	Narration   string      `json:"narration"`
	StockItems  []StockItem `json:"stockItems,omitempty"`
	CashItems   []CashItem  `json:"cashItems,omitempty"`
	AuditFields
}

// CashItemByID returns a pointer to the cash line with the given ID, or nil.
func (e *Entry) CashItemByID(cashItemID string) *CashItem {
	for i := range e.CashItems {
		if e.CashItems[i].CashItemID == cashItemID {
			return &e.CashItems[i]
		}
	}
	return nil
}

// TotalAmount sums the cash lines of the entry.
func (e *Entry) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, c := range e.CashItems {
		total = total.Add(c.Amount)
	}
	return total
}

// TotalPureWeight sums the pure weight of the stock lines of the entry.
func (e *Entry) TotalPureWeight() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.StockItems {
		total = total.Add(s.PureWeight)
	}
	return total
}
