package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry represents one voucher row in the entries table. Its stock and
// cash lines live in their own tables keyed by entry_id.
type Entry struct {
	EntryID     string    `db:"entry_id"`
	EntryType   string    `db:"entry_type"`
	Status      string    `db:"status"`
	PartyID     string    `db:"party_id"`
	VoucherCode string    `db:"voucher_code"`
	VoucherDate time.Time `db:"voucher_date"`
	Narration   string    `db:"narration"`
	AuditFields
}

// StockItem represents one metal line row in the stock_items table.
type StockItem struct {
	StockItemID string          `db:"stock_item_id"`
	EntryID     string          `db:"entry_id"`
	StockID     string          `db:"stock_id"`
	MetalID     string          `db:"metal_id"`
	GrossWeight decimal.Decimal `db:"gross_weight"`
	Purity      decimal.Decimal `db:"purity"`
	PureWeight  decimal.Decimal `db:"pure_weight"`
	Pieces      int             `db:"pieces"`
	LineNo      int             `db:"line_no"`
}

// CashItem represents one money line row in the cash_items table.
// Nullable columns use pointers.
type CashItem struct {
	CashItemID        string          `db:"cash_item_id"`
	EntryID           string          `db:"entry_id"`
	CurrencyCode      string          `db:"currency_code"`
	Amount            decimal.Decimal `db:"amount"`
	CashType          string          `db:"cash_type"`
	BankAccountID     *string         `db:"bank_account_id"`
	TransferAccountID *string         `db:"transfer_account_id"`
	ChequeNumber      *string         `db:"cheque_number"`
	ChequeDate        *time.Time      `db:"cheque_date"`
	VATAmount         decimal.Decimal `db:"vat_amount"`
	CardCharge        decimal.Decimal `db:"card_charge"`
	FxRate            decimal.Decimal `db:"fx_rate"`
	FxBaseRate        decimal.Decimal `db:"fx_base_rate"`
	FxGain            decimal.Decimal `db:"fx_gain"`
	FxLoss            decimal.Decimal `db:"fx_loss"`
	IsPDC             bool            `db:"is_pdc"`
	PDCStatus         *string         `db:"pdc_status"`
	MaturityDate      *time.Time      `db:"maturity_posting_date"`
	PDCAccountID      *string         `db:"pdc_account_id"`
	LineNo            int             `db:"line_no"`
}
