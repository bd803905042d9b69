package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerType is the semantic bucket of a registry row.
type LedgerType string

const (
	LedgerPartyCashBalance LedgerType = "PARTY_CASH_BALANCE"
	LedgerPartyGoldBalance LedgerType = "PARTY_GOLD_BALANCE"
	LedgerBullionEntry     LedgerType = "BULLION_ENTRY"
	LedgerPDCEntry         LedgerType = "PDC_ENTRY"
	LedgerPDCMaturity      LedgerType = "PDC_MATURITY"
	LedgerFXExchange       LedgerType = "FX_EXCHANGE"
	LedgerVATEntry         LedgerType = "VAT_ENTRY"
	LedgerCardCharge       LedgerType = "CARD_CHARGE"
	LedgerStockBalance     LedgerType = "STOCK_BALANCE"
	LedgerGoldAsset        LedgerType = "GOLD_ASSET"
)

// RegistryRow is one immutable double-entry posting. Rows are only ever
// appended as a group or bulk-deleted by voucher reference, never mutated.
// All rows written for one voucher operation share a TransactionID drawn
// from the registry sequence.
type RegistryRow struct {
	RegistryID      string          `json:"registryID"`    // Primary Key (UUID)
	TransactionID   int64           `json:"transactionID"` // group id from the sequence allocator
	LedgerType      LedgerType      `json:"ledgerType"`
	Debit           decimal.Decimal `json:"debit"`  // currency units
	Credit          decimal.Decimal `json:"credit"` // currency units
	GoldDebit       decimal.Decimal `json:"goldDebit"`
	GoldCredit      decimal.Decimal `json:"goldCredit"`
	AccountID       string          `json:"accountID"` // the account this row is posted against
	PartyID         string          `json:"partyID"`
	CurrencyCode    string          `json:"currencyCode"`
	MetalID         string          `json:"metalID"`
	CashItemID      string          `json:"cashItemID"` // set on PDC and maturity rows
	Reference       string          `json:"reference"`  // voucher code; the reversal key
	TransactionDate time.Time       `json:"transactionDate"`
	AuditFields
}
