package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistryRow represents one immutable ledger row in the registry table.
// Rows of one posting group share a transaction_id drawn from the
// registry_txn_seq sequence.
type RegistryRow struct {
	RegistryID      string          `db:"registry_id"`
	TransactionID   int64           `db:"transaction_id"`
	LedgerType      string          `db:"ledger_type"`
	Debit           decimal.Decimal `db:"debit"`
	Credit          decimal.Decimal `db:"credit"`
	GoldDebit       decimal.Decimal `db:"gold_debit"`
	GoldCredit      decimal.Decimal `db:"gold_credit"`
	AccountID       *string         `db:"account_id"`
	PartyID         *string         `db:"party_id"`
	CurrencyCode    *string         `db:"currency_code"`
	MetalID         *string         `db:"metal_id"`
	CashItemID      *string         `db:"cash_item_id"`
	Reference       string          `db:"reference"`
	TransactionDate time.Time       `db:"transaction_date"`
	AuditFields
}
