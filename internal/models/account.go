package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents one row of the accounts table. The PDC configuration
// columns are populated only for bank accounts.
type Account struct {
	AccountID              string  `db:"account_id"`
	Name                   string  `db:"name"`
	Kind                   string  `db:"kind"`
	IsActive               bool    `db:"is_active"`
	PDCIssueAccountID      *string `db:"pdc_issue_account_id"`
	PDCReceiptAccountID    *string `db:"pdc_receipt_account_id"`
	MaturityDays           *int    `db:"maturity_days"`
	PDCReceiptMaturityDays *int    `db:"pdc_receipt_maturity_days"`
	AuditFields
}

// CashBalance represents one per-currency balance row in cash_balances.
// The primary key is (account_id, currency_code).
type CashBalance struct {
	AccountID    string          `db:"account_id"`
	CurrencyCode string          `db:"currency_code"`
	Amount       decimal.Decimal `db:"amount"`
	LastUpdated  time.Time       `db:"last_updated"`
}

// GoldBalance represents the single gold-weight balance row of an account.
type GoldBalance struct {
	AccountID   string          `db:"account_id"`
	TotalGrams  decimal.Decimal `db:"total_grams"`
	LastUpdated time.Time       `db:"last_updated"`
}
