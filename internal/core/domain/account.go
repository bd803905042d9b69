package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind classifies what role an account plays in postings.
type AccountKind string

const (
	AccountParty    AccountKind = "PARTY"
	AccountBank     AccountKind = "BANK"
	AccountPDC      AccountKind = "PDC"
	AccountStock    AccountKind = "STOCK"
	AccountInternal AccountKind = "INTERNAL"
)

// CashBalance is one per-currency balance line of an account.
type CashBalance struct {
	CurrencyCode string          `json:"currencyCode"`
	Amount       decimal.Decimal `json:"amount"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}

// GoldBalance is the single gold-weight aggregate of an account.
type GoldBalance struct {
	TotalGrams  decimal.Decimal `json:"totalGrams"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// BankDetail carries the PDC configuration of a bank account. A bank with
// no PDC accounts configured cannot take post-dated cheques in that
// direction.
type BankDetail struct {
	PDCIssueAccountID      string `json:"pdcIssueAccountID"`   // payment direction holding account
	PDCReceiptAccountID    string `json:"pdcReceiptAccountID"` // receipt direction holding account
	MaturityDays           int    `json:"maturityDays"`        // payment direction offset
	PDCReceiptMaturityDays int    `json:"pdcReceiptMaturityDays"`
}

// Account is a trading party, bank, PDC holding account or internal account.
// Balances are mutated exclusively through the balance-adjustment repository
// operations, never written directly and never derived from the registry.
type Account struct {
	AccountID    string        `json:"accountID"` // Primary Key (UUID)
	Name         string        `json:"name"`
	Kind         AccountKind   `json:"kind"`
	CashBalances []CashBalance `json:"cashBalances"`
	GoldBalance  GoldBalance   `json:"goldBalance"`
	BankDetail   *BankDetail   `json:"bankDetail,omitempty"` // only on bank accounts
	IsActive     bool          `json:"isActive"`
	AuditFields
}

// CashBalanceFor returns the account's balance in the given currency,
// zero if it has never held that currency.
func (a *Account) CashBalanceFor(currencyCode string) decimal.Decimal {
	for _, b := range a.CashBalances {
		if b.CurrencyCode == currencyCode {
			return b.Amount
		}
	}
	return decimal.Zero
}
