package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PDCSchedule represents one row of the pdc_schedules table.
type PDCSchedule struct {
	ScheduleID    string          `db:"schedule_id"`
	EntryID       string          `db:"entry_id"`
	VoucherCode   string          `db:"voucher_code"`
	CashItemID    string          `db:"cash_item_id"`
	CashItemIndex int             `db:"cash_item_index"`
	PartyID       string          `db:"party_id"`
	CurrencyCode  string          `db:"currency_code"`
	Amount        decimal.Decimal `db:"amount"`
	Direction     string          `db:"direction"`
	ChequeDate    time.Time       `db:"cheque_date"`
	MaturityDate  time.Time       `db:"maturity_posting_date"`
	PDCAccountID  string          `db:"pdc_account_id"`
	BankAccountID string          `db:"bank_account_id"`
	Status        string          `db:"status"`
	AuditFields
}
