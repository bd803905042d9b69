package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PDCStatus is the lifecycle state of a post-dated cheque line and its
// schedule. PENDING is the only non-terminal state.
type PDCStatus string

const (
	PDCPending   PDCStatus = "PENDING"
	PDCCleared   PDCStatus = "CLEARED"
	PDCBounced   PDCStatus = "BOUNCED"
	PDCCancelled PDCStatus = "CANCELLED"
)

// PDCDirection records which side of the books the cheque sits on.
type PDCDirection string

const (
	PDCReceipt PDCDirection = "RECEIPT"
	PDCIssue   PDCDirection = "ISSUE"
)

// PDCSchedule is one deferred-settlement row per post-dated cheque line.
// It is created when a currency entry's cheque is dated in the future and
// terminated by clearing, bouncing, cancellation or voucher cleanup.
type PDCSchedule struct {
	ScheduleID    string          `json:"scheduleID"` // Primary Key (UUID)
	EntryID       string          `json:"entryID"`
	VoucherCode   string          `json:"voucherCode"`
	CashItemID    string          `json:"cashItemID"`    // stable addressing key
	CashItemIndex int             `json:"cashItemIndex"` // position at creation time, audit only
	PartyID       string          `json:"partyID"`
	CurrencyCode  string          `json:"currencyCode"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     PDCDirection    `json:"direction"`
	ChequeDate    time.Time       `json:"chequeDate"`
	MaturityDate  time.Time       `json:"maturityPostingDate"` // chequeDate + configured offset
	PDCAccountID  string          `json:"pdcAccountID"`
	BankAccountID string          `json:"bankAccountID"`
	Status        PDCStatus       `json:"status"`
	AuditFields
}

// MaturityResult is the aggregate outcome of one maturity sweep. A failure
// on one schedule never aborts the others; it is collected here instead.
type MaturityResult struct {
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}
