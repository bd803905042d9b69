package dto

import (
	"time"

	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegistryRowResponse defines the data returned for one ledger row.
type RegistryRowResponse struct {
	RegistryID      string            `json:"registryID"`
	TransactionID   int64             `json:"transactionID"`
	LedgerType      domain.LedgerType `json:"ledgerType"`
	Debit           decimal.Decimal   `json:"debit"`
	Credit          decimal.Decimal   `json:"credit"`
	GoldDebit       decimal.Decimal   `json:"goldDebit"`
	GoldCredit      decimal.Decimal   `json:"goldCredit"`
	AccountID       string            `json:"accountID"`
	CurrencyCode    string            `json:"currencyCode,omitempty"`
	MetalID         string            `json:"metalID,omitempty"`
	Reference       string            `json:"reference"`
	TransactionDate time.Time         `json:"transactionDate"`
}

// ToRegistryRowResponses converts domain rows to response DTOs.
func ToRegistryRowResponses(rows []domain.RegistryRow) []RegistryRowResponse {
	responses := make([]RegistryRowResponse, len(rows))
	for i, r := range rows {
		responses[i] = RegistryRowResponse{
			RegistryID:      r.RegistryID,
			TransactionID:   r.TransactionID,
			LedgerType:      r.LedgerType,
			Debit:           r.Debit,
			Credit:          r.Credit,
			GoldDebit:       r.GoldDebit,
			GoldCredit:      r.GoldCredit,
			AccountID:       r.AccountID,
			CurrencyCode:    r.CurrencyCode,
			MetalID:         r.MetalID,
			Reference:       r.Reference,
			TransactionDate: r.TransactionDate,
		}
	}
	return responses
}

// MaturityResultResponse is the summary returned by the maturity sweep.
type MaturityResultResponse struct {
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Errors    []string `json:"errors"`
}

// ToMaturityResultResponse converts a sweep result to its response DTO.
func ToMaturityResultResponse(r *domain.MaturityResult) MaturityResultResponse {
	return MaturityResultResponse{
		Processed: r.Processed,
		Skipped:   r.Skipped,
		Errors:    r.Errors,
	}
}
