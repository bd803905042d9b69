package mapping

import (
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/aurumworks/bullion_ledger_app/internal/models"
)

// ToModelRegistryRow converts a domain RegistryRow to a model RegistryRow
func ToModelRegistryRow(d domain.RegistryRow) models.RegistryRow {
	return models.RegistryRow{
		RegistryID:      d.RegistryID,
		TransactionID:   d.TransactionID,
		LedgerType:      string(d.LedgerType),
		Debit:           d.Debit,
		Credit:          d.Credit,
		GoldDebit:       d.GoldDebit,
		GoldCredit:      d.GoldCredit,
		AccountID:       strPtr(d.AccountID),
		PartyID:         strPtr(d.PartyID),
		CurrencyCode:    strPtr(d.CurrencyCode),
		MetalID:         strPtr(d.MetalID),
		CashItemID:      strPtr(d.CashItemID),
		Reference:       d.Reference,
		TransactionDate: d.TransactionDate,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRegistryRow converts a model RegistryRow to a domain RegistryRow
func ToDomainRegistryRow(m models.RegistryRow) domain.RegistryRow {
	return domain.RegistryRow{
		RegistryID:      m.RegistryID,
		TransactionID:   m.TransactionID,
		LedgerType:      domain.LedgerType(m.LedgerType),
		Debit:           m.Debit,
		Credit:          m.Credit,
		GoldDebit:       m.GoldDebit,
		GoldCredit:      m.GoldCredit,
		AccountID:       strVal(m.AccountID),
		PartyID:         strVal(m.PartyID),
		CurrencyCode:    strVal(m.CurrencyCode),
		MetalID:         strVal(m.MetalID),
		CashItemID:      strVal(m.CashItemID),
		Reference:       m.Reference,
		TransactionDate: m.TransactionDate,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRegistryRowSlice converts a slice of model rows to domain rows
func ToDomainRegistryRowSlice(ms []models.RegistryRow) []domain.RegistryRow {
	ds := make([]domain.RegistryRow, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRegistryRow(m)
	}
	return ds
}
