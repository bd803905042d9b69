package mapping

import (
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/aurumworks/bullion_ledger_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account. Balances
// are not carried; they live in their own tables.
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:   d.AccountID,
		Name:        d.Name,
		Kind:        string(d.Kind),
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.BankDetail != nil {
		m.PDCIssueAccountID = strPtr(d.BankDetail.PDCIssueAccountID)
		m.PDCReceiptAccountID = strPtr(d.BankDetail.PDCReceiptAccountID)
		issueDays := d.BankDetail.MaturityDays
		receiptDays := d.BankDetail.PDCReceiptMaturityDays
		m.MaturityDays = &issueDays
		m.PDCReceiptMaturityDays = &receiptDays
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account without
// balances. BankDetail is materialized whenever any PDC column is set.
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:   m.AccountID,
		Name:        m.Name,
		Kind:        domain.AccountKind(m.Kind),
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.PDCIssueAccountID != nil || m.PDCReceiptAccountID != nil || m.MaturityDays != nil || m.PDCReceiptMaturityDays != nil {
		detail := &domain.BankDetail{
			PDCIssueAccountID:   strVal(m.PDCIssueAccountID),
			PDCReceiptAccountID: strVal(m.PDCReceiptAccountID),
		}
		if m.MaturityDays != nil {
			detail.MaturityDays = *m.MaturityDays
		}
		if m.PDCReceiptMaturityDays != nil {
			detail.PDCReceiptMaturityDays = *m.PDCReceiptMaturityDays
		}
		d.BankDetail = detail
	}
	return d
}

// ToDomainCashBalance converts a model CashBalance to a domain CashBalance
func ToDomainCashBalance(m models.CashBalance) domain.CashBalance {
	return domain.CashBalance{
		CurrencyCode: m.CurrencyCode,
		Amount:       m.Amount,
		LastUpdated:  m.LastUpdated,
	}
}

// ToDomainGoldBalance converts a model GoldBalance to a domain GoldBalance
func ToDomainGoldBalance(m models.GoldBalance) domain.GoldBalance {
	return domain.GoldBalance{
		TotalGrams:  m.TotalGrams,
		LastUpdated: m.LastUpdated,
	}
}
