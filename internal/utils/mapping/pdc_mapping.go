package mapping

import (
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/aurumworks/bullion_ledger_app/internal/models"
)

// ToModelPDCSchedule converts a domain PDCSchedule to a model PDCSchedule
func ToModelPDCSchedule(d domain.PDCSchedule) models.PDCSchedule {
	return models.PDCSchedule{
		ScheduleID:    d.ScheduleID,
		EntryID:       d.EntryID,
		VoucherCode:   d.VoucherCode,
		CashItemID:    d.CashItemID,
		CashItemIndex: d.CashItemIndex,
		PartyID:       d.PartyID,
		CurrencyCode:  d.CurrencyCode,
		Amount:        d.Amount,
		Direction:     string(d.Direction),
		ChequeDate:    d.ChequeDate,
		MaturityDate:  d.MaturityDate,
		PDCAccountID:  d.PDCAccountID,
		BankAccountID: d.BankAccountID,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPDCSchedule converts a model PDCSchedule to a domain PDCSchedule
func ToDomainPDCSchedule(m models.PDCSchedule) domain.PDCSchedule {
	return domain.PDCSchedule{
		ScheduleID:    m.ScheduleID,
		EntryID:       m.EntryID,
		VoucherCode:   m.VoucherCode,
		CashItemID:    m.CashItemID,
		CashItemIndex: m.CashItemIndex,
		PartyID:       m.PartyID,
		CurrencyCode:  m.CurrencyCode,
		Amount:        m.Amount,
		Direction:     domain.PDCDirection(m.Direction),
		ChequeDate:    m.ChequeDate,
		MaturityDate:  m.MaturityDate,
		PDCAccountID:  m.PDCAccountID,
		BankAccountID: m.BankAccountID,
		Status:        domain.PDCStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPDCScheduleSlice converts a slice of model schedules to domain
func ToDomainPDCScheduleSlice(ms []models.PDCSchedule) []domain.PDCSchedule {
	ds := make([]domain.PDCSchedule, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPDCSchedule(m)
	}
	return ds
}
