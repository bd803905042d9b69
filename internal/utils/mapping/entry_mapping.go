package mapping

import (
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/aurumworks/bullion_ledger_app/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry. Lines are mapped
// separately since they live in their own tables.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:     d.EntryID,
		EntryType:   string(d.EntryType),
		Status:      string(d.Status),
		PartyID:     d.PartyID,
		VoucherCode: d.VoucherCode,
		VoucherDate: d.VoucherDate,
		Narration:   d.Narration,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry without lines.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:     m.EntryID,
		EntryType:   domain.EntryType(m.EntryType),
		Status:      domain.EntryStatus(m.Status),
		PartyID:     m.PartyID,
		VoucherCode: m.VoucherCode,
		VoucherDate: m.VoucherDate,
		Narration:   m.Narration,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelStockItem converts a domain StockItem to a model StockItem.
func ToModelStockItem(d domain.StockItem, entryID string, lineNo int) models.StockItem {
	return models.StockItem{
		StockItemID: d.StockItemID,
		EntryID:     entryID,
		StockID:     d.StockID,
		MetalID:     d.MetalID,
		GrossWeight: d.GrossWeight,
		Purity:      d.Purity,
		PureWeight:  d.PureWeight,
		Pieces:      d.Pieces,
		LineNo:      lineNo,
	}
}

// ToDomainStockItem converts a model StockItem to a domain StockItem.
func ToDomainStockItem(m models.StockItem) domain.StockItem {
	return domain.StockItem{
		StockItemID: m.StockItemID,
		StockID:     m.StockID,
		MetalID:     m.MetalID,
		GrossWeight: m.GrossWeight,
		Purity:      m.Purity,
		PureWeight:  m.PureWeight,
		Pieces:      m.Pieces,
	}
}

// ToModelCashItem converts a domain CashItem to a model CashItem.
func ToModelCashItem(d domain.CashItem, entryID string, lineNo int) models.CashItem {
	return models.CashItem{
		CashItemID:        d.CashItemID,
		EntryID:           entryID,
		CurrencyCode:      d.CurrencyCode,
		Amount:            d.Amount,
		CashType:          string(d.CashType),
		BankAccountID:     strPtr(d.BankAccountID),
		TransferAccountID: strPtr(d.TransferAccountID),
		ChequeNumber:      strPtr(d.ChequeNumber),
		ChequeDate:        d.ChequeDate,
		VATAmount:         d.VATAmount,
		CardCharge:        d.CardCharge,
		FxRate:            d.FxRate,
		FxBaseRate:        d.FxBaseRate,
		FxGain:            d.FxGain,
		FxLoss:            d.FxLoss,
		IsPDC:             d.IsPDC,
		PDCStatus:         strPtr(string(d.PDCStatus)),
		MaturityDate:      d.MaturityDate,
		PDCAccountID:      strPtr(d.PDCAccountID),
		LineNo:            lineNo,
	}
}

// ToDomainCashItem converts a model CashItem to a domain CashItem.
func ToDomainCashItem(m models.CashItem) domain.CashItem {
	return domain.CashItem{
		CashItemID:        m.CashItemID,
		CurrencyCode:      m.CurrencyCode,
		Amount:            m.Amount,
		CashType:          domain.CashType(m.CashType),
		BankAccountID:     strVal(m.BankAccountID),
		TransferAccountID: strVal(m.TransferAccountID),
		ChequeNumber:      strVal(m.ChequeNumber),
		ChequeDate:        m.ChequeDate,
		VATAmount:         m.VATAmount,
		CardCharge:        m.CardCharge,
		FxRate:            m.FxRate,
		FxBaseRate:        m.FxBaseRate,
		FxGain:            m.FxGain,
		FxLoss:            m.FxLoss,
		IsPDC:             m.IsPDC,
		PDCStatus:         domain.PDCStatus(strVal(m.PDCStatus)),
		MaturityDate:      m.MaturityDate,
		PDCAccountID:      strVal(m.PDCAccountID),
	}
}
