package mapping

import (
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/aurumworks/bullion_ledger_app/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode: d.CurrencyCode,
		Symbol:       d.Symbol,
		Name:         d.Name,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode: m.CurrencyCode,
		Symbol:       m.Symbol,
		Name:         m.Name,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelMetal converts a domain Metal to a model Metal
func ToModelMetal(d domain.Metal) models.Metal {
	return models.Metal{
		MetalID:     d.MetalID,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMetal converts a model Metal to a domain Metal
func ToDomainMetal(m models.Metal) domain.Metal {
	return domain.Metal{
		MetalID:     m.MetalID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
