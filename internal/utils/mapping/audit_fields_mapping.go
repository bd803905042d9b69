package mapping

import (
	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/aurumworks/bullion_ledger_app/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// strPtr returns nil for the empty string, s otherwise.
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// strVal returns the empty string for nil, *p otherwise.
func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
