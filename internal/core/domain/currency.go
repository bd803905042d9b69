package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "AED")
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	AuditFields
}

// Metal is a traded metal master row.
type Metal struct {
	MetalID string `json:"metalID"` // Primary Key (UUID)
	Name    string `json:"name"`    // e.g., "Gold 995"
	AuditFields
}
