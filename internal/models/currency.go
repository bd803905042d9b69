package models

// Currency represents one row of the currencies table.
type Currency struct {
	CurrencyCode string `db:"currency_code"`
	Symbol       string `db:"symbol"`
	Name         string `db:"name"`
	AuditFields
}

// Metal represents one row of the metals table.
type Metal struct {
	MetalID string `db:"metal_id"`
	Name    string `db:"name"`
	AuditFields
}
