package repositories

import (
	"context"

	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
)

// CurrencyReader defines read operations for currency master data.
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
}

// CurrencyWriter defines write operations for currency and metal master
// data, primarily for initial setup.
type CurrencyWriter interface {
	// SaveCurrency inserts or updates a currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// SaveMetal inserts or updates a metal.
	SaveMetal(ctx context.Context, metal domain.Metal) error
}

// CurrencyRepositoryFacade combines all currency repository interfaces.
type CurrencyRepositoryFacade interface {
	CurrencyReader
}

// CurrencyRepositoryWithTx extends CurrencyRepositoryFacade with write and
// transaction capabilities.
type CurrencyRepositoryWithTx interface {
	CurrencyRepositoryFacade
	CurrencyWriter
	TransactionManager
}
