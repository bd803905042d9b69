package pgsql

import (
	portsrepo "github.com/aurumworks/bullion_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	registryRepo := newPgxRegistryRepository(dbPool, accountRepo)
	entryRepo := newPgxEntryRepository(dbPool, registryRepo)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	pdcRepo := newPgxPDCRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EntryRepo:     entryRepo,
		RegistryRepo:  registryRepo,
		AccountRepo:   accountRepo,
		CurrencyRepo:  currencyRepo,
		PDCRepo:       pdcRepo,
		InventoryRepo: inventoryRepo,
	}
}
