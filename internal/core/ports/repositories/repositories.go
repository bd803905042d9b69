package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// It is constructed once by the database layer and handed to the service
// container.
type RepositoryProvider struct {
	EntryRepo     EntryRepositoryWithTx
	RegistryRepo  RegistryRepositoryWithTx
	AccountRepo   AccountRepositoryWithTx
	CurrencyRepo  CurrencyRepositoryWithTx
	PDCRepo       PDCRepositoryWithTx
	InventoryRepo InventoryRecorder
}
