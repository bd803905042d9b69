package services

import (
	portsrepo "github.com/aurumworks/bullion_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/aurumworks/bullion_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Entry = NewEntryService(
		repos.EntryRepo,
		repos.RegistryRepo,
		repos.AccountRepo,
		repos.CurrencyRepo,
		repos.PDCRepo,
		repos.InventoryRepo,
	)
	container.PDC = NewPDCService(
		repos.EntryRepo,
		repos.RegistryRepo,
		repos.PDCRepo,
	)
	container.Maturity = NewMaturityService(
		repos.EntryRepo,
		repos.RegistryRepo,
		repos.PDCRepo,
	)

	return container
}
