package services

import (
	portsrepo "github.com/Dadminete/caja-ledger/internal/core/ports/repositories"
	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
)

// NewServiceProvider wires every core service from the repository provider.
func NewServiceProvider(repos *portsrepo.RepositoryProvider) *portssvc.ServiceProvider {
	return &portssvc.ServiceProvider{
		Registry:       NewRegistryService(repos.AccountRepo, repos.ContainerRepo, repos.CategoryRepo),
		Journal:        NewJournalService(repos.JournalRepo, repos.ContainerRepo, repos.CategoryRepo),
		Transfer:       NewTransferService(repos.JournalRepo, repos.ContainerRepo),
		Session:        NewSessionService(repos.SessionRepo, repos.ContainerRepo),
		Reconciliation: NewReconciliationService(repos.JournalRepo, repos.ContainerRepo, repos.ReconciliationRepo),
	}
}
