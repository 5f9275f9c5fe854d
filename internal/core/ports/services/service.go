package services

// ServiceProvider holds all service facades needed by the HTTP layer.
type ServiceProvider struct {
	Registry       RegistrySvcFacade
	Journal        JournalSvcFacade
	Transfer       TransferSvcFacade
	Session        SessionSvcFacade
	Reconciliation ReconciliationSvcFacade
}
