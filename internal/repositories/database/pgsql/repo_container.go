package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/Dadminete/caja-ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository against the shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo:        newPgxAccountRepository(dbPool),
		ContainerRepo:      newPgxContainerRepository(dbPool),
		CategoryRepo:       newPgxCategoryRepository(dbPool),
		JournalRepo:        newPgxJournalRepository(dbPool),
		SessionRepo:        newPgxSessionRepository(dbPool),
		ReconciliationRepo: newPgxReconciliationRepository(dbPool),
	}
}
