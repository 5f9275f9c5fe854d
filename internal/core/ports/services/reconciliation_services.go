package services

import (
	"context"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
)

// ReconciliationSvcFacade defines the balance verification and repair
// operations exposed to the operator audit view.
type ReconciliationSvcFacade interface {
	// Reconcile recomputes one container's balance from the journal and
	// compares it against the cached value. Never fails because of drift;
	// drift is data in the report.
	Reconcile(ctx context.Context, ref domain.ContainerRef) (*domain.BalanceReport, error)

	// ReconcileAll runs Reconcile over every known container.
	ReconcileAll(ctx context.Context) ([]domain.BalanceReport, error)

	// Repair sets the cached balance to the computed value. Explicit and
	// audited: the acting user and the old/new values are retained.
	Repair(ctx context.Context, ref domain.ContainerRef, userID string) (*domain.BalanceRepair, error)

	// FindOrphanEntries scans for structural integrity violations.
	FindOrphanEntries(ctx context.Context) ([]domain.OrphanRef, error)

	// ListRepairs retrieves the repair audit history, optionally filtered to
	// one container.
	ListRepairs(ctx context.Context, ref *domain.ContainerRef, limit int) ([]domain.BalanceRepair, error)
}
