package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dadminete/caja-ledger/internal/apperrors"
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portsrepo "github.com/Dadminete/caja-ledger/internal/core/ports/repositories"
	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
	"github.com/Dadminete/caja-ledger/internal/middleware"
)

// reconciliationService verifies cached balances against the journal fold
// and repairs them on explicit request. Drift is reported, never auto-fixed.
type reconciliationService struct {
	journalRepo   portsrepo.JournalRepositoryFacade
	containerRepo portsrepo.ContainerRepositoryFacade
	reconRepo     portsrepo.ReconciliationRepository
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(journalRepo portsrepo.JournalRepositoryFacade, containerRepo portsrepo.ContainerRepositoryFacade, reconRepo portsrepo.ReconciliationRepository) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		journalRepo:   journalRepo,
		containerRepo: containerRepo,
		reconRepo:     reconRepo,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// Reconcile compares one container's cached balance against the journal fold.
// Implements portssvc.ReconciliationSvcFacade
func (s *reconciliationService) Reconcile(ctx context.Context, ref domain.ContainerRef) (*domain.BalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	container, err := s.containerRepo.FindContainer(ctx, ref)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s", ErrContainerNotFound, ref.Type, ref.ID)
		}
		return nil, fmt.Errorf("failed to fetch container: %w", err)
	}

	computed, err := s.journalRepo.ComputeBalance(ctx, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance for %s %s: %w", ref.Type, ref.ID, err)
	}

	report := &domain.BalanceReport{
		Container: ref,
		Name:      container.Name,
		Cached:    container.Balance,
		Computed:  computed,
		Drift:     container.Balance.Sub(computed),
		Unlinked:  container.AccountID == nil,
		CheckedAt: time.Now().UTC(),
	}

	if report.HasDrift() {
		logger.Warn("Cached balance drift detected",
			slog.String("container_type", string(ref.Type)),
			slog.String("container_id", ref.ID),
			slog.String("cached", report.Cached.String()),
			slog.String("computed", report.Computed.String()),
			slog.String("drift", report.Drift.String()),
		)
	}
	if report.Unlinked {
		logger.Warn("Container has no accounting account link",
			slog.String("container_type", string(ref.Type)),
			slog.String("container_id", ref.ID),
		)
	}
	return report, nil
}

// ReconcileAll runs Reconcile over every known container.
// Implements portssvc.ReconciliationSvcFacade
func (s *reconciliationService) ReconcileAll(ctx context.Context) ([]domain.BalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	containers, err := s.containerRepo.ListContainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	reports := make([]domain.BalanceReport, 0, len(containers))
	drifted := 0
	for i := range containers {
		report, err := s.Reconcile(ctx, containers[i].Ref)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile %s %s: %w", containers[i].Ref.Type, containers[i].Ref.ID, err)
		}
		if report.HasDrift() {
			drifted++
		}
		reports = append(reports, *report)
	}

	logger.Info("Full reconciliation completed", slog.Int("containers", len(reports)), slog.Int("drifted", drifted))
	return reports, nil
}

// Repair sets the cached balance to the journal fold, leaving an audit row.
// Implements portssvc.ReconciliationSvcFacade
func (s *reconciliationService) Repair(ctx context.Context, ref domain.ContainerRef, userID string) (*domain.BalanceRepair, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.containerRepo.FindContainer(ctx, ref); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s", ErrContainerNotFound, ref.Type, ref.ID)
		}
		return nil, fmt.Errorf("failed to fetch container: %w", err)
	}

	repair, err := s.reconRepo.RepairBalance(ctx, ref, userID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to repair balance", slog.String("error", err.Error()), slog.String("container_id", ref.ID))
		return nil, fmt.Errorf("failed to repair balance for %s %s: %w", ref.Type, ref.ID, err)
	}

	logger.Info("Cached balance repaired",
		slog.String("repair_id", repair.RepairID),
		slog.String("container_type", string(ref.Type)),
		slog.String("container_id", ref.ID),
		slog.String("old_balance", repair.OldBalance.String()),
		slog.String("new_balance", repair.NewBalance.String()),
		slog.String("repaired_by", userID),
	)
	return repair, nil
}

// FindOrphanEntries scans for structural integrity violations.
// Implements portssvc.ReconciliationSvcFacade
func (s *reconciliationService) FindOrphanEntries(ctx context.Context) ([]domain.OrphanRef, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	orphans, err := s.reconRepo.FindOrphans(ctx)
	if err != nil {
		logger.Error("Failed to scan for orphans", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to scan for orphans: %w", err)
	}

	if len(orphans) > 0 {
		logger.Warn("Integrity scan found orphans", slog.Int("count", len(orphans)))
	}
	return orphans, nil
}

// ListRepairs retrieves the repair audit history.
// Implements portssvc.ReconciliationSvcFacade
func (s *reconciliationService) ListRepairs(ctx context.Context, ref *domain.ContainerRef, limit int) ([]domain.BalanceRepair, error) {
	if limit <= 0 {
		limit = 50 // Default limit
	}

	repairs, err := s.reconRepo.ListRepairs(ctx, ref, limit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list repairs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve repairs: %w", err)
	}
	return repairs, nil
}
