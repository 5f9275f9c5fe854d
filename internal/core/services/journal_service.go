package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Dadminete/caja-ledger/internal/apperrors"
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portsrepo "github.com/Dadminete/caja-ledger/internal/core/ports/repositories"
	portssvc "github.com/Dadminete/caja-ledger/internal/core/ports/services"
	"github.com/Dadminete/caja-ledger/internal/dto"
	"github.com/Dadminete/caja-ledger/internal/middleware"
)

var (
	ErrAmbiguousContainer = errors.New("entry must reference exactly one of drawer or bank account")
	ErrContainerNotFound  = errors.New("container not found")
	ErrContainerInactive  = errors.New("container is inactive")
	ErrCategoryNotFound   = errors.New("category not found")
)

// journalService implements the movement journal: validated, idempotent
// appends plus the authoritative balance fold.
type journalService struct {
	journalRepo   portsrepo.JournalRepositoryFacade
	containerRepo portsrepo.ContainerRepositoryFacade
	categoryRepo  portsrepo.CategoryRepositoryFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, containerRepo portsrepo.ContainerRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:   journalRepo,
		containerRepo: containerRepo,
		categoryRepo:  categoryRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// resolveContainerRef enforces the drawer-XOR-bank rule of entry requests.
func resolveContainerRef(drawerID, bankAccountID *string) (domain.ContainerRef, error) {
	switch {
	case drawerID != nil && bankAccountID != nil:
		return domain.ContainerRef{}, ErrAmbiguousContainer
	case drawerID != nil:
		return domain.ContainerRef{Type: domain.ContainerDrawer, ID: *drawerID}, nil
	case bankAccountID != nil:
		return domain.ContainerRef{Type: domain.ContainerBank, ID: *bankAccountID}, nil
	default:
		return domain.ContainerRef{}, ErrAmbiguousContainer
	}
}

// PostEntry validates and appends one journal entry.
// Implements portssvc.JournalSvcFacade
func (s *journalService) PostEntry(ctx context.Context, req dto.PostEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: entry amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
	}

	ref, err := resolveContainerRef(req.DrawerID, req.BankAccountID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	if req.EntryType != domain.EntryIncome && req.EntryType != domain.EntryExpense {
		return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, req.EntryType)
	}

	// Idempotent replay: a retry carrying the same caller operation id
	// returns the entry posted the first time instead of double-posting.
	if req.SourceActionID != nil {
		existing, err := s.journalRepo.FindEntryBySourceActionID(ctx, *req.SourceActionID)
		if err == nil {
			logger.Info("Entry replay detected, returning original", slog.String("entry_id", existing.EntryID), slog.String("source_action_id", *req.SourceActionID))
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check source action id: %w", err)
		}
	}

	container, err := s.containerRepo.FindContainer(ctx, ref)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s", ErrContainerNotFound, ref.Type, ref.ID)
		}
		logger.Error("Failed to fetch container for entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch container: %w", err)
	}
	if !container.IsActive {
		return nil, fmt.Errorf("%w: %s %s", ErrContainerInactive, ref.Type, ref.ID)
	}

	if _, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, req.CategoryID)
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.JournalEntry{
		EntryID:        uuid.NewString(),
		Container:      ref,
		EntryType:      req.EntryType,
		Amount:         req.Amount,
		CategoryID:     req.CategoryID,
		EntryDate:      req.Date,
		Description:    req.Description,
		SourceActionID: req.SourceActionID,
		CreatedAt:      now,
		CreatedBy:      creatorUserID,
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		// A concurrent retry may have won the insert race on source_action_id.
		if errors.Is(err, apperrors.ErrDuplicate) && req.SourceActionID != nil {
			existing, findErr := s.journalRepo.FindEntryBySourceActionID(ctx, *req.SourceActionID)
			if findErr == nil {
				logger.Info("Entry replay raced, returning original", slog.String("entry_id", existing.EntryID))
				return existing, nil
			}
		}
		logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("container_id", ref.ID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("container_type", string(ref.Type)),
		slog.String("container_id", ref.ID),
		slog.String("entry_type", string(entry.EntryType)),
		slog.String("amount", entry.Amount.String()),
	)
	return &entry, nil
}

// GetEntryByID retrieves a specific journal entry.
// Implements portssvc.JournalSvcFacade
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find entry by ID", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ComputeBalance folds the journal for one container. The cached column on
// the container row is an optimization; this fold is the source of truth.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ComputeBalance(ctx context.Context, ref domain.ContainerRef, asOf *time.Time) (decimal.Decimal, error) {
	if ref.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: container reference is required", apperrors.ErrValidation)
	}

	balance, err := s.journalRepo.ComputeBalance(ctx, ref, asOf)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to compute balance", slog.String("error", err.Error()), slog.String("container_id", ref.ID))
		}
		return decimal.Zero, fmt.Errorf("failed to compute balance for %s %s: %w", ref.Type, ref.ID, err)
	}
	return balance, nil
}

// ListEntries retrieves a paginated list of entries for one container.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ListEntries(ctx context.Context, ref domain.ContainerRef, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByContainer(ctx, ref, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list entries from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}

	logger.Debug("Entries listed", "count", len(entries))
	return resp, nil
}
