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
	ErrSameContainer       = errors.New("transfer source and destination must differ")
	ErrInsufficientBalance = errors.New("insufficient balance at source container")
)

// transferService moves funds between containers by posting two linked
// journal entries atomically.
type transferService struct {
	journalRepo   portsrepo.JournalRepositoryFacade
	containerRepo portsrepo.ContainerRepositoryFacade
}

// NewTransferService creates a new transfer service.
func NewTransferService(journalRepo portsrepo.JournalRepositoryFacade, containerRepo portsrepo.ContainerRepositoryFacade) portssvc.TransferSvcFacade {
	return &transferService{
		journalRepo:   journalRepo,
		containerRepo: containerRepo,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// ExecuteTransfer posts the two legs of a transfer as one atomic unit.
// Implements portssvc.TransferSvcFacade
func (s *transferService) ExecuteTransfer(ctx context.Context, req dto.ExecuteTransferRequest, authorizedBy string) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive, got %s", apperrors.ErrValidation, req.Amount.String())
	}

	source := req.Source.ToDomain()
	destination := req.Destination.ToDomain()
	if source.Equal(destination) {
		return nil, fmt.Errorf("%w: %s %s", ErrSameContainer, source.Type, source.ID)
	}

	// Idempotent replay: a retry with the same key returns the transfer
	// recorded the first time.
	if req.IdempotencyKey != nil {
		existing, err := s.journalRepo.FindTransferByIdempotencyKey(ctx, *req.IdempotencyKey)
		if err == nil {
			logger.Info("Transfer replay detected, returning original", slog.String("transfer_id", existing.TransferID), slog.String("idempotency_key", *req.IdempotencyKey))
			return existing, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
	}

	srcContainer, err := s.containerRepo.FindContainer(ctx, source)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: source %s %s", ErrContainerNotFound, source.Type, source.ID)
		}
		return nil, fmt.Errorf("failed to fetch source container: %w", err)
	}
	if !srcContainer.IsActive {
		return nil, fmt.Errorf("%w: source %s %s", ErrContainerInactive, source.Type, source.ID)
	}

	dstContainer, err := s.containerRepo.FindContainer(ctx, destination)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: destination %s %s", ErrContainerNotFound, destination.Type, destination.ID)
		}
		return nil, fmt.Errorf("failed to fetch destination container: %w", err)
	}
	if !dstContainer.IsActive {
		return nil, fmt.Errorf("%w: destination %s %s", ErrContainerInactive, destination.Type, destination.ID)
	}

	// Opt-in precondition. Negative balances stay legal by default so that
	// correcting transfers can be posted out of order.
	if req.EnforceSufficient {
		balance, err := s.journalRepo.ComputeBalance(ctx, source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to compute source balance: %w", err)
		}
		if balance.LessThan(req.Amount) {
			return nil, fmt.Errorf("%w: available %s, requested %s", ErrInsufficientBalance, balance.String(), req.Amount.String())
		}
	}

	now := time.Now().UTC()
	transferID := uuid.NewString()
	outEntryID := uuid.NewString()
	inEntryID := uuid.NewString()

	outEntry := domain.JournalEntry{
		EntryID:     outEntryID,
		Container:   source,
		EntryType:   domain.EntryExpense,
		Amount:      req.Amount,
		CategoryID:  domain.TransferCategoryID,
		EntryDate:   now,
		Description: fmt.Sprintf("Transfer to %s: %s", dstContainer.Name, req.Concept),
		TransferID:  &transferID,
		CreatedAt:   now,
		CreatedBy:   authorizedBy,
	}
	inEntry := domain.JournalEntry{
		EntryID:     inEntryID,
		Container:   destination,
		EntryType:   domain.EntryIncome,
		Amount:      req.Amount,
		CategoryID:  domain.TransferCategoryID,
		EntryDate:   now,
		Description: fmt.Sprintf("Transfer from %s: %s", srcContainer.Name, req.Concept),
		TransferID:  &transferID,
		CreatedAt:   now,
		CreatedBy:   authorizedBy,
	}
	transfer := domain.Transfer{
		TransferID:     transferID,
		Source:         source,
		Destination:    destination,
		Amount:         req.Amount,
		Concept:        req.Concept,
		AuthorizedBy:   authorizedBy,
		TransferredAt:  now,
		OutEntryID:     outEntryID,
		InEntryID:      inEntryID,
		IdempotencyKey: req.IdempotencyKey,
	}

	if err := s.journalRepo.SaveTransfer(ctx, transfer, outEntry, inEntry); err != nil {
		// A concurrent retry may have won the insert race on the key.
		if errors.Is(err, apperrors.ErrDuplicate) && req.IdempotencyKey != nil {
			existing, findErr := s.journalRepo.FindTransferByIdempotencyKey(ctx, *req.IdempotencyKey)
			if findErr == nil {
				logger.Info("Transfer replay raced, returning original", slog.String("transfer_id", existing.TransferID))
				return existing, nil
			}
		}
		logger.Error("Failed to save transfer", slog.String("error", err.Error()), slog.String("source_id", source.ID), slog.String("destination_id", destination.ID))
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	logger.Info("Transfer executed",
		slog.String("transfer_id", transferID),
		slog.String("source_id", source.ID),
		slog.String("destination_id", destination.ID),
		slog.String("amount", req.Amount.String()),
	)
	return &transfer, nil
}

// GetTransferByID retrieves a specific transfer.
// Implements portssvc.TransferSvcFacade
func (s *transferService) GetTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	transfer, err := s.journalRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find transfer by ID", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		}
		return nil, fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	return transfer, nil
}

// ListTransfers retrieves a paginated list of transfers.
// Implements portssvc.TransferSvcFacade
func (s *transferService) ListTransfers(ctx context.Context, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	transfers, nextToken, err := s.journalRepo.ListTransfers(ctx, limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transfers from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve transfers: %w", err)
	}

	out := make([]dto.TransferResponse, len(transfers))
	for i := range transfers {
		out[i] = dto.ToTransferResponse(&transfers[i])
	}
	return &dto.ListTransfersResponse{Transfers: out, NextToken: nextToken}, nil
}
