package services

import (
	"context"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/Dadminete/caja-ledger/internal/dto"
)

// TransferSvcFacade defines the two-sided transfer operations.
type TransferSvcFacade interface {
	// ExecuteTransfer posts the two linked journal entries of a transfer
	// atomically: both legs and both cached-balance updates succeed together
	// or the operation is rolled back. A replay with the same idempotency key
	// returns the original transfer.
	ExecuteTransfer(ctx context.Context, req dto.ExecuteTransferRequest, authorizedBy string) (*domain.Transfer, error)

	// GetTransferByID retrieves a specific transfer.
	GetTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)

	// ListTransfers retrieves a paginated list of transfers, newest first.
	ListTransfers(ctx context.Context, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error)
}
