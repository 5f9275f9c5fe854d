package mapping

import (
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/Dadminete/caja-ledger/internal/models"
)

// ToModelTransfer converts a domain Transfer to a model Transfer
func ToModelTransfer(d domain.Transfer) models.Transfer {
	return models.Transfer{
		TransferID:      d.TransferID,
		SourceType:      models.ContainerType(d.Source.Type),
		SourceID:        d.Source.ID,
		DestinationType: models.ContainerType(d.Destination.Type),
		DestinationID:   d.Destination.ID,
		Amount:          d.Amount,
		Concept:         d.Concept,
		AuthorizedBy:    d.AuthorizedBy,
		TransferredAt:   d.TransferredAt,
		OutEntryID:      d.OutEntryID,
		InEntryID:       d.InEntryID,
		IdempotencyKey:  d.IdempotencyKey,
	}
}

// ToDomainTransfer converts a model Transfer to a domain Transfer
func ToDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		TransferID: m.TransferID,
		Source: domain.ContainerRef{
			Type: domain.ContainerType(m.SourceType),
			ID:   m.SourceID,
		},
		Destination: domain.ContainerRef{
			Type: domain.ContainerType(m.DestinationType),
			ID:   m.DestinationID,
		},
		Amount:         m.Amount,
		Concept:        m.Concept,
		AuthorizedBy:   m.AuthorizedBy,
		TransferredAt:  m.TransferredAt,
		OutEntryID:     m.OutEntryID,
		InEntryID:      m.InEntryID,
		IdempotencyKey: m.IdempotencyKey,
	}
}
