package mapping

import (
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	"github.com/Dadminete/caja-ledger/internal/models"
)

// ToModelEntry converts a domain JournalEntry to a model JournalEntry
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:        d.EntryID,
		ContainerType:  models.ContainerType(d.Container.Type),
		ContainerID:    d.Container.ID,
		EntryType:      models.EntryType(d.EntryType),
		Amount:         d.Amount,
		CategoryID:     d.CategoryID,
		EntryDate:      d.EntryDate,
		Description:    d.Description,
		TransferID:     d.TransferID,
		SourceActionID: d.SourceActionID,
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID: m.EntryID,
		Container: domain.ContainerRef{
			Type: domain.ContainerType(m.ContainerType),
			ID:   m.ContainerID,
		},
		EntryType:      domain.EntryType(m.EntryType),
		Amount:         m.Amount,
		CategoryID:     m.CategoryID,
		EntryDate:      m.EntryDate,
		Description:    m.Description,
		TransferID:     m.TransferID,
		SourceActionID: m.SourceActionID,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToDomainEntrySlice converts a slice of model entries to domain entries
func ToDomainEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
