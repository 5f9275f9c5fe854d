package pgsql

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dadminete/caja-ledger/internal/core/domain"
)

// transfers.out_entry_id and in_entry_id carry foreign keys checked at
// statement time, so the entry legs must be queued ahead of the transfer row
// or the transfer insert fails before the legs exist.
func TestTransferInsertBatch_LegsPrecedeTransferRow(t *testing.T) {
	now := time.Now().UTC()
	transferID := uuid.NewString()
	source := domain.ContainerRef{Type: domain.ContainerDrawer, ID: uuid.NewString()}
	destination := domain.ContainerRef{Type: domain.ContainerBank, ID: uuid.NewString()}
	amount := decimal.NewFromInt(250)

	outEntry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		Container:   source,
		EntryType:   domain.EntryExpense,
		Amount:      amount,
		CategoryID:  domain.TransferCategoryID,
		EntryDate:   now,
		Description: "Traspaso a banco",
		TransferID:  &transferID,
		CreatedAt:   now,
		CreatedBy:   "cajero-1",
	}
	inEntry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		Container:   destination,
		EntryType:   domain.EntryIncome,
		Amount:      amount,
		CategoryID:  domain.TransferCategoryID,
		EntryDate:   now,
		Description: "Traspaso a banco",
		TransferID:  &transferID,
		CreatedAt:   now,
		CreatedBy:   "cajero-1",
	}
	transfer := domain.Transfer{
		TransferID:    transferID,
		Source:        source,
		Destination:   destination,
		Amount:        amount,
		Concept:       "Traspaso a banco",
		AuthorizedBy:  "cajero-1",
		TransferredAt: now,
		OutEntryID:    outEntry.EntryID,
		InEntryID:     inEntry.EntryID,
	}

	batch := transferInsertBatch(transfer, outEntry, inEntry)

	require.Len(t, batch.QueuedQueries, 3)
	assert.Contains(t, batch.QueuedQueries[0].SQL, "INSERT INTO journal_entries")
	assert.Contains(t, batch.QueuedQueries[1].SQL, "INSERT INTO journal_entries")
	assert.Contains(t, batch.QueuedQueries[2].SQL, "INSERT INTO transfers")

	assert.Equal(t, outEntry.EntryID, batch.QueuedQueries[0].Arguments[0])
	assert.Equal(t, inEntry.EntryID, batch.QueuedQueries[1].Arguments[0])
	assert.Equal(t, transfer.TransferID, batch.QueuedQueries[2].Arguments[0])

	// The transfer row's entry references must name the legs queued above it.
	assert.Equal(t, outEntry.EntryID, batch.QueuedQueries[2].Arguments[9])
	assert.Equal(t, inEntry.EntryID, batch.QueuedQueries[2].Arguments[10])
}
