package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Dadminete/caja-ledger/internal/apperrors"
	"github.com/Dadminete/caja-ledger/internal/core/domain"
	portsrepo "github.com/Dadminete/caja-ledger/internal/core/ports/repositories"
	"github.com/Dadminete/caja-ledger/internal/models"
	"github.com/Dadminete/caja-ledger/internal/utils/mapping"
	"github.com/Dadminete/caja-ledger/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry and transfer data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, container_type, container_id, entry_type, amount, category_id, entry_date, description, transfer_id, source_action_id, created_at, created_by`

const insertEntryQuery = `
	INSERT INTO journal_entries (` + entryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

func entryInsertArgs(m models.JournalEntry) []any {
	return []any{
		m.EntryID,
		m.ContainerType,
		m.ContainerID,
		m.EntryType,
		m.Amount,
		m.CategoryID,
		m.EntryDate,
		m.Description,
		m.TransferID,
		m.SourceActionID,
		m.CreatedAt,
		m.CreatedBy,
	}
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.ContainerType,
		&m.ContainerID,
		&m.EntryType,
		&m.Amount,
		&m.CategoryID,
		&m.EntryDate,
		&m.Description,
		&m.TransferID,
		&m.SourceActionID,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainEntry(m)
	return &d, nil
}

// SaveEntry appends one journal entry and applies its delta to the cached
// balances within a single database transaction. The container's row lock is
// taken first, so concurrent writes to the same container serialize and the
// cached balance can never lose an update.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	oldBalance, err := lockContainerBalance(ctx, tx, entry.Container)
	if err != nil {
		return fmt.Errorf("failed to lock container for entry %s: %w", entry.EntryID, err)
	}

	m := mapping.ToModelEntry(entry)
	if _, err := tx.Exec(ctx, insertEntryQuery, entryInsertArgs(m)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry for this source action already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert entry "+entry.EntryID, err)
	}

	delta := entry.SignedAmount()
	if err := setContainerBalance(ctx, tx, entry.Container, oldBalance.Add(delta), entry.CreatedBy, entry.CreatedAt); err != nil {
		return fmt.Errorf("failed to apply entry %s to container balance: %w", entry.EntryID, err)
	}
	if err := adjustLinkedAccountBalance(ctx, tx, entry.Container, delta, entry.CreatedBy, entry.CreatedAt); err != nil {
		return fmt.Errorf("failed to apply entry %s to linked account: %w", entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

const insertTransferQuery = `
	INSERT INTO transfers (` + transferColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
`

// transferInsertBatch queues the two entry legs ahead of the transfer row.
// transfers.out_entry_id and in_entry_id reference journal_entries with
// statement-time foreign keys, so both legs must exist before the transfer
// insert runs; journal_entries.transfer_id carries no constraint the other
// way, making legs-first the only valid order.
func transferInsertBatch(transfer domain.Transfer, outEntry domain.JournalEntry, inEntry domain.JournalEntry) *pgx.Batch {
	batch := &pgx.Batch{}
	batch.Queue(insertEntryQuery, entryInsertArgs(mapping.ToModelEntry(outEntry))...)
	batch.Queue(insertEntryQuery, entryInsertArgs(mapping.ToModelEntry(inEntry))...)

	mt := mapping.ToModelTransfer(transfer)
	batch.Queue(insertTransferQuery,
		mt.TransferID,
		mt.SourceType,
		mt.SourceID,
		mt.DestinationType,
		mt.DestinationID,
		mt.Amount,
		mt.Concept,
		mt.AuthorizedBy,
		mt.TransferredAt,
		mt.OutEntryID,
		mt.InEntryID,
		mt.IdempotencyKey,
	)
	return batch
}

// SaveTransfer persists the transfer and both entry legs within a single
// database transaction. Container row locks are taken in (type, id) order so
// two concurrent transfers over the same pair cannot deadlock.
func (r *PgxJournalRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer, outEntry domain.JournalEntry, inEntry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	first, second := transfer.Source, transfer.Destination
	if second.Less(first) {
		first, second = second, first
	}

	balances := make(map[domain.ContainerRef]decimal.Decimal, 2)
	for _, ref := range []domain.ContainerRef{first, second} {
		balance, err := lockContainerBalance(ctx, tx, ref)
		if err != nil {
			return fmt.Errorf("failed to lock container %s for transfer %s: %w", ref.ID, transfer.TransferID, err)
		}
		balances[ref] = balance
	}

	if err := tx.SendBatch(ctx, transferInsertBatch(transfer, outEntry, inEntry)).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transfer with this idempotency key already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert transfer "+transfer.TransferID, err)
	}

	now := transfer.TransferredAt
	userID := transfer.AuthorizedBy
	if err := setContainerBalance(ctx, tx, transfer.Source, balances[transfer.Source].Sub(transfer.Amount), userID, now); err != nil {
		return fmt.Errorf("failed to apply transfer %s to source balance: %w", transfer.TransferID, err)
	}
	if err := setContainerBalance(ctx, tx, transfer.Destination, balances[transfer.Destination].Add(transfer.Amount), userID, now); err != nil {
		return fmt.Errorf("failed to apply transfer %s to destination balance: %w", transfer.TransferID, err)
	}
	if err := adjustLinkedAccountBalance(ctx, tx, transfer.Source, transfer.Amount.Neg(), userID, now); err != nil {
		return fmt.Errorf("failed to apply transfer %s to source account: %w", transfer.TransferID, err)
	}
	if err := adjustLinkedAccountBalance(ctx, tx, transfer.Destination, transfer.Amount, userID, now); err != nil {
		return fmt.Errorf("failed to apply transfer %s to destination account: %w", transfer.TransferID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	return entry, nil
}

// FindEntryBySourceActionID retrieves the entry posted under the given caller
// operation id.
func (r *PgxJournalRepository) FindEntryBySourceActionID(ctx context.Context, sourceActionID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE source_action_id = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, sourceActionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by source action "+sourceActionID, err)
	}
	return entry, nil
}

// ListEntriesByContainer retrieves a paginated list of entries for one
// container using token-based pagination, newest first.
func (r *PgxJournalRepository) ListEntriesByContainer(ctx context.Context, ref domain.ContainerRef, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE container_type = $1 AND container_id = $2
	`
	// Ordering must be stable across pages; created_at breaks entry_date ties.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []any{string(ref.Type), ref.ID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (entry_date, created_at) < ($3, $4)`
		args = append(args, lastEntryDate, lastCreatedAt)
	}

	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for container "+ref.ID, err)
	}
	defer rows.Close()

	entries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		var m models.JournalEntry
		err := rows.Scan(
			&m.EntryID,
			&m.ContainerType,
			&m.ContainerID,
			&m.EntryType,
			&m.Amount,
			&m.CategoryID,
			&m.EntryDate,
			&m.Description,
			&m.TransferID,
			&m.SourceActionID,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for container "+ref.ID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for container "+ref.ID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return mapping.ToDomainEntrySlice(entries), nextTokenVal, nil
}

// ComputeBalance folds the container's journal. See computeBalanceWith.
func (r *PgxJournalRepository) ComputeBalance(ctx context.Context, ref domain.ContainerRef, asOf *time.Time) (decimal.Decimal, error) {
	return computeBalanceWith(ctx, r.Pool, ref, asOf)
}

const transferColumns = `transfer_id, source_type, source_id, destination_type, destination_id, amount, concept, authorized_by, transferred_at, out_entry_id, in_entry_id, idempotency_key`

func scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	var m models.Transfer
	err := row.Scan(
		&m.TransferID,
		&m.SourceType,
		&m.SourceID,
		&m.DestinationType,
		&m.DestinationID,
		&m.Amount,
		&m.Concept,
		&m.AuthorizedBy,
		&m.TransferredAt,
		&m.OutEntryID,
		&m.InEntryID,
		&m.IdempotencyKey,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainTransfer(m)
	return &d, nil
}

// FindTransferByID retrieves a transfer by its ID.
func (r *PgxJournalRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1;`

	transfer, err := scanTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transfer by ID "+transferID, err)
	}
	return transfer, nil
}

// FindTransferByIdempotencyKey retrieves the transfer recorded under the
// given caller operation id.
func (r *PgxJournalRepository) FindTransferByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE idempotency_key = $1;`

	transfer, err := scanTransfer(r.Pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transfer by idempotency key", err)
	}
	return transfer, nil
}

// ListTransfers retrieves a paginated list of transfers, newest first.
func (r *PgxJournalRepository) ListTransfers(ctx context.Context, limit int, nextToken *string) ([]domain.Transfer, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transferColumns + ` FROM transfers`
	// Ordering must be stable across pages; transfer_id breaks timestamp ties.
	orderByClause := `ORDER BY transferred_at DESC, transfer_id DESC`

	args := []any{}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastTransferredAt, lastTransferID, decodeErr := pagination.DecodeDateIDToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` WHERE (transferred_at, transfer_id) < ($1, $2)`
		args = append(args, lastTransferredAt, lastTransferID)
	}

	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transfers", err)
	}
	defer rows.Close()

	transfers := make([]models.Transfer, 0, fetchLimit)
	for rows.Next() {
		var m models.Transfer
		err := rows.Scan(
			&m.TransferID,
			&m.SourceType,
			&m.SourceID,
			&m.DestinationType,
			&m.DestinationID,
			&m.Amount,
			&m.Concept,
			&m.AuthorizedBy,
			&m.TransferredAt,
			&m.OutEntryID,
			&m.InEntryID,
			&m.IdempotencyKey,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transfer row", err)
		}
		transfers = append(transfers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transfer rows", err)
	}

	var nextTokenVal *string
	if len(transfers) > limit {
		last := transfers[limit-1]
		token := pagination.EncodeDateIDToken(last.TransferredAt, last.TransferID)
		nextTokenVal = &token
		transfers = transfers[:limit]
	}

	out := make([]domain.Transfer, len(transfers))
	for i, m := range transfers {
		out[i] = mapping.ToDomainTransfer(m)
	}
	return out, nextTokenVal, nil
}
