package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/ledger/internal/domain"
	"github.com/finbooks/ledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. Entries are append-only;
// no update or delete statements exist here on purpose.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, transaction_id, name, description, direction, amount, account_id, created_at, updated_at`

// CreateBatch inserts all entries of one posting in a single batched round trip.
func (r *EntryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(`
			INSERT INTO entries (id, transaction_id, name, description, direction, amount, account_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			entry.ID,
			entry.TransactionID,
			entry.Name,
			entry.Description,
			string(entry.Direction),
			entry.Amount,
			entry.AccountID,
			entry.CreatedAt,
			entry.UpdatedAt,
		)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return translateErr(err)
		}
	}

	return results.Close()
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE id = $1`,
		id,
	)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return entry, nil
}

// ListByTransaction lists the entries sharing a transaction ID, in insert order.
func (r *EntryRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE transaction_id = $1
		ORDER BY created_at, id`,
		transactionID,
	)
}

// ListByAccount lists the entries referencing an account, in insert order.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Entry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE account_id = $1
		ORDER BY created_at, id`,
		accountID,
	)
}

// List lists every entry in insert order.
func (r *EntryRepository) List(ctx context.Context) ([]*domain.Entry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		ORDER BY created_at, id`,
	)
}

// ExistsByTransaction reports whether the transaction ID has been posted
// before. It runs inside the posting transaction, after the account row locks
// are held, so two racing postings with the same ID serialize on those locks.
func (r *EntryRepository) ExistsByTransaction(ctx context.Context, tx usecase.Transaction, transactionID string) (bool, error) {
	pgxTx := tx.(*Tx).PgxTx()

	var exists bool
	err := pgxTx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM entries WHERE transaction_id = $1
		)`,
		transactionID,
	).Scan(&exists)
	if err != nil {
		return false, translateErr(err)
	}

	return exists, nil
}

func (r *EntryRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry     domain.Entry
		direction string
	)

	err := row.Scan(
		&entry.ID,
		&entry.TransactionID,
		&entry.Name,
		&entry.Description,
		&direction,
		&entry.Amount,
		&entry.AccountID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Direction = domain.DebitCredit(direction)

	return &entry, nil
}
