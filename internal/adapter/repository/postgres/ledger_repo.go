package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/ledger/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// DebitCreditTotals sums all debit and all credit entry amounts across the
// ledger in one query.
func (r *LedgerRepository) DebitCreditTotals(ctx context.Context) (int64, int64, error) {
	var totalDebits, totalCredits int64

	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE direction = $1), 0),
			COALESCE(SUM(amount) FILTER (WHERE direction = $2), 0)
		FROM entries`,
		string(domain.Debit),
		string(domain.Credit),
	).Scan(&totalDebits, &totalCredits)
	if err != nil {
		return 0, 0, err
	}

	return totalDebits, totalCredits, nil
}
