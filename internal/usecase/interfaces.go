package usecase

import (
	"context"
	"time"

	"github.com/finbooks/ledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	// AdjustBalance applies a signed delta to the stored balance as a single
	// atomic increment, never a read-modify-write round trip.
	AdjustBalance(ctx context.Context, tx Transaction, id string, delta int64, updatedAt time.Time) error
	List(ctx context.Context) ([]*domain.Account, error)
}

// EntryRepository defines data access for entries. Entries are append-only;
// there are no update or delete operations.
type EntryRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, entries []*domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Entry, error)
	List(ctx context.Context) ([]*domain.Entry, error)
	ExistsByTransaction(ctx context.Context, tx Transaction, transactionID string) (bool, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	// DebitCreditTotals returns the sum of all debit entry amounts and all
	// credit entry amounts across the whole ledger.
	DebitCreditTotals(ctx context.Context) (totalDebits, totalCredits int64, err error)
}

// Transaction represents a storage transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
