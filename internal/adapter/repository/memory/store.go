// Package memory provides an in-memory implementation of the ledger store
// contracts. It backs tests and single-process deployments.
package memory

import (
	"context"
	"sort"
	"time"

	"github.com/finbooks/ledger/internal/domain"
	"github.com/finbooks/ledger/internal/usecase"
)

// Store holds accounts and entries in process memory. A single semaphore
// serializes transactions: Begin acquires it, Commit/Rollback release it.
// Balance adjustments are applied as staged deltas at commit time, so a
// posting becomes visible either completely or not at all. Contending
// callers that cannot acquire the store before their context expires fail
// fast with a commit conflict instead of waiting unbounded.
type Store struct {
	sem      chan struct{}
	accounts map[string]*domain.Account
	entries  []*domain.Entry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		sem:      make(chan struct{}, 1),
		accounts: make(map[string]*domain.Account),
	}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return domain.ErrCommitConflict
	}
}

func (s *Store) release() {
	<-s.sem
}

// Tx is a staged in-memory transaction. It owns the store semaphore from
// Begin until Commit or Rollback.
type Tx struct {
	store   *Store
	done    bool
	staged  []*domain.Entry
	deltas  map[string]int64
	touched map[string]time.Time
}

// Begin starts a transaction, taking exclusive ownership of the store.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}

	return &Tx{
		store:   s,
		deltas:  make(map[string]int64),
		touched: make(map[string]time.Time),
	}, nil
}

// Commit applies the staged entries and balance deltas, then releases the store.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	defer t.store.release()

	t.store.entries = append(t.store.entries, t.staged...)
	for id, delta := range t.deltas {
		if acc, ok := t.store.accounts[id]; ok {
			acc.Balance += delta
			acc.UpdatedAt = t.touched[id]
		}
	}

	return nil
}

// Rollback discards the staged state and releases the store.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.release()

	return nil
}

func asTx(tx usecase.Transaction) *Tx {
	t, _ := tx.(*Tx)
	return t
}

// AccountRepository implements account data access against a Store.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates an AccountRepository backed by store.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create stores a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if err := r.store.acquire(ctx); err != nil {
		return err
	}
	defer r.store.release()

	r.store.accounts[account.ID] = cloneAccount(account)

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	acc, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return cloneAccount(acc), nil
}

// GetByIDs retrieves accounts by IDs; missing IDs are simply absent from the result.
func (r *AccountRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	found := make(map[string]*domain.Account, len(ids))
	for _, id := range ids {
		if acc, ok := r.store.accounts[id]; ok {
			found[id] = cloneAccount(acc)
		}
	}

	return found, nil
}

// GetByIDsForUpdate retrieves accounts within a transaction. The transaction
// already owns the whole store, which is what "locked" means here.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if asTx(tx) == nil {
		return nil, domain.ErrCommitConflict
	}

	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		if acc, ok := r.store.accounts[id]; ok {
			accounts = append(accounts, cloneAccount(acc))
		}
	}

	return accounts, nil
}

// AdjustBalance stages a signed balance delta to be applied at commit.
func (r *AccountRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta int64, updatedAt time.Time) error {
	t := asTx(tx)
	if t == nil {
		return domain.ErrCommitConflict
	}

	if _, ok := r.store.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}

	t.deltas[id] += delta
	t.touched[id] = updatedAt

	return nil
}

// List lists all accounts ordered by ID.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	accounts := make([]*domain.Account, 0, len(r.store.accounts))
	for _, acc := range r.store.accounts {
		accounts = append(accounts, cloneAccount(acc))
	}

	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

	return accounts, nil
}

// EntryRepository implements entry data access against a Store.
type EntryRepository struct {
	store *Store
}

// NewEntryRepository creates an EntryRepository backed by store.
func NewEntryRepository(store *Store) *EntryRepository {
	return &EntryRepository{store: store}
}

// CreateBatch stages new entries to be appended at commit.
func (r *EntryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error {
	t := asTx(tx)
	if t == nil {
		return domain.ErrCommitConflict
	}

	for _, e := range entries {
		t.staged = append(t.staged, cloneEntry(e))
	}

	return nil
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	for _, e := range r.store.entries {
		if e.ID == id {
			return cloneEntry(e), nil
		}
	}

	return nil, domain.ErrEntryNotFound
}

// ListByTransaction lists committed entries sharing a transaction ID, in commit order.
func (r *EntryRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	var entries []*domain.Entry
	for _, e := range r.store.entries {
		if e.TransactionID == transactionID {
			entries = append(entries, cloneEntry(e))
		}
	}

	return entries, nil
}

// ListByAccount lists committed entries referencing an account, in commit order.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Entry, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	var entries []*domain.Entry
	for _, e := range r.store.entries {
		if e.AccountID == accountID {
			entries = append(entries, cloneEntry(e))
		}
	}

	return entries, nil
}

// List lists every committed entry in commit order.
func (r *EntryRepository) List(ctx context.Context) ([]*domain.Entry, error) {
	if err := r.store.acquire(ctx); err != nil {
		return nil, err
	}
	defer r.store.release()

	entries := make([]*domain.Entry, 0, len(r.store.entries))
	for _, e := range r.store.entries {
		entries = append(entries, cloneEntry(e))
	}

	return entries, nil
}

// ExistsByTransaction reports whether any committed entry carries the transaction ID.
func (r *EntryRepository) ExistsByTransaction(ctx context.Context, tx usecase.Transaction, transactionID string) (bool, error) {
	if asTx(tx) == nil {
		return false, domain.ErrCommitConflict
	}

	for _, e := range r.store.entries {
		if e.TransactionID == transactionID {
			return true, nil
		}
	}

	return false, nil
}

// LedgerRepository implements ledger-wide data access against a Store.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a LedgerRepository backed by store.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// DebitCreditTotals sums all committed debit and credit amounts.
func (r *LedgerRepository) DebitCreditTotals(ctx context.Context) (int64, int64, error) {
	if err := r.store.acquire(ctx); err != nil {
		return 0, 0, err
	}
	defer r.store.release()

	var debits, credits int64
	for _, e := range r.store.entries {
		switch e.Direction {
		case domain.Debit:
			debits += e.Amount
		case domain.Credit:
			credits += e.Amount
		}
	}

	return debits, credits, nil
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func cloneEntry(e *domain.Entry) *domain.Entry {
	c := *e
	return &c
}
