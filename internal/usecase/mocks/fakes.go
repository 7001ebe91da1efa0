// Package mocks provides test doubles for the usecase interfaces: generated
// gomock mocks (mock_interfaces.go) and lightweight hand-rolled fakes with
// per-method override hooks and an in-memory default behavior.
package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/finbooks/ledger/internal/domain"
	"github.com/finbooks/ledger/internal/usecase"
)

// FakeAccountRepository is an in-memory fake of AccountRepository.
type FakeAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsFunc          func(ctx context.Context, ids []string) (map[string]*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	AdjustBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, delta int64, updatedAt time.Time) error
	ListFunc              func(ctx context.Context) ([]*domain.Account, error)
}

func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed adds accounts directly to the fake's backing map.
func (f *FakeAccountRepository) Seed(accounts ...*domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range accounts {
		f.accounts[a.ID] = a
	}
}

func (f *FakeAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, account)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[account.ID] = account
	return nil
}

func (f *FakeAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if acc, ok := f.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (f *FakeAccountRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
	if f.GetByIDsFunc != nil {
		return f.GetByIDsFunc(ctx, ids)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	found := make(map[string]*domain.Account)
	for _, id := range ids {
		if acc, ok := f.accounts[id]; ok {
			found[id] = acc
		}
	}
	return found, nil
}

func (f *FakeAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if f.GetByIDsForUpdateFunc != nil {
		return f.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := f.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (f *FakeAccountRepository) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta int64, updatedAt time.Time) error {
	if f.AdjustBalanceFunc != nil {
		return f.AdjustBalanceFunc(ctx, tx, id, delta, updatedAt)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if acc, ok := f.accounts[id]; ok {
		acc.Balance += delta
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (f *FakeAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range f.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// FakeEntryRepository is an in-memory fake of EntryRepository.
type FakeEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry

	CreateBatchFunc         func(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Entry, error)
	ListByTransactionFunc   func(ctx context.Context, transactionID string) ([]*domain.Entry, error)
	ListByAccountFunc       func(ctx context.Context, accountID string) ([]*domain.Entry, error)
	ListFunc                func(ctx context.Context) ([]*domain.Entry, error)
	ExistsByTransactionFunc func(ctx context.Context, tx usecase.Transaction, transactionID string) (bool, error)
}

func NewFakeEntryRepository() *FakeEntryRepository {
	return &FakeEntryRepository{}
}

func (f *FakeEntryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error {
	if f.CreateBatchFunc != nil {
		return f.CreateBatchFunc(ctx, tx, entries)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *FakeEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (f *FakeEntryRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	if f.ListByTransactionFunc != nil {
		return f.ListByTransactionFunc(ctx, transactionID)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range f.entries {
		if e.TransactionID == transactionID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (f *FakeEntryRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Entry, error) {
	if f.ListByAccountFunc != nil {
		return f.ListByAccountFunc(ctx, accountID)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range f.entries {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (f *FakeEntryRepository) List(ctx context.Context) ([]*domain.Entry, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]*domain.Entry(nil), f.entries...), nil
}

func (f *FakeEntryRepository) ExistsByTransaction(ctx context.Context, tx usecase.Transaction, transactionID string) (bool, error) {
	if f.ExistsByTransactionFunc != nil {
		return f.ExistsByTransactionFunc(ctx, tx, transactionID)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, e := range f.entries {
		if e.TransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}

// FakeLedgerRepository is a fake of LedgerRepository.
type FakeLedgerRepository struct {
	DebitCreditTotalsFunc func(ctx context.Context) (int64, int64, error)
}

func NewFakeLedgerRepository() *FakeLedgerRepository {
	return &FakeLedgerRepository{}
}

func (f *FakeLedgerRepository) DebitCreditTotals(ctx context.Context) (int64, int64, error) {
	if f.DebitCreditTotalsFunc != nil {
		return f.DebitCreditTotalsFunc(ctx)
	}
	return 0, 0, nil
}

// FakeTransaction is a no-op Transaction recording commit/rollback calls.
type FakeTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *FakeTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *FakeTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// FakeTransactionManager hands out FakeTransactions.
type FakeTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu   sync.Mutex
	Last *FakeTransaction
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Last = &FakeTransaction{}
	return m.Last, nil
}

// FakeIDGenerator returns sequential IDs unless overridden.
type FakeIDGenerator struct {
	GenerateFunc func() string

	mu sync.Mutex
	n  int
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (g *FakeIDGenerator) Generate() string {
	if g.GenerateFunc != nil {
		return g.GenerateFunc()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return "id-" + strconv.Itoa(g.n)
}
