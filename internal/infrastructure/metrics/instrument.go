package metrics

import (
	"context"
	"time"

	"github.com/finbooks/ledger/internal/domain"
	"github.com/finbooks/ledger/internal/usecase"
)

// PostingService is the posting behavior being instrumented.
type PostingService interface {
	PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*usecase.PostedBatch, error)
}

// AccountService is the account behavior being instrumented.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetAccountWithEntries(ctx context.Context, id string) (*usecase.AccountWithEntries, error)
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
}

// InstrumentedPostingService wraps a PostingService and records posting
// counters and latency.
type InstrumentedPostingService struct {
	inner   PostingService
	metrics *Metrics
}

// NewInstrumentedPostingService wraps svc with the given metrics.
func NewInstrumentedPostingService(svc PostingService, m *Metrics) *InstrumentedPostingService {
	return &InstrumentedPostingService{inner: svc, metrics: m}
}

// PostTransaction delegates to the wrapped service and records the outcome.
func (s *InstrumentedPostingService) PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*usecase.PostedBatch, error) {
	start := time.Now()

	batch, err := s.inner.PostTransaction(ctx, input)

	s.metrics.PostingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.TransactionsFailed.WithLabelValues(FailureReason(err)).Inc()
		return nil, err
	}

	s.metrics.TransactionsPosted.Inc()
	s.metrics.EntriesCreated.Add(float64(len(batch.Entries)))

	return batch, nil
}

// InstrumentedAccountService wraps an AccountService and counts account
// creations. Read operations pass through untouched.
type InstrumentedAccountService struct {
	inner   AccountService
	metrics *Metrics
}

// NewInstrumentedAccountService wraps svc with the given metrics.
func NewInstrumentedAccountService(svc AccountService, m *Metrics) *InstrumentedAccountService {
	return &InstrumentedAccountService{inner: svc, metrics: m}
}

func (s *InstrumentedAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	account, err := s.inner.CreateAccount(ctx, input)
	if err != nil {
		return nil, err
	}

	s.metrics.AccountsCreated.Inc()

	return account, nil
}

func (s *InstrumentedAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.inner.GetAccount(ctx, id)
}

func (s *InstrumentedAccountService) GetAccountWithEntries(ctx context.Context, id string) (*usecase.AccountWithEntries, error) {
	return s.inner.GetAccountWithEntries(ctx, id)
}

func (s *InstrumentedAccountService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.inner.ListAccounts(ctx)
}
