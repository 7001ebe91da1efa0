package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/finbooks/ledger/internal/adapter/http/handler"
	apimiddleware "github.com/finbooks/ledger/internal/adapter/http/middleware"
	"github.com/finbooks/ledger/internal/domain"
	"github.com/finbooks/ledger/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"name":"Operating Cash","type":"ASSET"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/entries",
		"POST /api/v1/transactions/",
		"GET /api/v1/transactions/{id}",
		"GET /api/v1/entries/",
		"GET /api/v1/entries/{id}",
		"GET /api/v1/ledger/consistency",
		"GET /api/v1/ledger/reconciliation",
		"GET /api/v1/ledger/accounts/{id}/reconciliation",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	logger := zerolog.Nop()

	cfg := RouterConfig{
		HealthHandler:      handler.NewHealthHandler(nil, nil),
		AccountHandler:     handler.NewAccountHandler(stubAccountService{}, nil, logger),
		TransactionHandler: handler.NewTransactionHandler(stubPostingService{}, stubEntryReader{}, nil, logger),
		EntryHandler:       handler.NewEntryHandler(stubEntryService{}),
		LedgerHandler:      handler.NewLedgerHandler(stubLedgerService{}),
		Logger:             logger,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubAccountService struct{}

func (stubAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc"}, nil
}

func (stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) GetAccountWithEntries(ctx context.Context, id string) (*usecase.AccountWithEntries, error) {
	return &usecase.AccountWithEntries{Account: &domain.Account{ID: id}}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return []*domain.Account{}, nil
}

type stubPostingService struct{}

func (stubPostingService) PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*usecase.PostedBatch, error) {
	return &usecase.PostedBatch{TransactionID: input.TransactionID}, nil
}

type stubEntryReader struct{}

func (stubEntryReader) ListEntriesByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	return []*domain.Entry{{ID: "e-1", TransactionID: transactionID}}, nil
}

type stubEntryService struct{}

func (stubEntryService) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return &domain.Entry{ID: id}, nil
}

func (stubEntryService) ListEntries(ctx context.Context) ([]*domain.Entry, error) {
	return []*domain.Entry{}, nil
}

type stubLedgerService struct{}

func (stubLedgerService) CheckConsistency(ctx context.Context) (*usecase.ConsistencyResult, error) {
	return &usecase.ConsistencyResult{Consistent: true}, nil
}

func (stubLedgerService) ReconcileAccount(ctx context.Context, accountID string) (*usecase.ReconciliationResult, error) {
	return &usecase.ReconciliationResult{AccountID: accountID, Reconciled: true}, nil
}

func (stubLedgerService) ReconcileAllAccounts(ctx context.Context) ([]*usecase.ReconciliationResult, error) {
	return []*usecase.ReconciliationResult{}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
