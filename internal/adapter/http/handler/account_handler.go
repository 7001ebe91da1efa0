package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/finbooks/ledger/internal/adapter/http/dto"
	"github.com/finbooks/ledger/internal/domain"
	"github.com/finbooks/ledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetAccountWithEntries(ctx context.Context, id string) (*usecase.AccountWithEntries, error)
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
}

// AccountCache is an optional read-through cache for account snapshots. Any
// error on Get is treated as a miss.
type AccountCache interface {
	Get(ctx context.Context, id string) (*domain.Account, error)
	Set(ctx context.Context, account *domain.Account) error
	Invalidate(ctx context.Context, ids ...string) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	cache     AccountCache
	logger    zerolog.Logger
}

// NewAccountHandler creates a new AccountHandler. cache may be nil.
func NewAccountHandler(accountUC AccountService, cache AccountCache, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accountUC: accountUC,
		cache:     cache,
		logger:    logger,
	}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	if h.cache != nil {
		if account, err := h.cache.Get(r.Context(), id); err == nil {
			writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
			return
		}
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), account); err != nil {
			h.logger.Warn().Err(err).Str("account_id", id).Msg("failed to cache account snapshot")
		}
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetEntries retrieves an account together with its entry history.
func (h *AccountHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	result, err := h.accountUC.GetAccountWithEntries(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountWithEntriesResponse{
		Account: dto.AccountFromDomain(result.Account),
		Entries: dto.EntriesFromDomain(result.Entries),
	})
}

// List lists all accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}
