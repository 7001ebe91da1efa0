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

// PostingService defines the behavior needed by TransactionHandler.
type PostingService interface {
	PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*usecase.PostedBatch, error)
}

// EntryReader lists entries grouped under a transaction ID.
type EntryReader interface {
	ListEntriesByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error)
}

// TransactionHandler handles transaction posting and lookup.
type TransactionHandler struct {
	postingUC PostingService
	entryUC   EntryReader
	cache     AccountCache
	logger    zerolog.Logger
}

// NewTransactionHandler creates a new TransactionHandler. cache may be nil.
func NewTransactionHandler(postingUC PostingService, entryUC EntryReader, cache AccountCache, logger zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{
		postingUC: postingUC,
		entryUC:   entryUC,
		cache:     cache,
		logger:    logger,
	}
}

// Post posts a balanced transaction.
func (h *TransactionHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req dto.PostTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.TransactionID == "" {
		writeError(w, http.StatusBadRequest, "missing transaction_id", "")
		return
	}

	batch, err := h.postingUC.PostTransaction(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to post transaction", err.Error())
		return
	}

	if h.cache != nil {
		ids := make([]string, len(batch.Accounts))
		for i, account := range batch.Accounts {
			ids[i] = account.ID
		}
		if err := h.cache.Invalidate(r.Context(), ids...); err != nil {
			h.logger.Warn().Err(err).Str("transaction_id", batch.TransactionID).Msg("failed to invalidate account snapshots")
		}
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromBatch(batch))
}

// Get lists the entries posted under a transaction ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	entries, err := h.entryUC.ListEntriesByTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "transaction not found", id)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}
