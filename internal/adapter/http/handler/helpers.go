package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbooks/ledger/internal/adapter/http/dto"
	"github.com/finbooks/ledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTooFewEntries):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNonPositiveAmount):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnbalancedTransaction):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownBalanceDirection):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidDirection):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAccountType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidAccountName):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCommitConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
