package dto

import (
	"time"

	"github.com/finbooks/ledger/internal/domain"
	"github.com/finbooks/ledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	Name          string    `json:"name,omitempty"`
	Description   string    `json:"description,omitempty"`
	Direction     string    `json:"direction"`
	Amount        int64     `json:"amount"`
	AccountID     string    `json:"account_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		TransactionID: e.TransactionID,
		Name:          e.Name,
		Description:   e.Description,
		Direction:     string(e.Direction),
		Amount:        e.Amount,
		AccountID:     e.AccountID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransactionResponse represents a committed posting in API responses.
type TransactionResponse struct {
	TransactionID string             `json:"transaction_id"`
	Entries       []*EntryResponse   `json:"entries"`
	Accounts      []*AccountResponse `json:"accounts"`
}

// TransactionFromBatch converts a posted batch to a response.
func TransactionFromBatch(batch *usecase.PostedBatch) *TransactionResponse {
	return &TransactionResponse{
		TransactionID: batch.TransactionID,
		Entries:       EntriesFromDomain(batch.Entries),
		Accounts:      AccountsFromDomain(batch.Accounts),
	}
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// ListEntriesResponse wraps an entry listing.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// AccountWithEntriesResponse is an account together with its entry history.
type AccountWithEntriesResponse struct {
	Account *AccountResponse `json:"account"`
	Entries []*EntryResponse `json:"entries"`
}

// ConsistencyResponse reports whole-ledger debit/credit totals.
type ConsistencyResponse struct {
	TotalDebits  int64     `json:"total_debits"`
	TotalCredits int64     `json:"total_credits"`
	Consistent   bool      `json:"consistent"`
	CheckedAt    time.Time `json:"checked_at"`
}

// ConsistencyFromResult converts a consistency result to a response.
func ConsistencyFromResult(result *usecase.ConsistencyResult) *ConsistencyResponse {
	return &ConsistencyResponse{
		TotalDebits:  result.TotalDebits,
		TotalCredits: result.TotalCredits,
		Consistent:   result.Consistent,
		CheckedAt:    result.CheckedAt,
	}
}

// ReconciliationResponse compares a cached balance with the replayed one.
type ReconciliationResponse struct {
	AccountID         string    `json:"account_id"`
	RecordedBalance   int64     `json:"recorded_balance"`
	CalculatedBalance int64     `json:"calculated_balance"`
	Difference        int64     `json:"difference"`
	Reconciled        bool      `json:"reconciled"`
	CheckedAt         time.Time `json:"checked_at"`
}

// ReconciliationFromResult converts a reconciliation result to a response.
func ReconciliationFromResult(result *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:         result.AccountID,
		RecordedBalance:   result.RecordedBalance,
		CalculatedBalance: result.CalculatedBalance,
		Difference:        result.Difference,
		Reconciled:        result.Reconciled,
		CheckedAt:         result.CheckedAt,
	}
}

// ReconciliationsFromResults converts reconciliation results to responses.
func ReconciliationsFromResults(results []*usecase.ReconciliationResult) []*ReconciliationResponse {
	out := make([]*ReconciliationResponse, len(results))
	for i, r := range results {
		out[i] = ReconciliationFromResult(r)
	}
	return out
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
