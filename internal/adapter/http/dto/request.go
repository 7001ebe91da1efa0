package dto

import (
	"github.com/finbooks/ledger/internal/domain"
	"github.com/finbooks/ledger/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name: r.Name,
		Type: domain.AccountType(r.Type),
	}
}

// EntryItem is one proposed line of a transaction. Amount is in minor
// currency units.
type EntryItem struct {
	AccountID   string `json:"account_id"`
	Direction   string `json:"direction"`
	Amount      int64  `json:"amount"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// PostTransactionRequest represents a request to post a balanced transaction.
type PostTransactionRequest struct {
	TransactionID string      `json:"transaction_id"`
	Entries       []EntryItem `json:"entries"`
}

// ToUseCaseInput converts to use case input. Direction strings pass through
// untouched; an unknown one is rejected by the posting validation.
func (r *PostTransactionRequest) ToUseCaseInput() usecase.PostTransactionInput {
	drafts := make([]usecase.EntryDraft, len(r.Entries))
	for i, e := range r.Entries {
		drafts[i] = usecase.EntryDraft{
			AccountID:   e.AccountID,
			Direction:   domain.DebitCredit(e.Direction),
			Amount:      e.Amount,
			Name:        e.Name,
			Description: e.Description,
		}
	}

	return usecase.PostTransactionInput{
		TransactionID: r.TransactionID,
		Entries:       drafts,
	}
}
