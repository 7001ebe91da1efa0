package usecase

import (
	"context"

	"github.com/finbooks/ledger/internal/domain"
)

// EntryUseCase handles entry read operations.
type EntryUseCase struct {
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		entryRepo: entryRepo,
	}
}

// GetEntry retrieves a single entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// ListEntries lists every entry in the ledger in commit order.
func (uc *EntryUseCase) ListEntries(ctx context.Context) ([]*domain.Entry, error) {
	return uc.entryRepo.List(ctx)
}

// ListEntriesByTransaction lists the entries grouped under one transaction ID.
func (uc *EntryUseCase) ListEntriesByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	return uc.entryRepo.ListByTransaction(ctx, transactionID)
}
