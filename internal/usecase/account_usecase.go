package usecase

import (
	"context"
	"time"

	"github.com/finbooks/ledger/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, entryRepo EntryRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name string
	Type domain.AccountType
}

// CreateAccount creates a new account with a zero balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidAccountType
	}

	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Type:      input.Type,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// AccountWithEntries is an account together with its full entry history.
type AccountWithEntries struct {
	Account *domain.Account
	Entries []*domain.Entry
}

// GetAccountWithEntries retrieves an account and every entry referencing it.
func (uc *AccountUseCase) GetAccountWithEntries(ctx context.Context, id string) (*AccountWithEntries, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListByAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	return &AccountWithEntries{
		Account: account,
		Entries: entries,
	}, nil
}

// ListAccounts lists all accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx)
}
