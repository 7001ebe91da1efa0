package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/finbooks/ledger/internal/domain"
	"github.com/finbooks/ledger/internal/usecase"
	"github.com/finbooks/ledger/internal/usecase/mocks"
)

func TestAccountUseCase_CreateAccount(t *testing.T) {
	ctrl := gomock.NewController(t)

	accRepo := mocks.NewMockAccountRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	idGen.EXPECT().Generate().Return("01TESTULID")
	accRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewAccountUseCase(accRepo, nil, idGen)

	account, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name: "Operating Cash",
		Type: domain.AccountTypeAsset,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.ID != "01TESTULID" {
		t.Errorf("expected generated ID, got %s", account.ID)
	}
	if account.Balance != 0 {
		t.Errorf("expected zero opening balance, got %d", account.Balance)
	}
	if account.Type != domain.AccountTypeAsset {
		t.Errorf("expected ASSET, got %s", account.Type)
	}
	if account.CreatedAt.IsZero() || account.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestAccountUseCase_CreateAccountInvalidType(t *testing.T) {
	ctrl := gomock.NewController(t)

	accRepo := mocks.NewMockAccountRepository(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)

	uc := usecase.NewAccountUseCase(accRepo, nil, idGen)

	_, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name: "Mystery",
		Type: domain.AccountType("SLUSH"),
	})
	if !errors.Is(err, domain.ErrInvalidAccountType) {
		t.Fatalf("expected ErrInvalidAccountType, got %v", err)
	}
}

func TestAccountUseCase_CreateAccountInvalidName(t *testing.T) {
	ctrl := gomock.NewController(t)

	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(ctrl), nil, mocks.NewMockIDGenerator(ctrl))

	_, err := uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name: " padded ",
		Type: domain.AccountTypeLiability,
	})
	if !errors.Is(err, domain.ErrInvalidAccountName) {
		t.Fatalf("expected ErrInvalidAccountName, got %v", err)
	}
}

func TestAccountUseCase_GetAccount(t *testing.T) {
	ctrl := gomock.NewController(t)

	accRepo := mocks.NewMockAccountRepository(ctrl)
	accRepo.EXPECT().GetByID(gomock.Any(), "acc-1").Return(&domain.Account{ID: "acc-1"}, nil)
	accRepo.EXPECT().GetByID(gomock.Any(), "acc-404").Return(nil, domain.ErrAccountNotFound)

	uc := usecase.NewAccountUseCase(accRepo, nil, nil)

	account, err := uc.GetAccount(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != "acc-1" {
		t.Errorf("expected acc-1, got %s", account.ID)
	}

	if _, err := uc.GetAccount(context.Background(), "acc-404"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_GetAccountWithEntries(t *testing.T) {
	ctrl := gomock.NewController(t)

	accRepo := mocks.NewMockAccountRepository(ctrl)
	entryRepo := mocks.NewMockEntryRepository(ctrl)

	accRepo.EXPECT().GetByID(gomock.Any(), "acc-1").Return(&domain.Account{ID: "acc-1", Type: domain.AccountTypeAsset}, nil)
	entryRepo.EXPECT().ListByAccount(gomock.Any(), "acc-1").Return([]*domain.Entry{
		{ID: "e-1", AccountID: "acc-1", Direction: domain.Debit, Amount: 100},
		{ID: "e-2", AccountID: "acc-1", Direction: domain.Credit, Amount: 40},
	}, nil)

	uc := usecase.NewAccountUseCase(accRepo, entryRepo, nil)

	result, err := uc.GetAccountWithEntries(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Account.ID != "acc-1" {
		t.Errorf("expected account acc-1, got %s", result.Account.ID)
	}
	if len(result.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(result.Entries))
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)

	accRepo := mocks.NewMockAccountRepository(ctrl)
	accRepo.EXPECT().List(gomock.Any()).Return([]*domain.Account{{ID: "a"}, {ID: "b"}}, nil)

	uc := usecase.NewAccountUseCase(accRepo, nil, nil)

	accounts, err := uc.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(accounts))
	}
}
