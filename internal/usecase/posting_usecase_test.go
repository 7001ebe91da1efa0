package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/finbooks/ledger/internal/domain"
	"github.com/finbooks/ledger/internal/usecase"
	"github.com/finbooks/ledger/internal/usecase/mocks"
)

func newPostingFixture() (*usecase.PostingUseCase, *mocks.FakeAccountRepository, *mocks.FakeEntryRepository, *mocks.FakeTransactionManager) {
	accRepo := mocks.NewFakeAccountRepository()
	entryRepo := mocks.NewFakeEntryRepository()
	txMgr := mocks.NewFakeTransactionManager()
	idGen := mocks.NewFakeIDGenerator()

	uc := usecase.NewPostingUseCase(txMgr, accRepo, entryRepo, idGen)

	return uc, accRepo, entryRepo, txMgr
}

func TestPostingUseCase_PostTransaction(t *testing.T) {
	asset := func(id string, balance int64) *domain.Account {
		return &domain.Account{ID: id, Type: domain.AccountTypeAsset, Balance: balance}
	}
	liability := func(id string, balance int64) *domain.Account {
		return &domain.Account{ID: id, Type: domain.AccountTypeLiability, Balance: balance}
	}

	tests := []struct {
		name     string
		accounts []*domain.Account
		input    usecase.PostTransactionInput
		wantErr  error
		// expected post-commit balances by account ID
		wantBalances map[string]int64
	}{
		{
			name:     "balanced transfer between asset accounts",
			accounts: []*domain.Account{asset("acc-a", 20000), asset("acc-b", 20000)},
			input: usecase.PostTransactionInput{
				TransactionID: "txn-1",
				Entries: []usecase.EntryDraft{
					{AccountID: "acc-a", Direction: domain.Debit, Amount: 1234},
					{AccountID: "acc-b", Direction: domain.Credit, Amount: 1234},
				},
			},
			wantBalances: map[string]int64{"acc-a": 21234, "acc-b": 18766},
		},
		{
			name:     "debit decrements liability",
			accounts: []*domain.Account{liability("acc-d", 20000), asset("acc-a", 20000)},
			input: usecase.PostTransactionInput{
				TransactionID: "txn-2",
				Entries: []usecase.EntryDraft{
					{AccountID: "acc-d", Direction: domain.Debit, Amount: 5000},
					{AccountID: "acc-a", Direction: domain.Credit, Amount: 5000},
				},
			},
			wantBalances: map[string]int64{"acc-d": 15000, "acc-a": 15000},
		},
		{
			name:     "single entry rejected",
			accounts: []*domain.Account{liability("acc-c", 0)},
			input: usecase.PostTransactionInput{
				TransactionID: "txn-3",
				Entries: []usecase.EntryDraft{
					{AccountID: "acc-c", Direction: domain.Credit, Amount: 500},
				},
			},
			wantErr:      domain.ErrTooFewEntries,
			wantBalances: map[string]int64{"acc-c": 0},
		},
		{
			name:     "empty batch rejected",
			accounts: nil,
			input: usecase.PostTransactionInput{
				TransactionID: "txn-4",
			},
			wantErr: domain.ErrTooFewEntries,
		},
		{
			name:     "zero amount rejected",
			accounts: []*domain.Account{asset("acc-a", 100), asset("acc-b", 100)},
			input: usecase.PostTransactionInput{
				TransactionID: "txn-5",
				Entries: []usecase.EntryDraft{
					{AccountID: "acc-a", Direction: domain.Debit, Amount: 0},
					{AccountID: "acc-b", Direction: domain.Credit, Amount: 0},
				},
			},
			wantErr:      domain.ErrNonPositiveAmount,
			wantBalances: map[string]int64{"acc-a": 100, "acc-b": 100},
		},
		{
			name:     "negative amount rejected",
			accounts: []*domain.Account{asset("acc-a", 100), asset("acc-b", 100)},
			input: usecase.PostTransactionInput{
				TransactionID: "txn-6",
				Entries: []usecase.EntryDraft{
					{AccountID: "acc-a", Direction: domain.Debit, Amount: -10},
					{AccountID: "acc-b", Direction: domain.Credit, Amount: 10},
				},
			},
			wantErr: domain.ErrNonPositiveAmount,
		},
		{
			name:     "unknown account rejected",
			accounts: []*domain.Account{asset("acc-a", 100)},
			input: usecase.PostTransactionInput{
				TransactionID: "txn-7",
				Entries: []usecase.EntryDraft{
					{AccountID: "acc-a", Direction: domain.Debit, Amount: 10},
					{AccountID: "acc-missing", Direction: domain.Credit, Amount: 10},
				},
			},
			wantErr:      domain.ErrAccountNotFound,
			wantBalances: map[string]int64{"acc-a": 100},
		},
		{
			name:     "unbalanced batch rejected",
			accounts: []*domain.Account{asset("acc-a", 20000), asset("acc-b", 20000)},
			input: usecase.PostTransactionInput{
				TransactionID: "txn-8",
				Entries: []usecase.EntryDraft{
					{AccountID: "acc-a", Direction: domain.Debit, Amount: 100},
					{AccountID: "acc-b", Direction: domain.Credit, Amount: 50},
				},
			},
			wantErr:      domain.ErrUnbalancedTransaction,
			wantBalances: map[string]int64{"acc-a": 20000, "acc-b": 20000},
		},
		{
			name:     "unknown direction rejected",
			accounts: []*domain.Account{asset("acc-a", 100), asset("acc-b", 100)},
			input: usecase.PostTransactionInput{
				TransactionID: "txn-9",
				Entries: []usecase.EntryDraft{
					{AccountID: "acc-a", Direction: domain.DebitCredit("SIDEWAYS"), Amount: 10},
					{AccountID: "acc-b", Direction: domain.Credit, Amount: 10},
				},
			},
			wantErr: domain.ErrUnknownBalanceDirection,
		},
		{
			name:     "multiple entries on one account are summed",
			accounts: []*domain.Account{asset("acc-a", 1000), asset("acc-b", 1000)},
			input: usecase.PostTransactionInput{
				TransactionID: "txn-10",
				Entries: []usecase.EntryDraft{
					{AccountID: "acc-a", Direction: domain.Debit, Amount: 300},
					{AccountID: "acc-a", Direction: domain.Debit, Amount: 200},
					{AccountID: "acc-b", Direction: domain.Credit, Amount: 500},
				},
			},
			wantBalances: map[string]int64{"acc-a": 1500, "acc-b": 500},
		},
		{
			name:     "offsetting entries on one account net to zero",
			accounts: []*domain.Account{asset("acc-a", 1000), asset("acc-b", 1000)},
			input: usecase.PostTransactionInput{
				TransactionID: "txn-11",
				Entries: []usecase.EntryDraft{
					{AccountID: "acc-a", Direction: domain.Debit, Amount: 250},
					{AccountID: "acc-a", Direction: domain.Credit, Amount: 250},
					{AccountID: "acc-b", Direction: domain.Debit, Amount: 40},
					{AccountID: "acc-b", Direction: domain.Credit, Amount: 40},
				},
			},
			wantBalances: map[string]int64{"acc-a": 1000, "acc-b": 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accRepo, entryRepo, _ := newPostingFixture()
			accRepo.Seed(tt.accounts...)

			batch, err := uc.PostTransaction(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				if batch != nil {
					t.Error("expected nil batch on error")
				}

				entries, _ := entryRepo.List(context.Background())
				if len(entries) != 0 {
					t.Errorf("expected no entries written, found %d", len(entries))
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if batch.TransactionID != tt.input.TransactionID {
					t.Errorf("expected transaction id %s, got %s", tt.input.TransactionID, batch.TransactionID)
				}
				if len(batch.Entries) != len(tt.input.Entries) {
					t.Errorf("expected %d entries, got %d", len(tt.input.Entries), len(batch.Entries))
				}
				for _, e := range batch.Entries {
					if e.ID == "" {
						t.Error("expected entry ID to be assigned")
					}
					if e.TransactionID != tt.input.TransactionID {
						t.Errorf("entry %s carries transaction id %s", e.ID, e.TransactionID)
					}
				}
			}

			for id, want := range tt.wantBalances {
				acc, err := accRepo.GetByID(context.Background(), id)
				if err != nil {
					t.Fatalf("account %s: %v", id, err)
				}
				if acc.Balance != want {
					t.Errorf("account %s balance = %d, expected %d", id, acc.Balance, want)
				}
			}
		})
	}
}

func TestPostingUseCase_DuplicateTransactionRejected(t *testing.T) {
	uc, accRepo, _, _ := newPostingFixture()
	accRepo.Seed(
		&domain.Account{ID: "acc-a", Type: domain.AccountTypeAsset, Balance: 1000},
		&domain.Account{ID: "acc-b", Type: domain.AccountTypeAsset, Balance: 1000},
	)

	input := usecase.PostTransactionInput{
		TransactionID: "txn-dup",
		Entries: []usecase.EntryDraft{
			{AccountID: "acc-a", Direction: domain.Debit, Amount: 100},
			{AccountID: "acc-b", Direction: domain.Credit, Amount: 100},
		},
	}

	if _, err := uc.PostTransaction(context.Background(), input); err != nil {
		t.Fatalf("first posting failed: %v", err)
	}

	_, err := uc.PostTransaction(context.Background(), input)
	if !errors.Is(err, domain.ErrDuplicateTransaction) {
		t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
	}

	// Balances reflect exactly one posting.
	acc, _ := accRepo.GetByID(context.Background(), "acc-a")
	if acc.Balance != 1100 {
		t.Errorf("expected balance 1100 after rejected duplicate, got %d", acc.Balance)
	}
}

func TestPostingUseCase_ValidationSkipsStore(t *testing.T) {
	uc, accRepo, _, txMgr := newPostingFixture()

	beginCalls := 0
	txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		beginCalls++
		return &mocks.FakeTransaction{}, nil
	}

	lookups := 0
	accRepo.GetByIDsFunc = func(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
		lookups++
		return nil, nil
	}

	_, err := uc.PostTransaction(context.Background(), usecase.PostTransactionInput{
		TransactionID: "txn-x",
		Entries: []usecase.EntryDraft{
			{AccountID: "acc-a", Direction: domain.Debit, Amount: 100},
		},
	})

	if !errors.Is(err, domain.ErrTooFewEntries) {
		t.Fatalf("expected ErrTooFewEntries, got %v", err)
	}
	if lookups != 0 {
		t.Error("expected no store lookup before entry-count validation")
	}
	if beginCalls != 0 {
		t.Error("expected no transaction for a batch failing validation")
	}
}

func TestPostingUseCase_CommitFailureSurfaces(t *testing.T) {
	uc, accRepo, _, txMgr := newPostingFixture()
	accRepo.Seed(
		&domain.Account{ID: "acc-a", Type: domain.AccountTypeAsset, Balance: 1000},
		&domain.Account{ID: "acc-b", Type: domain.AccountTypeAsset, Balance: 1000},
	)

	txMgr.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &mocks.FakeTransaction{
			CommitFunc: func(ctx context.Context) error {
				return domain.ErrCommitConflict
			},
		}, nil
	}

	_, err := uc.PostTransaction(context.Background(), usecase.PostTransactionInput{
		TransactionID: "txn-conflict",
		Entries: []usecase.EntryDraft{
			{AccountID: "acc-a", Direction: domain.Debit, Amount: 100},
			{AccountID: "acc-b", Direction: domain.Credit, Amount: 100},
		},
	})

	if !errors.Is(err, domain.ErrCommitConflict) {
		t.Fatalf("expected ErrCommitConflict to surface, got %v", err)
	}
}

func TestPostingUseCase_RollbackOnResolverFailure(t *testing.T) {
	uc, accRepo, entryRepo, txMgr := newPostingFixture()
	// Account with a type the resolver does not know: caught only once the
	// authoritative row is read inside the transaction.
	accRepo.Seed(
		&domain.Account{ID: "acc-a", Type: domain.AccountType("GOODWILL"), Balance: 0},
		&domain.Account{ID: "acc-b", Type: domain.AccountTypeAsset, Balance: 0},
	)

	_, err := uc.PostTransaction(context.Background(), usecase.PostTransactionInput{
		TransactionID: "txn-bad-type",
		Entries: []usecase.EntryDraft{
			{AccountID: "acc-a", Direction: domain.Debit, Amount: 100},
			{AccountID: "acc-b", Direction: domain.Credit, Amount: 100},
		},
	})

	if !errors.Is(err, domain.ErrUnknownBalanceDirection) {
		t.Fatalf("expected ErrUnknownBalanceDirection, got %v", err)
	}
	if txMgr.Last == nil || !txMgr.Last.RolledBack {
		t.Error("expected transaction to be rolled back")
	}

	entries, _ := entryRepo.List(context.Background())
	if len(entries) != 0 {
		t.Errorf("expected no entries after rollback, found %d", len(entries))
	}
}
