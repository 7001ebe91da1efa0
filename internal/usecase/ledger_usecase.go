package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks/ledger/internal/domain"
)

var (
	// ErrInconsistentLedger is returned when total debits and credits diverge.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	ledgerRepo  LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accountRepo AccountRepository, entryRepo EntryRepository, ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// ConsistencyResult reports whole-ledger debit/credit totals.
type ConsistencyResult struct {
	TotalDebits  int64
	TotalCredits int64
	Consistent   bool
	CheckedAt    time.Time
}

// CheckConsistency verifies that the ledger as a whole balances: every posted
// transaction balanced individually, so their union must too.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyResult, error) {
	debits, credits, err := uc.ledgerRepo.DebitCreditTotals(ctx)
	if err != nil {
		return nil, err
	}

	result := &ConsistencyResult{
		TotalDebits:  debits,
		TotalCredits: credits,
		Consistent:   debits == credits,
		CheckedAt:    time.Now().UTC(),
	}

	if !result.Consistent {
		return result, fmt.Errorf("%w: debits=%d credits=%d", ErrInconsistentLedger, debits, credits)
	}

	return result, nil
}

// ReconciliationResult compares an account's cached balance with the balance
// recomputed from its entry history.
type ReconciliationResult struct {
	AccountID         string
	RecordedBalance   int64
	CalculatedBalance int64
	Difference        int64
	Reconciled        bool
	CheckedAt         time.Time
}

// ReconcileAccount replays every entry referencing the account through the
// balance direction resolver and checks the net effect against the cached
// balance projection.
func (uc *LedgerUseCase) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var calculated int64
	for _, entry := range entries {
		delta, err := domain.SignedAmount(account.Type, entry.Direction, entry.Amount)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", entry.ID, err)
		}
		calculated += delta
	}

	return &ReconciliationResult{
		AccountID:         accountID,
		RecordedBalance:   account.Balance,
		CalculatedBalance: calculated,
		Difference:        account.Balance - calculated,
		Reconciled:        account.Balance == calculated,
		CheckedAt:         time.Now().UTC(),
	}, nil
}

// ReconcileAllAccounts reconciles every account in the ledger.
func (uc *LedgerUseCase) ReconcileAllAccounts(ctx context.Context) ([]*ReconciliationResult, error) {
	accounts, err := uc.accountRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*ReconciliationResult, 0, len(accounts))
	for _, account := range accounts {
		result, err := uc.ReconcileAccount(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile account %s: %w", account.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}
