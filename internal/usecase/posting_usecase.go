package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/finbooks/ledger/internal/domain"
)

// PostingUseCase posts balanced multi-entry transactions against the ledger.
type PostingUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
	}
}

// EntryDraft is one proposed line of a transaction before posting.
type EntryDraft struct {
	AccountID   string
	Direction   domain.DebitCredit
	Amount      int64
	Name        string
	Description string
}

// PostTransactionInput represents input for posting one transaction.
type PostTransactionInput struct {
	TransactionID string
	Entries       []EntryDraft
}

// PostedBatch is the result of a committed posting: the created entries and
// post-commit snapshots of every affected account.
type PostedBatch struct {
	TransactionID string
	Entries       []*domain.Entry
	Accounts      []*domain.Account
}

// PostTransaction validates a batch of entry drafts and commits the entry
// creations together with the resulting balance adjustments as one atomic
// unit. Validation failures happen before any write; a failed commit leaves
// no visible effect and the identical batch may be retried.
func (uc *PostingUseCase) PostTransaction(ctx context.Context, input PostTransactionInput) (*PostedBatch, error) {
	// 1. A transaction needs at least a debit side and a credit side.
	if len(input.Entries) < 2 {
		return nil, domain.ErrTooFewEntries
	}

	// 2. Direction carries the sign; amounts are strictly positive.
	for _, draft := range input.Entries {
		if err := domain.ValidateAmount(draft.Amount); err != nil {
			return nil, err
		}
	}

	// 3. Every referenced account must exist. Batched lookup, sorted IDs.
	accountIDs := uc.collectUniqueAccountIDs(input.Entries)
	sort.Strings(accountIDs)

	known, err := uc.accountRepo.GetByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	for _, id := range accountIDs {
		if known[id] == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
		}
	}

	// 4. The balance invariant: debit total equals credit total.
	var debits, credits int64
	for _, draft := range input.Entries {
		switch draft.Direction {
		case domain.Debit:
			debits += draft.Amount
		case domain.Credit:
			credits += draft.Amount
		default:
			return nil, domain.ErrUnknownBalanceDirection
		}
	}

	if debits != credits {
		return nil, fmt.Errorf("%w: debits=%d credits=%d", domain.ErrUnbalancedTransaction, debits, credits)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock accounts in sorted order (deadlock prevention) and re-read their
	// types inside the transaction so the resolver never works on stale data.
	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(accountIDs) {
		return nil, domain.ErrAccountNotFound
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.ID] = a
	}

	// A transaction ID is posted at most once.
	exists, err := uc.entryRepo.ExistsByTransaction(ctx, tx, input.TransactionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateTransaction, input.TransactionID)
	}

	now := time.Now().UTC()

	// Resolve each draft against its account's type and aggregate one net
	// delta per account, so several entries hitting the same account within
	// the batch sum up instead of racing each other.
	entries := make([]*domain.Entry, 0, len(input.Entries))
	deltas := make(map[string]int64, len(accountIDs))

	for _, draft := range input.Entries {
		account := accountMap[draft.AccountID]

		delta, err := domain.SignedAmount(account.Type, draft.Direction, draft.Amount)
		if err != nil {
			return nil, err
		}

		deltas[account.ID] += delta

		entries = append(entries, &domain.Entry{
			ID:            uc.idGen.Generate(),
			TransactionID: input.TransactionID,
			Name:          draft.Name,
			Description:   draft.Description,
			Direction:     draft.Direction,
			Amount:        draft.Amount,
			AccountID:     draft.AccountID,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	if err := uc.entryRepo.CreateBatch(ctx, tx, entries); err != nil {
		return nil, err
	}

	for _, id := range accountIDs {
		if err := uc.accountRepo.AdjustBalance(ctx, tx, id, deltas[id], now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit posting %s: %w", input.TransactionID, err)
	}

	updated := make([]*domain.Account, 0, len(accountIDs))
	for _, id := range accountIDs {
		account := accountMap[id]
		account.Balance += deltas[id]
		account.UpdatedAt = now
		updated = append(updated, account)
	}

	return &PostedBatch{
		TransactionID: input.TransactionID,
		Entries:       entries,
		Accounts:      updated,
	}, nil
}

func (uc *PostingUseCase) collectUniqueAccountIDs(drafts []EntryDraft) []string {
	seen := make(map[string]bool)

	var ids []string
	for _, d := range drafts {
		if !seen[d.AccountID] {
			seen[d.AccountID] = true
			ids = append(ids, d.AccountID)
		}
	}

	return ids
}
