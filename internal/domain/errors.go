package domain

import "errors"

var (
	// Validation errors, always detected before any write.
	ErrTooFewEntries           = errors.New("transaction requires at least two entries")
	ErrNonPositiveAmount       = errors.New("entry amount must be positive")
	ErrUnbalancedTransaction   = errors.New("debit and credit amounts do not balance")
	ErrUnknownBalanceDirection = errors.New("no balance direction defined for account type and entry direction")
	ErrInvalidAccountType      = errors.New("invalid account type")
	ErrInvalidDirection        = errors.New("invalid debit/credit direction")
	ErrInvalidAccountName      = errors.New("invalid account name")

	// Lookup errors
	ErrAccountNotFound = errors.New("account not found")
	ErrEntryNotFound   = errors.New("entry not found")

	// Posting errors
	ErrDuplicateTransaction = errors.New("transaction id has already been posted")
	ErrCommitConflict       = errors.New("concurrent commit conflict, retry the batch")
)
