package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a storage transaction.
	// This prevents long-running transactions from blocking account rows.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
