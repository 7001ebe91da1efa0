package domain

import (
	"time"
)

// Entry is one line item of a posted transaction: directed, magnituded, and
// bound to one account. Entries are append-only and immutable once committed.
// TransactionID is a grouping key shared by all entries of one posting; there
// is no separate transaction row behind it.
type Entry struct {
	ID            string
	TransactionID string
	Name          string
	Description   string
	Direction     DebitCredit
	Amount        int64
	AccountID     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
