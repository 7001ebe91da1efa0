package domain

import (
	"time"
)

// AccountType classifies an account by its normal-balance side.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// ParseAccountType parses a string into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if _, ok := normalBalance[t]; !ok {
		return "", ErrInvalidAccountType
	}

	return t, nil
}

// Valid reports whether the account type is one of the declared types.
func (t AccountType) Valid() bool {
	_, ok := normalBalance[t]
	return ok
}

// Account represents a ledger account. Balance is a cached projection of the
// account's committed entries, in minor currency units; it is only ever
// written inside the same commit that creates the entries justifying it.
type Account struct {
	ID        string
	Name      string
	Type      AccountType
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
