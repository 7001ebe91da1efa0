package domain

// DebitCredit is the direction carried by an entry.
type DebitCredit string

const (
	Debit  DebitCredit = "DEBIT"
	Credit DebitCredit = "CREDIT"
)

// ParseDebitCredit parses a string into a DebitCredit.
func ParseDebitCredit(s string) (DebitCredit, error) {
	switch DebitCredit(s) {
	case Debit, Credit:
		return DebitCredit(s), nil
	default:
		return "", ErrInvalidDirection
	}
}

// Valid reports whether the direction is Debit or Credit.
func (d DebitCredit) Valid() bool {
	return d == Debit || d == Credit
}

// BalanceOperation is the effect an entry has on its account's balance.
type BalanceOperation int

const (
	Increment BalanceOperation = iota + 1
	Decrement
)

// normalBalance maps each account type to the direction that increases it.
// Extending the ledger to new account classes means extending this table.
var normalBalance = map[AccountType]DebitCredit{
	AccountTypeAsset:     Debit,
	AccountTypeExpense:   Debit,
	AccountTypeLiability: Credit,
	AccountTypeEquity:    Credit,
	AccountTypeRevenue:   Credit,
}

// ResolveOperation returns the balance operation an entry with the given
// direction applies to an account of the given type. Pairs outside the
// normal-balance table are an error, never a silent no-op.
func ResolveOperation(accountType AccountType, direction DebitCredit) (BalanceOperation, error) {
	normal, ok := normalBalance[accountType]
	if !ok || !direction.Valid() {
		return 0, ErrUnknownBalanceDirection
	}

	if direction == normal {
		return Increment, nil
	}

	return Decrement, nil
}

// SignedAmount converts an entry's positive amount into the signed delta it
// applies to the balance of an account of the given type.
func SignedAmount(accountType AccountType, direction DebitCredit, amount int64) (int64, error) {
	op, err := ResolveOperation(accountType, direction)
	if err != nil {
		return 0, err
	}

	if op == Decrement {
		return -amount, nil
	}

	return amount, nil
}
