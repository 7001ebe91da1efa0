package domain

import (
	"fmt"
	"strings"
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MaxTextLength        = 1024
)

// ValidateAccountName validates an account name. Empty names are allowed,
// the label is optional.
func ValidateAccountName(name string) error {
	if len(strings.TrimSpace(name)) != len(name) {
		return fmt.Errorf("%w: leading or trailing whitespace", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateAmount validates an entry amount in minor currency units.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveAmount, amount)
	}

	return nil
}
