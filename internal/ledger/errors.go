package ledger

import (
	"errors"
	"fmt"
)

// Domain errors surfaced to the session controller, which maps them to the
// text shown on the ATM screen.
var (
	// ErrAccountNotFound means the account number is unknown to the ledger.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNotAuthenticated means an account operation was attempted with no
	// account logged in.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidAmount means the amount was not a positive number.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrAmountTooLarge means a deposit would overflow the account balance.
	ErrAmountTooLarge = errors.New("amount too large")

	// ErrInsufficientFunds means a withdrawal would overdraw the account.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCardBlocked means the PIN attempt limit was reached. Terminal for
	// the session: the caller must force a logout.
	ErrCardBlocked = errors.New("card blocked")
)

// IncorrectPINError reports a recoverable PIN mismatch and how many attempts
// remain before the card is blocked.
type IncorrectPINError struct {
	Remaining int
}

func (e *IncorrectPINError) Error() string {
	return fmt.Sprintf("incorrect PIN, %d attempts remaining", e.Remaining)
}
